package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/biblioteca/internal/domain/user"
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// placeRepository 参照数据仓储实现(城市/图书馆/书店)
// 只读数据，由db.go的seedReferenceData播种
type placeRepository struct {
	db *gorm.DB
}

// NewPlaceRepository 创建参照数据仓储
func NewPlaceRepository(db *gorm.DB) user.PlaceRepository {
	return &placeRepository{db: db}
}

// ListCities 全部城市(按名称排序)
func (r *placeRepository) ListCities(ctx context.Context) ([]*user.City, error) {
	var models []CityModel
	err := getDB(ctx, r.db).Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询城市失败")
	}

	cities := make([]*user.City, len(models))
	for i := range models {
		cities[i] = &user.City{ID: models[i].ID, Name: models[i].Name}
	}
	return cities, nil
}

// ListLibraries 图书馆列表，cityID为0时返回全部
func (r *placeRepository) ListLibraries(ctx context.Context, cityID uint) ([]*user.Library, error) {
	query := getDB(ctx, r.db).Model(&LibraryModel{})
	if cityID > 0 {
		query = query.Where("city_id = ?", cityID)
	}

	var models []LibraryModel
	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书馆失败")
	}

	libraries := make([]*user.Library, len(models))
	for i := range models {
		libraries[i] = toLibraryEntity(&models[i])
	}
	return libraries, nil
}

// ListStores 书店列表，cityID为0时返回全部
func (r *placeRepository) ListStores(ctx context.Context, cityID uint) ([]*user.Store, error) {
	query := getDB(ctx, r.db).Model(&StoreModel{})
	if cityID > 0 {
		query = query.Where("city_id = ?", cityID)
	}

	var models []StoreModel
	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询书店失败")
	}

	stores := make([]*user.Store, len(models))
	for i := range models {
		stores[i] = toStoreEntity(&models[i])
	}
	return stores, nil
}

// FindStoreByID 根据ID查找书店
func (r *placeRepository) FindStoreByID(ctx context.Context, id uint) (*user.Store, error) {
	var model StoreModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStoreNotFound
		}
		return nil, apperrors.Wrap(err, "查询书店失败")
	}
	return toStoreEntity(&model), nil
}

// FindLibraryByID 根据ID查找图书馆
func (r *placeRepository) FindLibraryByID(ctx context.Context, id uint) (*user.Library, error) {
	var model LibraryModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "图书馆不存在")
		}
		return nil, apperrors.Wrap(err, "查询图书馆失败")
	}
	return toLibraryEntity(&model), nil
}

func toLibraryEntity(model *LibraryModel) *user.Library {
	return &user.Library{
		ID:      model.ID,
		Name:    model.Name,
		CityID:  model.CityID,
		Address: model.Address,
	}
}

func toStoreEntity(model *StoreModel) *user.Store {
	return &user.Store{
		ID:      model.ID,
		Name:    model.Name,
		CityID:  model.CityID,
		Address: model.Address,
	}
}
