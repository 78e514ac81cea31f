package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/biblioteca/internal/domain/user"
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// =========================================
// 收货地址仓储
// =========================================

type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建收货地址仓储
func NewAddressRepository(db *gorm.DB) user.AddressRepository {
	return &addressRepository{db: db}
}

// Create 创建地址
func (r *addressRepository) Create(ctx context.Context, addr *user.Address) error {
	model := &AddressModel{
		UserID:    addr.UserID,
		Recipient: addr.Recipient,
		Street:    addr.Street,
		City:      addr.City,
		PostCode:  addr.PostCode,
		Phone:     addr.Phone,
		IsDefault: addr.IsDefault,
		CreatedAt: addr.CreatedAt,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建地址失败")
	}
	addr.ID = model.ID
	return nil
}

// FindByID 根据ID查找地址
func (r *addressRepository) FindByID(ctx context.Context, id uint) (*user.Address, error) {
	var model AddressModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrAddressNotFound
		}
		return nil, apperrors.Wrap(err, "查询地址失败")
	}
	return toAddressEntity(&model), nil
}

// ListByUser 用户的全部地址(默认地址在前)
func (r *addressRepository) ListByUser(ctx context.Context, userID uint) ([]*user.Address, error) {
	var models []AddressModel
	err := getDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询地址列表失败")
	}

	addrs := make([]*user.Address, len(models))
	for i := range models {
		addrs[i] = toAddressEntity(&models[i])
	}
	return addrs, nil
}

// SetDefault 将某地址设为默认(同事务取消其余默认标志)
func (r *addressRepository) SetDefault(ctx context.Context, userID, addressID uint) error {
	db := getDB(ctx, r.db)

	err := db.Model(&AddressModel{}).
		Where("user_id = ? AND id <> ?", userID, addressID).
		Update("is_default", false).Error
	if err != nil {
		return apperrors.Wrap(err, "更新默认地址失败")
	}

	result := db.Model(&AddressModel{}).
		Where("user_id = ? AND id = ?", userID, addressID).
		Update("is_default", true)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新默认地址失败")
	}
	if result.RowsAffected == 0 {
		return user.ErrAddressNotFound
	}
	return nil
}

// CountByUser 用户的地址数量
func (r *addressRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&AddressModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计地址数量失败")
	}
	return count, nil
}

func toAddressEntity(model *AddressModel) *user.Address {
	return &user.Address{
		ID:        model.ID,
		UserID:    model.UserID,
		Recipient: model.Recipient,
		Street:    model.Street,
		City:      model.City,
		PostCode:  model.PostCode,
		Phone:     model.Phone,
		IsDefault: model.IsDefault,
		CreatedAt: model.CreatedAt,
	}
}

// =========================================
// 支付方式仓储
// =========================================

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建支付方式仓储
func NewPaymentRepository(db *gorm.DB) user.PaymentRepository {
	return &paymentRepository{db: db}
}

// Create 创建支付方式
func (r *paymentRepository) Create(ctx context.Context, pm *user.PaymentMethod) error {
	model := &PaymentMethodModel{
		UserID:    pm.UserID,
		Kind:      pm.Kind,
		Holder:    pm.Holder,
		Last4:     pm.Last4,
		ExpiresAt: pm.ExpiresAt,
		IsDefault: pm.IsDefault,
		CreatedAt: pm.CreatedAt,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建支付方式失败")
	}
	pm.ID = model.ID
	return nil
}

// FindByID 根据ID查找支付方式
func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*user.PaymentMethod, error) {
	var model PaymentMethodModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrPaymentNotFound
		}
		return nil, apperrors.Wrap(err, "查询支付方式失败")
	}
	return toPaymentEntity(&model), nil
}

// ListByUser 用户的全部支付方式(默认在前，其余按创建时间正序)
func (r *paymentRepository) ListByUser(ctx context.Context, userID uint) ([]*user.PaymentMethod, error) {
	var models []PaymentMethodModel
	err := getDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询支付方式失败")
	}

	methods := make([]*user.PaymentMethod, len(models))
	for i := range models {
		methods[i] = toPaymentEntity(&models[i])
	}
	return methods, nil
}

// CountByUser 用户的支付方式数量
func (r *paymentRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&PaymentMethodModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计支付方式失败")
	}
	return count, nil
}

// Delete 删除支付方式
func (r *paymentRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&PaymentMethodModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除支付方式失败")
	}
	if result.RowsAffected == 0 {
		return user.ErrPaymentNotFound
	}
	return nil
}

// SetDefault 将某支付方式设为默认
func (r *paymentRepository) SetDefault(ctx context.Context, userID, paymentID uint) error {
	db := getDB(ctx, r.db)

	err := db.Model(&PaymentMethodModel{}).
		Where("user_id = ? AND id <> ?", userID, paymentID).
		Update("is_default", false).Error
	if err != nil {
		return apperrors.Wrap(err, "更新默认支付方式失败")
	}

	result := db.Model(&PaymentMethodModel{}).
		Where("user_id = ? AND id = ?", userID, paymentID).
		Update("is_default", true)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新默认支付方式失败")
	}
	if result.RowsAffected == 0 {
		return user.ErrPaymentNotFound
	}
	return nil
}

func toPaymentEntity(model *PaymentMethodModel) *user.PaymentMethod {
	return &user.PaymentMethod{
		ID:        model.ID,
		UserID:    model.UserID,
		Kind:      model.Kind,
		Holder:    model.Holder,
		Last4:     model.Last4,
		ExpiresAt: model.ExpiresAt,
		IsDefault: model.IsDefault,
		CreatedAt: model.CreatedAt,
	}
}

// =========================================
// 收藏仓储
// =========================================

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository 创建收藏仓储
func NewFavoriteRepository(db *gorm.DB) user.FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Create 收藏图书
func (r *favoriteRepository) Create(ctx context.Context, fav *user.Favorite) error {
	model := &FavoriteModel{
		UserID:    fav.UserID,
		BookID:    fav.BookID,
		CreatedAt: fav.CreatedAt,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrAlreadyFavorited
		}
		return apperrors.Wrap(err, "收藏失败")
	}
	fav.ID = model.ID
	return nil
}

// Delete 取消收藏
func (r *favoriteRepository) Delete(ctx context.Context, userID, bookID uint) error {
	err := getDB(ctx, r.db).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&FavoriteModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "取消收藏失败")
	}
	return nil
}

// ListByUser 用户的收藏(按收藏时间倒序)
func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint) ([]*user.Favorite, error) {
	var models []FavoriteModel
	err := getDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询收藏失败")
	}

	favs := make([]*user.Favorite, len(models))
	for i := range models {
		favs[i] = &user.Favorite{
			ID:        models[i].ID,
			UserID:    models[i].UserID,
			BookID:    models[i].BookID,
			CreatedAt: models[i].CreatedAt,
		}
	}
	return favs, nil
}

// Exists 是否已收藏
func (r *favoriteRepository) Exists(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&FavoriteModel{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询收藏失败")
	}
	return count > 0, nil
}
