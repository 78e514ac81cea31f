package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
	"github.com/xiebiao/biblioteca/internal/domain/inventory"
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// inventoryRepository 书店库存仓储实现(MySQL)
// 设计说明:
// 1. (store_id,book_id)组合唯一索引支撑Upsert
// 2. 扣减用条件UPDATE(copies >= ?)，数据库保证不超卖
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存仓储
func NewInventoryRepository(db *gorm.DB) inventory.Repository {
	return &inventoryRepository{db: db}
}

// copiesColumn 品相对应的计数列名
func copiesColumn(cond catalog.Condition) string {
	if cond == catalog.ConditionUsed {
		return "copies_used"
	}
	return "copies_new"
}

// Upsert 写入或覆盖库存数(绝对值语义)
func (r *inventoryRepository) Upsert(ctx context.Context, inv *inventory.StoreInventory) error {
	model := &InventoryModel{
		ID:         inv.ID,
		StoreID:    inv.StoreID,
		BookID:     inv.BookID,
		CopiesNew:  inv.CopiesNew,
		CopiesUsed: inv.CopiesUsed,
		CopiesSold: inv.CopiesSold,
	}

	err := getDB(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}, {Name: "book_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"copies_new", "copies_used"}),
		}).
		Create(model).Error
	if err != nil {
		return apperrors.Wrap(err, "写入库存失败")
	}

	inv.ID = model.ID
	inv.UpdatedAt = model.UpdatedAt
	return nil
}

// Get 查询库存记录
func (r *inventoryRepository) Get(ctx context.Context, storeID, bookID uint) (*inventory.StoreInventory, error) {
	var model InventoryModel
	err := getDB(ctx, r.db).
		Where("store_id = ? AND book_id = ?", storeID, bookID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrInventoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询库存失败")
	}
	return toInventoryEntity(&model), nil
}

// GetForUpdate 带排他锁查询库存记录
func (r *inventoryRepository) GetForUpdate(ctx context.Context, storeID, bookID uint) (*inventory.StoreInventory, error) {
	var model InventoryModel
	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("store_id = ? AND book_id = ?", storeID, bookID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrInventoryNotFound
		}
		return nil, apperrors.Wrap(err, "锁定库存失败")
	}
	return toInventoryEntity(&model), nil
}

// DecrementOnSale 条件扣减库存并累加售出数
// WHERE带copies >= ?防止负库存，RowsAffected=0即库存不足
func (r *inventoryRepository) DecrementOnSale(ctx context.Context, storeID, bookID uint, cond catalog.Condition, quantity int) error {
	col := copiesColumn(cond)
	result := getDB(ctx, r.db).Model(&InventoryModel{}).
		Where("store_id = ? AND book_id = ?", storeID, bookID).
		Where(col+" >= ?", quantity).
		Updates(map[string]interface{}{
			col:           gorm.Expr(col+" - ?", quantity),
			"copies_sold": gorm.Expr("copies_sold + ?", quantity),
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "扣减库存失败")
	}
	if result.RowsAffected == 0 {
		// 记录不存在或库存不足，再查一次确定原因
		var count int64
		err := getDB(ctx, r.db).Model(&InventoryModel{}).
			Where("store_id = ? AND book_id = ?", storeID, bookID).
			Count(&count).Error
		if err != nil {
			return apperrors.Wrap(err, "查询库存失败")
		}
		if count == 0 {
			return inventory.ErrInventoryNotFound
		}
		return inventory.ErrInsufficientStock
	}
	return nil
}

// RestoreOnCancel 订单取消时回补库存
func (r *inventoryRepository) RestoreOnCancel(ctx context.Context, storeID, bookID uint, cond catalog.Condition, quantity int) error {
	col := copiesColumn(cond)
	result := getDB(ctx, r.db).Model(&InventoryModel{}).
		Where("store_id = ? AND book_id = ?", storeID, bookID).
		Where("copies_sold >= ?", quantity).
		Updates(map[string]interface{}{
			col:           gorm.Expr(col+" + ?", quantity),
			"copies_sold": gorm.Expr("copies_sold - ?", quantity),
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "回补库存失败")
	}
	if result.RowsAffected == 0 {
		return inventory.ErrInventoryNotFound
	}
	return nil
}

// ListByStore 某书店的全部库存记录
func (r *inventoryRepository) ListByStore(ctx context.Context, storeID uint) ([]*inventory.StoreInventory, error) {
	var models []InventoryModel
	err := getDB(ctx, r.db).
		Where("store_id = ?", storeID).
		Order("book_id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询书店库存失败")
	}
	return toInventoryEntities(models), nil
}

// ListByBook 持有某图书的全部书店库存
func (r *inventoryRepository) ListByBook(ctx context.Context, bookID uint) ([]*inventory.StoreInventory, error) {
	var models []InventoryModel
	err := getDB(ctx, r.db).
		Where("book_id = ?", bookID).
		Order("store_id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书库存失败")
	}
	return toInventoryEntities(models), nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toInventoryEntity(model *InventoryModel) *inventory.StoreInventory {
	return &inventory.StoreInventory{
		ID:         model.ID,
		StoreID:    model.StoreID,
		BookID:     model.BookID,
		CopiesNew:  model.CopiesNew,
		CopiesUsed: model.CopiesUsed,
		CopiesSold: model.CopiesSold,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toInventoryEntities(models []InventoryModel) []*inventory.StoreInventory {
	items := make([]*inventory.StoreInventory, len(models))
	for i := range models {
		items[i] = toInventoryEntity(&models[i])
	}
	return items
}
