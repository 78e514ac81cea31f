package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
	"github.com/xiebiao/biblioteca/internal/domain/order"
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 设计说明:
// 1. 订单+明细行+配送记录级联写入，依赖外层TxManager事务
// 2. 状态int存储，读取时转回领域类型
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单(级联写入明细行与配送记录)
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	db := getDB(ctx, r.db)

	model := &OrderModel{
		OrderNo:          o.OrderNo,
		UserID:           o.UserID,
		Total:            o.Total,
		Tax:              o.Tax,
		Discount:         o.Discount,
		Status:           int(o.Status),
		DeliveryType:     string(o.DeliveryType),
		AddressID:        o.AddressID,
		PaymentMethodID:  o.PaymentMethodID,
		Notes:            o.Notes,
		ExpectedDelivery: o.ExpectedDelivery,
	}
	for _, line := range o.Lines {
		model.Lines = append(model.Lines, OrderLineModel{
			BookID:    line.BookID,
			StoreID:   line.StoreID,
			Condition: string(line.Condition),
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Discount:  line.Discount,
			LineTotal: line.LineTotal,
		})
	}

	// GORM级联创建:Lines通过foreignKey自动写入并回填OrderID
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i := range model.Lines {
		o.Lines[i].ID = model.Lines[i].ID
		o.Lines[i].OrderID = model.ID
	}

	if o.Delivery != nil {
		dm := &DeliveryModel{
			OrderID:    model.ID,
			Carrier:    o.Delivery.Carrier,
			TrackingNo: o.Delivery.TrackingNo,
			Status:     string(o.Delivery.Status),
		}
		if err := db.Create(dm).Error; err != nil {
			return apperrors.Wrap(err, "创建配送记录失败")
		}
		o.Delivery.ID = dm.ID
		o.Delivery.OrderID = model.ID
	}
	return nil
}

// FindByID 根据ID查找订单(包含明细与配送记录)
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).
		Preload("Lines").
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return r.attachDelivery(ctx, toOrderEntity(&model))
}

// FindByOrderNo 根据订单号查找订单
func (r *orderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).
		Preload("Lines").
		Where("order_no = ?", orderNo).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return r.attachDelivery(ctx, toOrderEntity(&model))
}

// Update 更新订单状态(级联更新配送记录状态)
func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	db := getDB(ctx, r.db)

	result := db.Model(&OrderModel{}).
		Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"status":          int(o.Status),
			"actual_delivery": o.ActualDelivery,
			"updated_at":      o.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}

	if o.Delivery != nil {
		err := db.Model(&DeliveryModel{}).
			Where("order_id = ?", o.ID).
			Updates(map[string]interface{}{
				"status":       string(o.Delivery.Status),
				"shipped_at":   o.Delivery.ShippedAt,
				"delivered_at": o.Delivery.DeliveredAt,
			}).Error
		if err != nil {
			return apperrors.Wrap(err, "更新配送记录失败")
		}
	}
	return nil
}

// ListByUserID 分页查询用户的订单列表
func (r *orderRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	var models []OrderModel
	var total int64

	db := getDB(ctx, r.db)
	query := db.Model(&OrderModel{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Lines").
		Order("created_at DESC").
		Limit(pageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		o, err := r.attachDelivery(ctx, toOrderEntity(&models[i]))
		if err != nil {
			return nil, 0, err
		}
		orders[i] = o
	}
	return orders, total, nil
}

// attachDelivery 补齐送货上门订单的配送记录
func (r *orderRepository) attachDelivery(ctx context.Context, o *order.Order) (*order.Order, error) {
	if o.DeliveryType != order.DeliveryHome {
		return o, nil
	}

	var dm DeliveryModel
	err := getDB(ctx, r.db).Where("order_id = ?", o.ID).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return o, nil
		}
		return nil, apperrors.Wrap(err, "查询配送记录失败")
	}

	o.Delivery = &order.Delivery{
		ID:          dm.ID,
		OrderID:     dm.OrderID,
		Carrier:     dm.Carrier,
		TrackingNo:  dm.TrackingNo,
		Status:      order.DeliveryStatus(dm.Status),
		ShippedAt:   dm.ShippedAt,
		DeliveredAt: dm.DeliveredAt,
		CreatedAt:   dm.CreatedAt,
		UpdatedAt:   dm.UpdatedAt,
	}
	return o, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toOrderEntity(model *OrderModel) *order.Order {
	o := &order.Order{
		ID:               model.ID,
		OrderNo:          model.OrderNo,
		UserID:           model.UserID,
		Total:            model.Total,
		Tax:              model.Tax,
		Discount:         model.Discount,
		Status:           order.OrderStatus(model.Status),
		DeliveryType:     order.DeliveryType(model.DeliveryType),
		AddressID:        model.AddressID,
		PaymentMethodID:  model.PaymentMethodID,
		Notes:            model.Notes,
		ExpectedDelivery: model.ExpectedDelivery,
		ActualDelivery:   model.ActualDelivery,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
	for _, line := range model.Lines {
		o.Lines = append(o.Lines, order.OrderLine{
			ID:        line.ID,
			OrderID:   line.OrderID,
			BookID:    line.BookID,
			StoreID:   line.StoreID,
			Condition: catalog.Condition(line.Condition),
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Discount:  line.Discount,
			LineTotal: line.LineTotal,
		})
	}
	return o
}
