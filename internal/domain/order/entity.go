package order

import (
	"time"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
)

// OrderStatus 订单状态
// 设计说明:
// 1. 使用int类型而非string(节省存储空间，便于索引)
// 2. 状态值1-5递增表示履约推进方向，6为取消终态
type OrderStatus int

const (
	OrderStatusPending   OrderStatus = 1 // 待确认
	OrderStatusConfirmed OrderStatus = 2 // 已确认
	OrderStatusPreparing OrderStatus = 3 // 备货中
	OrderStatusShipped   OrderStatus = 4 // 已发出
	OrderStatusDelivered OrderStatus = 5 // 已送达/已取书
	OrderStatusCancelled OrderStatus = 6 // 已取消
)

// String 实现Stringer接口(方便日志输出)
func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "待确认"
	case OrderStatusConfirmed:
		return "已确认"
	case OrderStatusPreparing:
		return "备货中"
	case OrderStatusShipped:
		return "已发出"
	case OrderStatusDelivered:
		return "已送达"
	case OrderStatusCancelled:
		return "已取消"
	default:
		return "未知状态"
	}
}

// DeliveryType 履约方式
type DeliveryType string

const (
	DeliveryPickup DeliveryType = "pickup" // 到店自取
	DeliveryHome   DeliveryType = "home"   // 送货上门
)

// Valid 校验履约方式取值
func (t DeliveryType) Valid() bool {
	return t == DeliveryPickup || t == DeliveryHome
}

// HomeDeliveryLeadTime 送货上门的预计送达周期
const HomeDeliveryLeadTime = 5 * 24 * time.Hour

// Order 订单实体(聚合根)
// 设计说明:
// 1. Order是聚合根，OrderLine是子实体，必须同事务创建
// 2. Total冗余存储(避免重复计算，防止改价影响历史订单)
// 3. 到店自取没有Delivery子记录，送货上门创建一条
// 4. 税费/折扣未提供时为0，不影响总额
type Order struct {
	ID               uint
	OrderNo          string       // 订单号(业务主键，全局唯一)
	UserID           uint         // 买家用户ID
	Total            int64        // 订单总金额(分)，冗余字段
	Tax              int64        // 税费(分)
	Discount         int64        // 订单级折扣(分)
	Status           OrderStatus  // 订单状态
	DeliveryType     DeliveryType // 履约方式
	AddressID        uint         // 收货地址ID(仅送货上门)
	PaymentMethodID  uint         // 支付方式ID(0表示到店支付)
	Notes            string       // 买家备注
	ExpectedDelivery time.Time    // 预计送达/可取时间
	ActualDelivery   *time.Time   // 实际送达/取书时间(送达时记录)
	Lines            []OrderLine  // 订单明细(聚合内的子实体)
	Delivery         *Delivery    // 配送记录(仅送货上门)
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OrderLine 订单明细行
// 设计说明:
// 1. UnitPrice记录下单时的单价(历史价格快照)
// 2. 只保存BookID/StoreID，不跨聚合引用对象
// 3. Condition区分新书/二手，同一本书两种品相是两行
type OrderLine struct {
	ID        uint
	OrderID   uint              // 所属订单ID
	BookID    uint              // 图书ID
	StoreID   uint              // 出货书店ID
	Condition catalog.Condition // 品相(new/used)
	Quantity  int               // 购买数量
	UnitPrice int64             // 下单时单价(分)
	Discount  int64             // 行级折扣(分)
	LineTotal int64             // 行小计(分)，= UnitPrice × Quantity − Discount
}

// DeliveryStatus 配送状态
type DeliveryStatus string

const (
	DeliveryPreparing DeliveryStatus = "preparing"  // 备货中
	DeliveryShipped   DeliveryStatus = "shipped"    // 已发出
	DeliveryInTransit DeliveryStatus = "in_transit" // 运输中
	DeliveryDelivered DeliveryStatus = "delivered"  // 已送达
	DeliveryReturned  DeliveryStatus = "returned"   // 已退回
)

// Delivery 配送记录(送货上门订单的子实体)
type Delivery struct {
	ID          uint
	OrderID     uint
	Carrier     string         // 承运商
	TrackingNo  string         // 运单号(全局唯一)
	Status      DeliveryStatus // 配送状态
	ShippedAt   *time.Time     // 发出时间
	DeliveredAt *time.Time     // 实际送达时间
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderParams 创建订单的参数
// 税费/折扣/备注可缺省，零值即"未提供"
type OrderParams struct {
	OrderNo         string
	UserID          uint
	DeliveryType    DeliveryType
	AddressID       uint
	PaymentMethodID uint
	Tax             int64
	Discount        int64
	Notes           string
	Lines           []OrderLine
}

// NewOrder 创建新订单(工厂方法)
// 预计送达时间:到店自取为当前时刻，送货上门为当前时刻+5天
func NewOrder(p OrderParams) *Order {
	now := time.Now()
	o := &Order{
		OrderNo:          p.OrderNo,
		UserID:           p.UserID,
		Tax:              p.Tax,
		Discount:         p.Discount,
		Status:           OrderStatusPending,
		DeliveryType:     p.DeliveryType,
		AddressID:        p.AddressID,
		PaymentMethodID:  p.PaymentMethodID,
		Notes:            p.Notes,
		ExpectedDelivery: now,
		Lines:            p.Lines,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if p.DeliveryType == DeliveryHome {
		o.ExpectedDelivery = now.Add(HomeDeliveryLeadTime)
		o.Delivery = &Delivery{
			Carrier:    defaultCarrier,
			TrackingNo: GenerateTrackingNo(),
			Status:     DeliveryPreparing,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}
	o.Total = o.CalculateTotal()
	return o
}

// CanTransitionTo 检查是否可以转换到目标状态
// 状态机:pending→confirmed→preparing→shipped→delivered，
// 发货前(pending/confirmed/preparing)可取消，终态不可再转
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
		OrderStatusConfirmed: {OrderStatusPreparing, OrderStatusCancelled},
		OrderStatusPreparing: {OrderStatusShipped, OrderStatusCancelled},
		OrderStatusShipped:   {OrderStatusDelivered},
		OrderStatusDelivered: {},
		OrderStatusCancelled: {},
	}

	allowedTargets, exists := transitions[o.Status]
	if !exists {
		return false
	}

	for _, allowed := range allowedTargets {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo 状态转换
// 转换成功同步推进配送记录状态并更新UpdatedAt，
// 送达时记录实际送达时间
func (o *Order) TransitionTo(target OrderStatus) error {
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}
	now := time.Now()
	o.Status = target
	o.UpdatedAt = now

	if target == OrderStatusDelivered {
		o.ActualDelivery = &now
	}

	if o.Delivery != nil {
		switch target {
		case OrderStatusShipped:
			o.Delivery.Status = DeliveryShipped
			o.Delivery.ShippedAt = &now
		case OrderStatusDelivered:
			o.Delivery.Status = DeliveryDelivered
			o.Delivery.DeliveredAt = &now
		case OrderStatusCancelled:
			o.Delivery.Status = DeliveryReturned
		}
		o.Delivery.UpdatedAt = now
	}
	return nil
}

// Confirm 确认订单(领域行为)
func (o *Order) Confirm() error {
	return o.TransitionTo(OrderStatusConfirmed)
}

// Advance 推进到履约链上的下一个状态
func (o *Order) Advance() error {
	next := map[OrderStatus]OrderStatus{
		OrderStatusPending:   OrderStatusConfirmed,
		OrderStatusConfirmed: OrderStatusPreparing,
		OrderStatusPreparing: OrderStatusShipped,
		OrderStatusShipped:   OrderStatusDelivered,
	}
	target, ok := next[o.Status]
	if !ok {
		return ErrInvalidStatusTransition
	}
	return o.TransitionTo(target)
}

// Cancel 取消订单(领域行为)
// 仅发货前允许，取消后库存需回补(由应用层在同事务完成)
func (o *Order) Cancel() error {
	return o.TransitionTo(OrderStatusCancelled)
}

// CalculateTotal 计算订单总金额:各行小计(扣除行级折扣)之和，加税费减订单级折扣
// 用于创建时生成冗余字段，也用于校验明细行小计
func (o *Order) CalculateTotal() int64 {
	var total int64
	for i := range o.Lines {
		line := &o.Lines[i]
		line.LineTotal = line.UnitPrice*int64(line.Quantity) - line.Discount
		total += line.LineTotal
	}
	return total + o.Tax - o.Discount
}

// IsOwnedBy 检查订单是否属于指定用户(防止越权访问他人订单)
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}

// IsCancellable 是否处于可取消状态
func (o *Order) IsCancellable() bool {
	return o.CanTransitionTo(OrderStatusCancelled)
}
