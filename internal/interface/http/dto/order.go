package dto

// CreateOrderRequest 下单请求
// 税费/折扣/备注可缺省，缺省为0/空
type CreateOrderRequest struct {
	DeliveryType    string                `json:"delivery_type" binding:"required,oneof=pickup home"`
	AddressID       uint                  `json:"address_id"`
	PaymentMethodID uint                  `json:"payment_method_id"`
	Tax             int64                 `json:"tax" binding:"min=0"`
	Discount        int64                 `json:"discount" binding:"min=0"`
	Notes           string                `json:"notes" binding:"max=500"`
	Lines           []CreateOrderLineItem `json:"lines" binding:"required,min=1,dive"`
}

// CreateOrderLineItem 订单明细项
type CreateOrderLineItem struct {
	BookID    uint   `json:"book_id" binding:"required"`
	StoreID   uint   `json:"store_id" binding:"required"`
	Condition string `json:"condition" binding:"required,oneof=new used"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Discount  int64  `json:"discount" binding:"min=0"`
}

// AdjustStockRequest 库存盘点请求(绝对值覆盖)
// 计数字段可省略:省略的品相保持当前库存数不变
type AdjustStockRequest struct {
	BookID     uint `json:"book_id" binding:"required"`
	CopiesNew  *int `json:"copies_new" binding:"omitempty,min=0"`
	CopiesUsed *int `json:"copies_used" binding:"omitempty,min=0"`
}

// PageQuery 通用分页参数
type PageQuery struct {
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=10" binding:"omitempty,min=1,max=100"`
}
