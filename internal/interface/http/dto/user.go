package dto

// RegisterRequest HTTP层注册请求
// 说明:HTTP层的DTO包含binding校验tag，应用层DTO是纯数据结构
type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Username      string `json:"username" binding:"required,min=2,max=50"`
	Password      string `json:"password" binding:"required,min=8,max=20"`
	Role          string `json:"role" binding:"omitempty,oneof=member librarian bookseller"`
	AffiliationID uint   `json:"affiliation_id"`
}

// LoginRequest 登录请求(identifier支持邮箱或用户名)
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// AddAddressRequest 新增收货地址请求
type AddAddressRequest struct {
	Recipient string `json:"recipient" binding:"required"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	PostCode  string `json:"post_code"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"is_default"`
}

// AddPaymentRequest 新增支付方式请求
// 明文卡号只在请求中出现，入库前脱敏为后4位
type AddPaymentRequest struct {
	Kind       string `json:"kind" binding:"required,oneof=credit debit prepaid"`
	Holder     string `json:"holder" binding:"required"`
	CardNumber string `json:"card_number" binding:"required"`
	ExpiresAt  string `json:"expires_at" binding:"required"`
	IsDefault  bool   `json:"is_default"`
}

// SubmitRequestRequest 提交馆员工单请求
type SubmitRequestRequest struct {
	Kind     string `json:"kind" binding:"omitempty,oneof=reservation waitlist return other"`
	Priority string `json:"priority" binding:"omitempty,oneof=low normal high"`
	Subject  string `json:"subject" binding:"required"`
	Body     string `json:"body"`
}

// MoveRequestRequest 推进工单状态请求
type MoveRequestRequest struct {
	Status string `json:"status" binding:"required,oneof=in_progress resolved closed"`
}
