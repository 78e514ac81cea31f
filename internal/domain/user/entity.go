package user

import (
	"time"
)

// Role 用户角色
type Role string

const (
	RoleMember     Role = "member"     // 普通读者
	RoleLibrarian  Role = "librarian"  // 图书馆员
	RoleBookseller Role = "bookseller" // 书店人员
)

// Valid 校验角色取值
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleLibrarian || r == RoleBookseller
}

// User 用户实体(聚合根)
// 设计说明:
// 1. 邮箱与用户名都有UNIQUE索引，唯一性由数据库保证
// 2. 密码bcrypt哈希存储，不暴露明文
// 3. AffiliationID:馆员指向所属图书馆，书店人员指向所属书店，读者为0
// 4. 领域实体不带GORM tag(infrastructure层的模型负责映射)
type User struct {
	ID            uint
	Email         string
	Username      string
	Password      string // bcrypt哈希值
	Role          Role
	AffiliationID uint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser 创建新用户(工厂方法)
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, username, hashedPassword string, role Role, affiliationID uint) *User {
	now := time.Now()
	return &User{
		Email:         email,
		Username:      username,
		Password:      hashedPassword,
		Role:          role,
		AffiliationID: affiliationID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsStaff 馆员或书店人员
func (u *User) IsStaff() bool {
	return u.Role == RoleLibrarian || u.Role == RoleBookseller
}

// Address 收货地址
type Address struct {
	ID        uint
	UserID    uint
	Recipient string // 收件人
	Street    string
	City      string
	PostCode  string
	Phone     string
	IsDefault bool
	CreatedAt time.Time
}

// PaymentMethod 支付方式
// 卡号脱敏存储:只保留后4位，其余在入库前丢弃
type PaymentMethod struct {
	ID        uint
	UserID    uint
	Kind      string // 卡类型(credit/debit/prepaid)
	Holder    string // 持卡人
	Last4     string // 卡号后4位
	ExpiresAt string // 有效期(MM/YY)
	IsDefault bool
	CreatedAt time.Time
}

// MaskedNumber 展示用的脱敏卡号
func (p *PaymentMethod) MaskedNumber() string {
	return "**** **** **** " + p.Last4
}

// Favorite 收藏记录
// (用户,图书)组合有唯一索引
type Favorite struct {
	ID        uint
	UserID    uint
	BookID    uint
	CreatedAt time.Time
}
