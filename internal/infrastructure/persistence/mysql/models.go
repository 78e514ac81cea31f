package mysql

import (
	"time"

	"gorm.io/gorm"
)

// 本文件定义全部GORM数据模型
// 设计说明:
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain层的实体不依赖GORM，Repository负责两者之间的转换
// 3. 唯一性约束(邮箱、用户名、ISBN、(书店,图书)、(用户,图书)收藏等)由数据库索引保证

// UserModel GORM用户模型
type UserModel struct {
	ID            uint           `gorm:"primaryKey"`
	Email         string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Username      string         `gorm:"uniqueIndex;size:50;not null;comment:用户名"`
	Password      string         `gorm:"size:255;not null;comment:密码(bcrypt加密)"`
	Role          string         `gorm:"index;size:20;not null;default:member;comment:角色"`
	AffiliationID uint           `gorm:"default:0;comment:从属单位ID(馆员=图书馆,书店人员=书店)"`
	CreatedAt     time.Time      `gorm:"comment:创建时间"`
	UpdatedAt     time.Time      `gorm:"comment:更新时间"`
	DeletedAt     gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (UserModel) TableName() string {
	return "users"
}

// AddressModel 收货地址模型
type AddressModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null;comment:用户ID"`
	Recipient string    `gorm:"size:100;not null;comment:收件人"`
	Street    string    `gorm:"size:200;not null;comment:街道"`
	City      string    `gorm:"size:100;not null;comment:城市"`
	PostCode  string    `gorm:"size:20;comment:邮编"`
	Phone     string    `gorm:"size:30;comment:电话"`
	IsDefault bool      `gorm:"default:false;comment:默认地址"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

func (AddressModel) TableName() string {
	return "addresses"
}

// PaymentMethodModel 支付方式模型(卡号只存后4位)
type PaymentMethodModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null;comment:用户ID"`
	Kind      string    `gorm:"size:20;not null;comment:卡类型"`
	Holder    string    `gorm:"size:100;not null;comment:持卡人"`
	Last4     string    `gorm:"size:4;not null;comment:卡号后4位"`
	ExpiresAt string    `gorm:"size:5;not null;comment:有效期(MM/YY)"`
	IsDefault bool      `gorm:"default:false;comment:默认支付方式"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

func (PaymentMethodModel) TableName() string {
	return "payment_methods"
}

// FavoriteModel 收藏模型
// (用户,图书)组合唯一索引:数据库层防止重复收藏
type FavoriteModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_fav_user_book;not null;comment:用户ID"`
	BookID    uint      `gorm:"uniqueIndex:idx_fav_user_book;index;not null;comment:图书ID"`
	CreatedAt time.Time `gorm:"index;comment:收藏时间"`
}

func (FavoriteModel) TableName() string {
	return "favorites"
}

// CityModel 城市模型(参照数据)
type CityModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:100;not null;comment:城市名"`
}

func (CityModel) TableName() string {
	return "cities"
}

// LibraryModel 图书馆模型(参照数据)
type LibraryModel struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"size:200;not null;comment:名称"`
	CityID  uint   `gorm:"index;not null;comment:城市ID"`
	Address string `gorm:"size:200;comment:地址"`
}

func (LibraryModel) TableName() string {
	return "libraries"
}

// StoreModel 书店模型(参照数据)
type StoreModel struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"size:200;not null;comment:名称"`
	CityID  uint   `gorm:"index;not null;comment:城市ID"`
	Address string `gorm:"size:200;comment:地址"`
}

func (StoreModel) TableName() string {
	return "stores"
}

// AuthorModel 作者模型(按名称归一化)
type AuthorModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:100;not null;comment:作者名"`
}

func (AuthorModel) TableName() string {
	return "authors"
}

// GenreModel 体裁模型(按名称归一化)
type GenreModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:100;not null;comment:体裁名"`
}

func (GenreModel) TableName() string {
	return "genres"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格int64存储"分"为单位(避免浮点数精度问题)
// 2. ISBN可空，非空时唯一
// 3. 作者/体裁存外键，名称在authors/genres表归一化
type BookModel struct {
	ID          uint           `gorm:"primaryKey"`
	Title       string         `gorm:"index:idx_search;size:200;not null;comment:书名"`
	AuthorID    uint           `gorm:"index;not null;comment:作者ID"`
	GenreID     uint           `gorm:"index;not null;comment:体裁ID"`
	Year        int            `gorm:"comment:出版年份"`
	Pages       int            `gorm:"not null;comment:页数"`
	PriceNew    int64          `gorm:"index:idx_list;not null;comment:新书价(分)"`
	PriceUsed   int64          `gorm:"not null;comment:二手价(分)"`
	Description string         `gorm:"type:text;comment:图书描述"`
	ISBN        *string        `gorm:"uniqueIndex;size:20;comment:ISBN号(可空)"`
	CreatedAt   time.Time      `gorm:"index:idx_list;comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (BookModel) TableName() string {
	return "books"
}

// AvailableBookModel 可借集合
// 可用性账本的一半:book_id唯一，行存在即"可借"
type AvailableBookModel struct {
	ID     uint `gorm:"primaryKey"`
	BookID uint `gorm:"uniqueIndex;not null;comment:图书ID"`
}

func (AvailableBookModel) TableName() string {
	return "available_books"
}

// LoanedBookModel 已借出集合
// 可用性账本的另一半:与available_books互斥
type LoanedBookModel struct {
	ID       uint      `gorm:"primaryKey"`
	BookID   uint      `gorm:"uniqueIndex;not null;comment:图书ID"`
	LoanedAt time.Time `gorm:"comment:借出时间"`
}

func (LoanedBookModel) TableName() string {
	return "loaned_books"
}

// ReservationModel 预约模型
type ReservationModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index:idx_resv_user_book;not null;comment:用户ID"`
	BookID    uint      `gorm:"index:idx_resv_user_book;index;not null;comment:图书ID"`
	Status    string    `gorm:"index;size:20;not null;default:active;comment:状态"`
	ExpiresAt time.Time `gorm:"index;not null;comment:到期时间"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (ReservationModel) TableName() string {
	return "reservations"
}

// WaitlistModel 等待队列模型
// Position是同一图书active条目中1..N的稠密排名
type WaitlistModel struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index:idx_wait_user_book;not null;comment:用户ID"`
	BookID      uint      `gorm:"index:idx_wait_user_book;index;not null;comment:图书ID"`
	Position    int       `gorm:"not null;comment:排队位次"`
	Status      string    `gorm:"index;size:20;not null;default:active;comment:状态"`
	RequestedAt time.Time `gorm:"comment:入队时间"`
}

func (WaitlistModel) TableName() string {
	return "waitlist_entries"
}

// InventoryModel 书店库存模型
// (书店,图书)组合唯一索引，计数列配合条件UPDATE防止负库存
type InventoryModel struct {
	ID         uint      `gorm:"primaryKey"`
	StoreID    uint      `gorm:"uniqueIndex:idx_inv_store_book;not null;comment:书店ID"`
	BookID     uint      `gorm:"uniqueIndex:idx_inv_store_book;index;not null;comment:图书ID"`
	CopiesNew  int       `gorm:"not null;default:0;comment:新书在售数"`
	CopiesUsed int       `gorm:"not null;default:0;comment:二手在售数"`
	CopiesSold int       `gorm:"not null;default:0;comment:累计售出数"`
	UpdatedAt  time.Time `gorm:"comment:更新时间"`
}

func (InventoryModel) TableName() string {
	return "store_inventories"
}

// OrderModel GORM订单模型
type OrderModel struct {
	ID               uint             `gorm:"primaryKey"`
	OrderNo          string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID           uint             `gorm:"index;not null;comment:买家用户ID"`
	Total            int64            `gorm:"not null;comment:订单总金额(分)"`
	Tax              int64            `gorm:"not null;default:0;comment:税费(分)"`
	Discount         int64            `gorm:"not null;default:0;comment:订单级折扣(分)"`
	Status           int              `gorm:"index;type:tinyint;default:1;comment:订单状态(1待确认2已确认3备货中4已发出5已送达6已取消)"`
	DeliveryType     string           `gorm:"size:10;not null;comment:履约方式(pickup/home)"`
	AddressID        uint             `gorm:"default:0;comment:收货地址ID(仅送货上门)"`
	PaymentMethodID  uint             `gorm:"default:0;comment:支付方式ID(0表示到店支付)"`
	Notes            string           `gorm:"size:500;comment:买家备注"`
	ExpectedDelivery time.Time        `gorm:"comment:预计送达/可取时间"`
	ActualDelivery   *time.Time       `gorm:"comment:实际送达/取书时间"`
	Lines            []OrderLineModel `gorm:"foreignKey:OrderID"`
	CreatedAt        time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt        time.Time        `gorm:"comment:更新时间"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel 订单明细模型(下单时的价格快照)
type OrderLineModel struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   uint   `gorm:"index;not null;comment:订单ID"`
	BookID    uint   `gorm:"index;not null;comment:图书ID"`
	StoreID   uint   `gorm:"index;not null;comment:出货书店ID"`
	Condition string `gorm:"size:10;not null;comment:品相(new/used)"`
	Quantity  int    `gorm:"not null;comment:购买数量"`
	UnitPrice int64  `gorm:"not null;comment:下单时单价(分)"`
	Discount  int64  `gorm:"not null;default:0;comment:行级折扣(分)"`
	LineTotal int64  `gorm:"not null;comment:行小计(分)"`
}

func (OrderLineModel) TableName() string {
	return "order_lines"
}

// DeliveryModel 配送记录模型(仅送货上门订单)
type DeliveryModel struct {
	ID          uint       `gorm:"primaryKey"`
	OrderID     uint       `gorm:"uniqueIndex;not null;comment:订单ID"`
	Carrier     string     `gorm:"size:50;not null;comment:承运商"`
	TrackingNo  string     `gorm:"uniqueIndex;size:32;not null;comment:运单号"`
	Status      string     `gorm:"size:20;not null;default:preparing;comment:配送状态"`
	ShippedAt   *time.Time `gorm:"comment:发出时间"`
	DeliveredAt *time.Time `gorm:"comment:实际送达时间"`
	CreatedAt   time.Time  `gorm:"comment:创建时间"`
	UpdatedAt   time.Time  `gorm:"comment:更新时间"`
}

func (DeliveryModel) TableName() string {
	return "deliveries"
}

// NotificationModel 通知模型(追加写入)
type NotificationModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null;comment:用户ID"`
	Message   string    `gorm:"size:500;not null;comment:通知内容"`
	Category  string    `gorm:"size:20;not null;default:general;comment:通知类别"`
	Read      bool      `gorm:"index;default:false;comment:已读标志"`
	CreatedAt time.Time `gorm:"index;comment:创建时间"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

// ReviewModel 书评模型
type ReviewModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null;comment:用户ID"`
	BookID    uint      `gorm:"index;not null;comment:图书ID"`
	OrderID   uint      `gorm:"index;not null;comment:购买订单ID"`
	Rating    int       `gorm:"type:tinyint;not null;comment:评分(1-5)"`
	Comment   string    `gorm:"type:text;comment:评论正文"`
	Helpful   int       `gorm:"not null;default:0;comment:有用票数"`
	Unhelpful int       `gorm:"not null;default:0;comment:无用票数"`
	Hidden    bool      `gorm:"index;default:false;comment:隐藏标志"`
	CreatedAt time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

// ReviewVoteModel 书评投票模型
// (书评,用户)组合唯一索引:数据库层保证一人一票
type ReviewVoteModel struct {
	ID        uint      `gorm:"primaryKey"`
	ReviewID  uint      `gorm:"uniqueIndex:idx_vote_review_user;not null;comment:书评ID"`
	UserID    uint      `gorm:"uniqueIndex:idx_vote_review_user;not null;comment:用户ID"`
	Kind      string    `gorm:"size:10;not null;comment:投票类型(helpful/unhelpful)"`
	CreatedAt time.Time `gorm:"comment:投票时间"`
}

func (ReviewVoteModel) TableName() string {
	return "review_votes"
}

// LibrarianRequestModel 馆员工单模型
type LibrarianRequestModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null;comment:发起人ID"`
	Kind      string    `gorm:"size:20;not null;comment:类型"`
	Priority  string    `gorm:"size:10;not null;default:normal;comment:优先级"`
	Subject   string    `gorm:"size:200;not null;comment:标题"`
	Body      string    `gorm:"type:text;comment:正文"`
	Status    string    `gorm:"index;size:20;not null;default:open;comment:状态"`
	CreatedAt time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (LibrarianRequestModel) TableName() string {
	return "librarian_requests"
}
