package catalog

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书目录聚合的根实体
// 2. 价格使用int64存储"分"为单位(1欧元=100分，避免浮点数精度问题)
// 3. 新书价与二手价分开存储，销售时按条件(新/二手)取价
// 4. ISBN可选；非空时全局唯一(数据库层保证唯一性)
// 5. Author/Genre是引用数据，实体上冗余名称便于展示，ID由仓储维护
type Book struct {
	ID          uint
	Title       string // 书名
	Author      string // 作者(引用数据，按名称归一)
	Genre       string // 体裁(引用数据，按名称归一)
	Year        int    // 出版年份
	Pages       int    // 页数
	PriceNew    int64  // 新书价格(单位:分)
	PriceUsed   int64  // 二手价格(单位:分)
	Description string // 图书描述
	ISBN        string // ISBN号，可为空
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Condition 图书成色(销售用)
type Condition string

const (
	ConditionNew  Condition = "new"  // 全新
	ConditionUsed Condition = "used" // 二手
)

// Valid 校验成色取值
func (c Condition) Valid() bool {
	return c == ConditionNew || c == ConditionUsed
}

// NewBook 创建新图书(工厂方法)
// 二手价未指定(<=0)时默认为新书价的70%
func NewBook(title, author, genre string, year, pages int, priceNew, priceUsed int64, description, isbn string) *Book {
	if priceUsed <= 0 {
		priceUsed = priceNew * 70 / 100
	}
	now := time.Now()
	return &Book{
		Title:       title,
		Author:      author,
		Genre:       genre,
		Year:        year,
		Pages:       pages,
		PriceNew:    priceNew,
		PriceUsed:   priceUsed,
		Description: description,
		ISBN:        isbn,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// PriceFor 按成色取单价
func (b *Book) PriceFor(cond Condition) int64 {
	if cond == ConditionUsed {
		return b.PriceUsed
	}
	return b.PriceNew
}

// UpdateInfo 更新图书信息(领域行为)
// 空值表示保持原值；图书保持同一ID，关联行(库存/预约/收藏)不受影响
func (b *Book) UpdateInfo(title, author, genre string, year, pages int, description string) {
	if title != "" {
		b.Title = title
	}
	if author != "" {
		b.Author = author
	}
	if genre != "" {
		b.Genre = genre
	}
	if year != 0 {
		b.Year = year
	}
	if pages != 0 {
		b.Pages = pages
	}
	if description != "" {
		b.Description = description
	}
	b.UpdatedAt = time.Now()
}

// UpdatePrices 更新价格(领域行为)
// 业务规则:价格必须>0；传0表示保持原值
func (b *Book) UpdatePrices(priceNew, priceUsed int64) error {
	if priceNew < 0 || priceUsed < 0 {
		return ErrInvalidPrice
	}
	if priceNew > 0 {
		b.PriceNew = priceNew
	}
	if priceUsed > 0 {
		b.PriceUsed = priceUsed
	}
	b.UpdatedAt = time.Now()
	return nil
}
