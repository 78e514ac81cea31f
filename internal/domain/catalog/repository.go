package catalog

import (
	"context"
)

// Repository 图书目录仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口，infrastructure层实现
// 2. 作者/体裁按名称归一化存储，仓储负责"不存在则创建"
// 3. 便于Mock测试，不依赖具体数据库实现
type Repository interface {
	// Create 创建图书(作者/体裁不存在时一并创建)
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByTitle 根据书名精确查找图书
	FindByTitle(ctx context.Context, title string) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// SearchByAuthor 查找指定作者的所有图书
	SearchByAuthor(ctx context.Context, author string) ([]*Book, error)

	// Update 原地更新图书信息(保持ID与外键关联不变)
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除)
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// ListAuthors 返回所有作者名称(按字母序)
	ListAuthors(ctx context.Context) ([]string, error)

	// ListGenres 返回所有体裁名称(按字母序)
	ListGenres(ctx context.Context) ([]string, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(匹配标题、作者、体裁)
	SortBy   string // 排序字段(price_asc, price_desc, year_desc, created_at_desc)
}
