package catalog

import (
	"context"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 支持分页、关键词搜索、排序
// 2. 列表项不返回description字段(减少数据传输量)
type ListBooksUseCase struct {
	bookService catalog.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService catalog.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(标题、作者、体裁)
	SortBy   string // 排序方式(price_asc, price_desc, year_desc, created_at_desc)
}

// BookListItem 列表项DTO(不含description)
type BookListItem struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Genre     string `json:"genre"`
	Year      int    `json:"year"`
	PriceNew  int64  `json:"price_new"`
	PriceUsed int64  `json:"price_used"`
	ISBN      string `json:"isbn,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	List       []BookListItem `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	books, total, err := uc.bookService.ListBooks(ctx, catalog.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		SortBy:   req.SortBy,
	})
	if err != nil {
		return nil, err
	}

	list := make([]BookListItem, len(books))
	for i, b := range books {
		list[i] = BookListItem{
			ID:        b.ID,
			Title:     b.Title,
			Author:    b.Author,
			Genre:     b.Genre,
			Year:      b.Year,
			PriceNew:  b.PriceNew,
			PriceUsed: b.PriceUsed,
			ISBN:      b.ISBN,
			CreatedAt: b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		totalPages++
	}

	return &ListBooksResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

// SearchBooksUseCase 图书检索用例(按书名精确/按作者)
type SearchBooksUseCase struct {
	bookService catalog.Service
}

// NewSearchBooksUseCase 创建检索用例
func NewSearchBooksUseCase(bookService catalog.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookService: bookService}
}

// FindByTitle 按书名精确查找
func (uc *SearchBooksUseCase) FindByTitle(ctx context.Context, title string) (*BookResponse, error) {
	book, err := uc.bookService.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return toBookResponse(book), nil
}

// SearchByAuthor 查找指定作者的所有图书
func (uc *SearchBooksUseCase) SearchByAuthor(ctx context.Context, author string) ([]BookListItem, error) {
	books, err := uc.bookService.SearchByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}

	list := make([]BookListItem, len(books))
	for i, b := range books {
		list[i] = BookListItem{
			ID:        b.ID,
			Title:     b.Title,
			Author:    b.Author,
			Genre:     b.Genre,
			Year:      b.Year,
			PriceNew:  b.PriceNew,
			PriceUsed: b.PriceUsed,
			ISBN:      b.ISBN,
			CreatedAt: b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return list, nil
}

// ListAuthors 所有作者
func (uc *SearchBooksUseCase) ListAuthors(ctx context.Context) ([]string, error) {
	return uc.bookService.ListAuthors(ctx)
}

// ListGenres 所有体裁
func (uc *SearchBooksUseCase) ListGenres(ctx context.Context) ([]string, error) {
	return uc.bookService.ListGenres(ctx)
}
