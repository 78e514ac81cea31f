package catalog

import (
	"context"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
)

// AddBookUseCase 新增图书用例
type AddBookUseCase struct {
	bookService catalog.Service
}

// NewAddBookUseCase 创建新增图书用例
func NewAddBookUseCase(bookService catalog.Service) *AddBookUseCase {
	return &AddBookUseCase{bookService: bookService}
}

// AddBookRequest 新增图书请求DTO
type AddBookRequest struct {
	Title       string
	Author      string
	Genre       string
	Year        int
	Pages       int
	PriceNew    int64 // 单位:分
	PriceUsed   int64 // 0表示取新书价的70%
	Description string
	ISBN        string
}

// BookResponse 图书响应DTO
type BookResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	Year        int    `json:"year"`
	Pages       int    `json:"pages"`
	PriceNew    int64  `json:"price_new"`
	PriceUsed   int64  `json:"price_used"`
	Description string `json:"description,omitempty"`
	ISBN        string `json:"isbn,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// Execute 执行新增图书
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*BookResponse, error) {
	book, err := uc.bookService.AddBook(ctx, catalog.AddBookParams{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Year:        req.Year,
		Pages:       req.Pages,
		PriceNew:    req.PriceNew,
		PriceUsed:   req.PriceUsed,
		Description: req.Description,
		ISBN:        req.ISBN,
	})
	if err != nil {
		return nil, err
	}
	return toBookResponse(book), nil
}

// EditBookUseCase 编辑图书用例
// 原地更新:保持图书ID不变，库存/预约/收藏等关联不受影响
type EditBookUseCase struct {
	bookService catalog.Service
}

// NewEditBookUseCase 创建编辑图书用例
func NewEditBookUseCase(bookService catalog.Service) *EditBookUseCase {
	return &EditBookUseCase{bookService: bookService}
}

// EditBookRequest 编辑图书请求DTO(零值字段保持原值)
type EditBookRequest struct {
	BookID      uint
	Title       string
	Author      string
	Genre       string
	Year        int
	Pages       int
	PriceNew    int64
	PriceUsed   int64
	Description string
}

// Execute 执行编辑图书
func (uc *EditBookUseCase) Execute(ctx context.Context, req EditBookRequest) (*BookResponse, error) {
	book, err := uc.bookService.EditBook(ctx, req.BookID, catalog.EditBookParams{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Year:        req.Year,
		Pages:       req.Pages,
		PriceNew:    req.PriceNew,
		PriceUsed:   req.PriceUsed,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}
	return toBookResponse(book), nil
}

// RemoveBookUseCase 删除图书用例
type RemoveBookUseCase struct {
	bookService catalog.Service
}

// NewRemoveBookUseCase 创建删除图书用例
func NewRemoveBookUseCase(bookService catalog.Service) *RemoveBookUseCase {
	return &RemoveBookUseCase{bookService: bookService}
}

// Execute 执行删除图书
func (uc *RemoveBookUseCase) Execute(ctx context.Context, bookID uint) error {
	return uc.bookService.RemoveBook(ctx, bookID)
}

// toBookResponse 领域实体 → 响应DTO
func toBookResponse(b *catalog.Book) *BookResponse {
	return &BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		Year:        b.Year,
		Pages:       b.Pages,
		PriceNew:    b.PriceNew,
		PriceUsed:   b.PriceUsed,
		Description: b.Description,
		ISBN:        b.ISBN,
		CreatedAt:   b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
