package catalog

import (
	"context"
	"regexp"
)

// Service 图书目录领域服务接口
// 封装跨实体的业务规则校验，不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// AddBook 新增图书
	// 业务规则:
	// - 书名、作者必填
	// - 新书价格必须>0，页数必须>0
	// - ISBN可选；非空时格式必须合法(10位或13位数字)且不能重复
	AddBook(ctx context.Context, params AddBookParams) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// FindByTitle 根据书名精确查找
	FindByTitle(ctx context.Context, title string) (*Book, error)

	// SearchByAuthor 查找指定作者的所有图书
	SearchByAuthor(ctx context.Context, author string) ([]*Book, error)

	// EditBook 原地编辑图书
	// 保持图书ID不变，库存/预约/收藏等关联行不受影响
	EditBook(ctx context.Context, id uint, params EditBookParams) (*Book, error)

	// RemoveBook 下架并删除图书
	RemoveBook(ctx context.Context, id uint) error

	// ListBooks 分页查询图书列表
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// ListAuthors 所有作者
	ListAuthors(ctx context.Context) ([]string, error)

	// ListGenres 所有体裁
	ListGenres(ctx context.Context) ([]string, error)
}

// AddBookParams 新增图书参数
type AddBookParams struct {
	Title       string
	Author      string
	Genre       string
	Year        int
	Pages       int
	PriceNew    int64 // 单位:分
	PriceUsed   int64 // 单位:分，0表示取新书价的70%
	Description string
	ISBN        string
}

// EditBookParams 编辑图书参数(零值字段保持原值)
type EditBookParams struct {
	Title       string
	Author      string
	Genre       string
	Year        int
	Pages       int
	PriceNew    int64
	PriceUsed   int64
	Description string
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书目录领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddBook 新增图书
func (s *service) AddBook(ctx context.Context, params AddBookParams) (*Book, error) {
	// 1. 必填项校验
	if params.Title == "" {
		return nil, ErrTitleRequired
	}
	if params.Author == "" {
		return nil, ErrAuthorRequired
	}

	// 2. 价格与页数校验
	if params.PriceNew <= 0 {
		return nil, ErrInvalidPrice
	}
	if params.Pages <= 0 {
		return nil, ErrInvalidPages
	}

	// 3. ISBN校验(可选字段)
	if params.ISBN != "" {
		if !isValidISBN(params.ISBN) {
			return nil, ErrInvalidISBN
		}
		existing, err := s.repo.FindByISBN(ctx, params.ISBN)
		if err == nil && existing != nil {
			return nil, ErrISBNDuplicate
		}
		if err != nil && err != ErrBookNotFound {
			return nil, err
		}
	}

	// 4. 创建实体并持久化
	book := NewBook(params.Title, params.Author, params.Genre, params.Year, params.Pages,
		params.PriceNew, params.PriceUsed, params.Description, params.ISBN)

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// FindByTitle 根据书名精确查找
func (s *service) FindByTitle(ctx context.Context, title string) (*Book, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}
	return s.repo.FindByTitle(ctx, title)
}

// SearchByAuthor 查找指定作者的所有图书
func (s *service) SearchByAuthor(ctx context.Context, author string) ([]*Book, error) {
	if author == "" {
		return nil, ErrAuthorRequired
	}
	return s.repo.SearchByAuthor(ctx, author)
}

// EditBook 原地编辑图书
func (s *service) EditBook(ctx context.Context, id uint, params EditBookParams) (*Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	book.UpdateInfo(params.Title, params.Author, params.Genre, params.Year, params.Pages, params.Description)
	if err := book.UpdatePrices(params.PriceNew, params.PriceUsed); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// RemoveBook 删除图书
func (s *service) RemoveBook(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}
	return s.repo.List(ctx, params)
}

// ListAuthors 所有作者
func (s *service) ListAuthors(ctx context.Context) ([]string, error) {
	return s.repo.ListAuthors(ctx)
}

// ListGenres 所有体裁
func (s *service) ListGenres(ctx context.Context) ([]string, error) {
	return s.repo.ListGenres(ctx)
}

// isValidISBN 校验ISBN格式
// 支持ISBN-10和ISBN-13，允许分隔符(978-88-04-58031-4 → 9788804580314)
// 简化实现:只检查位数和是否全为数字(生产环境应校验校验位)
func isValidISBN(isbn string) bool {
	re := regexp.MustCompile(`[^0-9Xx]`)
	clean := re.ReplaceAllString(isbn, "")

	length := len(clean)
	return length == 10 || length == 13
}
