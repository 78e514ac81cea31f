package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// bookRepository 图书目录仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/catalog/repository.go定义的接口
// 2. 作者/体裁按名称归一化到authors/genres表，查询时JOIN取回名称
// 3. Create同时把图书写入可借集合(新书默认可借)
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书目录仓储
func NewBookRepository(db *gorm.DB) catalog.Repository {
	return &bookRepository{db: db}
}

// bookRow JOIN查询的行结构(图书+作者名+体裁名)
type bookRow struct {
	BookModel
	AuthorName string
	GenreName  string
}

// bookQuery 带JOIN的基础查询
func (r *bookRepository) bookQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&BookModel{}).
		Select("books.*, authors.name AS author_name, genres.name AS genre_name").
		Joins("JOIN authors ON authors.id = books.author_id").
		Joins("JOIN genres ON genres.id = books.genre_id")
}

// Create 创建图书
// 作者/体裁不存在时一并创建；同事务写入可借集合
func (r *bookRepository) Create(ctx context.Context, b *catalog.Book) error {
	db := getDB(ctx, r.db)

	return db.Transaction(func(tx *gorm.DB) error {
		authorID, err := findOrCreateNamed(tx, "authors", b.Author)
		if err != nil {
			return err
		}
		genreID, err := findOrCreateNamed(tx, "genres", b.Genre)
		if err != nil {
			return err
		}

		model := &BookModel{
			Title:       b.Title,
			AuthorID:    authorID,
			GenreID:     genreID,
			Year:        b.Year,
			Pages:       b.Pages,
			PriceNew:    b.PriceNew,
			PriceUsed:   b.PriceUsed,
			Description: b.Description,
		}
		if b.ISBN != "" {
			isbn := b.ISBN
			model.ISBN = &isbn
		}

		if err := tx.Create(model).Error; err != nil {
			if isDuplicateError(err) {
				return catalog.ErrISBNDuplicate
			}
			return apperrors.Wrap(err, "创建图书失败")
		}

		// 新书默认进入可借集合
		if err := tx.Create(&AvailableBookModel{BookID: model.ID}).Error; err != nil {
			return apperrors.Wrap(err, "初始化可借状态失败")
		}

		b.ID = model.ID
		b.CreatedAt = model.CreatedAt
		b.UpdatedAt = model.UpdatedAt
		return nil
	})
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*catalog.Book, error) {
	var row bookRow
	err := r.bookQuery(getDB(ctx, r.db)).Where("books.id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&row), nil
}

// FindByTitle 根据书名精确查找
func (r *bookRepository) FindByTitle(ctx context.Context, title string) (*catalog.Book, error) {
	var row bookRow
	err := r.bookQuery(getDB(ctx, r.db)).Where("books.title = ?", title).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&row), nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*catalog.Book, error) {
	var row bookRow
	err := r.bookQuery(getDB(ctx, r.db)).Where("books.isbn = ?", isbn).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&row), nil
}

// SearchByAuthor 查找指定作者的所有图书
func (r *bookRepository) SearchByAuthor(ctx context.Context, author string) ([]*catalog.Book, error) {
	var rows []bookRow
	err := r.bookQuery(getDB(ctx, r.db)).
		Where("authors.name = ?", author).
		Order("books.title ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询作者图书失败")
	}
	return toBookEntities(rows), nil
}

// Update 原地更新图书信息
// 保持ID与外键关联不变，作者/体裁变更时重新归一化
func (r *bookRepository) Update(ctx context.Context, b *catalog.Book) error {
	db := getDB(ctx, r.db)

	return db.Transaction(func(tx *gorm.DB) error {
		authorID, err := findOrCreateNamed(tx, "authors", b.Author)
		if err != nil {
			return err
		}
		genreID, err := findOrCreateNamed(tx, "genres", b.Genre)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"title":       b.Title,
			"author_id":   authorID,
			"genre_id":    genreID,
			"year":        b.Year,
			"pages":       b.Pages,
			"price_new":   b.PriceNew,
			"price_used":  b.PriceUsed,
			"description": b.Description,
		}
		result := tx.Model(&BookModel{}).Where("id = ?", b.ID).Updates(updates)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "更新图书失败")
		}
		if result.RowsAffected == 0 {
			return catalog.ErrBookNotFound
		}
		return nil
	})
}

// Delete 删除图书(软删除)
// 同时清掉可用性账本中的行
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)

	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&BookModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除图书失败")
		}
		if result.RowsAffected == 0 {
			return catalog.ErrBookNotFound
		}

		if err := tx.Where("book_id = ?", id).Delete(&AvailableBookModel{}).Error; err != nil {
			return apperrors.Wrap(err, "清理可借状态失败")
		}
		if err := tx.Where("book_id = ?", id).Delete(&LoanedBookModel{}).Error; err != nil {
			return apperrors.Wrap(err, "清理借出状态失败")
		}
		return nil
	})
}

// List 分页查询图书列表
func (r *bookRepository) List(ctx context.Context, params catalog.ListParams) ([]*catalog.Book, int64, error) {
	var rows []bookRow
	var total int64

	query := r.bookQuery(getDB(ctx, r.db))

	// 关键词搜索(标题、作者、体裁)
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("books.title LIKE ? OR authors.name LIKE ? OR genres.name LIKE ?",
			keyword, keyword, keyword)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	switch params.SortBy {
	case "price_asc":
		query = query.Order("books.price_new ASC")
	case "price_desc":
		query = query.Order("books.price_new DESC")
	case "year_desc":
		query = query.Order("books.year DESC")
	default:
		query = query.Order("books.created_at DESC")
	}

	offset := (params.Page - 1) * params.PageSize
	query = query.Limit(params.PageSize).Offset(offset)

	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	return toBookEntities(rows), total, nil
}

// ListAuthors 所有作者名称(按字母序)
func (r *bookRepository) ListAuthors(ctx context.Context) ([]string, error) {
	var names []string
	err := getDB(ctx, r.db).Model(&AuthorModel{}).
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询作者列表失败")
	}
	return names, nil
}

// ListGenres 所有体裁名称(按字母序)
func (r *bookRepository) ListGenres(ctx context.Context) ([]string, error) {
	var names []string
	err := getDB(ctx, r.db).Model(&GenreModel{}).
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询体裁列表失败")
	}
	return names, nil
}

// =========================================
// 辅助函数
// =========================================

// findOrCreateNamed 按名称查找authors/genres行，不存在则创建，返回ID
// 并发下唯一索引冲突时重查一次
func findOrCreateNamed(tx *gorm.DB, table, name string) (uint, error) {
	var id uint
	err := tx.Table(table).Where("name = ?", name).Pluck("id", &id).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "查询"+table+"失败")
	}
	if id != 0 {
		return id, nil
	}

	if err := tx.Table(table).Create(map[string]interface{}{"name": name}).Error; err != nil {
		if isDuplicateError(err) {
			if err := tx.Table(table).Where("name = ?", name).Pluck("id", &id).Error; err != nil {
				return 0, apperrors.Wrap(err, "查询"+table+"失败")
			}
			return id, nil
		}
		return 0, apperrors.Wrap(err, "创建"+table+"记录失败")
	}

	if err := tx.Table(table).Where("name = ?", name).Pluck("id", &id).Error; err != nil {
		return 0, apperrors.Wrap(err, "查询"+table+"失败")
	}
	return id, nil
}

// toBookEntity JOIN行 → 领域实体
func toBookEntity(row *bookRow) *catalog.Book {
	isbn := ""
	if row.ISBN != nil {
		isbn = *row.ISBN
	}
	return &catalog.Book{
		ID:          row.BookModel.ID,
		Title:       row.Title,
		Author:      row.AuthorName,
		Genre:       row.GenreName,
		Year:        row.Year,
		Pages:       row.Pages,
		PriceNew:    row.PriceNew,
		PriceUsed:   row.PriceUsed,
		Description: row.Description,
		ISBN:        isbn,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func toBookEntities(rows []bookRow) []*catalog.Book {
	books := make([]*catalog.Book, len(rows))
	for i := range rows {
		books[i] = toBookEntity(&rows[i])
	}
	return books
}
