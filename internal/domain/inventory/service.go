package inventory

import (
	"context"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
	"github.com/xiebiao/biblioteca/internal/domain/transaction"
)

// Service 库存领域服务接口
type Service interface {
	// SetStock 设置(书店,图书)的库存数(绝对值覆盖，后台盘点语义)
	// 计数为nil表示该品相未盘点，保持当前值；记录不存在时创建，未提供的计数为0
	SetStock(ctx context.Context, storeID, bookID uint, copiesNew, copiesUsed *int) (*StoreInventory, error)

	// GetStock 查询库存记录
	GetStock(ctx context.Context, storeID, bookID uint) (*StoreInventory, error)

	// ListStoreStock 某书店的全部库存
	ListStoreStock(ctx context.Context, storeID uint) ([]*StoreInventory, error)

	// ListBookStock 持有某图书的各书店库存(购书页选店用)
	ListBookStock(ctx context.Context, bookID uint) ([]*StoreInventory, error)
}

type service struct {
	repo      Repository
	bookRepo  catalog.Repository
	txManager transaction.Manager
}

// NewService 创建库存领域服务
func NewService(repo Repository, bookRepo catalog.Repository, txManager transaction.Manager) Service {
	return &service{
		repo:      repo,
		bookRepo:  bookRepo,
		txManager: txManager,
	}
}

// SetStock 设置库存(绝对值覆盖，nil计数保持原值)
func (s *service) SetStock(ctx context.Context, storeID, bookID uint, copiesNew, copiesUsed *int) (*StoreInventory, error) {
	// 图书必须存在(不存在返回catalog.ErrBookNotFound)
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	var inv *StoreInventory
	err := s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 先取当前记录:省略的计数沿用原值，累计售出数永远保留
		newCount, usedCount := 0, 0
		var id uint
		var sold int
		if existing, err := s.repo.Get(txCtx, storeID, bookID); err == nil && existing != nil {
			id = existing.ID
			sold = existing.CopiesSold
			newCount = existing.CopiesNew
			usedCount = existing.CopiesUsed
		}
		if copiesNew != nil {
			newCount = *copiesNew
		}
		if copiesUsed != nil {
			usedCount = *copiesUsed
		}

		var err error
		inv, err = NewStoreInventory(storeID, bookID, newCount, usedCount)
		if err != nil {
			return err
		}
		inv.ID = id
		inv.CopiesSold = sold
		return s.repo.Upsert(txCtx, inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// GetStock 查询库存记录
func (s *service) GetStock(ctx context.Context, storeID, bookID uint) (*StoreInventory, error) {
	return s.repo.Get(ctx, storeID, bookID)
}

// ListStoreStock 某书店的全部库存
func (s *service) ListStoreStock(ctx context.Context, storeID uint) ([]*StoreInventory, error) {
	return s.repo.ListByStore(ctx, storeID)
}

// ListBookStock 持有某图书的各书店库存
func (s *service) ListBookStock(ctx context.Context, bookID uint) ([]*StoreInventory, error) {
	return s.repo.ListByBook(ctx, bookID)
}
