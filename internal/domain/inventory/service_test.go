package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
)

// passthroughTx 直通事务:直接执行fn，不依赖数据库
type passthroughTx struct{}

func (passthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeBookRepo 只实现图书存在性检查
type fakeBookRepo struct {
	catalog.Repository
	books map[uint]*catalog.Book
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*catalog.Book, error) {
	if b, ok := r.books[id]; ok {
		return b, nil
	}
	return nil, catalog.ErrBookNotFound
}

// fakeInventoryRepo 内存版库存仓储，key为(书店,图书)
type fakeInventoryRepo struct {
	Repository
	records map[[2]uint]*StoreInventory
	nextID  uint
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{
		records: make(map[[2]uint]*StoreInventory),
		nextID:  1,
	}
}

func (r *fakeInventoryRepo) Get(ctx context.Context, storeID, bookID uint) (*StoreInventory, error) {
	if inv, ok := r.records[[2]uint{storeID, bookID}]; ok {
		copied := *inv
		return &copied, nil
	}
	return nil, ErrInventoryNotFound
}

func (r *fakeInventoryRepo) Upsert(ctx context.Context, inv *StoreInventory) error {
	if inv.ID == 0 {
		inv.ID = r.nextID
		r.nextID++
	}
	copied := *inv
	r.records[[2]uint{inv.StoreID, inv.BookID}] = &copied
	return nil
}

func newTestInventoryService() (Service, *fakeInventoryRepo) {
	repo := newFakeInventoryRepo()
	bookRepo := &fakeBookRepo{books: map[uint]*catalog.Book{
		10: {ID: 10, Title: "Il Gattopardo"},
	}}
	return NewService(repo, bookRepo, passthroughTx{}), repo
}

func intPtr(v int) *int {
	return &v
}

func TestSetStock(t *testing.T) {
	ctx := context.Background()

	t.Run("首次盘点创建记录", func(t *testing.T) {
		svc, _ := newTestInventoryService()

		inv, err := svc.SetStock(ctx, 1, 10, intPtr(5), intPtr(3))

		require.NoError(t, err)
		assert.Equal(t, 5, inv.CopiesNew)
		assert.Equal(t, 3, inv.CopiesUsed)
		assert.Equal(t, 0, inv.CopiesSold)
	})

	t.Run("首次盘点省略的计数为0", func(t *testing.T) {
		svc, _ := newTestInventoryService()

		inv, err := svc.SetStock(ctx, 1, 10, intPtr(5), nil)

		require.NoError(t, err)
		assert.Equal(t, 5, inv.CopiesNew)
		assert.Equal(t, 0, inv.CopiesUsed)
	})

	t.Run("只盘点新书时二手计数保持原值", func(t *testing.T) {
		svc, repo, key := prepareStocked(t)

		inv, err := svc.SetStock(ctx, 1, 10, intPtr(5), nil)

		require.NoError(t, err)
		assert.Equal(t, 5, inv.CopiesNew)
		assert.Equal(t, 7, inv.CopiesUsed, "未盘点的品相不能被清零")
		assert.Equal(t, 2, inv.CopiesSold, "累计售出数必须保留")
		assert.Equal(t, 7, repo.records[key].CopiesUsed)
	})

	t.Run("只盘点二手时新书计数保持原值", func(t *testing.T) {
		svc, _, _ := prepareStocked(t)

		inv, err := svc.SetStock(ctx, 1, 10, nil, intPtr(1))

		require.NoError(t, err)
		assert.Equal(t, 3, inv.CopiesNew)
		assert.Equal(t, 1, inv.CopiesUsed)
	})

	t.Run("两个计数都省略时库存不变", func(t *testing.T) {
		svc, _, _ := prepareStocked(t)

		inv, err := svc.SetStock(ctx, 1, 10, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, inv.CopiesNew)
		assert.Equal(t, 7, inv.CopiesUsed)
	})

	t.Run("负数计数拒绝", func(t *testing.T) {
		svc, _ := newTestInventoryService()

		_, err := svc.SetStock(ctx, 1, 10, intPtr(-1), nil)
		assert.ErrorIs(t, err, ErrNegativeCopies)
	})

	t.Run("图书不存在", func(t *testing.T) {
		svc, _ := newTestInventoryService()

		_, err := svc.SetStock(ctx, 1, 99, intPtr(5), nil)
		assert.ErrorIs(t, err, catalog.ErrBookNotFound)
	})
}

// prepareStocked 预置1号书店10号图书的库存:新书3本、二手7本、已售2本
func prepareStocked(t *testing.T) (Service, *fakeInventoryRepo, [2]uint) {
	t.Helper()

	svc, repo := newTestInventoryService()
	key := [2]uint{1, 10}
	repo.records[key] = &StoreInventory{
		ID:         1,
		StoreID:    1,
		BookID:     10,
		CopiesNew:  3,
		CopiesUsed: 7,
		CopiesSold: 2,
	}
	repo.nextID = 2
	return svc, repo, key
}
