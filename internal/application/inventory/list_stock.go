package inventory

import (
	"context"

	"github.com/xiebiao/biblioteca/internal/domain/inventory"
)

// ListStockUseCase 库存查询用例
type ListStockUseCase struct {
	inventoryService inventory.Service
}

// NewListStockUseCase 创建库存查询用例
func NewListStockUseCase(inventoryService inventory.Service) *ListStockUseCase {
	return &ListStockUseCase{inventoryService: inventoryService}
}

// ByStore 某书店的全部库存
func (uc *ListStockUseCase) ByStore(ctx context.Context, storeID uint) ([]StockResponse, error) {
	items, err := uc.inventoryService.ListStoreStock(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return toStockResponses(items), nil
}

// ByBook 持有某图书的各书店库存(购书页选店用)
func (uc *ListStockUseCase) ByBook(ctx context.Context, bookID uint) ([]StockResponse, error) {
	items, err := uc.inventoryService.ListBookStock(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return toStockResponses(items), nil
}

// Get 查询(书店,图书)的库存记录
func (uc *ListStockUseCase) Get(ctx context.Context, storeID, bookID uint) (*StockResponse, error) {
	inv, err := uc.inventoryService.GetStock(ctx, storeID, bookID)
	if err != nil {
		return nil, err
	}
	return toStockResponse(inv), nil
}

func toStockResponses(items []*inventory.StoreInventory) []StockResponse {
	list := make([]StockResponse, len(items))
	for i, inv := range items {
		list[i] = *toStockResponse(inv)
	}
	return list
}
