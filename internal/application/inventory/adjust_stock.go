package inventory

import (
	"context"

	"github.com/xiebiao/biblioteca/internal/domain/inventory"
)

// AdjustStockUseCase 库存盘点用例(书店人员操作)
// 绝对值覆盖语义:传入的是盘点后的在售数量，不是增量
// 计数为nil表示该品相未盘点，保持原值
type AdjustStockUseCase struct {
	inventoryService inventory.Service
}

// NewAdjustStockUseCase 创建盘点用例
func NewAdjustStockUseCase(inventoryService inventory.Service) *AdjustStockUseCase {
	return &AdjustStockUseCase{inventoryService: inventoryService}
}

// AdjustStockRequest 盘点请求DTO
type AdjustStockRequest struct {
	StoreID    uint
	BookID     uint
	CopiesNew  *int // nil表示不改动新书计数
	CopiesUsed *int // nil表示不改动二手计数
}

// StockResponse 库存响应DTO
type StockResponse struct {
	StoreID    uint   `json:"store_id"`
	BookID     uint   `json:"book_id"`
	CopiesNew  int    `json:"copies_new"`
	CopiesUsed int    `json:"copies_used"`
	CopiesSold int    `json:"copies_sold"`
	UpdatedAt  string `json:"updated_at"`
}

// Execute 执行盘点
func (uc *AdjustStockUseCase) Execute(ctx context.Context, req AdjustStockRequest) (*StockResponse, error) {
	inv, err := uc.inventoryService.SetStock(ctx, req.StoreID, req.BookID, req.CopiesNew, req.CopiesUsed)
	if err != nil {
		return nil, err
	}
	return toStockResponse(inv), nil
}

func toStockResponse(inv *inventory.StoreInventory) *StockResponse {
	return &StockResponse{
		StoreID:    inv.StoreID,
		BookID:     inv.BookID,
		CopiesNew:  inv.CopiesNew,
		CopiesUsed: inv.CopiesUsed,
		CopiesSold: inv.CopiesSold,
		UpdatedAt:  inv.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
