package inventory

import (
	"time"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
)

// StoreInventory 书店库存实体
// 每条记录对应(书店,图书)的唯一组合，三个计数分别跟踪新书、二手书与累计售出
// 不变量:CopiesNew、CopiesUsed、CopiesSold任何时刻都不为负
type StoreInventory struct {
	ID         uint
	StoreID    uint
	BookID     uint
	CopiesNew  int
	CopiesUsed int
	CopiesSold int
	UpdatedAt  time.Time
}

// NewStoreInventory 创建库存记录
func NewStoreInventory(storeID, bookID uint, copiesNew, copiesUsed int) (*StoreInventory, error) {
	if copiesNew < 0 || copiesUsed < 0 {
		return nil, ErrNegativeCopies
	}
	return &StoreInventory{
		StoreID:    storeID,
		BookID:     bookID,
		CopiesNew:  copiesNew,
		CopiesUsed: copiesUsed,
		CopiesSold: 0,
	}, nil
}

// SetCopies 绝对值覆盖库存数(后台盘点语义，不是增量调整)
func (inv *StoreInventory) SetCopies(copiesNew, copiesUsed int) error {
	if copiesNew < 0 || copiesUsed < 0 {
		return ErrNegativeCopies
	}
	inv.CopiesNew = copiesNew
	inv.CopiesUsed = copiesUsed
	return nil
}

// CopiesFor 按品相返回当前可售数量
func (inv *StoreInventory) CopiesFor(cond catalog.Condition) int {
	if cond == catalog.ConditionUsed {
		return inv.CopiesUsed
	}
	return inv.CopiesNew
}

// Sell 按品相扣减库存并累加售出数
// 库存不足时返回ErrInsufficientStock，实体不变
func (inv *StoreInventory) Sell(cond catalog.Condition, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if inv.CopiesFor(cond) < quantity {
		return ErrInsufficientStock
	}
	if cond == catalog.ConditionUsed {
		inv.CopiesUsed -= quantity
	} else {
		inv.CopiesNew -= quantity
	}
	inv.CopiesSold += quantity
	return nil
}

// Restore 订单取消时回补库存
func (inv *StoreInventory) Restore(cond catalog.Condition, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if inv.CopiesSold < quantity {
		return ErrInvalidQuantity
	}
	if cond == catalog.ConditionUsed {
		inv.CopiesUsed += quantity
	} else {
		inv.CopiesNew += quantity
	}
	inv.CopiesSold -= quantity
	return nil
}
