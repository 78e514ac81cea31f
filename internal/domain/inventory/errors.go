package inventory

import (
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// 库存领域错误定义
var (
	// ErrInventoryNotFound 库存记录不存在
	ErrInventoryNotFound = apperrors.New(apperrors.ErrCodeNotFound, "库存记录不存在")

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")

	// ErrNegativeCopies 库存数不能为负
	ErrNegativeCopies = apperrors.New(apperrors.ErrCodeInvalidParams, "库存数不能为负")

	// ErrInvalidQuantity 数量必须大于0
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")
)
