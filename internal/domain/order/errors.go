package order

import (
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrInvalidStatusTransition 非法的状态转换
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "订单状态不允许此操作")

	// ErrInvalidOrderLines 订单明细不合法
	ErrInvalidOrderLines = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")

	// ErrInvalidQuantity 购买数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")

	// ErrInvalidCharge 税费或折扣不合法
	ErrInvalidCharge = apperrors.New(apperrors.ErrCodeInvalidParams, "税费与折扣不能为负，且折扣不能超过应付金额")

	// ErrInvalidDeliveryType 履约方式不合法
	ErrInvalidDeliveryType = apperrors.New(apperrors.ErrCodeInvalidParams, "履约方式必须是pickup或home")

	// ErrAddressRequired 送货上门必须指定收货地址
	ErrAddressRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "送货上门必须指定收货地址")

	// ErrNotOrderOwner 订单不属于当前用户
	ErrNotOrderOwner = apperrors.New(apperrors.ErrCodeForbidden, "无权操作他人订单")
)
