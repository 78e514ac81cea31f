package user

import (
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrUsernameDuplicate 用户名已存在
	ErrUsernameDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "用户名已被占用")

	// ErrInvalidRole 角色不合法
	ErrInvalidRole = apperrors.New(apperrors.ErrCodeInvalidParams, "角色必须是member、librarian或bookseller")

	// ErrAffiliationRequired 馆员/书店人员必须指定从属单位
	ErrAffiliationRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "馆员或书店人员必须指定所属单位")

	// ErrAddressNotFound 收货地址不存在
	ErrAddressNotFound = apperrors.New(apperrors.ErrCodeAddressNotFound, "收货地址不存在")

	// ErrPaymentNotFound 支付方式不存在
	ErrPaymentNotFound = apperrors.New(apperrors.ErrCodeNotFound, "支付方式不存在")

	// ErrLastPaymentMethod 至少保留一种支付方式
	ErrLastPaymentMethod = apperrors.New(apperrors.ErrCodeBusinessError, "至少需要保留一种支付方式")

	// ErrInvalidCard 卡信息不合法
	ErrInvalidCard = apperrors.New(apperrors.ErrCodeInvalidParams, "卡号或有效期格式不正确")

	// ErrAlreadyFavorited 已收藏过该图书
	ErrAlreadyFavorited = apperrors.New(apperrors.ErrCodeDuplicateEntry, "你已收藏过该图书")

	// ErrRequestNotFound 工单不存在
	ErrRequestNotFound = apperrors.New(apperrors.ErrCodeNotFound, "工单不存在")

	// ErrInvalidRequestStatus 工单状态不允许此操作
	ErrInvalidRequestStatus = apperrors.New(apperrors.ErrCodeBusinessError, "工单状态不允许此操作")
)
