package loan

import (
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// 借阅/预约领域错误定义
var (
	// ErrBookNotAvailable 图书当前不可借(借阅或预约时)
	ErrBookNotAvailable = apperrors.New(apperrors.ErrCodeStateConflict, "图书当前不可借")

	// ErrBookNotLoaned 图书未处于借出状态(归还时)
	ErrBookNotLoaned = apperrors.New(apperrors.ErrCodeStateConflict, "图书未处于借出状态")

	// ErrAlreadyReserved 已有生效中的预约
	ErrAlreadyReserved = apperrors.New(apperrors.ErrCodeStateConflict, "你已有该图书的生效预约")

	// ErrAlreadyWaiting 已在等待队列中
	ErrAlreadyWaiting = apperrors.New(apperrors.ErrCodeStateConflict, "你已在该图书的等待队列中")

	// ErrBookIsAvailable 图书可借，应直接预约而不是排队
	ErrBookIsAvailable = apperrors.New(apperrors.ErrCodeStateConflict, "图书当前可借，可直接预约")

	// ErrReservationNotFound 预约不存在
	ErrReservationNotFound = apperrors.New(apperrors.ErrCodeReservationNotFound, "预约不存在")
)
