package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	t.Run("Error包含错误码与提示", func(t *testing.T) {
		err := New(40001, "库存不足")
		assert.Equal(t, "[40001] 库存不足", err.Error())
	})

	t.Run("Wrap保留内部错误", func(t *testing.T) {
		inner := errors.New("connection refused")
		err := Wrap(inner, "数据库错误")

		assert.Equal(t, ErrCodeInternal, err.Code)
		assert.ErrorIs(t, err, inner, "Unwrap应该能找到内部错误")
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("Wrapf格式化提示", func(t *testing.T) {
		err := Wrapf(errors.New("boom"), "查询图书%d失败", 42)
		assert.Equal(t, "查询图书42失败", err.Message)
	})
}

func TestIsAppError(t *testing.T) {
	assert.True(t, IsAppError(ErrBookNotFound))
	assert.True(t, IsAppError(fmt.Errorf("外层: %w", ErrBookNotFound)))
	assert.False(t, IsAppError(errors.New("plain")))
	assert.False(t, IsAppError(nil))
}

func TestGetAppError(t *testing.T) {
	t.Run("提取包装链中的AppError", func(t *testing.T) {
		wrapped := fmt.Errorf("外层: %w", ErrInsufficientStock)

		appErr := GetAppError(wrapped)
		require.NotNil(t, appErr)
		assert.Equal(t, ErrCodeInsufficientStock, appErr.Code)
	})

	t.Run("非AppError转换为内部错误", func(t *testing.T) {
		appErr := GetAppError(errors.New("sql: no rows"))

		require.NotNil(t, appErr)
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.NotContains(t, appErr.Message, "sql", "不应向客户端泄露底层细节")
	})
}
