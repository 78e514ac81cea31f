package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook(t *testing.T) {
	t.Run("二手价缺省为新书价的70%", func(t *testing.T) {
		b := NewBook("Il Gattopardo", "Tomasi di Lampedusa", "Romanzo", 1958, 320, 1500, 0, "", "")

		assert.Equal(t, int64(1500), b.PriceNew)
		assert.Equal(t, int64(1050), b.PriceUsed)
	})

	t.Run("显式指定二手价", func(t *testing.T) {
		b := NewBook("Il Gattopardo", "Tomasi di Lampedusa", "Romanzo", 1958, 320, 1500, 800, "", "")

		assert.Equal(t, int64(800), b.PriceUsed)
	})
}

func TestPriceFor(t *testing.T) {
	b := NewBook("Il Gattopardo", "Tomasi di Lampedusa", "Romanzo", 1958, 320, 1500, 900, "", "")

	assert.Equal(t, int64(1500), b.PriceFor(ConditionNew))
	assert.Equal(t, int64(900), b.PriceFor(ConditionUsed))
}

func TestUpdateInfo(t *testing.T) {
	b := NewBook("Il Gattopardo", "Tomasi di Lampedusa", "Romanzo", 1958, 320, 1500, 900, "desc", "")

	// 空值保持原值
	b.UpdateInfo("", "", "Classico", 0, 0, "")

	assert.Equal(t, "Il Gattopardo", b.Title)
	assert.Equal(t, "Classico", b.Genre)
	assert.Equal(t, 1958, b.Year)
	assert.Equal(t, "desc", b.Description)
}

func TestUpdatePrices(t *testing.T) {
	b := NewBook("Il Gattopardo", "Tomasi di Lampedusa", "Romanzo", 1958, 320, 1500, 900, "", "")

	t.Run("传0保持原值", func(t *testing.T) {
		require.NoError(t, b.UpdatePrices(1800, 0))

		assert.Equal(t, int64(1800), b.PriceNew)
		assert.Equal(t, int64(900), b.PriceUsed)
	})

	t.Run("拒绝负价格", func(t *testing.T) {
		assert.ErrorIs(t, b.UpdatePrices(-1, 0), ErrInvalidPrice)
		assert.Equal(t, int64(1800), b.PriceNew)
	})
}

func TestConditionValid(t *testing.T) {
	assert.True(t, ConditionNew.Valid())
	assert.True(t, ConditionUsed.Valid())
	assert.False(t, Condition("damaged").Valid())
}
