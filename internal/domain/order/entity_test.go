package order

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
)

func sampleLines() []OrderLine {
	return []OrderLine{
		{BookID: 1, StoreID: 1, Condition: catalog.ConditionNew, Quantity: 2, UnitPrice: 1299},
		{BookID: 2, StoreID: 1, Condition: catalog.ConditionUsed, Quantity: 1, UnitPrice: 909},
	}
}

func pickupOrder(userID uint) *Order {
	return NewOrder(OrderParams{
		OrderNo:      GenerateOrderNo(),
		UserID:       userID,
		DeliveryType: DeliveryPickup,
		Lines:        sampleLines(),
	})
}

func homeOrder(userID, addressID uint) *Order {
	return NewOrder(OrderParams{
		OrderNo:      GenerateOrderNo(),
		UserID:       userID,
		DeliveryType: DeliveryHome,
		AddressID:    addressID,
		Lines:        sampleLines(),
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("总金额为各行小计之和", func(t *testing.T) {
		o := pickupOrder(1)

		assert.Equal(t, int64(1299*2), o.Lines[0].LineTotal)
		assert.Equal(t, int64(909), o.Lines[1].LineTotal)
		assert.Equal(t, int64(3507), o.Total)
		assert.Equal(t, OrderStatusPending, o.Status)
	})

	t.Run("税费与折扣缺省为0", func(t *testing.T) {
		o := pickupOrder(1)

		assert.Zero(t, o.Tax)
		assert.Zero(t, o.Discount)
		assert.Zero(t, o.PaymentMethodID)
		assert.Empty(t, o.Notes)
		assert.Nil(t, o.ActualDelivery)
	})

	t.Run("总金额计入税费与订单级折扣", func(t *testing.T) {
		o := NewOrder(OrderParams{
			OrderNo:      GenerateOrderNo(),
			UserID:       1,
			DeliveryType: DeliveryPickup,
			Tax:          220,
			Discount:     500,
			Lines:        sampleLines(),
		})

		// 3507 + 220 − 500
		assert.Equal(t, int64(3227), o.Total)
		assert.Equal(t, int64(220), o.Tax)
		assert.Equal(t, int64(500), o.Discount)
	})

	t.Run("行级折扣从行小计中扣除", func(t *testing.T) {
		lines := []OrderLine{
			{BookID: 1, StoreID: 1, Condition: catalog.ConditionNew, Quantity: 2, UnitPrice: 1299, Discount: 100},
		}
		o := NewOrder(OrderParams{
			OrderNo:      GenerateOrderNo(),
			UserID:       1,
			DeliveryType: DeliveryPickup,
			Lines:        lines,
		})

		assert.Equal(t, int64(1299*2-100), o.Lines[0].LineTotal)
		assert.Equal(t, int64(2498), o.Total)
	})

	t.Run("支付方式与备注随订单保存", func(t *testing.T) {
		o := NewOrder(OrderParams{
			OrderNo:         GenerateOrderNo(),
			UserID:          1,
			DeliveryType:    DeliveryPickup,
			PaymentMethodID: 7,
			Notes:           "Consegnare al portiere",
			Lines:           sampleLines(),
		})

		assert.Equal(t, uint(7), o.PaymentMethodID)
		assert.Equal(t, "Consegnare al portiere", o.Notes)
	})

	t.Run("到店自取不创建配送记录", func(t *testing.T) {
		o := pickupOrder(1)

		assert.Nil(t, o.Delivery)
		assert.WithinDuration(t, time.Now(), o.ExpectedDelivery, time.Second)
	})

	t.Run("送货上门创建配送记录且预计5天后送达", func(t *testing.T) {
		o := homeOrder(1, 3)

		require.NotNil(t, o.Delivery)
		assert.Equal(t, DeliveryPreparing, o.Delivery.Status)
		assert.True(t, strings.HasPrefix(o.Delivery.TrackingNo, "TRK"))
		assert.NotEmpty(t, o.Delivery.Carrier)
		assert.Nil(t, o.Delivery.ShippedAt)
		assert.Nil(t, o.Delivery.DeliveredAt)
		assert.WithinDuration(t, time.Now().Add(HomeDeliveryLeadTime), o.ExpectedDelivery, time.Second)
	})
}

func TestOrderStateMachine(t *testing.T) {
	t.Run("沿履约链逐步推进直到送达", func(t *testing.T) {
		o := pickupOrder(1)

		want := []OrderStatus{OrderStatusConfirmed, OrderStatusPreparing, OrderStatusShipped, OrderStatusDelivered}
		for _, status := range want {
			require.NoError(t, o.Advance())
			assert.Equal(t, status, o.Status)
		}

		// 送达是终态，不能继续推进
		assert.ErrorIs(t, o.Advance(), ErrInvalidStatusTransition)
	})

	t.Run("送达时记录实际送达时间", func(t *testing.T) {
		o := pickupOrder(1)

		for i := 0; i < 3; i++ {
			require.NoError(t, o.Advance())
		}
		assert.Nil(t, o.ActualDelivery, "送达前不应有实际送达时间")

		require.NoError(t, o.Advance()) // delivered
		require.NotNil(t, o.ActualDelivery)
		assert.WithinDuration(t, time.Now(), *o.ActualDelivery, time.Second)
	})

	t.Run("不允许跳级转换", func(t *testing.T) {
		o := pickupOrder(1)

		assert.ErrorIs(t, o.TransitionTo(OrderStatusShipped), ErrInvalidStatusTransition)
		assert.ErrorIs(t, o.TransitionTo(OrderStatusDelivered), ErrInvalidStatusTransition)
		assert.Equal(t, OrderStatusPending, o.Status)
	})

	t.Run("发货前可以取消", func(t *testing.T) {
		for _, status := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing} {
			o := pickupOrder(1)
			o.Status = status

			assert.True(t, o.IsCancellable())
			require.NoError(t, o.Cancel())
			assert.Equal(t, OrderStatusCancelled, o.Status)
		}
	})

	t.Run("发货后不能取消", func(t *testing.T) {
		o := pickupOrder(1)
		o.Status = OrderStatusShipped

		assert.False(t, o.IsCancellable())
		assert.ErrorIs(t, o.Cancel(), ErrInvalidStatusTransition)
	})

	t.Run("取消是终态", func(t *testing.T) {
		o := pickupOrder(1)
		require.NoError(t, o.Cancel())

		assert.ErrorIs(t, o.Advance(), ErrInvalidStatusTransition)
		assert.ErrorIs(t, o.TransitionTo(OrderStatusConfirmed), ErrInvalidStatusTransition)
	})
}

func TestOrderDeliverySync(t *testing.T) {
	t.Run("状态推进同步更新配送记录", func(t *testing.T) {
		o := homeOrder(1, 3)

		require.NoError(t, o.Advance()) // confirmed
		require.NoError(t, o.Advance()) // preparing
		assert.Equal(t, DeliveryPreparing, o.Delivery.Status)

		require.NoError(t, o.Advance()) // shipped
		assert.Equal(t, DeliveryShipped, o.Delivery.Status)
		require.NotNil(t, o.Delivery.ShippedAt)

		require.NoError(t, o.Advance()) // delivered
		assert.Equal(t, DeliveryDelivered, o.Delivery.Status)
		require.NotNil(t, o.Delivery.DeliveredAt)
		assert.WithinDuration(t, time.Now(), *o.Delivery.DeliveredAt, time.Second)
	})

	t.Run("取消后配送记录标记为退回", func(t *testing.T) {
		o := homeOrder(1, 3)

		require.NoError(t, o.Cancel())
		assert.Equal(t, DeliveryReturned, o.Delivery.Status)
	})
}

func TestOrderOwnership(t *testing.T) {
	o := pickupOrder(42)

	assert.True(t, o.IsOwnedBy(42))
	assert.False(t, o.IsOwnedBy(7))
}

func TestGenerateOrderNo(t *testing.T) {
	no := GenerateOrderNo()

	assert.True(t, strings.HasPrefix(no, "ORD"))
	assert.GreaterOrEqual(t, len(no), 19)
}
