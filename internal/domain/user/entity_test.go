package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleMember.Valid())
	assert.True(t, RoleLibrarian.Valid())
	assert.True(t, RoleBookseller.Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestIsStaff(t *testing.T) {
	assert.False(t, NewUser("a@b.it", "mario", "hash", RoleMember, 0).IsStaff())
	assert.True(t, NewUser("a@b.it", "anna", "hash", RoleLibrarian, 1).IsStaff())
	assert.True(t, NewUser("a@b.it", "luca", "hash", RoleBookseller, 2).IsStaff())
}

func TestMaskedNumber(t *testing.T) {
	pm := &PaymentMethod{Last4: "4242"}
	assert.Equal(t, "**** **** **** 4242", pm.MaskedNumber())
}

func TestLibrarianRequestMoveTo(t *testing.T) {
	t.Run("按流转链向前推进", func(t *testing.T) {
		req := NewLibrarianRequest(1, RequestReservation, PriorityNormal, "预约协助", "想预约一本书")
		assert.Equal(t, RequestOpen, req.Status)

		require.NoError(t, req.MoveTo(RequestInProgress))
		require.NoError(t, req.MoveTo(RequestResolved))
		require.NoError(t, req.MoveTo(RequestClosed))
	})

	t.Run("允许跳过中间状态直接关闭", func(t *testing.T) {
		req := NewLibrarianRequest(1, RequestOther, PriorityLow, "其他", "内容")

		require.NoError(t, req.MoveTo(RequestClosed))
		assert.Equal(t, RequestClosed, req.Status)
	})

	t.Run("不允许回退或原地转换", func(t *testing.T) {
		req := NewLibrarianRequest(1, RequestWaitlist, PriorityHigh, "排队咨询", "内容")
		require.NoError(t, req.MoveTo(RequestResolved))

		assert.ErrorIs(t, req.MoveTo(RequestInProgress), ErrInvalidRequestStatus)
		assert.ErrorIs(t, req.MoveTo(RequestResolved), ErrInvalidRequestStatus)
		assert.ErrorIs(t, req.MoveTo(RequestStatus("unknown")), ErrInvalidRequestStatus)
	})
}

func TestRequestKindValid(t *testing.T) {
	assert.True(t, RequestReservation.Valid())
	assert.True(t, RequestOther.Valid())
	assert.False(t, RequestKind("complaint").Valid())
}
