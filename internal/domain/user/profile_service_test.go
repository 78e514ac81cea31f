package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// passthroughTx 直通事务:直接执行fn，不依赖数据库
type passthroughTx struct{}

func (passthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAddrRepo struct {
	addrs  map[uint]*Address
	nextID uint
}

func newFakeAddrRepo() *fakeAddrRepo {
	return &fakeAddrRepo{addrs: make(map[uint]*Address), nextID: 1}
}

func (r *fakeAddrRepo) Create(ctx context.Context, addr *Address) error {
	addr.ID = r.nextID
	r.nextID++
	r.addrs[addr.ID] = addr
	return nil
}

func (r *fakeAddrRepo) FindByID(ctx context.Context, id uint) (*Address, error) {
	if a, ok := r.addrs[id]; ok {
		return a, nil
	}
	return nil, ErrAddressNotFound
}

func (r *fakeAddrRepo) ListByUser(ctx context.Context, userID uint) ([]*Address, error) {
	var out []*Address
	for _, a := range r.addrs {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAddrRepo) SetDefault(ctx context.Context, userID, addressID uint) error {
	for _, a := range r.addrs {
		if a.UserID == userID {
			a.IsDefault = a.ID == addressID
		}
	}
	return nil
}

func (r *fakeAddrRepo) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	for _, a := range r.addrs {
		if a.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakePaymentRepo struct {
	methods map[uint]*PaymentMethod
	nextID  uint
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{methods: make(map[uint]*PaymentMethod), nextID: 1}
}

func (r *fakePaymentRepo) Create(ctx context.Context, pm *PaymentMethod) error {
	pm.ID = r.nextID
	r.nextID++
	r.methods[pm.ID] = pm
	return nil
}

func (r *fakePaymentRepo) FindByID(ctx context.Context, id uint) (*PaymentMethod, error) {
	if pm, ok := r.methods[id]; ok {
		return pm, nil
	}
	return nil, ErrPaymentNotFound
}

func (r *fakePaymentRepo) ListByUser(ctx context.Context, userID uint) ([]*PaymentMethod, error) {
	var out []*PaymentMethod
	// 按ID升序模拟"最早创建在前"
	for id := uint(1); id < r.nextID; id++ {
		if pm, ok := r.methods[id]; ok && pm.UserID == userID {
			out = append(out, pm)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	for _, pm := range r.methods {
		if pm.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakePaymentRepo) Delete(ctx context.Context, id uint) error {
	delete(r.methods, id)
	return nil
}

func (r *fakePaymentRepo) SetDefault(ctx context.Context, userID, paymentID uint) error {
	for _, pm := range r.methods {
		if pm.UserID == userID {
			pm.IsDefault = pm.ID == paymentID
		}
	}
	return nil
}

type fakeFavRepo struct {
	favs   map[uint]*Favorite
	nextID uint
}

func newFakeFavRepo() *fakeFavRepo {
	return &fakeFavRepo{favs: make(map[uint]*Favorite), nextID: 1}
}

func (r *fakeFavRepo) Create(ctx context.Context, fav *Favorite) error {
	for _, f := range r.favs {
		if f.UserID == fav.UserID && f.BookID == fav.BookID {
			return ErrAlreadyFavorited
		}
	}
	fav.ID = r.nextID
	r.nextID++
	r.favs[fav.ID] = fav
	return nil
}

func (r *fakeFavRepo) Delete(ctx context.Context, userID, bookID uint) error {
	for id, f := range r.favs {
		if f.UserID == userID && f.BookID == bookID {
			delete(r.favs, id)
			return nil
		}
	}
	return nil
}

func (r *fakeFavRepo) ListByUser(ctx context.Context, userID uint) ([]*Favorite, error) {
	var out []*Favorite
	for _, f := range r.favs {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFavRepo) Exists(ctx context.Context, userID, bookID uint) (bool, error) {
	for _, f := range r.favs {
		if f.UserID == userID && f.BookID == bookID {
			return true, nil
		}
	}
	return false, nil
}

func newTestProfileService() (ProfileService, *fakeAddrRepo, *fakePaymentRepo, *fakeFavRepo) {
	addrRepo := newFakeAddrRepo()
	paymentRepo := newFakePaymentRepo()
	favRepo := newFakeFavRepo()
	svc := NewProfileService(addrRepo, paymentRepo, favRepo, passthroughTx{})
	return svc, addrRepo, paymentRepo, favRepo
}

func TestAddAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("首个地址自动成为默认", func(t *testing.T) {
		svc, _, _, _ := newTestProfileService()

		addr := &Address{UserID: 1, Recipient: "Mario Rossi", Street: "Via Roma 1", City: "Torino"}
		require.NoError(t, svc.AddAddress(ctx, addr))
		assert.True(t, addr.IsDefault)

		second := &Address{UserID: 1, Recipient: "Mario Rossi", Street: "Via Po 5", City: "Torino"}
		require.NoError(t, svc.AddAddress(ctx, second))
		assert.False(t, second.IsDefault)
	})

	t.Run("必填字段校验", func(t *testing.T) {
		svc, _, _, _ := newTestProfileService()

		err := svc.AddAddress(ctx, &Address{UserID: 1, Street: "Via Roma 1", City: "Torino"})
		assert.Error(t, err)
	})
}

func TestSetDefaultAddress(t *testing.T) {
	ctx := context.Background()
	svc, addrRepo, _, _ := newTestProfileService()

	first := &Address{UserID: 1, Recipient: "Mario", Street: "Via Roma 1", City: "Torino"}
	second := &Address{UserID: 1, Recipient: "Mario", Street: "Via Po 5", City: "Torino"}
	require.NoError(t, svc.AddAddress(ctx, first))
	require.NoError(t, svc.AddAddress(ctx, second))

	t.Run("切换默认地址", func(t *testing.T) {
		require.NoError(t, svc.SetDefaultAddress(ctx, 1, second.ID))

		assert.True(t, addrRepo.addrs[second.ID].IsDefault)
		assert.False(t, addrRepo.addrs[first.ID].IsDefault)
	})

	t.Run("不能操作他人地址", func(t *testing.T) {
		err := svc.SetDefaultAddress(ctx, 2, first.ID)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func validCard() AddPaymentParams {
	return AddPaymentParams{
		Kind:       "credit",
		Holder:     "Mario Rossi",
		CardNumber: "4242 4242 4242 4242",
		ExpiresAt:  "09/28",
	}
}

func TestAddPaymentMethod(t *testing.T) {
	ctx := context.Background()

	t.Run("卡号脱敏为后4位", func(t *testing.T) {
		svc, _, _, _ := newTestProfileService()

		pm, err := svc.AddPaymentMethod(ctx, 1, validCard())

		require.NoError(t, err)
		assert.Equal(t, "4242", pm.Last4)
		assert.Equal(t, "**** **** **** 4242", pm.MaskedNumber())
		assert.True(t, pm.IsDefault) // 首个支付方式自动成为默认
	})

	t.Run("卡号格式校验", func(t *testing.T) {
		svc, _, _, _ := newTestProfileService()

		for _, number := range []string{"", "1234", "abcd efgh ijkl mnop", "4242-4242-4242-4242"} {
			params := validCard()
			params.CardNumber = number
			_, err := svc.AddPaymentMethod(ctx, 1, params)
			assert.ErrorIs(t, err, ErrInvalidCard, "卡号 %q 应被拒绝", number)
		}
	})

	t.Run("有效期格式校验", func(t *testing.T) {
		svc, _, _, _ := newTestProfileService()

		for _, expiry := range []string{"", "13/28", "9/28", "09-28", "0928"} {
			params := validCard()
			params.ExpiresAt = expiry
			_, err := svc.AddPaymentMethod(ctx, 1, params)
			assert.ErrorIs(t, err, ErrInvalidCard, "有效期 %q 应被拒绝", expiry)
		}
	})
}

func TestRemovePaymentMethod(t *testing.T) {
	ctx := context.Background()

	t.Run("至少保留一种支付方式", func(t *testing.T) {
		svc, _, _, _ := newTestProfileService()

		pm, err := svc.AddPaymentMethod(ctx, 1, validCard())
		require.NoError(t, err)

		assert.ErrorIs(t, svc.RemovePaymentMethod(ctx, 1, pm.ID), ErrLastPaymentMethod)
	})

	t.Run("删除默认项时最早的一条接任默认", func(t *testing.T) {
		svc, _, paymentRepo, _ := newTestProfileService()

		first, err := svc.AddPaymentMethod(ctx, 1, validCard())
		require.NoError(t, err)

		params := validCard()
		params.CardNumber = "5555 5555 5555 4444"
		second, err := svc.AddPaymentMethod(ctx, 1, params)
		require.NoError(t, err)

		require.NoError(t, svc.RemovePaymentMethod(ctx, 1, first.ID))

		_, err = paymentRepo.FindByID(ctx, first.ID)
		assert.ErrorIs(t, err, ErrPaymentNotFound)
		assert.True(t, paymentRepo.methods[second.ID].IsDefault)
	})

	t.Run("不能删除他人的支付方式", func(t *testing.T) {
		svc, _, _, _ := newTestProfileService()

		pm, err := svc.AddPaymentMethod(ctx, 1, validCard())
		require.NoError(t, err)

		assert.ErrorIs(t, svc.RemovePaymentMethod(ctx, 2, pm.ID), apperrors.ErrForbidden)
	})
}

func TestFavorites(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestProfileService()

	t.Run("收藏与取消收藏", func(t *testing.T) {
		require.NoError(t, svc.SaveFavorite(ctx, 1, 10))
		require.NoError(t, svc.SaveFavorite(ctx, 1, 20))

		favs, err := svc.ListFavorites(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, favs, 2)

		require.NoError(t, svc.RemoveFavorite(ctx, 1, 10))
		favs, err = svc.ListFavorites(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, favs, 1)
	})

	t.Run("重复收藏被拒绝", func(t *testing.T) {
		require.NoError(t, svc.SaveFavorite(ctx, 1, 30))
		assert.ErrorIs(t, svc.SaveFavorite(ctx, 1, 30), ErrAlreadyFavorited)
	})
}
