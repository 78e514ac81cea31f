package loan

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
	"github.com/xiebiao/biblioteca/internal/domain/notification"
)

// =========================================
// 内存仓储与直通事务管理器
// =========================================

// passthroughTx 单元测试用的直通事务管理器(不回滚，直接执行)
type passthroughTx struct{}

func (passthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeBookRepo 只需要FindByID，其余方法不会被借阅服务调用
type fakeBookRepo struct {
	catalog.Repository
	books map[uint]*catalog.Book
}

func (f *fakeBookRepo) FindByID(_ context.Context, id uint) (*catalog.Book, error) {
	if b, ok := f.books[id]; ok {
		return b, nil
	}
	return nil, catalog.ErrBookNotFound
}

type fakeNotifyRepo struct {
	notifications []*notification.Notification
}

func (f *fakeNotifyRepo) Create(_ context.Context, n *notification.Notification) error {
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotifyRepo) ListUnreadByUser(_ context.Context, userID uint) ([]*notification.Notification, error) {
	var list []*notification.Notification
	for _, n := range f.notifications {
		if n.UserID == userID && !n.Read {
			list = append(list, n)
		}
	}
	return list, nil
}

func (f *fakeNotifyRepo) CountUnreadByUser(ctx context.Context, userID uint) (int64, error) {
	list, _ := f.ListUnreadByUser(ctx, userID)
	return int64(len(list)), nil
}

func (f *fakeNotifyRepo) MarkAllRead(_ context.Context, userID uint) (int64, error) {
	var marked int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			marked++
		}
	}
	return marked, nil
}

// fakeLoanRepo 内存版借阅仓储:可用性账本用两个互斥的set模拟
type fakeLoanRepo struct {
	available    map[uint]bool
	loaned       map[uint]bool
	reservations []*Reservation
	waitlist     []*WaitlistEntry
	nextID       uint
}

func newFakeLoanRepo(availableBooks ...uint) *fakeLoanRepo {
	repo := &fakeLoanRepo{
		available: make(map[uint]bool),
		loaned:    make(map[uint]bool),
		nextID:    1,
	}
	for _, id := range availableBooks {
		repo.available[id] = true
	}
	return repo
}

func (f *fakeLoanRepo) LockBook(_ context.Context, bookID uint) error {
	if !f.available[bookID] && !f.loaned[bookID] {
		return catalog.ErrBookNotFound
	}
	return nil
}

func (f *fakeLoanRepo) IsAvailable(_ context.Context, bookID uint) (bool, error) {
	return f.available[bookID], nil
}

func (f *fakeLoanRepo) IsLoaned(_ context.Context, bookID uint) (bool, error) {
	return f.loaned[bookID], nil
}

func (f *fakeLoanRepo) MarkLoaned(_ context.Context, bookID uint) error {
	if !f.available[bookID] {
		return ErrBookNotAvailable
	}
	delete(f.available, bookID)
	f.loaned[bookID] = true
	return nil
}

func (f *fakeLoanRepo) MarkAvailable(_ context.Context, bookID uint) error {
	if !f.loaned[bookID] {
		return ErrBookNotLoaned
	}
	delete(f.loaned, bookID)
	f.available[bookID] = true
	return nil
}

func (f *fakeLoanRepo) CreateReservation(_ context.Context, r *Reservation) error {
	r.ID = f.nextID
	f.nextID++
	f.reservations = append(f.reservations, r)
	return nil
}

func (f *fakeLoanRepo) FindActiveReservation(_ context.Context, userID, bookID uint) (*Reservation, error) {
	for _, r := range f.reservations {
		if r.UserID == userID && r.BookID == bookID && r.Status == ReservationActive {
			return r, nil
		}
	}
	return nil, ErrReservationNotFound
}

func (f *fakeLoanRepo) FindActiveReservationByBook(_ context.Context, bookID uint) (*Reservation, error) {
	for _, r := range f.reservations {
		if r.BookID == bookID && r.Status == ReservationActive {
			return r, nil
		}
	}
	return nil, ErrReservationNotFound
}

func (f *fakeLoanRepo) ListActiveReservationsByUser(_ context.Context, userID uint) ([]*Reservation, error) {
	var list []*Reservation
	for _, r := range f.reservations {
		if r.UserID == userID && r.Status == ReservationActive {
			list = append(list, r)
		}
	}
	return list, nil
}

func (f *fakeLoanRepo) ListOverdueReservations(_ context.Context, now time.Time) ([]*Reservation, error) {
	var list []*Reservation
	for _, r := range f.reservations {
		if r.IsExpired(now) {
			list = append(list, r)
		}
	}
	return list, nil
}

func (f *fakeLoanRepo) UpdateReservationStatus(_ context.Context, id uint, status ReservationStatus) error {
	for _, r := range f.reservations {
		if r.ID == id {
			r.Status = status
			return nil
		}
	}
	return ErrReservationNotFound
}

func (f *fakeLoanRepo) CreateWaitlistEntry(_ context.Context, e *WaitlistEntry) error {
	e.ID = f.nextID
	f.nextID++
	f.waitlist = append(f.waitlist, e)
	return nil
}

func (f *fakeLoanRepo) HasActiveWaitlistEntry(_ context.Context, userID, bookID uint) (bool, error) {
	for _, e := range f.waitlist {
		if e.UserID == userID && e.BookID == bookID && e.Status == WaitlistActive {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLoanRepo) CountActiveWaitlist(_ context.Context, bookID uint) (int64, error) {
	var count int64
	for _, e := range f.waitlist {
		if e.BookID == bookID && e.Status == WaitlistActive {
			count++
		}
	}
	return count, nil
}

func (f *fakeLoanRepo) HeadOfWaitlist(_ context.Context, bookID uint) (*WaitlistEntry, error) {
	var head *WaitlistEntry
	for _, e := range f.waitlist {
		if e.BookID == bookID && e.Status == WaitlistActive {
			if head == nil || e.Position < head.Position {
				head = e
			}
		}
	}
	return head, nil
}

func (f *fakeLoanRepo) UpdateWaitlistStatus(_ context.Context, id uint, status WaitlistStatus) error {
	for _, e := range f.waitlist {
		if e.ID == id {
			e.Status = status
			return nil
		}
	}
	return nil
}

func (f *fakeLoanRepo) RenumberWaitlist(_ context.Context, bookID uint) error {
	var active []*WaitlistEntry
	for _, e := range f.waitlist {
		if e.BookID == bookID && e.Status == WaitlistActive {
			active = append(active, e)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Position < active[j].Position })
	for i, e := range active {
		e.Position = i + 1
	}
	return nil
}

func (f *fakeLoanRepo) ListActiveWaitlistByUser(_ context.Context, userID uint) ([]*WaitlistEntry, error) {
	var list []*WaitlistEntry
	for _, e := range f.waitlist {
		if e.UserID == userID && e.Status == WaitlistActive {
			list = append(list, e)
		}
	}
	return list, nil
}

func newTestService(repo *fakeLoanRepo) (Service, *fakeNotifyRepo) {
	notify := &fakeNotifyRepo{}
	bookRepo := &fakeBookRepo{books: map[uint]*catalog.Book{
		1: {ID: 1, Title: "Il nome della rosa"},
		2: {ID: 2, Title: "Se questo è un uomo"},
	}}
	return NewService(repo, bookRepo, notify, passthroughTx{}), notify
}

// =========================================
// 借出/归还
// =========================================

func TestBorrowAndReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("借出后图书离开可借集合", func(t *testing.T) {
		repo := newFakeLoanRepo(1)
		svc, _ := newTestService(repo)

		require.NoError(t, svc.Borrow(ctx, 1))

		assert.False(t, repo.available[1], "借出后不应在可借集合")
		assert.True(t, repo.loaned[1], "借出后应在已借出集合")
	})

	t.Run("重复借出返回不可借错误", func(t *testing.T) {
		repo := newFakeLoanRepo(1)
		svc, _ := newTestService(repo)

		require.NoError(t, svc.Borrow(ctx, 1))
		err := svc.Borrow(ctx, 1)

		assert.ErrorIs(t, err, ErrBookNotAvailable)
	})

	t.Run("借出不存在的图书", func(t *testing.T) {
		repo := newFakeLoanRepo()
		svc, _ := newTestService(repo)

		err := svc.Borrow(ctx, 99)
		assert.ErrorIs(t, err, catalog.ErrBookNotFound)
	})

	t.Run("归还后图书回到可借集合", func(t *testing.T) {
		repo := newFakeLoanRepo(1)
		svc, _ := newTestService(repo)

		require.NoError(t, svc.Borrow(ctx, 1))
		result, err := svc.Return(ctx, 1)

		require.NoError(t, err)
		assert.False(t, result.Promoted)
		assert.True(t, repo.available[1])
		assert.False(t, repo.loaned[1])
	})

	t.Run("归还未借出的图书", func(t *testing.T) {
		repo := newFakeLoanRepo(1)
		svc, _ := newTestService(repo)

		_, err := svc.Return(ctx, 1)
		assert.ErrorIs(t, err, ErrBookNotLoaned)
	})
}

// =========================================
// 预约
// =========================================

func TestReserve(t *testing.T) {
	ctx := context.Background()

	t.Run("预约占用图书并设置7天有效期", func(t *testing.T) {
		repo := newFakeLoanRepo(1)
		svc, _ := newTestService(repo)

		r, err := svc.Reserve(ctx, 10, 1)

		require.NoError(t, err)
		assert.Equal(t, ReservationActive, r.Status)
		assert.WithinDuration(t, r.CreatedAt.Add(ReservationTTL), r.ExpiresAt, time.Second)
		assert.True(t, repo.loaned[1], "预约后图书应转入已借出集合")
	})

	t.Run("同一用户不能重复预约同一本书", func(t *testing.T) {
		repo := newFakeLoanRepo(1)
		svc, _ := newTestService(repo)

		_, err := svc.Reserve(ctx, 10, 1)
		require.NoError(t, err)

		_, err = svc.Reserve(ctx, 10, 1)
		assert.ErrorIs(t, err, ErrAlreadyReserved)
	})

	t.Run("不可借的图书无法预约", func(t *testing.T) {
		repo := newFakeLoanRepo(1)
		svc, _ := newTestService(repo)

		require.NoError(t, svc.Borrow(ctx, 1))
		_, err := svc.Reserve(ctx, 10, 1)

		assert.ErrorIs(t, err, ErrBookNotAvailable)
	})
}

// =========================================
// 等待队列
// =========================================

func TestWaitlist(t *testing.T) {
	ctx := context.Background()

	t.Run("可借的图书不允许排队", func(t *testing.T) {
		repo := newFakeLoanRepo(1)
		svc, _ := newTestService(repo)

		_, err := svc.JoinWaitlist(ctx, 10, 1)
		assert.ErrorIs(t, err, ErrBookIsAvailable)
	})

	t.Run("排队位置按加入顺序递增", func(t *testing.T) {
		repo := newFakeLoanRepo(1)
		svc, _ := newTestService(repo)
		require.NoError(t, svc.Borrow(ctx, 1))

		e1, err := svc.JoinWaitlist(ctx, 10, 1)
		require.NoError(t, err)
		e2, err := svc.JoinWaitlist(ctx, 11, 1)
		require.NoError(t, err)
		e3, err := svc.JoinWaitlist(ctx, 12, 1)
		require.NoError(t, err)

		assert.Equal(t, 1, e1.Position)
		assert.Equal(t, 2, e2.Position)
		assert.Equal(t, 3, e3.Position)
	})

	t.Run("同一用户不能重复排队", func(t *testing.T) {
		repo := newFakeLoanRepo(1)
		svc, _ := newTestService(repo)
		require.NoError(t, svc.Borrow(ctx, 1))

		_, err := svc.JoinWaitlist(ctx, 10, 1)
		require.NoError(t, err)

		_, err = svc.JoinWaitlist(ctx, 10, 1)
		assert.ErrorIs(t, err, ErrAlreadyWaiting)
	})

	t.Run("归还时队头晋升", func(t *testing.T) {
		repo := newFakeLoanRepo(1)
		svc, notify := newTestService(repo)
		require.NoError(t, svc.Borrow(ctx, 1))

		_, err := svc.JoinWaitlist(ctx, 10, 1)
		require.NoError(t, err)
		_, err = svc.JoinWaitlist(ctx, 11, 1)
		require.NoError(t, err)

		result, err := svc.Return(ctx, 1)
		require.NoError(t, err)

		// 队头(用户10)晋升:获得新预约，图书保持借出
		assert.True(t, result.Promoted)
		assert.Equal(t, uint(10), result.PromotedUserID)
		assert.True(t, repo.loaned[1], "晋升后图书保持借出状态")
		assert.False(t, repo.available[1])

		r, err := repo.FindActiveReservation(ctx, 10, 1)
		require.NoError(t, err)
		assert.Equal(t, ReservationActive, r.Status)

		// 晋升者收到通知
		count, _ := notify.CountUnreadByUser(ctx, 10)
		assert.Equal(t, int64(1), count)

		// 剩余队列重排为1..N
		head, err := repo.HeadOfWaitlist(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, uint(11), head.UserID)
		assert.Equal(t, 1, head.Position)
	})
}

// =========================================
// 预约过期
// =========================================

func TestExpireDue(t *testing.T) {
	ctx := context.Background()

	t.Run("过期预约被标记并释放图书", func(t *testing.T) {
		repo := newFakeLoanRepo(1)
		svc, notify := newTestService(repo)

		r, err := svc.Reserve(ctx, 10, 1)
		require.NoError(t, err)

		// 有效期内不处理
		processed, err := svc.ExpireDue(ctx, time.Now())
		require.NoError(t, err)
		assert.Zero(t, processed)

		// 越过有效期后处理
		processed, err = svc.ExpireDue(ctx, time.Now().Add(ReservationTTL+time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, processed)

		assert.Equal(t, ReservationExpired, r.Status)
		assert.True(t, repo.available[1], "无人排队时图书回到可借集合")

		count, _ := notify.CountUnreadByUser(ctx, 10)
		assert.Equal(t, int64(1), count, "预约人应收到过期通知")
	})

	t.Run("过期时有人排队则晋升", func(t *testing.T) {
		repo := newFakeLoanRepo(1)
		svc, _ := newTestService(repo)

		_, err := svc.Reserve(ctx, 10, 1)
		require.NoError(t, err)
		_, err = svc.JoinWaitlist(ctx, 11, 1)
		require.NoError(t, err)

		processed, err := svc.ExpireDue(ctx, time.Now().Add(ReservationTTL+time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, processed)

		// 图书直接转入排队者名下
		assert.True(t, repo.loaned[1])
		r, err := repo.FindActiveReservation(ctx, 11, 1)
		require.NoError(t, err)
		assert.Equal(t, ReservationActive, r.Status)
	})
}
