package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
	"github.com/xiebiao/biblioteca/internal/domain/order"
)

// passthroughTx 直通事务:直接执行fn，不依赖数据库
type passthroughTx struct{}

func (passthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeBookRepo 只实现图书存在性检查
type fakeBookRepo struct {
	catalog.Repository
	books map[uint]*catalog.Book
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*catalog.Book, error) {
	if b, ok := r.books[id]; ok {
		return b, nil
	}
	return nil, catalog.ErrBookNotFound
}

// fakeOrderRepo 只实现订单查询，orders按ID索引
type fakeOrderRepo struct {
	order.Repository
	orders map[uint]*order.Order
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	if o, ok := r.orders[id]; ok {
		return o, nil
	}
	return nil, order.ErrOrderNotFound
}

// fakeFeedbackRepo 内存版书评仓储
type fakeFeedbackRepo struct {
	reviews map[uint]*Review
	votes   map[[2]uint]*ReviewVote // (用户,书评) -> 投票
	nextID  uint
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{
		reviews: make(map[uint]*Review),
		votes:   make(map[[2]uint]*ReviewVote),
		nextID:  1,
	}
}

func (r *fakeFeedbackRepo) Create(ctx context.Context, review *Review) error {
	review.ID = r.nextID
	r.nextID++
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeFeedbackRepo) FindByID(ctx context.Context, id uint) (*Review, error) {
	if rv, ok := r.reviews[id]; ok {
		return rv, nil
	}
	return nil, ErrReviewNotFound
}

func (r *fakeFeedbackRepo) ListByBook(ctx context.Context, bookID uint) ([]*Review, error) {
	var out []*Review
	for _, rv := range r.reviews {
		if rv.BookID == bookID && !rv.Hidden {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) ListByUser(ctx context.Context, userID uint) ([]*Review, error) {
	var out []*Review
	for _, rv := range r.reviews {
		if rv.UserID == userID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) AverageRating(ctx context.Context, bookID uint) (float64, int64, error) {
	var sum, count int64
	for _, rv := range r.reviews {
		if rv.BookID == bookID && !rv.Hidden {
			sum += int64(rv.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (r *fakeFeedbackRepo) SetHidden(ctx context.Context, id uint, hidden bool) error {
	rv, ok := r.reviews[id]
	if !ok {
		return ErrReviewNotFound
	}
	rv.Hidden = hidden
	return nil
}

func (r *fakeFeedbackRepo) CreateVote(ctx context.Context, vote *ReviewVote) error {
	key := [2]uint{vote.UserID, vote.ReviewID}
	if _, ok := r.votes[key]; ok {
		return ErrDuplicateVote
	}
	r.votes[key] = vote
	return nil
}

func (r *fakeFeedbackRepo) IncrementVoteCount(ctx context.Context, reviewID uint, kind VoteKind) error {
	rv, ok := r.reviews[reviewID]
	if !ok {
		return ErrReviewNotFound
	}
	if kind == VoteHelpful {
		rv.Helpful++
	} else {
		rv.Unhelpful++
	}
	return nil
}

func newTestService() (Service, *fakeFeedbackRepo, *fakeOrderRepo) {
	repo := newFakeFeedbackRepo()
	// 订单100/200分别是用户1/2已送达的购书订单，300已取消，400不含图书10
	orderRepo := &fakeOrderRepo{orders: map[uint]*order.Order{
		100: {
			ID: 100, UserID: 1, Status: order.OrderStatusDelivered,
			Lines: []order.OrderLine{{BookID: 10, Quantity: 1}},
		},
		200: {
			ID: 200, UserID: 2, Status: order.OrderStatusDelivered,
			Lines: []order.OrderLine{{BookID: 10, Quantity: 1}},
		},
		300: {
			ID: 300, UserID: 1, Status: order.OrderStatusCancelled,
			Lines: []order.OrderLine{{BookID: 10, Quantity: 1}},
		},
		400: {
			ID: 400, UserID: 1, Status: order.OrderStatusDelivered,
			Lines: []order.OrderLine{{BookID: 20, Quantity: 1}},
		},
	}}
	bookRepo := &fakeBookRepo{books: map[uint]*catalog.Book{
		10: {ID: 10, Title: "Il Gattopardo"},
	}}
	return NewService(repo, orderRepo, bookRepo, passthroughTx{}), repo, orderRepo
}

func TestPostReview(t *testing.T) {
	ctx := context.Background()

	t.Run("凭本人订单发表书评", func(t *testing.T) {
		svc, _, _ := newTestService()

		review, err := svc.PostReview(ctx, 1, 10, 100, 5, "Un capolavoro")

		require.NoError(t, err)
		assert.NotZero(t, review.ID)
		assert.Equal(t, uint(100), review.OrderID)
		assert.Equal(t, 5, review.Rating)
		assert.False(t, review.Hidden)
	})

	t.Run("凭别人的订单不能发表", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.PostReview(ctx, 1, 10, 200, 4, "")
		assert.ErrorIs(t, err, ErrNotPurchased)
	})

	t.Run("凭已取消的订单不能发表", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.PostReview(ctx, 1, 10, 300, 4, "")
		assert.ErrorIs(t, err, ErrNotPurchased)
	})

	t.Run("订单不含该图书不能发表", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.PostReview(ctx, 1, 10, 400, 4, "")
		assert.ErrorIs(t, err, ErrNotPurchased)
	})

	t.Run("订单不存在", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.PostReview(ctx, 1, 10, 999, 4, "")
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("图书不存在", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.PostReview(ctx, 1, 99, 100, 4, "")
		assert.ErrorIs(t, err, catalog.ErrBookNotFound)
	})

	t.Run("评分必须在1-5之间", func(t *testing.T) {
		svc, _, _ := newTestService()

		for _, rating := range []int{0, -1, 6} {
			_, err := svc.PostReview(ctx, 1, 10, 100, rating, "")
			assert.ErrorIs(t, err, ErrInvalidRating)
		}
	})
}

func TestVote(t *testing.T) {
	ctx := context.Background()

	t.Run("投票累加冗余计数", func(t *testing.T) {
		svc, repo, _ := newTestService()
		review, err := svc.PostReview(ctx, 1, 10, 100, 5, "Bellissimo")
		require.NoError(t, err)

		require.NoError(t, svc.Vote(ctx, 2, review.ID, VoteHelpful))
		require.NoError(t, svc.Vote(ctx, 3, review.ID, VoteUnhelpful))

		assert.Equal(t, 1, repo.reviews[review.ID].Helpful)
		assert.Equal(t, 1, repo.reviews[review.ID].Unhelpful)
	})

	t.Run("每人每评一票", func(t *testing.T) {
		svc, repo, _ := newTestService()
		review, err := svc.PostReview(ctx, 1, 10, 100, 4, "")
		require.NoError(t, err)

		require.NoError(t, svc.Vote(ctx, 2, review.ID, VoteHelpful))
		assert.ErrorIs(t, svc.Vote(ctx, 2, review.ID, VoteUnhelpful), ErrDuplicateVote)

		// 重复投票不污染计数
		assert.Equal(t, 1, repo.reviews[review.ID].Helpful)
		assert.Equal(t, 0, repo.reviews[review.ID].Unhelpful)
	})

	t.Run("投票类型校验", func(t *testing.T) {
		svc, _, _ := newTestService()

		assert.ErrorIs(t, svc.Vote(ctx, 2, 1, VoteKind("meh")), ErrInvalidVoteKind)
	})

	t.Run("书评不存在", func(t *testing.T) {
		svc, _, _ := newTestService()

		assert.ErrorIs(t, svc.Vote(ctx, 2, 99, VoteHelpful), ErrReviewNotFound)
	})
}

func TestModerate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	r1, err := svc.PostReview(ctx, 1, 10, 100, 5, "Ottimo")
	require.NoError(t, err)
	r2, err := svc.PostReview(ctx, 2, 10, 200, 1, "Spam")
	require.NoError(t, err)

	t.Run("隐藏后不出现在图书书评与评分中", func(t *testing.T) {
		require.NoError(t, svc.Moderate(ctx, r2.ID, true))

		reviews, err := svc.ListBookReviews(ctx, 10)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, r1.ID, reviews[0].ID)

		avg, count, err := svc.BookRating(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, float64(5), avg)
		assert.Equal(t, int64(1), count)
	})

	t.Run("恢复后重新可见", func(t *testing.T) {
		require.NoError(t, svc.Moderate(ctx, r2.ID, false))

		reviews, err := svc.ListBookReviews(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, reviews, 2)
	})

	t.Run("隐藏的书评仍在作者自己的列表中", func(t *testing.T) {
		require.NoError(t, svc.Moderate(ctx, r2.ID, true))

		mine, err := svc.ListMyReviews(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, mine, 1)
	})
}
