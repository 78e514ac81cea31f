package loan

import (
	"context"
	"fmt"
	"time"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
	"github.com/xiebiao/biblioteca/internal/domain/notification"
	"github.com/xiebiao/biblioteca/internal/domain/transaction"
)

// Service 借阅领域服务接口
// 核心设计(防并发冲突):
// 1. 所有状态转移先LockBook(SELECT FOR UPDATE)，同一本书上的操作串行化
// 2. 整个操作在一个事务内完成:锁、检查、集合转移、预约/队列写入要么全成功要么全失败
// 3. 预约过期采用惰性清理:读取路径先ExpireDue，没有到期定时器
type Service interface {
	// Borrow 直接借出(馆员操作)
	// 图书必须在可借集合中，否则返回ErrBookNotAvailable
	Borrow(ctx context.Context, bookID uint) error

	// Return 归还图书
	// 若等待队列非空:队头晋升(置notified+创建预约+发通知)，图书保持借出状态;
	// 队列为空时图书回到可借集合。返回值描述是否发生了晋升
	Return(ctx context.Context, bookID uint) (*ReturnResult, error)

	// Reserve 预约图书(7天有效期)
	// 同一(用户,图书)至多一条active预约；预约使图书离开可借集合
	Reserve(ctx context.Context, userID, bookID uint) (*Reservation, error)

	// JoinWaitlist 加入等待队列
	// 仅当图书不可借时允许排队；position为当前active人数+1
	JoinWaitlist(ctx context.Context, userID, bookID uint) (*WaitlistEntry, error)

	// ExpireDue 清理所有已到期的active预约，返回处理条数
	// 每条过期预约与归还同构:队头晋升或图书回到可借集合
	ExpireDue(ctx context.Context, now time.Time) (int, error)

	// ListMyReservations 用户的active预约(先惰性过期)
	ListMyReservations(ctx context.Context, userID uint) ([]*Reservation, error)

	// ListMyWaitlist 用户的active排队条目
	ListMyWaitlist(ctx context.Context, userID uint) ([]*WaitlistEntry, error)

	// IsAvailable 图书当前是否可借(先惰性过期)
	IsAvailable(ctx context.Context, bookID uint) (bool, error)
}

type service struct {
	repo       Repository
	bookRepo   catalog.Repository
	notifyRepo notification.Repository
	txManager  transaction.Manager
}

// NewService 创建借阅领域服务
func NewService(repo Repository, bookRepo catalog.Repository, notifyRepo notification.Repository, txManager transaction.Manager) Service {
	return &service{
		repo:       repo,
		bookRepo:   bookRepo,
		notifyRepo: notifyRepo,
		txManager:  txManager,
	}
}

// Borrow 直接借出
func (s *service) Borrow(ctx context.Context, bookID uint) error {
	return s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定图书行(不存在时返回catalog.ErrBookNotFound)
		if err := s.repo.LockBook(txCtx, bookID); err != nil {
			return err
		}

		// 2. 可借→已借出(不可借时原子失败)
		return s.repo.MarkLoaned(txCtx, bookID)
	})
}

// ReturnResult 归还结果
type ReturnResult struct {
	Promoted       bool // 是否发生了队头晋升
	PromotedUserID uint // 晋升用户ID(Promoted为true时有效)
}

// Return 归还图书
func (s *service) Return(ctx context.Context, bookID uint) (*ReturnResult, error) {
	result := &ReturnResult{}
	err := s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.LockBook(txCtx, bookID); err != nil {
			return err
		}

		loaned, err := s.repo.IsLoaned(txCtx, bookID)
		if err != nil {
			return err
		}
		if !loaned {
			return ErrBookNotLoaned
		}

		// 归还完成对应的active预约(若有)
		res, err := s.repo.FindActiveReservationByBook(txCtx, bookID)
		if err != nil && err != ErrReservationNotFound {
			return err
		}
		if res != nil {
			if err := s.repo.UpdateReservationStatus(txCtx, res.ID, ReservationCompleted); err != nil {
				return err
			}
		}

		promoted, err := s.releaseOrPromote(txCtx, bookID)
		if err != nil {
			return err
		}
		if promoted != nil {
			result.Promoted = true
			result.PromotedUserID = promoted.UserID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Reserve 预约图书
func (s *service) Reserve(ctx context.Context, userID, bookID uint) (*Reservation, error) {
	var reservation *Reservation
	err := s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.LockBook(txCtx, bookID); err != nil {
			return err
		}

		// 去重:同一(用户,图书)至多一条active预约
		existing, err := s.repo.FindActiveReservation(txCtx, userID, bookID)
		if err != nil && err != ErrReservationNotFound {
			return err
		}
		if existing != nil {
			return ErrAlreadyReserved
		}

		// 预约占用图书:可借→已借出
		if err := s.repo.MarkLoaned(txCtx, bookID); err != nil {
			return err
		}

		reservation = NewReservation(userID, bookID)
		return s.repo.CreateReservation(txCtx, reservation)
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// JoinWaitlist 加入等待队列
func (s *service) JoinWaitlist(ctx context.Context, userID, bookID uint) (*WaitlistEntry, error) {
	var entry *WaitlistEntry
	err := s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.LockBook(txCtx, bookID); err != nil {
			return err
		}

		// 可借的书应直接预约，不允许排队
		available, err := s.repo.IsAvailable(txCtx, bookID)
		if err != nil {
			return err
		}
		if available {
			return ErrBookIsAvailable
		}

		waiting, err := s.repo.HasActiveWaitlistEntry(txCtx, userID, bookID)
		if err != nil {
			return err
		}
		if waiting {
			return ErrAlreadyWaiting
		}

		count, err := s.repo.CountActiveWaitlist(txCtx, bookID)
		if err != nil {
			return err
		}

		entry = NewWaitlistEntry(userID, bookID, int(count)+1)
		return s.repo.CreateWaitlistEntry(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ExpireDue 清理已到期的active预约
// 每条预约单独一个事务:一条失败不影响其余条目
func (s *service) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	overdue, err := s.repo.ListOverdueReservations(ctx, now)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, res := range overdue {
		err := s.txManager.Transaction(ctx, func(txCtx context.Context) error {
			if err := s.repo.LockBook(txCtx, res.BookID); err != nil {
				return err
			}

			// 加锁后重读，防止并发下重复处理
			current, err := s.repo.FindActiveReservation(txCtx, res.UserID, res.BookID)
			if err != nil || current == nil || current.ID != res.ID || !current.IsExpired(now) {
				return nil
			}

			if err := s.repo.UpdateReservationStatus(txCtx, res.ID, ReservationExpired); err != nil {
				return err
			}

			if err := s.notifyUser(txCtx, res.UserID, res.BookID, "你对《%s》的预约已过期"); err != nil {
				return err
			}

			_, err = s.releaseOrPromote(txCtx, res.BookID)
			return err
		})
		if err != nil {
			return processed, err
		}
		processed++
	}
	return processed, nil
}

// ListMyReservations 用户的active预约
func (s *service) ListMyReservations(ctx context.Context, userID uint) ([]*Reservation, error) {
	if _, err := s.ExpireDue(ctx, time.Now()); err != nil {
		return nil, err
	}
	return s.repo.ListActiveReservationsByUser(ctx, userID)
}

// ListMyWaitlist 用户的active排队条目
func (s *service) ListMyWaitlist(ctx context.Context, userID uint) ([]*WaitlistEntry, error) {
	return s.repo.ListActiveWaitlistByUser(ctx, userID)
}

// IsAvailable 图书当前是否可借
func (s *service) IsAvailable(ctx context.Context, bookID uint) (bool, error) {
	if _, err := s.ExpireDue(ctx, time.Now()); err != nil {
		return false, err
	}
	return s.repo.IsAvailable(ctx, bookID)
}

// releaseOrPromote 图书被释放时的统一出口(归还/过期共用)
// 队头晋升:置notified、重排队列、为队头创建预约、发通知，图书保持借出;
// 队列为空:图书回到可借集合。返回晋升的条目(无晋升时为nil)
func (s *service) releaseOrPromote(ctx context.Context, bookID uint) (*WaitlistEntry, error) {
	head, err := s.repo.HeadOfWaitlist(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if head == nil {
		return nil, s.repo.MarkAvailable(ctx, bookID)
	}

	if err := s.repo.UpdateWaitlistStatus(ctx, head.ID, WaitlistNotified); err != nil {
		return nil, err
	}
	if err := s.repo.RenumberWaitlist(ctx, bookID); err != nil {
		return nil, err
	}

	// 队头获得一条新预约，图书直接转入其名下(保持已借出状态)
	reservation := NewReservation(head.UserID, bookID)
	if err := s.repo.CreateReservation(ctx, reservation); err != nil {
		return nil, err
	}

	if err := s.notifyUser(ctx, head.UserID, bookID, "你等待的《%s》已可取，已为你保留7天"); err != nil {
		return nil, err
	}
	return head, nil
}

// notifyUser 发送带书名的通知(书名查不到时降级为ID)
func (s *service) notifyUser(ctx context.Context, userID, bookID uint, format string) error {
	title := fmt.Sprintf("#%d", bookID)
	if book, err := s.bookRepo.FindByID(ctx, bookID); err == nil && book != nil {
		title = book.Title
	}
	n := notification.NewWithCategory(userID, fmt.Sprintf(format, title), notification.CategoryLoan)
	return s.notifyRepo.Create(ctx, n)
}
