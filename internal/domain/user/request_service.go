package user

import (
	"context"
	"fmt"

	"github.com/xiebiao/biblioteca/internal/domain/notification"
	"github.com/xiebiao/biblioteca/internal/domain/transaction"
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// RequestService 馆员工单领域服务
// 工单与通知必须同事务:创建广播给全体馆员，状态变更通知发起人
type RequestService interface {
	// Submit 读者提交工单
	Submit(ctx context.Context, userID uint, kind RequestKind, priority RequestPriority, subject, body string) (*LibrarianRequest, error)

	// Move 馆员推进工单状态
	Move(ctx context.Context, requestID uint, target RequestStatus) (*LibrarianRequest, error)

	// ListOpen 待处理工单(馆员视图)
	ListOpen(ctx context.Context) ([]*LibrarianRequest, error)

	// ListMine 当前用户发起的工单
	ListMine(ctx context.Context, userID uint) ([]*LibrarianRequest, error)
}

type requestService struct {
	repo       RequestRepository
	notifyRepo notification.Repository
	txManager  transaction.Manager
}

// NewRequestService 创建工单领域服务
func NewRequestService(repo RequestRepository, notifyRepo notification.Repository, txManager transaction.Manager) RequestService {
	return &requestService{
		repo:       repo,
		notifyRepo: notifyRepo,
		txManager:  txManager,
	}
}

// Submit 读者提交工单
func (s *requestService) Submit(ctx context.Context, userID uint, kind RequestKind, priority RequestPriority, subject, body string) (*LibrarianRequest, error) {
	if !kind.Valid() {
		kind = RequestOther
	}
	if !priority.Valid() {
		priority = PriorityNormal
	}
	if subject == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "工单标题不能为空")
	}

	req := NewLibrarianRequest(userID, kind, priority, subject, body)
	err := s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, req); err != nil {
			return err
		}

		// 广播给全体馆员(发起人自己是馆员时跳过)
		librarianIDs, err := s.repo.ListLibrarianIDs(txCtx)
		if err != nil {
			return err
		}
		message := fmt.Sprintf("新工单 #%d[%s]:%s", req.ID, req.Kind, req.Subject)
		for _, id := range librarianIDs {
			if id == userID {
				continue
			}
			if err := s.notifyRepo.Create(txCtx, notification.NewWithCategory(id, message, notification.CategoryRequest)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Move 推进工单状态并通知发起人
func (s *requestService) Move(ctx context.Context, requestID uint, target RequestStatus) (*LibrarianRequest, error) {
	var req *LibrarianRequest
	err := s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		req, err = s.repo.FindByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if err := req.MoveTo(target); err != nil {
			return err
		}
		if err := s.repo.Update(txCtx, req); err != nil {
			return err
		}

		message := fmt.Sprintf("你的工单 #%d「%s」状态已更新为:%s", req.ID, req.Subject, req.Status)
		return s.notifyRepo.Create(txCtx, notification.NewWithCategory(req.UserID, message, notification.CategoryRequest))
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ListOpen 待处理工单
func (s *requestService) ListOpen(ctx context.Context) ([]*LibrarianRequest, error) {
	return s.repo.ListOpen(ctx)
}

// ListMine 当前用户发起的工单
func (s *requestService) ListMine(ctx context.Context, userID uint) ([]*LibrarianRequest, error) {
	return s.repo.ListByUser(ctx, userID)
}
