package user

import (
	"context"

	"github.com/xiebiao/biblioteca/internal/domain/user"
)

// RequestUseCase 馆员工单用例
type RequestUseCase struct {
	requestService user.RequestService
}

// NewRequestUseCase 创建工单用例
func NewRequestUseCase(requestService user.RequestService) *RequestUseCase {
	return &RequestUseCase{requestService: requestService}
}

// SubmitRequestRequest 提交工单请求DTO
type SubmitRequestRequest struct {
	UserID   uint
	Kind     string // reservation/waitlist/return/other
	Priority string // low/normal/high
	Subject  string
	Body     string
}

// RequestResponse 工单响应DTO
type RequestResponse struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Kind      string `json:"kind"`
	Priority  string `json:"priority"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Submit 读者提交工单
func (uc *RequestUseCase) Submit(ctx context.Context, req SubmitRequestRequest) (*RequestResponse, error) {
	r, err := uc.requestService.Submit(ctx, req.UserID,
		user.RequestKind(req.Kind), user.RequestPriority(req.Priority), req.Subject, req.Body)
	if err != nil {
		return nil, err
	}
	return toRequestResponse(r), nil
}

// Move 馆员推进工单状态
func (uc *RequestUseCase) Move(ctx context.Context, requestID uint, target string) (*RequestResponse, error) {
	r, err := uc.requestService.Move(ctx, requestID, user.RequestStatus(target))
	if err != nil {
		return nil, err
	}
	return toRequestResponse(r), nil
}

// ListOpen 待处理工单(馆员视图，高优先级在前)
func (uc *RequestUseCase) ListOpen(ctx context.Context) ([]RequestResponse, error) {
	requests, err := uc.requestService.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	return toRequestResponses(requests), nil
}

// ListMine 我发起的工单
func (uc *RequestUseCase) ListMine(ctx context.Context, userID uint) ([]RequestResponse, error) {
	requests, err := uc.requestService.ListMine(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toRequestResponses(requests), nil
}

func toRequestResponse(r *user.LibrarianRequest) *RequestResponse {
	return &RequestResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		Kind:      string(r.Kind),
		Priority:  string(r.Priority),
		Subject:   r.Subject,
		Body:      r.Body,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toRequestResponses(requests []*user.LibrarianRequest) []RequestResponse {
	list := make([]RequestResponse, len(requests))
	for i, r := range requests {
		list[i] = *toRequestResponse(r)
	}
	return list
}
