package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/biblioteca/internal/domain/user"
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// requestRepository 馆员工单仓储实现(MySQL)
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository 创建工单仓储
func NewRequestRepository(db *gorm.DB) user.RequestRepository {
	return &requestRepository{db: db}
}

// Create 创建工单
func (r *requestRepository) Create(ctx context.Context, req *user.LibrarianRequest) error {
	model := &LibrarianRequestModel{
		UserID:   req.UserID,
		Kind:     string(req.Kind),
		Priority: string(req.Priority),
		Subject:  req.Subject,
		Body:     req.Body,
		Status:   string(req.Status),
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建工单失败")
	}
	req.ID = model.ID
	req.CreatedAt = model.CreatedAt
	req.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找工单
func (r *requestRepository) FindByID(ctx context.Context, id uint) (*user.LibrarianRequest, error) {
	var model LibrarianRequestModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrRequestNotFound
		}
		return nil, apperrors.Wrap(err, "查询工单失败")
	}
	return toRequestEntity(&model), nil
}

// Update 更新工单(状态流转)
func (r *requestRepository) Update(ctx context.Context, req *user.LibrarianRequest) error {
	result := getDB(ctx, r.db).Model(&LibrarianRequestModel{}).
		Where("id = ?", req.ID).
		Updates(map[string]interface{}{
			"status":     string(req.Status),
			"updated_at": req.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新工单失败")
	}
	if result.RowsAffected == 0 {
		return user.ErrRequestNotFound
	}
	return nil
}

// ListOpen 待处理工单(open/in_progress，高优先级在前)
func (r *requestRepository) ListOpen(ctx context.Context) ([]*user.LibrarianRequest, error) {
	var models []LibrarianRequestModel
	err := getDB(ctx, r.db).
		Where("status IN ?", []string{string(user.RequestOpen), string(user.RequestInProgress)}).
		Order("FIELD(priority, 'high', 'normal', 'low'), created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询工单列表失败")
	}
	return toRequestEntities(models), nil
}

// ListByUser 某用户发起的全部工单
func (r *requestRepository) ListByUser(ctx context.Context, userID uint) ([]*user.LibrarianRequest, error) {
	var models []LibrarianRequestModel
	err := getDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询工单列表失败")
	}
	return toRequestEntities(models), nil
}

// ListLibrarianIDs 全部馆员的用户ID
func (r *requestRepository) ListLibrarianIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := getDB(ctx, r.db).Model(&UserModel{}).
		Where("role = ?", string(user.RoleLibrarian)).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询馆员列表失败")
	}
	return ids, nil
}

func toRequestEntity(model *LibrarianRequestModel) *user.LibrarianRequest {
	return &user.LibrarianRequest{
		ID:        model.ID,
		UserID:    model.UserID,
		Kind:      user.RequestKind(model.Kind),
		Priority:  user.RequestPriority(model.Priority),
		Subject:   model.Subject,
		Body:      model.Body,
		Status:    user.RequestStatus(model.Status),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toRequestEntities(models []LibrarianRequestModel) []*user.LibrarianRequest {
	requests := make([]*user.LibrarianRequest, len(models))
	for i := range models {
		requests[i] = toRequestEntity(&models[i])
	}
	return requests
}
