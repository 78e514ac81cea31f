package user

import (
	"context"

	"github.com/xiebiao/biblioteca/internal/domain/user"
)

// RegisterUseCase 用户注册用例
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// RegisterRequest 注册请求DTO
type RegisterRequest struct {
	Email         string
	Username      string
	Password      string
	Role          string // member/librarian/bookseller，空值默认member
	AffiliationID uint   // 馆员=图书馆ID，书店人员=书店ID
}

// RegisterResponse 注册响应DTO(不含密码字段)
type RegisterResponse struct {
	ID            uint   `json:"id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	Role          string `json:"role"`
	AffiliationID uint   `json:"affiliation_id,omitempty"`
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	u, err := uc.userService.Register(ctx, user.RegisterParams{
		Email:         req.Email,
		Username:      req.Username,
		Password:      req.Password,
		Role:          user.Role(req.Role),
		AffiliationID: req.AffiliationID,
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		Role:          string(u.Role),
		AffiliationID: u.AffiliationID,
	}, nil
}
