package user

import (
	"context"
	"time"

	"github.com/xiebiao/biblioteca/internal/domain/user"
	"github.com/xiebiao/biblioteca/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/biblioteca/pkg/jwt"
	"github.com/xiebiao/biblioteca/pkg/logger"
)

// LoginUseCase 用户登录用例
// 验证身份→签发Token对→写入Redis会话
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// LoginRequest 登录请求DTO
// Identifier支持邮箱或用户名
type LoginRequest struct {
	Identifier string
	Password   string
}

// UserInfo 用户基本信息
type UserInfo struct {
	ID            uint   `json:"id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	Role          string `json:"role"`
	AffiliationID uint   `json:"affiliation_id,omitempty"`
}

// LoginResponse 登录响应DTO
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token过期时间(秒)
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证身份(邮箱/用户名+密码)
	u, err := uc.userService.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 签发Token对，角色与从属单位写入Claims供接口层鉴权
	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Email, u.Username, string(u.Role), u.AffiliationID)
	if err != nil {
		return nil, err
	}

	// 3. 写入Redis会话，有效期与Refresh Token一致
	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"email":    u.Email,
		"username": u.Username,
		"role":     string(u.Role),
		"login_at": time.Now().Unix(),
	}
	if err := uc.sessionStore.SaveSession(ctx, u.ID, sessionData, 7*24*time.Hour); err != nil {
		// 会话写入失败不阻断登录
		logger.L.Warn().Err(err).Uint("user_id", u.ID).Msg("保存登录会话失败")
	}

	return &LoginResponse{
		User: UserInfo{
			ID:            u.ID,
			Email:         u.Email,
			Username:      u.Username,
			Role:          string(u.Role),
			AffiliationID: u.AffiliationID,
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessionStore *redis.SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore *redis.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore}
}

// Execute 执行登出
// 删除会话并把Access Token拉黑，防止过期前继续使用
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, 2*time.Hour)
}
