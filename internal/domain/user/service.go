package user

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// Service 用户领域服务
// 设计说明:
// 1. Service包含不属于单个实体的业务逻辑(密码加密、验证)
// 2. Service依赖Repository接口，不依赖具体实现(依赖倒置)
// 3. Service不处理HTTP请求，只处理业务逻辑
type Service interface {
	// Register 用户注册
	Register(ctx context.Context, params RegisterParams) (*User, error)

	// Login 用户登录(支持邮箱或用户名)
	Login(ctx context.Context, identifier, password string) (*User, error)

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error
}

// RegisterParams 注册参数
type RegisterParams struct {
	Email         string
	Username      string
	Password      string
	Role          Role
	AffiliationID uint // 馆员=图书馆ID，书店人员=书店ID，读者忽略
}

type service struct {
	repo      Repository
	placeRepo PlaceRepository
}

// NewService 创建用户领域服务
func NewService(repo Repository, placeRepo PlaceRepository) Service {
	return &service{repo: repo, placeRepo: placeRepo}
}

// Register 用户注册
// 业务规则:
// 1. 邮箱格式、用户名长度、密码强度(8-20位，含字母和数字)校验
// 2. 角色合法，馆员/书店人员必须指定存在的从属单位
// 3. 密码bcrypt加密(cost=12，自动加盐)
// 4. 邮箱/用户名唯一性由数据库UNIQUE索引保证(应用层预检查有并发窗口)
func (s *service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if !isValidEmail(params.Email) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}
	if len(params.Username) < 2 || len(params.Username) > 50 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "用户名长度应为2-50个字符")
	}
	if err := validatePasswordStrength(params.Password); err != nil {
		return nil, err
	}

	role := params.Role
	if role == "" {
		role = RoleMember
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	// 从属单位校验
	affiliationID := uint(0)
	switch role {
	case RoleLibrarian:
		if params.AffiliationID == 0 {
			return nil, ErrAffiliationRequired
		}
		if _, err := s.placeRepo.FindLibraryByID(ctx, params.AffiliationID); err != nil {
			return nil, err
		}
		affiliationID = params.AffiliationID
	case RoleBookseller:
		if params.AffiliationID == 0 {
			return nil, ErrAffiliationRequired
		}
		if _, err := s.placeRepo.FindStoreByID(ctx, params.AffiliationID); err != nil {
			return nil, err
		}
		affiliationID = params.AffiliationID
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(params.Password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	u := NewUser(params.Email, params.Username, string(hashedPassword), role, affiliationID)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err // Repository已转换为业务错误
	}
	return u, nil
}

// Login 用户登录
// identifier含@按邮箱查找，否则按用户名查找
func (s *service) Login(ctx context.Context, identifier, password string) (*User, error) {
	var (
		u   *User
		err error
	)
	if isValidEmail(identifier) {
		u, err = s.repo.FindByEmail(ctx, identifier)
	} else {
		u, err = s.repo.FindByUsername(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}

	if err := s.ValidatePassword(u.Password, password); err != nil {
		return nil, err
	}
	return u, nil
}

// ValidatePassword 验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

// isValidEmail 邮箱格式校验
// 简单正则，生产环境可用更严格的RFC 5322标准
func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// validatePasswordStrength 密码强度校验
// 规则:8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasDigit := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasLetter || !hasDigit {
		return apperrors.ErrWeakPassword
	}
	return nil
}
