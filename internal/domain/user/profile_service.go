package user

import (
	"context"
	"regexp"
	"time"

	"github.com/xiebiao/biblioteca/internal/domain/transaction"
	apperrors "github.com/xiebiao/biblioteca/pkg/errors"
)

// ProfileService 个人资料领域服务(地址、支付方式、收藏)
type ProfileService interface {
	// AddAddress 新增收货地址(首个地址自动成为默认)
	AddAddress(ctx context.Context, addr *Address) error

	// ListAddresses 用户的全部地址
	ListAddresses(ctx context.Context, userID uint) ([]*Address, error)

	// SetDefaultAddress 设置默认地址
	SetDefaultAddress(ctx context.Context, userID, addressID uint) error

	// AddPaymentMethod 新增支付方式(卡号脱敏后入库)
	AddPaymentMethod(ctx context.Context, userID uint, params AddPaymentParams) (*PaymentMethod, error)

	// ListPaymentMethods 用户的全部支付方式
	ListPaymentMethods(ctx context.Context, userID uint) ([]*PaymentMethod, error)

	// RemovePaymentMethod 删除支付方式(至少保留一种)
	RemovePaymentMethod(ctx context.Context, userID, paymentID uint) error

	// SetDefaultPayment 设置默认支付方式
	SetDefaultPayment(ctx context.Context, userID, paymentID uint) error

	// SaveFavorite 收藏图书
	SaveFavorite(ctx context.Context, userID, bookID uint) error

	// RemoveFavorite 取消收藏
	RemoveFavorite(ctx context.Context, userID, bookID uint) error

	// ListFavorites 用户的收藏列表
	ListFavorites(ctx context.Context, userID uint) ([]*Favorite, error)
}

// AddPaymentParams 新增支付方式参数(明文卡号只在内存中出现)
type AddPaymentParams struct {
	Kind       string
	Holder     string
	CardNumber string // 明文卡号，入库前脱敏为后4位
	ExpiresAt  string // MM/YY
	IsDefault  bool
}

type profileService struct {
	addrRepo    AddressRepository
	paymentRepo PaymentRepository
	favRepo     FavoriteRepository
	txManager   transaction.Manager
}

// NewProfileService 创建个人资料领域服务
func NewProfileService(addrRepo AddressRepository, paymentRepo PaymentRepository, favRepo FavoriteRepository, txManager transaction.Manager) ProfileService {
	return &profileService{
		addrRepo:    addrRepo,
		paymentRepo: paymentRepo,
		favRepo:     favRepo,
		txManager:   txManager,
	}
}

// AddAddress 新增收货地址
func (s *profileService) AddAddress(ctx context.Context, addr *Address) error {
	if addr.Recipient == "" || addr.Street == "" || addr.City == "" {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "收件人、街道和城市不能为空")
	}

	return s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		count, err := s.addrRepo.CountByUser(txCtx, addr.UserID)
		if err != nil {
			return err
		}
		// 首个地址自动成为默认
		if count == 0 {
			addr.IsDefault = true
		}
		addr.CreatedAt = time.Now()
		if err := s.addrRepo.Create(txCtx, addr); err != nil {
			return err
		}
		if addr.IsDefault && count > 0 {
			return s.addrRepo.SetDefault(txCtx, addr.UserID, addr.ID)
		}
		return nil
	})
}

// ListAddresses 用户的全部地址
func (s *profileService) ListAddresses(ctx context.Context, userID uint) ([]*Address, error) {
	return s.addrRepo.ListByUser(ctx, userID)
}

// SetDefaultAddress 设置默认地址
func (s *profileService) SetDefaultAddress(ctx context.Context, userID, addressID uint) error {
	addr, err := s.addrRepo.FindByID(ctx, addressID)
	if err != nil {
		return err
	}
	if addr.UserID != userID {
		return apperrors.ErrForbidden
	}
	return s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		return s.addrRepo.SetDefault(txCtx, userID, addressID)
	})
}

// cardNumberPattern 卡号:13-19位数字(允许空格分隔)
var cardNumberPattern = regexp.MustCompile(`^[0-9 ]{13,23}$`)

// expiryPattern 有效期:MM/YY
var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)

// AddPaymentMethod 新增支付方式
// 明文卡号只用于校验与取后4位，不落库、不写日志
func (s *profileService) AddPaymentMethod(ctx context.Context, userID uint, params AddPaymentParams) (*PaymentMethod, error) {
	digits := regexp.MustCompile(`[^0-9]`).ReplaceAllString(params.CardNumber, "")
	if !cardNumberPattern.MatchString(params.CardNumber) || len(digits) < 13 {
		return nil, ErrInvalidCard
	}
	if !expiryPattern.MatchString(params.ExpiresAt) {
		return nil, ErrInvalidCard
	}

	pm := &PaymentMethod{
		UserID:    userID,
		Kind:      params.Kind,
		Holder:    params.Holder,
		Last4:     digits[len(digits)-4:],
		ExpiresAt: params.ExpiresAt,
		IsDefault: params.IsDefault,
		CreatedAt: time.Now(),
	}

	err := s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		count, err := s.paymentRepo.CountByUser(txCtx, userID)
		if err != nil {
			return err
		}
		if count == 0 {
			pm.IsDefault = true
		}
		if err := s.paymentRepo.Create(txCtx, pm); err != nil {
			return err
		}
		if pm.IsDefault && count > 0 {
			return s.paymentRepo.SetDefault(txCtx, userID, pm.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pm, nil
}

// ListPaymentMethods 用户的全部支付方式
func (s *profileService) ListPaymentMethods(ctx context.Context, userID uint) ([]*PaymentMethod, error) {
	return s.paymentRepo.ListByUser(ctx, userID)
}

// RemovePaymentMethod 删除支付方式
// 业务规则:至少保留一种；删除的是默认项时把最早的一条设为新默认
func (s *profileService) RemovePaymentMethod(ctx context.Context, userID, paymentID uint) error {
	pm, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if pm.UserID != userID {
		return apperrors.ErrForbidden
	}

	return s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		count, err := s.paymentRepo.CountByUser(txCtx, userID)
		if err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastPaymentMethod
		}
		if err := s.paymentRepo.Delete(txCtx, paymentID); err != nil {
			return err
		}
		if pm.IsDefault {
			remaining, err := s.paymentRepo.ListByUser(txCtx, userID)
			if err != nil {
				return err
			}
			if len(remaining) > 0 {
				return s.paymentRepo.SetDefault(txCtx, userID, remaining[0].ID)
			}
		}
		return nil
	})
}

// SetDefaultPayment 设置默认支付方式
func (s *profileService) SetDefaultPayment(ctx context.Context, userID, paymentID uint) error {
	pm, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if pm.UserID != userID {
		return apperrors.ErrForbidden
	}
	return s.txManager.Transaction(ctx, func(txCtx context.Context) error {
		return s.paymentRepo.SetDefault(txCtx, userID, paymentID)
	})
}

// SaveFavorite 收藏图书(重复收藏由唯一索引拦截)
func (s *profileService) SaveFavorite(ctx context.Context, userID, bookID uint) error {
	return s.favRepo.Create(ctx, &Favorite{
		UserID:    userID,
		BookID:    bookID,
		CreatedAt: time.Now(),
	})
}

// RemoveFavorite 取消收藏
func (s *profileService) RemoveFavorite(ctx context.Context, userID, bookID uint) error {
	return s.favRepo.Delete(ctx, userID, bookID)
}

// ListFavorites 用户的收藏列表
func (s *profileService) ListFavorites(ctx context.Context, userID uint) ([]*Favorite, error) {
	return s.favRepo.ListByUser(ctx, userID)
}
