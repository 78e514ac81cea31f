package user

import (
	"context"

	"github.com/xiebiao/biblioteca/internal/domain/catalog"
	"github.com/xiebiao/biblioteca/internal/domain/user"
)

// ProfileUseCase 个人资料用例(地址、支付方式、收藏)
type ProfileUseCase struct {
	profileService user.ProfileService
	bookRepo       catalog.Repository
}

// NewProfileUseCase 创建个人资料用例
func NewProfileUseCase(profileService user.ProfileService, bookRepo catalog.Repository) *ProfileUseCase {
	return &ProfileUseCase{profileService: profileService, bookRepo: bookRepo}
}

// AddAddressRequest 新增地址请求DTO
type AddAddressRequest struct {
	UserID    uint
	Recipient string
	Street    string
	City      string
	PostCode  string
	Phone     string
	IsDefault bool
}

// AddressResponse 地址响应DTO
type AddressResponse struct {
	ID        uint   `json:"id"`
	Recipient string `json:"recipient"`
	Street    string `json:"street"`
	City      string `json:"city"`
	PostCode  string `json:"post_code"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"is_default"`
}

// AddAddress 新增收货地址
func (uc *ProfileUseCase) AddAddress(ctx context.Context, req AddAddressRequest) (*AddressResponse, error) {
	addr := &user.Address{
		UserID:    req.UserID,
		Recipient: req.Recipient,
		Street:    req.Street,
		City:      req.City,
		PostCode:  req.PostCode,
		Phone:     req.Phone,
		IsDefault: req.IsDefault,
	}
	if err := uc.profileService.AddAddress(ctx, addr); err != nil {
		return nil, err
	}
	return toAddressResponse(addr), nil
}

// ListAddresses 地址列表
func (uc *ProfileUseCase) ListAddresses(ctx context.Context, userID uint) ([]AddressResponse, error) {
	addrs, err := uc.profileService.ListAddresses(ctx, userID)
	if err != nil {
		return nil, err
	}
	list := make([]AddressResponse, len(addrs))
	for i, a := range addrs {
		list[i] = *toAddressResponse(a)
	}
	return list, nil
}

// SetDefaultAddress 设置默认地址
func (uc *ProfileUseCase) SetDefaultAddress(ctx context.Context, userID, addressID uint) error {
	return uc.profileService.SetDefaultAddress(ctx, userID, addressID)
}

// AddPaymentRequest 新增支付方式请求DTO
type AddPaymentRequest struct {
	UserID     uint
	Kind       string
	Holder     string
	CardNumber string // 明文卡号，仅用于校验与脱敏
	ExpiresAt  string // MM/YY
	IsDefault  bool
}

// PaymentResponse 支付方式响应DTO(只暴露脱敏卡号)
type PaymentResponse struct {
	ID           uint   `json:"id"`
	Kind         string `json:"kind"`
	Holder       string `json:"holder"`
	MaskedNumber string `json:"masked_number"`
	ExpiresAt    string `json:"expires_at"`
	IsDefault    bool   `json:"is_default"`
}

// AddPaymentMethod 新增支付方式
func (uc *ProfileUseCase) AddPaymentMethod(ctx context.Context, req AddPaymentRequest) (*PaymentResponse, error) {
	pm, err := uc.profileService.AddPaymentMethod(ctx, req.UserID, user.AddPaymentParams{
		Kind:       req.Kind,
		Holder:     req.Holder,
		CardNumber: req.CardNumber,
		ExpiresAt:  req.ExpiresAt,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(pm), nil
}

// ListPaymentMethods 支付方式列表
func (uc *ProfileUseCase) ListPaymentMethods(ctx context.Context, userID uint) ([]PaymentResponse, error) {
	pms, err := uc.profileService.ListPaymentMethods(ctx, userID)
	if err != nil {
		return nil, err
	}
	list := make([]PaymentResponse, len(pms))
	for i, pm := range pms {
		list[i] = *toPaymentResponse(pm)
	}
	return list, nil
}

// RemovePaymentMethod 删除支付方式
func (uc *ProfileUseCase) RemovePaymentMethod(ctx context.Context, userID, paymentID uint) error {
	return uc.profileService.RemovePaymentMethod(ctx, userID, paymentID)
}

// SetDefaultPayment 设置默认支付方式
func (uc *ProfileUseCase) SetDefaultPayment(ctx context.Context, userID, paymentID uint) error {
	return uc.profileService.SetDefaultPayment(ctx, userID, paymentID)
}

// FavoriteResponse 收藏响应DTO(附图书标题)
type FavoriteResponse struct {
	BookID    uint   `json:"book_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

// SaveFavorite 收藏图书
func (uc *ProfileUseCase) SaveFavorite(ctx context.Context, userID, bookID uint) error {
	// 图书必须存在
	if _, err := uc.bookRepo.FindByID(ctx, bookID); err != nil {
		return err
	}
	return uc.profileService.SaveFavorite(ctx, userID, bookID)
}

// RemoveFavorite 取消收藏
func (uc *ProfileUseCase) RemoveFavorite(ctx context.Context, userID, bookID uint) error {
	return uc.profileService.RemoveFavorite(ctx, userID, bookID)
}

// ListFavorites 收藏列表
// 回表补充图书标题与作者；图书已被下架时跳过标题
func (uc *ProfileUseCase) ListFavorites(ctx context.Context, userID uint) ([]FavoriteResponse, error) {
	favs, err := uc.profileService.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	list := make([]FavoriteResponse, len(favs))
	for i, f := range favs {
		item := FavoriteResponse{
			BookID:    f.BookID,
			CreatedAt: f.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if book, err := uc.bookRepo.FindByID(ctx, f.BookID); err == nil {
			item.Title = book.Title
			item.Author = book.Author
		}
		list[i] = item
	}
	return list, nil
}

func toAddressResponse(a *user.Address) *AddressResponse {
	return &AddressResponse{
		ID:        a.ID,
		Recipient: a.Recipient,
		Street:    a.Street,
		City:      a.City,
		PostCode:  a.PostCode,
		Phone:     a.Phone,
		IsDefault: a.IsDefault,
	}
}

func toPaymentResponse(pm *user.PaymentMethod) *PaymentResponse {
	return &PaymentResponse{
		ID:           pm.ID,
		Kind:         pm.Kind,
		Holder:       pm.Holder,
		MaskedNumber: pm.MaskedNumber(),
		ExpiresAt:    pm.ExpiresAt,
		IsDefault:    pm.IsDefault,
	}
}
