package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/biblioteca/internal/application/user"
	"github.com/xiebiao/biblioteca/internal/interface/http/dto"
	"github.com/xiebiao/biblioteca/internal/interface/http/middleware"
	"github.com/xiebiao/biblioteca/pkg/response"
)

// UserHandler 用户HTTP处理器(注册、登录、个人资料)
type UserHandler struct {
	registerUseCase *appuser.RegisterUseCase
	loginUseCase    *appuser.LoginUseCase
	logoutUseCase   *appuser.LogoutUseCase
	profileUseCase  *appuser.ProfileUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
	profileUseCase *appuser.ProfileUseCase,
) *UserHandler {
	return &UserHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
		profileUseCase:  profileUseCase,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Description  创建账号，馆员/书店人员必须指定从属单位
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      200 {object} response.Response "注册成功"
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Email:         req.Email,
		Username:      req.Username,
		Password:      req.Password,
		Role:          req.Role,
		AffiliationID: req.AffiliationID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Login 用户登录
// @Summary      用户登录
// @Description  邮箱或用户名+密码，返回JWT Token对
// @Tags         用户
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response "登录成功"
// @Failure      401 {object} response.Response "账号或密码错误"
// @Router       /api/v1/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Logout 用户登出
// @Summary      用户登出
// @Description  删除会话并将当前Token加入黑名单
// @Tags         用户
// @Success      200 {object} response.Response "登出成功"
// @Router       /api/v1/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	err := h.logoutUseCase.Execute(c.Request.Context(),
		middleware.GetUserID(c), middleware.GetAccessToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "已登出"})
}

// AddAddress 新增收货地址
// @Summary      新增收货地址
// @Tags         个人资料
// @Param        request body dto.AddAddressRequest true "地址信息"
// @Success      200 {object} response.Response "新增成功"
// @Router       /api/v1/profile/addresses [post]
func (h *UserHandler) AddAddress(c *gin.Context) {
	var req dto.AddAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	result, err := h.profileUseCase.AddAddress(c.Request.Context(), appuser.AddAddressRequest{
		UserID:    middleware.GetUserID(c),
		Recipient: req.Recipient,
		Street:    req.Street,
		City:      req.City,
		PostCode:  req.PostCode,
		Phone:     req.Phone,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListAddresses 地址列表
// @Summary      地址列表
// @Tags         个人资料
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/profile/addresses [get]
func (h *UserHandler) ListAddresses(c *gin.Context) {
	result, err := h.profileUseCase.ListAddresses(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SetDefaultAddress 设置默认地址
// @Summary      设置默认地址
// @Tags         个人资料
// @Param        id path int true "地址ID"
// @Success      200 {object} response.Response "设置成功"
// @Router       /api/v1/profile/addresses/{id}/default [put]
func (h *UserHandler) SetDefaultAddress(c *gin.Context) {
	addressID := parseUintParam(c, "id")
	if addressID == 0 {
		response.ErrorWithCode(c, 40000, "无效的地址ID")
		return
	}

	if err := h.profileUseCase.SetDefaultAddress(c.Request.Context(), middleware.GetUserID(c), addressID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"address_id": addressID})
}

// AddPaymentMethod 新增支付方式
// @Summary      新增支付方式
// @Description  卡号脱敏存储，只保留后4位
// @Tags         个人资料
// @Param        request body dto.AddPaymentRequest true "支付方式"
// @Success      200 {object} response.Response "新增成功"
// @Router       /api/v1/profile/payments [post]
func (h *UserHandler) AddPaymentMethod(c *gin.Context) {
	var req dto.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	result, err := h.profileUseCase.AddPaymentMethod(c.Request.Context(), appuser.AddPaymentRequest{
		UserID:     middleware.GetUserID(c),
		Kind:       req.Kind,
		Holder:     req.Holder,
		CardNumber: req.CardNumber,
		ExpiresAt:  req.ExpiresAt,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListPaymentMethods 支付方式列表
// @Summary      支付方式列表
// @Tags         个人资料
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/profile/payments [get]
func (h *UserHandler) ListPaymentMethods(c *gin.Context) {
	result, err := h.profileUseCase.ListPaymentMethods(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RemovePaymentMethod 删除支付方式
// @Summary      删除支付方式
// @Description  至少保留一种支付方式
// @Tags         个人资料
// @Param        id path int true "支付方式ID"
// @Success      200 {object} response.Response "删除成功"
// @Router       /api/v1/profile/payments/{id} [delete]
func (h *UserHandler) RemovePaymentMethod(c *gin.Context) {
	paymentID := parseUintParam(c, "id")
	if paymentID == 0 {
		response.ErrorWithCode(c, 40000, "无效的支付方式ID")
		return
	}

	if err := h.profileUseCase.RemovePaymentMethod(c.Request.Context(), middleware.GetUserID(c), paymentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"payment_id": paymentID})
}

// SetDefaultPayment 设置默认支付方式
// @Summary      设置默认支付方式
// @Tags         个人资料
// @Param        id path int true "支付方式ID"
// @Success      200 {object} response.Response "设置成功"
// @Router       /api/v1/profile/payments/{id}/default [put]
func (h *UserHandler) SetDefaultPayment(c *gin.Context) {
	paymentID := parseUintParam(c, "id")
	if paymentID == 0 {
		response.ErrorWithCode(c, 40000, "无效的支付方式ID")
		return
	}

	if err := h.profileUseCase.SetDefaultPayment(c.Request.Context(), middleware.GetUserID(c), paymentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"payment_id": paymentID})
}

// SaveFavorite 收藏图书
// @Summary      收藏图书
// @Tags         个人资料
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "收藏成功"
// @Router       /api/v1/profile/favorites/{id} [post]
func (h *UserHandler) SaveFavorite(c *gin.Context) {
	bookID := parseUintParam(c, "id")
	if bookID == 0 {
		response.ErrorWithCode(c, 40000, "无效的图书ID")
		return
	}

	if err := h.profileUseCase.SaveFavorite(c.Request.Context(), middleware.GetUserID(c), bookID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"book_id": bookID})
}

// RemoveFavorite 取消收藏
// @Summary      取消收藏
// @Tags         个人资料
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "取消成功"
// @Router       /api/v1/profile/favorites/{id} [delete]
func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	bookID := parseUintParam(c, "id")
	if bookID == 0 {
		response.ErrorWithCode(c, 40000, "无效的图书ID")
		return
	}

	if err := h.profileUseCase.RemoveFavorite(c.Request.Context(), middleware.GetUserID(c), bookID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"book_id": bookID})
}

// ListFavorites 收藏列表
// @Summary      收藏列表
// @Tags         个人资料
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/profile/favorites [get]
func (h *UserHandler) ListFavorites(c *gin.Context) {
	result, err := h.profileUseCase.ListFavorites(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
