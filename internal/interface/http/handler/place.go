package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/biblioteca/internal/application/user"
	"github.com/xiebiao/biblioteca/pkg/response"
)

// PlaceHandler 城市/图书馆/书店参照数据HTTP处理器(公开接口)
type PlaceHandler struct {
	placesUseCase *appuser.PlacesUseCase
}

// NewPlaceHandler 创建参照数据处理器
func NewPlaceHandler(placesUseCase *appuser.PlacesUseCase) *PlaceHandler {
	return &PlaceHandler{placesUseCase: placesUseCase}
}

// ListCities 城市列表
// @Summary      城市列表
// @Tags         参照数据
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/cities [get]
func (h *PlaceHandler) ListCities(c *gin.Context) {
	result, err := h.placesUseCase.ListCities(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListLibraries 图书馆列表
// @Summary      图书馆列表
// @Tags         参照数据
// @Param        city_id query int false "城市ID(0或省略查全部)"
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/libraries [get]
func (h *PlaceHandler) ListLibraries(c *gin.Context) {
	result, err := h.placesUseCase.ListLibraries(c.Request.Context(), parseUintQuery(c, "city_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListStores 书店列表
// @Summary      书店列表
// @Tags         参照数据
// @Param        city_id query int false "城市ID(0或省略查全部)"
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/stores [get]
func (h *PlaceHandler) ListStores(c *gin.Context) {
	result, err := h.placesUseCase.ListStores(c.Request.Context(), parseUintQuery(c, "city_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// parseUintQuery 解析query中的uint参数，缺失或非法返回0
func parseUintQuery(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
