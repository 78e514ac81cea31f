package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/xiebiao/biblioteca/internal/application/inventory"
	"github.com/xiebiao/biblioteca/internal/interface/http/dto"
	"github.com/xiebiao/biblioteca/internal/interface/http/middleware"
	"github.com/xiebiao/biblioteca/pkg/response"
)

// InventoryHandler 书店库存HTTP处理器
// 盘点操作限定在书店人员自己的书店(store取自JWT的affiliation_id)
type InventoryHandler struct {
	adjustStockUseCase *appinventory.AdjustStockUseCase
	listStockUseCase   *appinventory.ListStockUseCase
}

// NewInventoryHandler 创建库存处理器
func NewInventoryHandler(
	adjustStockUseCase *appinventory.AdjustStockUseCase,
	listStockUseCase *appinventory.ListStockUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		adjustStockUseCase: adjustStockUseCase,
		listStockUseCase:   listStockUseCase,
	}
}

// AdjustStock 库存盘点(书店人员)
// @Summary      库存盘点
// @Description  按绝对值覆盖本店某书的新书/二手在售数量
// @Tags         库存
// @Param        request body dto.AdjustStockRequest true "盘点数量"
// @Success      200 {object} response.Response "盘点成功"
// @Router       /api/v1/inventory [put]
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	storeID := middleware.GetAffiliationID(c)
	if storeID == 0 {
		response.ErrorWithCode(c, 40300, "当前账号未关联书店")
		return
	}

	result, err := h.adjustStockUseCase.Execute(c.Request.Context(), appinventory.AdjustStockRequest{
		StoreID:    storeID,
		BookID:     req.BookID,
		CopiesNew:  req.CopiesNew,
		CopiesUsed: req.CopiesUsed,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListMyStoreStock 本店库存(书店人员)
// @Summary      本店库存清单
// @Tags         库存
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/inventory [get]
func (h *InventoryHandler) ListMyStoreStock(c *gin.Context) {
	storeID := middleware.GetAffiliationID(c)
	if storeID == 0 {
		response.ErrorWithCode(c, 40300, "当前账号未关联书店")
		return
	}

	result, err := h.listStockUseCase.ByStore(c.Request.Context(), storeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListBookStock 某书在各书店的库存(公开，购书选店用)
// @Summary      图书库存分布
// @Tags         库存
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/books/{id}/stock [get]
func (h *InventoryHandler) ListBookStock(c *gin.Context) {
	bookID := parseUintParam(c, "id")
	if bookID == 0 {
		response.ErrorWithCode(c, 40000, "无效的图书ID")
		return
	}

	result, err := h.listStockUseCase.ByBook(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
