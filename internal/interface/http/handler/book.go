package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appcatalog "github.com/xiebiao/biblioteca/internal/application/catalog"
	"github.com/xiebiao/biblioteca/internal/interface/http/dto"
	"github.com/xiebiao/biblioteca/pkg/response"
)

// BookHandler 图书目录HTTP处理器
// Handler只做三件事:解析请求、调用应用层、返回响应
type BookHandler struct {
	addBookUseCase     *appcatalog.AddBookUseCase
	editBookUseCase    *appcatalog.EditBookUseCase
	removeBookUseCase  *appcatalog.RemoveBookUseCase
	listBooksUseCase   *appcatalog.ListBooksUseCase
	searchBooksUseCase *appcatalog.SearchBooksUseCase
	getBookUseCase     *appcatalog.GetBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	addBookUseCase *appcatalog.AddBookUseCase,
	editBookUseCase *appcatalog.EditBookUseCase,
	removeBookUseCase *appcatalog.RemoveBookUseCase,
	listBooksUseCase *appcatalog.ListBooksUseCase,
	searchBooksUseCase *appcatalog.SearchBooksUseCase,
	getBookUseCase *appcatalog.GetBookUseCase,
) *BookHandler {
	return &BookHandler{
		addBookUseCase:     addBookUseCase,
		editBookUseCase:    editBookUseCase,
		removeBookUseCase:  removeBookUseCase,
		listBooksUseCase:   listBooksUseCase,
		searchBooksUseCase: searchBooksUseCase,
		getBookUseCase:     getBookUseCase,
	}
}

// AddBook 新增图书
// @Summary      新增图书
// @Description  录入图书，作者和体裁自动归一化，新书自动进入可借清单
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.AddBookRequest true "图书信息"
// @Success      200 {object} response.Response "新增成功"
// @Router       /api/v1/books [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	result, err := h.addBookUseCase.Execute(c.Request.Context(), appcatalog.AddBookRequest{
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Year:        req.Year,
		Pages:       req.Pages,
		PriceNew:    req.PriceNew,
		PriceUsed:   req.PriceUsed,
		Description: req.Description,
		ISBN:        req.ISBN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// EditBook 编辑图书
// @Summary      编辑图书
// @Description  原地更新图书信息，未传字段保持原值
// @Tags         图书
// @Param        id path int true "图书ID"
// @Param        request body dto.EditBookRequest true "图书信息"
// @Success      200 {object} response.Response "编辑成功"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) EditBook(c *gin.Context) {
	bookID := parseUintParam(c, "id")
	if bookID == 0 {
		response.ErrorWithCode(c, 40000, "无效的图书ID")
		return
	}

	var req dto.EditBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	result, err := h.editBookUseCase.Execute(c.Request.Context(), appcatalog.EditBookRequest{
		BookID:      bookID,
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Year:        req.Year,
		Pages:       req.Pages,
		PriceNew:    req.PriceNew,
		PriceUsed:   req.PriceUsed,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RemoveBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "删除成功"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) RemoveBook(c *gin.Context) {
	bookID := parseUintParam(c, "id")
	if bookID == 0 {
		response.ErrorWithCode(c, 40000, "无效的图书ID")
		return
	}

	if err := h.removeBookUseCase.Execute(c.Request.Context(), bookID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"book_id": bookID})
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  分页查询，支持关键词搜索(标题/作者/体裁)与排序
// @Tags         图书
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Param        keyword query string false "关键词"
// @Param        sort_by query string false "排序(price_asc/price_desc/year_desc/created_at_desc)"
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var query dto.ListBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appcatalog.ListBooksRequest{
		Page:     query.Page,
		PageSize: query.PageSize,
		Keyword:  query.Keyword,
		SortBy:   query.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBook 图书详情
// @Summary      图书详情
// @Description  返回图书信息，附可借状态与平均评分
// @Tags         图书
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	bookID := parseUintParam(c, "id")
	if bookID == 0 {
		response.ErrorWithCode(c, 40000, "无效的图书ID")
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SearchByTitle 按书名精确查找
// @Summary      按书名查找图书
// @Tags         图书
// @Param        title query string true "书名"
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/books/search [get]
func (h *BookHandler) SearchByTitle(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		response.ErrorWithCode(c, 40000, "书名不能为空")
		return
	}

	result, err := h.searchBooksUseCase.FindByTitle(c.Request.Context(), title)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SearchByAuthor 按作者查找
// @Summary      查找某作者的全部图书
// @Tags         图书
// @Param        author query string true "作者"
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/books/by-author [get]
func (h *BookHandler) SearchByAuthor(c *gin.Context) {
	author := c.Query("author")
	if author == "" {
		response.ErrorWithCode(c, 40000, "作者不能为空")
		return
	}

	result, err := h.searchBooksUseCase.SearchByAuthor(c.Request.Context(), author)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListAuthors 全部作者
// @Summary      作者列表
// @Tags         图书
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/books/authors [get]
func (h *BookHandler) ListAuthors(c *gin.Context) {
	result, err := h.searchBooksUseCase.ListAuthors(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListGenres 全部体裁
// @Summary      体裁列表
// @Tags         图书
// @Success      200 {object} response.Response "查询成功"
// @Router       /api/v1/books/genres [get]
func (h *BookHandler) ListGenres(c *gin.Context) {
	result, err := h.searchBooksUseCase.ListGenres(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// parseUintParam 解析path中的uint参数，非法返回0
func parseUintParam(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
