package dto

// AddBookRequest 新增图书请求
// 价格单位为分(欧分)，避免浮点精度问题
type AddBookRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Author      string `json:"author" binding:"required,max=100"`
	Genre       string `json:"genre" binding:"required,max=50"`
	Year        int    `json:"year" binding:"omitempty,min=0"`
	Pages       int    `json:"pages" binding:"required,min=1"`
	PriceNew    int64  `json:"price_new" binding:"required,min=1"`
	PriceUsed   int64  `json:"price_used" binding:"omitempty,min=0"`
	Description string `json:"description"`
	ISBN        string `json:"isbn"`
}

// EditBookRequest 编辑图书请求(零值字段保持原值)
type EditBookRequest struct {
	Title       string `json:"title" binding:"omitempty,max=200"`
	Author      string `json:"author" binding:"omitempty,max=100"`
	Genre       string `json:"genre" binding:"omitempty,max=50"`
	Year        int    `json:"year" binding:"omitempty,min=0"`
	Pages       int    `json:"pages" binding:"omitempty,min=1"`
	PriceNew    int64  `json:"price_new" binding:"omitempty,min=1"`
	PriceUsed   int64  `json:"price_used" binding:"omitempty,min=0"`
	Description string `json:"description"`
}

// ListBooksQuery 图书列表查询参数
type ListBooksQuery struct {
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
	Keyword  string `form:"keyword"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc year_desc created_at_desc"`
}
