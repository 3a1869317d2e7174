package httpresp

import "github.com/gin-gonic/gin"

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(201, data)
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

func Paginated[T any](c *gin.Context, items []T, total int64, page, limit int) {
	c.JSON(200, Page[T]{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
