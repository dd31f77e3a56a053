package utils

import "github.com/gin-gonic/gin"

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

type Pagination struct {
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	Current int   `json:"current"`
}

// Page wraps list payloads together with their pagination info.
type Page struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

func Respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, APIResponse{Success: true, Data: data})
}

func RespondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{Success: true, Message: message})
}

func RespondPage(c *gin.Context, status int, data interface{}, total int64, take, skip int) {
	if take <= 0 {
		take = 1
	}
	pages := int((total + int64(take) - 1) / int64(take))
	current := skip/take + 1
	c.JSON(status, APIResponse{
		Success: true,
		Data: Page{
			Data:       data,
			Pagination: Pagination{Total: total, Pages: pages, Current: current},
		},
	})
}
