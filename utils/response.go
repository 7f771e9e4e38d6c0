package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondSuccess 统一成功响应
func RespondSuccess(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": data,
		"meta": meta,
	})
}
