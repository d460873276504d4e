package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root godoc
// @Summary Проверка, что API запущено
// @Tags health
// @Produce plain
// @Success 200 {string} string "API is running"
// @Router / [get]
func Root() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "API is running")
	}
}
