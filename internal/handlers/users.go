package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"countyapi/internal/models"
)

type UserStore interface {
	InsertUser(ctx context.Context, name, email string) (uint, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListUsers godoc
// @Summary Список пользователей
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} ErrorResponse
// @Router /users [get]
func ListUsers(store UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := store.ListUsers(c.Request.Context())
		if err != nil {
			logrus.WithError(err).Warn("list users failed")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// CreateUser godoc
// @Summary Создать пользователя
// @Description Дубликат email возвращается как 500, как и любая другая ошибка хранилища.
// @Tags users
// @Accept json
// @Produce json
// @Param input body CreateUserRequest true "данные"
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users [post]
func CreateUser(store UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var r CreateUserRequest
		// пустое тело трактуем как {}
		if c.Request.Body != nil && c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&r); err != nil && !errors.Is(err, io.EOF) {
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
				return
			}
		}
		if r.Name == "" || r.Email == "" {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Name and email are required"})
			return
		}
		id, err := store.InsertUser(c.Request.Context(), r.Name, r.Email)
		if err != nil {
			logrus.WithError(err).Warn("insert user failed")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusCreated, CreatedResponse{ID: id})
	}
}
