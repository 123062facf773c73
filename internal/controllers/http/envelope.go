package http

import (
	"errors"
	"net/http"

	"comanda-service/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ErrorBody struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Envelope wraps every response body.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

func okMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

func failWith(c *gin.Context, status int, message string, details any) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message, Error: &ErrorBody{Message: message, Details: details}})
}

// fail maps the domain taxonomy onto HTTP statuses.
func fail(c *gin.Context, err error) {
	var (
		validationErr *domain.ValidationError
		authErr       *domain.AuthError
		forbiddenErr  *domain.ForbiddenError
		notFoundErr   *domain.NotFoundError
		stateErr      *domain.InvalidStateError
		transitionErr *domain.InvalidTransitionError
	)
	switch {
	case errors.As(err, &validationErr):
		var details any
		if validationErr.Field != "" {
			details = gin.H{"field": validationErr.Field}
		}
		failWith(c, http.StatusBadRequest, validationErr.Error(), details)
	case errors.As(err, &authErr):
		failWith(c, http.StatusUnauthorized, authErr.Error(), nil)
	case errors.As(err, &forbiddenErr):
		failWith(c, http.StatusForbidden, forbiddenErr.Error(), nil)
	case errors.As(err, &notFoundErr):
		failWith(c, http.StatusNotFound, notFoundErr.Error(), gin.H{"resource": notFoundErr.Resource, "id": notFoundErr.ID})
	case errors.As(err, &stateErr):
		failWith(c, http.StatusConflict, stateErr.Error(), nil)
	case errors.As(err, &transitionErr):
		failWith(c, http.StatusUnprocessableEntity, transitionErr.Error(), gin.H{"entity": transitionErr.Entity, "from": transitionErr.From, "to": transitionErr.To})
	default:
		zap.L().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		failWith(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

func badRequest(c *gin.Context, err error) {
	failWith(c, http.StatusBadRequest, err.Error(), nil)
}
