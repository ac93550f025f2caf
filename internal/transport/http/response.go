package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
	"github.com/vladislavdragonenkov/shopease/internal/service/account"
)

// response — единый конверт всех ответов API.
type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, response{Success: true, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, response{Success: false, Message: message})
}

// writeError переводит доменные ошибки в HTTP-статусы. Неизвестные ошибки
// (сбои хранилища и т.п.) не утекают клиенту — логируются и отдаются как 500.
func writeError(c *gin.Context, logger *log.Entry, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrAmountMismatch),
		errors.Is(err, domain.ErrAmountNegative),
		errors.Is(err, domain.ErrPaymentMethodRequired),
		errors.Is(err, domain.ErrAddressIncomplete),
		errors.Is(err, account.ErrEmailRequired),
		errors.Is(err, account.ErrWeakPassword):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrPaymentDeclined):
		respondError(c, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrCartNotFound),
		errors.Is(err, domain.ErrLineNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrVariantNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrWishlistItemNotFound),
		errors.Is(err, domain.ErrAddressNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrWishlistDuplicate),
		errors.Is(err, domain.ErrOrderStateConflict):
		respondError(c, http.StatusConflict, err.Error())
	default:
		logger.WithError(err).WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("request failed")
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
