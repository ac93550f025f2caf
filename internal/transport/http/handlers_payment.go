package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type settlePaymentRequest struct {
	OrderID       string `json:"orderId"`
	AmountMinor   int64  `json:"amountMinor"`
	PaymentMethod string `json:"paymentMethod"`
	Details       string `json:"details"`
}

// Платёжные маршруты, в отличие от /orders, отдают чужой заказ как 403:
// оплата всегда идёт по заказу, id которого владелец уже знает.
func (s *Server) settlePayment(c *gin.Context) {
	var req settlePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	pay, err := s.payments.Settle(authFrom(c), req.OrderID, req.AmountMinor, req.PaymentMethod, req.Details)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, newPaymentView(pay))
}

func (s *Server) getPayment(c *gin.Context) {
	pay, err := s.payments.GetByOrder(authFrom(c), c.Param("orderID"))
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusOK, newPaymentView(pay))
}
