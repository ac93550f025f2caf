package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

const defaultOrdersLimit = 50

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) checkoutCart(c *gin.Context) {
	order, err := s.checkout.CheckoutCart(authFrom(c))
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, newOrderView(order))
}

func (s *Server) listOrders(c *gin.Context) {
	auth := authFrom(c)
	orders, err := s.checkout.ListOrders(auth, auth.UserID, ordersLimit(c))
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusOK, newOrderViews(orders))
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.checkout.GetOrder(authFrom(c), c.Param("orderID"))
	if err != nil {
		// Чужой заказ выглядит как несуществующий: не раскрываем его наличие.
		if errors.Is(err, domain.ErrForbidden) {
			respondError(c, http.StatusNotFound, domain.ErrOrderNotFound.Error())
			return
		}
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusOK, newOrderView(order))
}

func (s *Server) cancelOrder(c *gin.Context) {
	order, err := s.checkout.CancelOrder(authFrom(c), c.Param("orderID"))
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			respondError(c, http.StatusNotFound, domain.ErrOrderNotFound.Error())
			return
		}
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusOK, newOrderView(order))
}

func (s *Server) listAllOrders(c *gin.Context) {
	orders, err := s.checkout.ListAllOrders(authFrom(c), ordersLimit(c))
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusOK, newOrderViews(orders))
}

// updateOrderStatus — админский перевод заказа в cancelled. Статус paid
// достижим только через проведение платежа, поэтому здесь отклоняется.
func (s *Server) updateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if domain.OrderStatus(req.Status) != domain.OrderStatusCancelled {
		respondError(c, http.StatusBadRequest, "only cancellation is allowed here")
		return
	}

	order, err := s.checkout.CancelOrder(authFrom(c), c.Param("orderID"))
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusOK, newOrderView(order))
}

func ordersLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultOrdersLimit)))
	if err != nil || limit < 1 || limit > 500 {
		return defaultOrdersLimit
	}
	return limit
}
