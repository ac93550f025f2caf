package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Quantity  int32  `json:"quantity"`
}

type updateCartItemRequest struct {
	CartItemID string `json:"cartItemId"`
	Quantity   int32  `json:"quantity"`
}

func (s *Server) getCart(c *gin.Context) {
	auth := authFrom(c)
	view, err := s.carts.GetCart(auth, c.Param("userID"))
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusOK, newCartView(view))
}

func (s *Server) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	auth := authFrom(c)
	if err := s.carts.AddItem(auth, req.ProductID, req.VariantID, req.Quantity); err != nil {
		writeError(c, s.logger, err)
		return
	}

	view, err := s.carts.GetCart(auth, auth.UserID)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, newCartView(view))
}

func (s *Server) updateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	auth := authFrom(c)

	// Количество меньше единицы трактуется как удаление позиции.
	var err error
	if req.Quantity < 1 {
		err = s.carts.RemoveItem(auth, req.CartItemID)
	} else {
		err = s.carts.SetQuantity(auth, req.CartItemID, req.Quantity)
	}
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	view, err := s.carts.GetCart(auth, auth.UserID)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusOK, newCartView(view))
}

func (s *Server) removeCartItem(c *gin.Context) {
	auth := authFrom(c)
	if err := s.carts.RemoveItem(auth, c.Param("cartItemID")); err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"removed": true})
}
