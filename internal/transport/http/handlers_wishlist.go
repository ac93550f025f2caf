package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addWishlistItemRequest struct {
	ProductID string `json:"productId"`
}

func (s *Server) listWishlist(c *gin.Context) {
	auth := authFrom(c)
	items, err := s.wishlists.List(auth)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusOK, newWishlistItemViews(items))
}

func (s *Server) addWishlistItem(c *gin.Context) {
	var req addWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
		respondError(c, http.StatusBadRequest, "product id is required")
		return
	}

	auth := authFrom(c)
	item, err := s.wishlists.Add(auth, req.ProductID)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, newWishlistItemView(item))
}

func (s *Server) removeWishlistItem(c *gin.Context) {
	auth := authFrom(c)
	if err := s.wishlists.Remove(auth, c.Param("itemID")); err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"removed": true})
}
