package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/shopease/internal/domain"
)

type addressRequest struct {
	RecipientName string `json:"recipientName"`
	Phone         string `json:"phone"`
	Line1         string `json:"line1"`
	Line2         string `json:"line2"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	IsDefault     bool   `json:"isDefault"`
}

func (r addressRequest) toDomain() domain.Address {
	return domain.Address{
		RecipientName: r.RecipientName,
		Phone:         r.Phone,
		Line1:         r.Line1,
		Line2:         r.Line2,
		City:          r.City,
		State:         r.State,
		PostalCode:    r.PostalCode,
		Country:       r.Country,
		IsDefault:     r.IsDefault,
	}
}

func (s *Server) listAddresses(c *gin.Context) {
	auth := authFrom(c)
	addresses, err := s.addresses.List(auth)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusOK, newAddressViews(addresses))
}

func (s *Server) createAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	auth := authFrom(c)
	addr, err := s.addresses.Create(auth, req.toDomain())
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusCreated, newAddressView(addr))
}

func (s *Server) updateAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	auth := authFrom(c)
	input := req.toDomain()
	input.ID = c.Param("addressID")

	addr, err := s.addresses.Update(auth, input)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusOK, newAddressView(addr))
}

func (s *Server) deleteAddress(c *gin.Context) {
	auth := authFrom(c)
	if err := s.addresses.Delete(auth, c.Param("addressID")); err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}
