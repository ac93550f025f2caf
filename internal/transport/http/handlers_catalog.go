package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultCatalogLimit = 100

func (s *Server) listProducts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultCatalogLimit)))
	if err != nil || limit < 1 || limit > 1000 {
		limit = defaultCatalogLimit
	}

	products, err := s.catalog.ListProducts(limit)
	if err != nil {
		writeError(c, s.logger, err)
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	respondOK(c, http.StatusOK, views)
}

func (s *Server) getProduct(c *gin.Context) {
	product, err := s.catalog.GetProduct(c.Param("productID"))
	if err != nil {
		writeError(c, s.logger, err)
		return
	}
	respondOK(c, http.StatusOK, newProductView(product))
}
