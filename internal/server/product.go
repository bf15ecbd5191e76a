package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/serendigo/pos/internal/catalog/domain"
)

type productResponse struct {
	ID    int64  `json:"prdId"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// GetProducts looks a product up by its code. A miss, including a blank
// code, returns an empty list rather than an error so point-of-sale clients
// can treat unknown codes as free-entry items.
func (s *Server) GetProducts(c *gin.Context) {
	code := strings.TrimSpace(c.Query("code"))

	product, err := s.catalogSvc.FindByCode(c.Request.Context(), code)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	items := []productResponse{}
	if product != nil {
		items = append(items, productResponse{
			ID:    product.ID,
			Code:  product.Code,
			Name:  product.Name,
			Price: product.Price,
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) BulkUpsertProducts(c *gin.Context) {
	var req catalogdomain.BulkUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.catalogSvc.BulkUpsert(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DevSeedProducts(c *gin.Context) {
	inserted, err := s.catalogSvc.Seed(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"inserted": inserted})
}
