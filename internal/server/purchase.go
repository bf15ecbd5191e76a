package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	tradedomain "github.com/serendigo/pos/internal/trade/domain"
)

func (s *Server) PurchasePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// CreatePurchase records a trade. An empty cart is not an error: the
// response carries status "empty" with zero totals and nothing is written.
func (s *Server) CreatePurchase(c *gin.Context) {
	var req tradedomain.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.tradeSvc.Purchase(c.Request.Context(), req)
	if err != nil {
		s.purchaseMetrics.RecordPurchase("error")
		AbortWithError(c, err)
		return
	}

	s.purchaseMetrics.RecordPurchase(resp.Status)
	c.JSON(http.StatusOK, resp)
}
