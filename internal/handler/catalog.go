package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PedroArthur06/revenue-aggregator/internal/model"
)

// Catalog exposes the voucher-partner list so the UI can render company
// pickers and per-unit prices. Read-only: partners change via deployment
// of a new catalog file, never through the API.
func Catalog(cat *model.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"companies": cat.Companies()})
	}
}
