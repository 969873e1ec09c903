package handlers

import (
	"net/http"
	"strings"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/services"
	"github.com/gin-gonic/gin"
)

// BulkShorten handles POST /api/bulk. The body carries the raw textarea
// blob, one Caption;URL entry per line.
func BulkShorten(c *gin.Context) {
	var input struct {
		Input string `json:"input" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An input field with Caption;URL lines is required"})
		return
	}

	identityKey, ownerID := identity(c)
	lines := strings.Split(input.Input, "\n")

	results, err := bulkProc.Process(c.Request.Context(), identityKey, ownerID, lines)
	if err != nil {
		respondError(c, err)
		return
	}

	created := 0
	for _, r := range results {
		if r.Status == services.BulkStatusSuccess {
			created++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"created": created,
	})
}

// BulkExportCSV handles POST /api/bulk/export: re-serializes a bulk
// result set as the downloadable CSV.
func BulkExportCSV(c *gin.Context) {
	var input struct {
		Results []services.BulkOutcome `json:"results" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A results field is required"})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="atomzr-bulk-links.csv"`)
	c.Status(http.StatusOK)
	if err := services.WriteBulkCSV(c.Writer, input.Results); err != nil {
		c.Abort()
	}
}
