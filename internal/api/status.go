package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/store"
)

type statusResponse struct {
	Service        string               `json:"service"`
	LoadedYears    []string             `json:"loadedYears"`
	YearFiles      []store.YearFileInfo `json:"yearFiles"`
	SelectedPeriod string               `json:"selectedPeriod"`
	RecentImports  []store.ImportLogEntry `json:"recentImports"`
}

// GetStatus 系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	engine := h.Engine()

	yearFiles, err := h.store.ListYearFiles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	imports, err := h.store.ListImportLog(5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, statusResponse{
		Service:        "maisonlens",
		LoadedYears:    engine.AvailablePeriods(),
		YearFiles:      yearFiles,
		SelectedPeriod: h.selectedPeriod(engine),
		RecentImports:  imports,
	})
}
