package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type periodsResponse struct {
	Periods        []string `json:"periods"`
	Available      []string `json:"available"`
	SelectedPeriod string   `json:"selectedPeriod"`
}

// ListPeriods 获取财年列表
// GET /api/periods
func (h *Handler) ListPeriods(c *gin.Context) {
	engine := h.Engine()

	c.JSON(http.StatusOK, periodsResponse{
		Periods:        engine.Periods(),
		Available:      engine.AvailablePeriods(),
		SelectedPeriod: h.selectedPeriod(engine),
	})
}

type selectPeriodRequest struct {
	Period string `json:"period"`
}

// SelectPeriod 切换当前选中财年
// POST /api/periods/select
func (h *Handler) SelectPeriod(c *gin.Context) {
	var req selectPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	engine := h.Engine()
	if engine.Dataset(req.Period) == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "该财年无可用数据"})
		return
	}

	if err := h.store.SetConfigValue(configKeySelectedPeriod, req.Period); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"selectedPeriod": req.Period})
}
