package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
)

// GetCategoryActivities 某类别下各 Maison 按年份的活动清单
// GET /api/activities/category/:category
func (h *Handler) GetCategoryActivities(c *gin.Context) {
	name := c.Param("category")
	if !model.IsValidCategory(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "非法活动类别"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": name,
		"rows":     h.Engine().CategoryActivities(model.Category(name)),
	})
}

// GetMaisonActivities 某 Maison 按类别、按年份的活动清单
// GET /api/activities/maison/:name
func (h *Handler) GetMaisonActivities(c *gin.Context) {
	maison := c.Param("name")

	categories := h.Engine().MaisonActivities(maison)
	c.JSON(http.StatusOK, gin.H{
		"maison":     maison,
		"categories": categories,
	})
}

// CompareMaisonActivities 选定财年下多个 Maison 的活动对照
// GET /api/activities/compare?year=2024&maisons=Dior,Fendi
func (h *Handler) CompareMaisonActivities(c *gin.Context) {
	engine := h.Engine()
	year := h.yearParam(c, engine)

	raw := c.Query("maisons")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请至少选择一个 Maison"})
		return
	}
	maisons := make([]string, 0)
	for _, m := range strings.Split(raw, ",") {
		m = strings.TrimSpace(m)
		if m != "" {
			maisons = append(maisons, m)
		}
	}
	if len(maisons) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请至少选择一个 Maison"})
		return
	}

	table := engine.CompareActivities(year, maisons)
	if table == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "该财年无可用数据"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":    year,
		"maisons": maisons,
		"table":   table,
	})
}
