package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListMaisons 全部年份出现过的 Maison 全集
// GET /api/maisons
func (h *Handler) ListMaisons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"maisons": h.Engine().UnionMaisons()})
}

// GetCrossYearRanking 跨年排名表
// GET /api/ranking
func (h *Handler) GetCrossYearRanking(c *gin.Context) {
	engine := h.Engine()
	c.JSON(http.StatusOK, gin.H{
		"periods": engine.AvailablePeriods(),
		"rows":    engine.CrossYearRanking(),
	})
}

// GetKPIs 选定财年的 KPI 汇总
// GET /api/kpis?year=2024
func (h *Handler) GetKPIs(c *gin.Context) {
	engine := h.Engine()
	year := h.yearParam(c, engine)

	report := engine.KPIs(year)
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "该财年无可用数据"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetCategoryLeaders 选定财年的类别领先者
// GET /api/leaders?year=2024
func (h *Handler) GetCategoryLeaders(c *gin.Context) {
	engine := h.Engine()
	year := h.yearParam(c, engine)

	if engine.Dataset(year) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "该财年无可用数据"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":    year,
		"leaders": engine.CategoryLeaders(year),
	})
}

// GetTopMaisons 选定财年总提及数前 N 的 Maison
// GET /api/top?year=2024&n=10
func (h *Handler) GetTopMaisons(c *gin.Context) {
	engine := h.Engine()
	year := h.yearParam(c, engine)
	n := h.topNParam(c)

	if engine.Dataset(year) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "该财年无可用数据"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":    year,
		"maisons": engine.TopN(year, n),
	})
}

// GetComparisonChart 前 N Maison 对比图数据
// GET /api/charts/comparison?year=2024&n=10
func (h *Handler) GetComparisonChart(c *gin.Context) {
	engine := h.Engine()
	year := h.yearParam(c, engine)
	n := h.topNParam(c)

	chart := engine.TopNComparisonChart(year, n)
	if chart == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "该财年无可用数据"})
		return
	}
	c.JSON(http.StatusOK, chart)
}

// GetCategoryYearTotals 各年各类别合计（总览堆叠图）
// GET /api/charts/category-totals
func (h *Handler) GetCategoryYearTotals(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rows": h.Engine().CategoryYearTotals()})
}

// GetMaisonTrend 单 Maison 逐年演变图数据
// GET /api/charts/maison/:name
func (h *Handler) GetMaisonTrend(c *gin.Context) {
	engine := h.Engine()
	maison := c.Param("name")

	rows := engine.MaisonTrend(maison)
	if len(rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "未找到该 Maison 的数据"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"maison": maison,
		"rows":   rows,
	})
}

// GetEvolution 同比变动分析
// GET /api/evolution?year=2024
func (h *Handler) GetEvolution(c *gin.Context) {
	engine := h.Engine()
	year := h.yearParam(c, engine)

	report := engine.Evolution(year)
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "该财年或其上一期无可用数据"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetCategoryDistribution 类别分布统计
// GET /api/distribution?year=2024
func (h *Handler) GetCategoryDistribution(c *gin.Context) {
	engine := h.Engine()
	year := h.yearParam(c, engine)

	stats := engine.CategoryDistribution(year)
	if stats == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "该财年无可用数据"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"stats": stats,
	})
}

// topNParam 解析 n 查询参数（缺省取配置的 TopN）
func (h *Handler) topNParam(c *gin.Context) int {
	raw := c.Query("n")
	if raw == "" {
		return h.cfg.Analysis.TopN
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return h.cfg.Analysis.TopN
	}
	return n
}
