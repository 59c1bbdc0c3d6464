package api

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/exporter"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/source"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/verify"
)

// GetVerifyDiff 原始计数与核验计数的差异
// GET /api/verify/diff?year=2024
func (h *Handler) GetVerifyDiff(c *gin.Context) {
	engine := h.Engine()
	year := h.yearParam(c, engine)

	ds := engine.Dataset(year)
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "该财年无可用数据"})
		return
	}
	if len(ds.Details) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "该财年无活动明细，无法核验"})
		return
	}

	verified := verify.Derive(ds.Details)
	c.JSON(http.StatusOK, verify.Compare(year, ds.Mentions, verified))
}

type rebuildVerifiedResponse struct {
	Year        string `json:"year"`
	File        string `json:"file"`
	MaisonCount int    `json:"maisonCount"`
	Total       int    `json:"totalMentions"`
}

// RebuildVerified 由活动明细重新生成核验提及工作簿
// 写回数据目录后重新扫描即可让核验文件参与变体回退
// POST /api/verify/rebuild?year=2024
func (h *Handler) RebuildVerified(c *gin.Context) {
	engine := h.Engine()
	year := h.yearParam(c, engine)

	ds := engine.Dataset(year)
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "该财年无可用数据"})
		return
	}
	if len(ds.Details) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "该财年无活动明细，无法核验"})
		return
	}

	records := verify.Derive(ds.Details)

	fileName := source.MentionsFileName(year, model.VariantVerified)
	outPath := filepath.Join(h.loader.DataDir(), fileName)
	if err := exporter.WriteVerifiedMentions(records, outPath); err != nil {
		h.logger.WithError(err).Error("failed to write verified workbook")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	total := 0
	for _, r := range records {
		total += r.TotalMentions
	}

	c.JSON(http.StatusOK, rebuildVerifiedResponse{
		Year:        year,
		File:        fileName,
		MaisonCount: len(records),
		Total:       total,
	})
}
