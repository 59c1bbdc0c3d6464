package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/exporter"
)

// exportDownloadTTL 下载令牌有效期
const exportDownloadTTL = 10 * time.Minute

// Export 导出分析结果 Excel，返回一次性下载令牌
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	engine := h.Engine()
	if len(engine.AvailablePeriods()) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "暂无已导入的数据可供导出"})
		return
	}

	fileName := fmt.Sprintf("maisonlens_analysis_%s.xlsx", time.Now().Format("20060102_150405"))
	outPath := filepath.Join(h.exportDir, uuid.NewString()+".xlsx")

	lastPercent := -1
	if err := exporter.ExportAnalysis(engine, outPath, func(p exporter.ProgressEvent) {
		if p.Percent == lastPercent {
			return
		}
		lastPercent = p.Percent
		h.logger.WithFields(map[string]interface{}{
			"percent": p.Percent,
			"stage":   p.Stage,
		}).Debug("export progress")
	}); err != nil {
		h.logger.WithError(err).Error("export failed")
		_ = os.Remove(outPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}

	token := h.downloads.put(outPath, fileName, exportDownloadTTL)

	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"file":        fileName,
		"downloadUrl": "/api/export/download/" + token,
	})
}

// DownloadExport 下载导出的 Excel 文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}
