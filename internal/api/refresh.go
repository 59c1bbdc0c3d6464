package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Refresh 重扫数据目录并重建聚合引擎
// POST /api/refresh
func (h *Handler) Refresh(c *gin.Context) {
	result := h.coord.ImportSync(h.cfg.Analysis.Periods)

	if err := h.ReloadEngine(); err != nil {
		h.logger.WithError(err).Error("failed to reload engine after refresh")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "刷新后重建分析数据失败"})
		return
	}

	if h.metrics != nil {
		h.metrics.RecordImport(len(result.YearsErr) > 0)
	}

	c.JSON(http.StatusOK, result)
}

// RefreshStream 重扫数据目录 (SSE 流式进度)
// GET /api/refresh/stream
func (h *Handler) RefreshStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	hadErrors := false
	for event := range h.coord.Import(h.cfg.Analysis.Periods) {
		if event.Type == "year_error" {
			hadErrors = true
		}

		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}

		// SSE 格式: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}

	if err := h.ReloadEngine(); err != nil {
		h.logger.WithError(err).Error("failed to reload engine after refresh")
	}
	if h.metrics != nil {
		h.metrics.RecordImport(hadErrors)
	}
}
