package api

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/analysis"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/config"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/importer"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/monitoring"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/source"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/store"
)

// configKeySelectedPeriod 当前选中财年的配置键
const configKeySelectedPeriod = "selected_period"

// Handler API 处理器
type Handler struct {
	cfg       *config.AppConfig
	store     *store.Store
	loader    *source.Loader
	coord     *importer.Coordinator
	logger    *logrus.Logger
	metrics   *monitoring.MetricsCollector
	downloads *exportDownloadStore
	exportDir string

	mu     sync.RWMutex
	engine *analysis.Engine
}

// NewHandler 创建 API 处理器
// 启动时从数据库恢复上次导入的快照
func NewHandler(cfg *config.AppConfig, st *store.Store, loader *source.Loader,
	logger *logrus.Logger, metrics *monitoring.MetricsCollector, exportDir string) *Handler {

	h := &Handler{
		cfg:       cfg,
		store:     st,
		loader:    loader,
		coord:     importer.NewCoordinator(st, loader, logger),
		logger:    logger,
		metrics:   metrics,
		downloads: newExportDownloadStore(),
		exportDir: exportDir,
	}

	if err := h.ReloadEngine(); err != nil {
		logger.WithError(err).Warn("failed to restore snapshot from database")
		h.engine = analysis.NewEngine(cfg.Analysis.Periods, nil)
	}

	return h
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 财年
	router.GET("/periods", h.ListPeriods)
	router.POST("/periods/select", h.SelectPeriod)

	// Maison 与排名
	router.GET("/maisons", h.ListMaisons)
	router.GET("/ranking", h.GetCrossYearRanking)
	router.GET("/kpis", h.GetKPIs)
	router.GET("/leaders", h.GetCategoryLeaders)
	router.GET("/top", h.GetTopMaisons)

	// 图表数据
	router.GET("/charts/comparison", h.GetComparisonChart)
	router.GET("/charts/category-totals", h.GetCategoryYearTotals)
	router.GET("/charts/maison/:name", h.GetMaisonTrend)

	// 同比与分布
	router.GET("/evolution", h.GetEvolution)
	router.GET("/distribution", h.GetCategoryDistribution)

	// 活动明细
	router.GET("/activities/category/:category", h.GetCategoryActivities)
	router.GET("/activities/maison/:name", h.GetMaisonActivities)
	router.GET("/activities/compare", h.CompareMaisonActivities)

	// 核验
	router.GET("/verify/diff", h.GetVerifyDiff)
	router.POST("/verify/rebuild", h.RebuildVerified)

	// 数据刷新
	router.POST("/refresh", h.Refresh)
	router.GET("/refresh/stream", h.RefreshStream)

	// 数据导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}

// Engine 获取当前聚合引擎
func (h *Handler) Engine() *analysis.Engine {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.engine
}

// ReloadEngine 从数据库重建聚合引擎
func (h *Handler) ReloadEngine() error {
	datasets, err := h.store.LoadAllYears()
	if err != nil {
		return err
	}

	engine := analysis.NewEngine(h.cfg.Analysis.Periods, datasets)

	h.mu.Lock()
	h.engine = engine
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.SetLoadedYears(len(datasets))
	}
	return nil
}

// selectedPeriod 当前选中财年（未设置时取最近一个有数据的财年）
func (h *Handler) selectedPeriod(engine *analysis.Engine) string {
	if v, err := h.store.GetConfigValue(configKeySelectedPeriod); err == nil && v != "" {
		if engine.Dataset(v) != nil {
			return v
		}
	}

	available := engine.AvailablePeriods()
	if len(available) == 0 {
		return ""
	}
	return available[len(available)-1]
}

// yearParam 解析 year 查询参数（缺省取当前选中财年）
func (h *Handler) yearParam(c *gin.Context, engine *analysis.Engine) string {
	year := c.Query("year")
	if year == "" {
		return h.selectedPeriod(engine)
	}
	return year
}
