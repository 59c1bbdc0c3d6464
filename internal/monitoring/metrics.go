package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector 服务指标收集器
type MetricsCollector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	importsTotal        *prometheus.CounterVec
	loadedYears         prometheus.Gauge
}

// NewMetricsCollector 创建并注册指标
func NewMetricsCollector(serviceName string) *MetricsCollector {
	mc := &MetricsCollector{}

	mc.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: serviceName + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	mc.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    serviceName + "_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	mc.importsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: serviceName + "_imports_total",
			Help: "Total number of data directory scans",
		},
		[]string{"result"},
	)

	mc.loadedYears = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: serviceName + "_loaded_years",
			Help: "Number of fiscal years currently loaded",
		},
	)

	prometheus.MustRegister(mc.httpRequestsTotal)
	prometheus.MustRegister(mc.httpRequestDuration)
	prometheus.MustRegister(mc.importsTotal)
	prometheus.MustRegister(mc.loadedYears)

	return mc
}

// MetricsMiddleware HTTP 请求指标中间件
func (mc *MetricsCollector) MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())

		mc.httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		mc.httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).
			Observe(time.Since(start).Seconds())
	}
}

// RecordImport 记录一次数据目录扫描
func (mc *MetricsCollector) RecordImport(hadErrors bool) {
	result := "ok"
	if hadErrors {
		result = "error"
	}
	mc.importsTotal.WithLabelValues(result).Inc()
}

// SetLoadedYears 更新当前已加载财年数
func (mc *MetricsCollector) SetLoadedYears(n int) {
	mc.loadedYears.Set(float64(n))
}

// Handler Prometheus 指标输出端点
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
