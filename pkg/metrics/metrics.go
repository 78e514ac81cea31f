// Package metrics 提供基于Prometheus的指标收集
//
// 核心概念：
// - Counter（计数器）：只增不减的累计值，如订单总数、HTTP请求总数
// - Gauge（仪表盘）：可增可减的瞬时值，如当前活跃预约数
// - Histogram（直方图）：观测值分布，如HTTP请求耗时（自动计算P50/P90/P99）
//
// Prometheus Server定期抓取/metrics端点，Grafana负责可视化与告警。
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP层指标
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biblioteca_http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "biblioteca_http_request_duration_seconds",
			Help:    "HTTP请求耗时分布",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// 业务指标
// 由应用层在用例成功后递增，失败路径不计数
var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "biblioteca_orders_created_total",
		Help: "成功创建的订单总数",
	})

	ReservationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "biblioteca_reservations_total",
		Help: "成功创建的预约总数",
	})

	WaitlistPromotionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "biblioteca_waitlist_promotions_total",
		Help: "等待队列晋升为预约的总次数",
	})

	LoansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "biblioteca_loans_total",
		Help: "借阅/归还操作总数",
	}, []string{"action"})
)

// GinMiddleware HTTP指标采集中间件
// 使用c.FullPath()而非c.Request.URL.Path，避免path参数导致标签基数爆炸
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		httpRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

// Handler 暴露/metrics端点
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
