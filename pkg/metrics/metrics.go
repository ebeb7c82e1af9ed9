// Package metrics 提供基于Prometheus的指标收集
//
// 指标分两类：
// - HTTP层：请求总数、耗时、处理中请求数（gin中间件记录）
// - 业务层：库存变动、调拨、收货、低库存告警、事件发布
//
// 使用方式：
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// 命名规范：
// - Counter以_total结尾（stock_mutations_total）
// - Histogram以单位结尾（http_request_duration_seconds）
// - Gauge使用现在时态（alerts_open）
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// 库存台账指标

	// StockMutationsTotal 库存变动总数（Counter）
	// 标签：op（set/credit/debit）、result（success/failure）
	StockMutationsTotal *prometheus.CounterVec

	// TransfersTotal 调拨总数（Counter）
	// 标签：result（success/failure）
	TransfersTotal *prometheus.CounterVec

	// TransferDuration 调拨耗时（Histogram）
	TransferDuration prometheus.Histogram

	// 告警指标

	// AlertsOpenedTotal 低库存告警打开总数（Counter）
	AlertsOpenedTotal prometheus.Counter

	// AlertsResolvedTotal 低库存告警解除总数（Counter）
	AlertsResolvedTotal prometheus.Counter

	// AlertEvaluationFailures 告警评估失败总数（Counter）
	// 告警是尽力而为的派生状态，失败不回滚台账，但必须可观测
	AlertEvaluationFailures prometheus.Counter

	// 采购指标

	// PurchaseOrdersCreatedTotal 采购单创建总数（Counter）
	PurchaseOrdersCreatedTotal prometheus.Counter

	// PurchaseOrdersReceivedTotal 采购单收货总数（Counter）
	PurchaseOrdersReceivedTotal prometheus.Counter

	// ReceiveDuration 收货处理耗时（Histogram）
	ReceiveDuration prometheus.Histogram

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：routing_key（alert.opened/stock.transferred等）、result
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次，使用promauto注册到默认Registry
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	// 库存台账指标
	StockMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_mutations_total",
			Help: "库存变动总数",
		},
		[]string{"op", "result"},
	)

	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_transfers_total",
			Help: "库存调拨总数",
		},
		[]string{"result"},
	)

	TransferDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stock_transfer_duration_seconds",
			Help:    "库存调拨耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	// 告警指标
	AlertsOpenedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "low_stock_alerts_opened_total",
			Help: "低库存告警打开总数",
		},
	)

	AlertsResolvedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "low_stock_alerts_resolved_total",
			Help: "低库存告警解除总数",
		},
	)

	AlertEvaluationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "low_stock_alert_evaluation_failures_total",
			Help: "告警评估失败总数",
		},
	)

	// 采购指标
	PurchaseOrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchase_orders_created_total",
			Help: "采购单创建总数",
		},
	)

	PurchaseOrdersReceivedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchase_orders_received_total",
			Help: "采购单收货总数",
		},
	)

	ReceiveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "purchase_order_receive_duration_seconds",
			Help:    "采购单收货耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"routing_key", "result"},
	)
}
