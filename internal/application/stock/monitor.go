package stock

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/warehouse/internal/domain/stock"
	"github.com/xiebiao/warehouse/pkg/logger"
	"github.com/xiebiao/warehouse/pkg/metrics"
)

// AlertMonitor 低库存告警监控器
// 教学要点:告警是台账的派生状态,不是独立事实
//
// 设计说明:
// 1. 每次台账变更提交后,对受影响的Key调用Evaluate重新评估
// 2. 评估在台账事务之外执行:告警失败绝不回滚台账
//    (台账是钱,告警是提醒,提醒丢了可以下次变更时补上)
// 3. 同一Key同时最多一条OPEN告警,打开时快照当时的数量和阈值
type AlertMonitor struct {
	stockRepo stock.Repository
	alertRepo stock.AlertRepository
	publisher EventPublisher
}

// NewAlertMonitor 创建告警监控器
func NewAlertMonitor(
	stockRepo stock.Repository,
	alertRepo stock.AlertRepository,
	publisher EventPublisher,
) *AlertMonitor {
	return &AlertMonitor{
		stockRepo: stockRepo,
		alertRepo: alertRepo,
		publisher: publisher,
	}
}

// AlertEvent 告警事件(MQ消息体)
type AlertEvent struct {
	Kind       string    `json:"kind"`
	LocationID uint      `json:"location_id"`
	BookID     uint      `json:"book_id"`
	Quantity   int       `json:"quantity"`
	Threshold  int       `json:"threshold"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Evaluate 重新评估某个Key的告警状态(尽力而为)
// 在台账变更事务提交之后调用,失败只记日志和指标,不向调用方冒泡
//
// 规则(见stock.EvaluateAlert):
// - 数量<=阈值 且 无OPEN告警 → 打开新告警
// - 数量>阈值  且 有OPEN告警 → 解除
// - 其余情况不动:持续偏低不重复告警,OPEN期间不更新快照
func (m *AlertMonitor) Evaluate(ctx context.Context, key stock.Key) {
	if err := m.evaluate(ctx, key); err != nil {
		metrics.AlertEvaluationFailures.Inc()
		logger.L().Error("告警评估失败",
			zap.String("key", key.String()),
			zap.Error(err),
		)
	}
}

func (m *AlertMonitor) evaluate(ctx context.Context, key stock.Key) error {
	// 1. 读取台账当前状态
	rec, err := m.stockRepo.Get(ctx, key)
	if err != nil {
		return err
	}

	// 2. 查询现有OPEN告警
	open, err := m.alertRepo.FindOpen(ctx, key)
	if err != nil {
		return err
	}

	// 3. 纯函数评估,再执行对应动作
	switch stock.EvaluateAlert(rec, open) {
	case stock.AlertShouldOpen:
		alert := stock.NewAlert(rec)
		if err := m.alertRepo.Create(ctx, alert); err != nil {
			// 并发评估同一Key:另一条事务已抢先打开,唯一索引拦下本条。
			// 告警已就位,不算失败,也不重复发事件
			if errors.Is(err, stock.ErrAlertAlreadyOpen) {
				return nil
			}
			return err
		}
		metrics.AlertsOpenedTotal.Inc()
		logger.L().Warn("低库存告警已打开",
			zap.String("key", key.String()),
			zap.Int("quantity", rec.Quantity),
			zap.Int("threshold", rec.LowStockThreshold),
		)
		m.publish("alert.opened", alert)

	case stock.AlertShouldResolve:
		open.Resolve()
		if err := m.alertRepo.Update(ctx, open); err != nil {
			return err
		}
		metrics.AlertsResolvedTotal.Inc()
		logger.L().Info("低库存告警已解除",
			zap.String("key", key.String()),
			zap.Int("quantity", rec.Quantity),
		)
		m.publish("alert.resolved", open)
	}

	return nil
}

// publish 发布告警事件(尽力而为)
func (m *AlertMonitor) publish(routingKey string, alert *stock.Alert) {
	if m.publisher == nil {
		return
	}

	event := AlertEvent{
		Kind:       string(alert.Kind),
		LocationID: alert.LocationID,
		BookID:     alert.BookID,
		Quantity:   alert.Quantity,
		Threshold:  alert.Threshold,
		OccurredAt: time.Now(),
	}

	if err := m.publisher.Publish(routingKey, event); err != nil {
		metrics.MessagesPublishedTotal.WithLabelValues(routingKey, "failure").Inc()
		logger.L().Error("告警事件发布失败",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
		return
	}
	metrics.MessagesPublishedTotal.WithLabelValues(routingKey, "success").Inc()
}
