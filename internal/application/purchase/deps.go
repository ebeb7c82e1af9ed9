package purchase

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/stock"
)

// TxManager 事务管理接口,由mysql.TxManager实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 事件发布接口,由mq.Publisher实现
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// AlertEvaluator 告警评估接口,由应用层的AlertMonitor实现
// 收货入账后对受影响的台账Key重新评估低库存告警
type AlertEvaluator interface {
	Evaluate(ctx context.Context, key stock.Key)
}

// StockCache 库存读缓存接口(仅用于收货后失效仓库缓存)
type StockCache interface {
	InvalidateLocation(ctx context.Context, kind string, locationID uint) error
}
