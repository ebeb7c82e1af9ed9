package stock

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/stock"
)

// TxManager 事务管理接口
// 由mysql.TxManager实现,用例层依赖接口便于单测时替换
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 事件发布接口,由mq.Publisher实现
// MQ未启用时注入nil,用例内部判空跳过
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// StockCache 库存读缓存接口,由redis.StockCache实现
// Redis未配置时注入nil,读写直接走数据库
type StockCache interface {
	GetLocation(ctx context.Context, kind string, locationID uint) ([]*stock.Record, error)
	SetLocation(ctx context.Context, kind string, locationID uint, records []*stock.Record) error
	InvalidateLocation(ctx context.Context, kind string, locationID uint) error
}
