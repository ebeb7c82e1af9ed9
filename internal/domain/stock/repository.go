package stock

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/registry"
)

// Repository 台账仓储接口(领域层定义)
// 设计说明:
// 1. Credit/Debit是台账仅有的两个增量原语,调拨和收货都走这里,
//    不变式(数量非负)只需在这一处保证
// 2. Lock配合事务使用(SELECT FOR UPDATE),同Key变更串行化
type Repository interface {
	// Get 查询台账记录,不存在返回ErrStockNotFound
	Get(ctx context.Context, key Key) (*Record, error)

	// Lock 悲观锁查询(SELECT FOR UPDATE),必须在事务内调用
	// 不存在返回ErrStockNotFound
	Lock(ctx context.Context, key Key) (*Record, error)

	// Create 创建台账记录(首次设置库存时惰性创建)
	Create(ctx context.Context, rec *Record) error

	// Save 更新数量与阈值
	Save(ctx context.Context, rec *Record) error

	// AdjustQuantity 原子增减数量
	// delta为正表示入账(credit),为负表示出账(debit)
	// 扣减导致负数时返回ErrInsufficientStock,记录保持原样
	AdjustQuantity(ctx context.Context, key Key, delta int) error

	// ListByLocation 查询某地点的全部台账记录
	ListByLocation(ctx context.Context, kind registry.LocationKind, locationID uint) ([]*Record, error)
}

// TransferRepository 调拨日志仓储接口
// 只增不改,没有Update/Delete
type TransferRepository interface {
	// Create 追加调拨日志
	Create(ctx context.Context, t *Transfer) error

	// List 分页查询调拨日志(按时间倒序)
	List(ctx context.Context, page, pageSize int) ([]*Transfer, int64, error)
}

// AlertRepository 告警仓储接口
type AlertRepository interface {
	// FindOpen 查询某Key的OPEN告警,没有则返回(nil, nil)
	FindOpen(ctx context.Context, key Key) (*Alert, error)

	// Create 创建告警
	Create(ctx context.Context, a *Alert) error

	// Update 更新告警(仅用于OPEN→RESOLVED)
	Update(ctx context.Context, a *Alert) error

	// List 按状态分页查询告警,status为空表示全部
	List(ctx context.Context, status AlertStatus, page, pageSize int) ([]*Alert, int64, error)
}
