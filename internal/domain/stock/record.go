package stock

import (
	"fmt"
	"time"

	"github.com/xiebiao/warehouse/internal/domain/registry"
)

// Key 台账主键:(地点类型, 地点ID, 图书ID)
// 设计说明:
// 1. 仓库和门店的库存记在同一张台账上,用Kind区分
// 2. 并发控制以Key为粒度:同Key的变更串行,不同Key互不阻塞
type Key struct {
	Kind       registry.LocationKind
	LocationID uint
	BookID     uint
}

// Less 定义Key的全序关系
// 调拨需要同时锁两个Key,所有调用方按此顺序加锁,
// 保证两个方向相反的并发调拨不会互相死锁
func (k Key) Less(other Key) bool {
	if k.Kind != other.Kind {
		return k.Kind < other.Kind
	}
	if k.LocationID != other.LocationID {
		return k.LocationID < other.LocationID
	}
	return k.BookID < other.BookID
}

// String 便于日志输出
func (k Key) String() string {
	return fmt.Sprintf("%s/%d/book:%d", k.Kind, k.LocationID, k.BookID)
}

// Record 库存台账记录(聚合根)
// 设计说明:
// 1. 某地点某本书"有多少册"的唯一事实来源
// 2. 首次设置库存时惰性创建,之后永不硬删除(数量为0是合法的终态)
// 3. 不变式:Quantity永远>=0,由仓储层的条件更新保证
type Record struct {
	ID                uint
	Kind              registry.LocationKind
	LocationID        uint
	BookID            uint
	Quantity          int // 当前数量(>=0)
	LowStockThreshold int // 低库存阈值(>=0)
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewRecord 创建台账记录(工厂方法)
func NewRecord(key Key, quantity, threshold int) (*Record, error) {
	if quantity < 0 || threshold < 0 {
		return nil, ErrInvalidQuantity
	}

	now := time.Now()
	return &Record{
		Kind:              key.Kind,
		LocationID:        key.LocationID,
		BookID:            key.BookID,
		Quantity:          quantity,
		LowStockThreshold: threshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// Key 返回台账主键
func (r *Record) Key() Key {
	return Key{Kind: r.Kind, LocationID: r.LocationID, BookID: r.BookID}
}

// CanDebit 判断是否可以扣减
func (r *Record) CanDebit(quantity int) bool {
	return quantity > 0 && r.Quantity >= quantity
}

// IsLow 判断是否触达低库存阈值
func (r *Record) IsLow() bool {
	return r.Quantity <= r.LowStockThreshold
}
