package purchase

import (
	"context"
)

// RequestRepository 采购申请仓储接口
type RequestRepository interface {
	// Create 创建申请
	Create(ctx context.Context, r *Request) error

	// FindByID 根据ID查找申请
	FindByID(ctx context.Context, id uint) (*Request, error)

	// LockByID 悲观锁查询(SELECT FOR UPDATE),用于转单时防止并发重复关联
	LockByID(ctx context.Context, id uint) (*Request, error)

	// Update 更新申请(状态机流转、关联采购单)
	Update(ctx context.Context, r *Request) error

	// List 按状态分页查询,status为空表示全部
	List(ctx context.Context, status RequestStatus, page, pageSize int) ([]*Request, int64, error)
}

// OrderRepository 采购单仓储接口
type OrderRepository interface {
	// Create 创建采购单(含明细行,同一事务写入)
	Create(ctx context.Context, o *Order) error

	// FindByID 根据ID查找采购单(含明细行)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// LockByID 悲观锁查询(含明细行),收货时防止并发重复入账
	LockByID(ctx context.Context, id uint) (*Order, error)

	// Update 更新采购单头(状态、时间戳、备注)
	Update(ctx context.Context, o *Order) error

	// UpdateItem 更新明细行的已收数量
	UpdateItem(ctx context.Context, it *OrderItem) error

	// List 按状态分页查询,status为空表示全部
	List(ctx context.Context, status OrderStatus, page, pageSize int) ([]*Order, int64, error)
}
