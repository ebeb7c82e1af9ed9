package registry

import (
	"context"
)

// LocationRepository 地点仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type LocationRepository interface {
	// Create 创建地点
	// Code在同类型未回收记录中重复时返回ErrDuplicateCode
	Create(ctx context.Context, loc *Location) error

	// FindByID 根据ID查找地点(含回收站记录,恢复时需要)
	FindByID(ctx context.Context, id uint) (*Location, error)

	// Update 更新地点(Kind和Code不可变,只更新展示与联系字段)
	Update(ctx context.Context, loc *Location) error

	// List 按类型和过滤条件查询地点列表
	// kind为空字符串表示不限类型
	List(ctx context.Context, kind LocationKind, filter ListFilter) ([]*Location, error)
}

// VendorRepository 供应商仓储接口
type VendorRepository interface {
	// Create 创建供应商
	// Code在未回收供应商中重复时返回ErrDuplicateCode
	Create(ctx context.Context, v *Vendor) error

	// FindByID 根据ID查找供应商(含回收站记录)
	FindByID(ctx context.Context, id uint) (*Vendor, error)

	// Update 更新供应商
	Update(ctx context.Context, v *Vendor) error

	// List 按过滤条件查询供应商列表
	List(ctx context.Context, filter ListFilter) ([]*Vendor, error)
}
