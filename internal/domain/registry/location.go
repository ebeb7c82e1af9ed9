package registry

import (
	"time"
)

// LocationKind 地点类型
// 设计说明:
// 1. 仓库(WAREHOUSE)是补货节点,采购申请和采购单只面向仓库
// 2. 门店(STORE)是零售节点,只通过调拨获得库存
// 3. 调拨的目标类型决定台账记在哪一侧
type LocationKind string

const (
	KindWarehouse LocationKind = "WAREHOUSE" // 仓库
	KindStore     LocationKind = "STORE"     // 门店
)

// Valid 判断地点类型是否合法
func (k LocationKind) Valid() bool {
	return k == KindWarehouse || k == KindStore
}

// Location 地点实体(仓库或门店,聚合根)
// 设计说明:
// 1. Code是业务唯一标识,同类型未回收的记录内唯一,分配后不可变更
// 2. 回收站模式:TrashedAt非空表示已移入回收站,可恢复
//    回收的记录不出现在台账和采购相关列表中,但仍可按ID寻址
// 3. 删除地点不级联删除其库存记录(成为孤儿记录,只在回收站视图可见)
type Location struct {
	ID        uint
	Kind      LocationKind // 地点类型(不可变)
	Code      string       // 编码(业务唯一标识,不可变)
	Name      string       // 显示名称
	Address   string       // 地址
	City      string       // 城市
	Phone     string       // 联系电话
	Active    bool         // 是否启用
	TrashedAt *time.Time   // 回收时间(nil表示正常)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewLocation 创建新地点(工厂方法)
func NewLocation(kind LocationKind, code, name, address, city, phone string) (*Location, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if code == "" || name == "" {
		return nil, ErrInvalidRegistryParams
	}

	now := time.Now()
	return &Location{
		Kind:      kind,
		Code:      code,
		Name:      name,
		Address:   address,
		City:      city,
		Phone:     phone,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Trashed 是否在回收站
func (l *Location) Trashed() bool {
	return l.TrashedAt != nil
}

// Trash 移入回收站
// 业务规则:已在回收站的记录不能重复回收
func (l *Location) Trash() error {
	if l.Trashed() {
		return ErrAlreadyTrashed
	}
	now := time.Now()
	l.TrashedAt = &now
	l.UpdatedAt = now
	return nil
}

// Restore 从回收站恢复
func (l *Location) Restore() error {
	if !l.Trashed() {
		return ErrNotTrashed
	}
	l.TrashedAt = nil
	l.UpdatedAt = time.Now()
	return nil
}

// ListFilter 列表过滤条件
type ListFilter string

const (
	FilterActive  ListFilter = "active"  // 仅正常记录(默认)
	FilterTrashed ListFilter = "trashed" // 仅回收站记录
	FilterAll     ListFilter = "all"     // 全部
)

// Valid 判断过滤条件是否合法
func (f ListFilter) Valid() bool {
	return f == FilterActive || f == FilterTrashed || f == FilterAll
}
