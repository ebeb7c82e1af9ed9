package registry

import "time"

// Vendor 供应商实体
// 设计说明:
// 1. 只被采购单引用,台账不感知供应商
// 2. 与地点共用回收站模式,Code在未回收的供应商内唯一
type Vendor struct {
	ID          uint
	Code        string // 编码(业务唯一标识,不可变)
	Name        string // 供应商名称
	ContactName string // 联系人
	Email       string // 联系邮箱
	Phone       string // 联系电话
	Active      bool   // 是否启用
	TrashedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewVendor 创建新供应商(工厂方法)
func NewVendor(code, name, contactName, email, phone string) (*Vendor, error) {
	if code == "" || name == "" {
		return nil, ErrInvalidRegistryParams
	}

	now := time.Now()
	return &Vendor{
		Code:        code,
		Name:        name,
		ContactName: contactName,
		Email:       email,
		Phone:       phone,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Trashed 是否在回收站
func (v *Vendor) Trashed() bool {
	return v.TrashedAt != nil
}

// Trash 移入回收站
func (v *Vendor) Trash() error {
	if v.Trashed() {
		return ErrAlreadyTrashed
	}
	now := time.Now()
	v.TrashedAt = &now
	v.UpdatedAt = now
	return nil
}

// Restore 从回收站恢复
func (v *Vendor) Restore() error {
	if !v.Trashed() {
		return ErrNotTrashed
	}
	v.TrashedAt = nil
	v.UpdatedAt = time.Now()
	return nil
}
