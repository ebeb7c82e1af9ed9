package registry

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/registry"
)

// UpdateVendorUseCase 更新供应商用例
// Code分配后不可变,只更新展示与联系字段
type UpdateVendorUseCase struct {
	vendorRepo registry.VendorRepository
}

// NewUpdateVendorUseCase 创建供应商更新用例
func NewUpdateVendorUseCase(vendorRepo registry.VendorRepository) *UpdateVendorUseCase {
	return &UpdateVendorUseCase{vendorRepo: vendorRepo}
}

// UpdateVendorRequest 更新供应商请求DTO
// 指针字段表示"传了才改"
type UpdateVendorRequest struct {
	ID          uint
	Name        *string
	ContactName *string
	Email       *string
	Phone       *string
	Active      *bool
}

// Execute 执行供应商更新
func (uc *UpdateVendorUseCase) Execute(ctx context.Context, req UpdateVendorRequest) (*VendorDTO, error) {
	v, err := uc.vendorRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if v.Trashed() {
		return nil, registry.ErrAlreadyTrashed
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, registry.ErrInvalidRegistryParams
		}
		v.Name = *req.Name
	}
	if req.ContactName != nil {
		v.ContactName = *req.ContactName
	}
	if req.Email != nil {
		v.Email = *req.Email
	}
	if req.Phone != nil {
		v.Phone = *req.Phone
	}
	if req.Active != nil {
		v.Active = *req.Active
	}

	if err := uc.vendorRepo.Update(ctx, v); err != nil {
		return nil, err
	}

	return toVendorDTO(v), nil
}
