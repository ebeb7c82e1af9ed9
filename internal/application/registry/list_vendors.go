package registry

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/registry"
)

// ListVendorsUseCase 供应商列表查询用例
type ListVendorsUseCase struct {
	vendorRepo registry.VendorRepository
}

// NewListVendorsUseCase 创建供应商列表查询用例
func NewListVendorsUseCase(vendorRepo registry.VendorRepository) *ListVendorsUseCase {
	return &ListVendorsUseCase{vendorRepo: vendorRepo}
}

// ListVendorsResponse 供应商列表响应DTO
type ListVendorsResponse struct {
	List  []*VendorDTO `json:"list"`
	Total int          `json:"total"`
}

// Execute 执行供应商列表查询
func (uc *ListVendorsUseCase) Execute(ctx context.Context, filter registry.ListFilter) (*ListVendorsResponse, error) {
	if filter == "" {
		filter = registry.FilterActive
	}
	if !filter.Valid() {
		return nil, registry.ErrInvalidRegistryParams
	}

	vendors, err := uc.vendorRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	list := make([]*VendorDTO, len(vendors))
	for i, v := range vendors {
		list[i] = toVendorDTO(v)
	}

	return &ListVendorsResponse{List: list, Total: len(list)}, nil
}

// GetVendorUseCase 单个供应商查询用例(含回收站记录)
type GetVendorUseCase struct {
	vendorRepo registry.VendorRepository
}

// NewGetVendorUseCase 创建单个供应商查询用例
func NewGetVendorUseCase(vendorRepo registry.VendorRepository) *GetVendorUseCase {
	return &GetVendorUseCase{vendorRepo: vendorRepo}
}

// Execute 按ID查询供应商
func (uc *GetVendorUseCase) Execute(ctx context.Context, id uint) (*VendorDTO, error) {
	v, err := uc.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toVendorDTO(v), nil
}
