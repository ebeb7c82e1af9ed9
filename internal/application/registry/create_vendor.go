package registry

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/registry"
)

// CreateVendorUseCase 创建供应商用例
type CreateVendorUseCase struct {
	vendorRepo registry.VendorRepository
}

// NewCreateVendorUseCase 创建供应商创建用例
func NewCreateVendorUseCase(vendorRepo registry.VendorRepository) *CreateVendorUseCase {
	return &CreateVendorUseCase{vendorRepo: vendorRepo}
}

// CreateVendorRequest 创建供应商请求DTO
type CreateVendorRequest struct {
	Code        string // 编码(业务唯一标识)
	Name        string // 供应商名称
	ContactName string
	Email       string
	Phone       string
}

// VendorDTO 供应商响应DTO
type VendorDTO struct {
	ID          uint   `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Active      bool   `json:"active"`
	Trashed     bool   `json:"trashed"`
	TrashedAt   string `json:"trashed_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func toVendorDTO(v *registry.Vendor) *VendorDTO {
	dto := &VendorDTO{
		ID:          v.ID,
		Code:        v.Code,
		Name:        v.Name,
		ContactName: v.ContactName,
		Email:       v.Email,
		Phone:       v.Phone,
		Active:      v.Active,
		Trashed:     v.Trashed(),
		CreatedAt:   v.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if v.TrashedAt != nil {
		dto.TrashedAt = v.TrashedAt.Format("2006-01-02 15:04:05")
	}
	return dto
}

// Execute 执行供应商创建
func (uc *CreateVendorUseCase) Execute(ctx context.Context, req CreateVendorRequest) (*VendorDTO, error) {
	v, err := registry.NewVendor(req.Code, req.Name, req.ContactName, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}

	if err := uc.vendorRepo.Create(ctx, v); err != nil {
		return nil, err
	}

	return toVendorDTO(v), nil
}
