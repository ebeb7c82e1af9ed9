package registry

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/registry"
)

// UpdateLocationUseCase 更新地点用例
// 业务规则:Kind和Code分配后不可变,只更新展示与联系字段
type UpdateLocationUseCase struct {
	locationRepo registry.LocationRepository
}

// NewUpdateLocationUseCase 创建地点更新用例
func NewUpdateLocationUseCase(locationRepo registry.LocationRepository) *UpdateLocationUseCase {
	return &UpdateLocationUseCase{locationRepo: locationRepo}
}

// UpdateLocationRequest 更新地点请求DTO
// 指针字段表示"传了才改",nil字段保持原值
type UpdateLocationRequest struct {
	ID      uint
	Name    *string
	Address *string
	City    *string
	Phone   *string
	Active  *bool
}

// Execute 执行地点更新
// 回收站里的记录不允许编辑,先恢复再改
func (uc *UpdateLocationUseCase) Execute(ctx context.Context, req UpdateLocationRequest) (*LocationDTO, error) {
	loc, err := uc.locationRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if loc.Trashed() {
		return nil, registry.ErrAlreadyTrashed
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, registry.ErrInvalidRegistryParams
		}
		loc.Name = *req.Name
	}
	if req.Address != nil {
		loc.Address = *req.Address
	}
	if req.City != nil {
		loc.City = *req.City
	}
	if req.Phone != nil {
		loc.Phone = *req.Phone
	}
	if req.Active != nil {
		loc.Active = *req.Active
	}

	if err := uc.locationRepo.Update(ctx, loc); err != nil {
		return nil, err
	}

	return toLocationDTO(loc), nil
}
