package registry

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/registry"
)

// ListLocationsUseCase 地点列表查询用例
type ListLocationsUseCase struct {
	locationRepo registry.LocationRepository
}

// NewListLocationsUseCase 创建地点列表查询用例
func NewListLocationsUseCase(locationRepo registry.LocationRepository) *ListLocationsUseCase {
	return &ListLocationsUseCase{locationRepo: locationRepo}
}

// ListLocationsRequest 地点列表请求DTO
type ListLocationsRequest struct {
	Kind   registry.LocationKind // 为空表示不限类型
	Filter registry.ListFilter   // active(默认)|trashed|all
}

// ListLocationsResponse 地点列表响应DTO
type ListLocationsResponse struct {
	List  []*LocationDTO `json:"list"`
	Total int            `json:"total"`
}

// Execute 执行地点列表查询
func (uc *ListLocationsUseCase) Execute(ctx context.Context, req ListLocationsRequest) (*ListLocationsResponse, error) {
	// 过滤条件缺省为active:日常操作不应看到回收站记录
	if req.Filter == "" {
		req.Filter = registry.FilterActive
	}
	if !req.Filter.Valid() {
		return nil, registry.ErrInvalidRegistryParams
	}
	if req.Kind != "" && !req.Kind.Valid() {
		return nil, registry.ErrInvalidKind
	}

	locations, err := uc.locationRepo.List(ctx, req.Kind, req.Filter)
	if err != nil {
		return nil, err
	}

	list := make([]*LocationDTO, len(locations))
	for i, loc := range locations {
		list[i] = toLocationDTO(loc)
	}

	return &ListLocationsResponse{List: list, Total: len(list)}, nil
}

// GetLocationUseCase 单个地点查询用例(含回收站记录)
type GetLocationUseCase struct {
	locationRepo registry.LocationRepository
}

// NewGetLocationUseCase 创建单个地点查询用例
func NewGetLocationUseCase(locationRepo registry.LocationRepository) *GetLocationUseCase {
	return &GetLocationUseCase{locationRepo: locationRepo}
}

// Execute 按ID查询地点,回收站记录也可寻址
func (uc *GetLocationUseCase) Execute(ctx context.Context, id uint) (*LocationDTO, error) {
	loc, err := uc.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toLocationDTO(loc), nil
}
