package registry

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/registry"
)

// CreateLocationUseCase 创建地点用例(仓库或门店)
// 设计说明:
// 1. Code在同类型未回收记录内唯一,重复返回ErrDuplicateCode
// 2. 回收站里存在同Code记录不阻止创建(恢复旧记录时可能再撞,见恢复用例)
type CreateLocationUseCase struct {
	locationRepo registry.LocationRepository
}

// NewCreateLocationUseCase 创建地点创建用例
func NewCreateLocationUseCase(locationRepo registry.LocationRepository) *CreateLocationUseCase {
	return &CreateLocationUseCase{locationRepo: locationRepo}
}

// CreateLocationRequest 创建地点请求DTO
type CreateLocationRequest struct {
	Kind    registry.LocationKind // WAREHOUSE或STORE
	Code    string                // 编码(业务唯一标识)
	Name    string                // 显示名称
	Address string
	City    string
	Phone   string
}

// LocationDTO 地点响应DTO
type LocationDTO struct {
	ID        uint   `json:"id"`
	Kind      string `json:"kind"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Phone     string `json:"phone"`
	Active    bool   `json:"active"`
	Trashed   bool   `json:"trashed"`
	TrashedAt string `json:"trashed_at,omitempty"`
	CreatedAt string `json:"created_at"`
}

func toLocationDTO(loc *registry.Location) *LocationDTO {
	dto := &LocationDTO{
		ID:        loc.ID,
		Kind:      string(loc.Kind),
		Code:      loc.Code,
		Name:      loc.Name,
		Address:   loc.Address,
		City:      loc.City,
		Phone:     loc.Phone,
		Active:    loc.Active,
		Trashed:   loc.Trashed(),
		CreatedAt: loc.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if loc.TrashedAt != nil {
		dto.TrashedAt = loc.TrashedAt.Format("2006-01-02 15:04:05")
	}
	return dto
}

// Execute 执行地点创建
func (uc *CreateLocationUseCase) Execute(ctx context.Context, req CreateLocationRequest) (*LocationDTO, error) {
	// 1. 工厂方法校验类型和必填字段
	loc, err := registry.NewLocation(req.Kind, req.Code, req.Name, req.Address, req.City, req.Phone)
	if err != nil {
		return nil, err
	}

	// 2. 持久化(仓储层做Code唯一性检查)
	if err := uc.locationRepo.Create(ctx, loc); err != nil {
		return nil, err
	}

	return toLocationDTO(loc), nil
}
