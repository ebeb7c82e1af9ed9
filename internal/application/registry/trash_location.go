package registry

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/warehouse/internal/domain/registry"
	"github.com/xiebiao/warehouse/pkg/logger"
)

// TrashLocationUseCase 地点移入回收站用例
// 设计说明:
// 1. 不是删除:记录仍可按ID寻址,随时可恢复
// 2. 不级联处理台账:该地点的库存记录原样保留,
//    只是不再出现在正常列表里(成为孤儿记录)
type TrashLocationUseCase struct {
	locationRepo registry.LocationRepository
}

// NewTrashLocationUseCase 创建地点回收用例
func NewTrashLocationUseCase(locationRepo registry.LocationRepository) *TrashLocationUseCase {
	return &TrashLocationUseCase{locationRepo: locationRepo}
}

// Execute 执行地点回收
func (uc *TrashLocationUseCase) Execute(ctx context.Context, id uint) (*LocationDTO, error) {
	loc, err := uc.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := loc.Trash(); err != nil {
		return nil, err
	}

	if err := uc.locationRepo.Update(ctx, loc); err != nil {
		return nil, err
	}

	logger.L().Info("地点已移入回收站",
		zap.Uint("id", loc.ID),
		zap.String("kind", string(loc.Kind)),
		zap.String("code", loc.Code),
	)
	return toLocationDTO(loc), nil
}

// RestoreLocationUseCase 地点恢复用例
type RestoreLocationUseCase struct {
	locationRepo registry.LocationRepository
}

// NewRestoreLocationUseCase 创建地点恢复用例
func NewRestoreLocationUseCase(locationRepo registry.LocationRepository) *RestoreLocationUseCase {
	return &RestoreLocationUseCase{locationRepo: locationRepo}
}

// Execute 执行地点恢复
// 业务规则:恢复后仍要满足"同类型未回收记录内Code唯一",
// 如果回收期间有人用同一Code建了新记录,恢复会被拒绝
func (uc *RestoreLocationUseCase) Execute(ctx context.Context, id uint) (*LocationDTO, error) {
	loc, err := uc.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 唯一性检查:正常记录里已有同Code则不能恢复
	active, err := uc.locationRepo.List(ctx, loc.Kind, registry.FilterActive)
	if err != nil {
		return nil, err
	}
	for _, other := range active {
		if other.Code == loc.Code && other.ID != loc.ID {
			return nil, registry.ErrDuplicateCode
		}
	}

	if err := loc.Restore(); err != nil {
		return nil, err
	}

	if err := uc.locationRepo.Update(ctx, loc); err != nil {
		return nil, err
	}

	logger.L().Info("地点已从回收站恢复",
		zap.Uint("id", loc.ID),
		zap.String("code", loc.Code),
	)
	return toLocationDTO(loc), nil
}
