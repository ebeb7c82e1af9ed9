package registry

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/warehouse/internal/domain/registry"
	"github.com/xiebiao/warehouse/pkg/logger"
)

// TrashVendorUseCase 供应商移入回收站用例
// 已有采购单引用的供应商也可以回收:历史单据保留引用,
// 只是不能再为新采购单选择该供应商
type TrashVendorUseCase struct {
	vendorRepo registry.VendorRepository
}

// NewTrashVendorUseCase 创建供应商回收用例
func NewTrashVendorUseCase(vendorRepo registry.VendorRepository) *TrashVendorUseCase {
	return &TrashVendorUseCase{vendorRepo: vendorRepo}
}

// Execute 执行供应商回收
func (uc *TrashVendorUseCase) Execute(ctx context.Context, id uint) (*VendorDTO, error) {
	v, err := uc.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := v.Trash(); err != nil {
		return nil, err
	}

	if err := uc.vendorRepo.Update(ctx, v); err != nil {
		return nil, err
	}

	logger.L().Info("供应商已移入回收站",
		zap.Uint("id", v.ID),
		zap.String("code", v.Code),
	)
	return toVendorDTO(v), nil
}

// RestoreVendorUseCase 供应商恢复用例
type RestoreVendorUseCase struct {
	vendorRepo registry.VendorRepository
}

// NewRestoreVendorUseCase 创建供应商恢复用例
func NewRestoreVendorUseCase(vendorRepo registry.VendorRepository) *RestoreVendorUseCase {
	return &RestoreVendorUseCase{vendorRepo: vendorRepo}
}

// Execute 执行供应商恢复
// 恢复后仍要满足"未回收供应商内Code唯一"
func (uc *RestoreVendorUseCase) Execute(ctx context.Context, id uint) (*VendorDTO, error) {
	v, err := uc.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	active, err := uc.vendorRepo.List(ctx, registry.FilterActive)
	if err != nil {
		return nil, err
	}
	for _, other := range active {
		if other.Code == v.Code && other.ID != v.ID {
			return nil, registry.ErrDuplicateCode
		}
	}

	if err := v.Restore(); err != nil {
		return nil, err
	}

	if err := uc.vendorRepo.Update(ctx, v); err != nil {
		return nil, err
	}

	logger.L().Info("供应商已从回收站恢复",
		zap.Uint("id", v.ID),
		zap.String("code", v.Code),
	)
	return toVendorDTO(v), nil
}
