package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/warehouse/internal/domain/registry"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// vendorRepository 供应商仓储实现(MySQL)
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository 创建供应商仓储
func NewVendorRepository(db *gorm.DB) registry.VendorRepository {
	return &vendorRepository{db: db}
}

// Create 创建供应商
func (r *vendorRepository) Create(ctx context.Context, v *registry.Vendor) error {
	db := getDB(ctx, r.db)

	// 编码唯一性校验(未回收)
	var count int64
	err := db.Model(&VendorModel{}).
		Where("code = ? AND trashed_at IS NULL", v.Code).
		Count(&count).Error
	if err != nil {
		return apperrors.Wrap(err, "校验供应商编码失败")
	}
	if count > 0 {
		return registry.ErrDuplicateCode
	}

	model := toVendorModel(v)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建供应商失败")
	}

	v.ID = model.ID
	v.CreatedAt = model.CreatedAt
	v.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找供应商(含回收站记录)
func (r *vendorRepository) FindByID(ctx context.Context, id uint) (*registry.Vendor, error) {
	var model VendorModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, registry.ErrVendorNotFound
		}
		return nil, apperrors.Wrap(err, "查询供应商失败")
	}

	return toVendorEntity(&model), nil
}

// Update 更新供应商
func (r *vendorRepository) Update(ctx context.Context, v *registry.Vendor) error {
	model := toVendorModel(v)
	model.ID = v.ID
	model.CreatedAt = v.CreatedAt

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新供应商失败")
	}

	v.UpdatedAt = model.UpdatedAt
	return nil
}

// List 按过滤条件查询供应商列表
func (r *vendorRepository) List(ctx context.Context, filter registry.ListFilter) ([]*registry.Vendor, error) {
	query := getDB(ctx, r.db).Model(&VendorModel{})

	switch filter {
	case registry.FilterTrashed:
		query = query.Where("trashed_at IS NOT NULL")
	case registry.FilterAll:
		// 不过滤
	default: // FilterActive
		query = query.Where("trashed_at IS NULL")
	}

	var models []VendorModel
	if err := query.Order("code ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询供应商列表失败")
	}

	vendors := make([]*registry.Vendor, len(models))
	for i := range models {
		vendors[i] = toVendorEntity(&models[i])
	}

	return vendors, nil
}

// toVendorModel 领域实体 → GORM模型
func toVendorModel(v *registry.Vendor) *VendorModel {
	return &VendorModel{
		ID:          v.ID,
		Code:        v.Code,
		Name:        v.Name,
		ContactName: v.ContactName,
		Email:       v.Email,
		Phone:       v.Phone,
		Active:      v.Active,
		TrashedAt:   v.TrashedAt,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// toVendorEntity GORM模型 → 领域实体
func toVendorEntity(model *VendorModel) *registry.Vendor {
	return &registry.Vendor{
		ID:          model.ID,
		Code:        model.Code,
		Name:        model.Name,
		ContactName: model.ContactName,
		Email:       model.Email,
		Phone:       model.Phone,
		Active:      model.Active,
		TrashedAt:   model.TrashedAt,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
