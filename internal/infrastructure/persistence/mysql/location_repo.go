package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/warehouse/internal/domain/registry"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// locationRepository 地点仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/registry/repository.go定义的LocationRepository接口
// 2. 负责领域实体与GORM模型之间的转换
// 3. "同类型未回收内编码唯一"用查询校验:回收站里的旧编码允许复用,
//    普通唯一索引表达不了这个语义
type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository 创建地点仓储
func NewLocationRepository(db *gorm.DB) registry.LocationRepository {
	return &locationRepository{db: db}
}

// Create 创建地点
func (r *locationRepository) Create(ctx context.Context, loc *registry.Location) error {
	db := getDB(ctx, r.db)

	// 1. 编码唯一性校验(同类型、未回收)
	var count int64
	err := db.Model(&LocationModel{}).
		Where("kind = ? AND code = ? AND trashed_at IS NULL", string(loc.Kind), loc.Code).
		Count(&count).Error
	if err != nil {
		return apperrors.Wrap(err, "校验地点编码失败")
	}
	if count > 0 {
		return registry.ErrDuplicateCode
	}

	// 2. 领域实体 → GORM模型
	model := toLocationModel(loc)

	// 3. 插入数据库
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建地点失败")
	}

	// 4. 回填自增ID
	loc.ID = model.ID
	loc.CreatedAt = model.CreatedAt
	loc.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找地点(含回收站记录)
func (r *locationRepository) FindByID(ctx context.Context, id uint) (*registry.Location, error) {
	var model LocationModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, registry.ErrLocationNotFound
		}
		return nil, apperrors.Wrap(err, "查询地点失败")
	}

	return toLocationEntity(&model), nil
}

// Update 更新地点
func (r *locationRepository) Update(ctx context.Context, loc *registry.Location) error {
	model := toLocationModel(loc)
	model.ID = loc.ID
	model.CreatedAt = loc.CreatedAt

	// 使用Save更新所有字段(含TrashedAt置空的恢复场景)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新地点失败")
	}

	loc.UpdatedAt = model.UpdatedAt
	return nil
}

// List 按类型和过滤条件查询地点列表
func (r *locationRepository) List(ctx context.Context, kind registry.LocationKind, filter registry.ListFilter) ([]*registry.Location, error) {
	query := getDB(ctx, r.db).Model(&LocationModel{})

	if kind != "" {
		query = query.Where("kind = ?", string(kind))
	}

	switch filter {
	case registry.FilterTrashed:
		query = query.Where("trashed_at IS NOT NULL")
	case registry.FilterAll:
		// 不过滤
	default: // FilterActive
		query = query.Where("trashed_at IS NULL")
	}

	var models []LocationModel
	if err := query.Order("code ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询地点列表失败")
	}

	locations := make([]*registry.Location, len(models))
	for i := range models {
		locations[i] = toLocationEntity(&models[i])
	}

	return locations, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toLocationModel 领域实体 → GORM模型
func toLocationModel(loc *registry.Location) *LocationModel {
	return &LocationModel{
		ID:        loc.ID,
		Kind:      string(loc.Kind),
		Code:      loc.Code,
		Name:      loc.Name,
		Address:   loc.Address,
		City:      loc.City,
		Phone:     loc.Phone,
		Active:    loc.Active,
		TrashedAt: loc.TrashedAt,
		CreatedAt: loc.CreatedAt,
		UpdatedAt: loc.UpdatedAt,
	}
}

// toLocationEntity GORM模型 → 领域实体
func toLocationEntity(model *LocationModel) *registry.Location {
	return &registry.Location{
		ID:        model.ID,
		Kind:      registry.LocationKind(model.Kind),
		Code:      model.Code,
		Name:      model.Name,
		Address:   model.Address,
		City:      model.City,
		Phone:     model.Phone,
		Active:    model.Active,
		TrashedAt: model.TrashedAt,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
