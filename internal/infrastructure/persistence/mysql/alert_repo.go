package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/warehouse/internal/domain/registry"
	"github.com/xiebiao/warehouse/internal/domain/stock"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// alertRepository 低库存告警仓储实现(MySQL)
type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository 创建告警仓储
func NewAlertRepository(db *gorm.DB) stock.AlertRepository {
	return &alertRepository{db: db}
}

// FindOpen 查询某Key的OPEN告警
// 没有OPEN告警不是错误,返回(nil, nil)
func (r *alertRepository) FindOpen(ctx context.Context, key stock.Key) (*stock.Alert, error) {
	var model AlertModel
	err := getDB(ctx, r.db).
		Where("kind = ? AND location_id = ? AND book_id = ? AND status = ?",
			string(key.Kind), key.LocationID, key.BookID, string(stock.AlertOpen)).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "查询告警失败")
	}

	return toAlertEntity(&model), nil
}

// Create 创建告警
// 并发评估同一Key时,唯一索引uk_alert_open拦截第二条OPEN记录,
// 返回ErrAlertAlreadyOpen,调用方视作告警已就位
func (r *alertRepository) Create(ctx context.Context, a *stock.Alert) error {
	model := toAlertModel(a)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return stock.ErrAlertAlreadyOpen
		}
		return apperrors.Wrap(err, "创建告警失败")
	}

	a.ID = model.ID
	return nil
}

// Update 更新告警(OPEN → RESOLVED)
func (r *alertRepository) Update(ctx context.Context, a *stock.Alert) error {
	result := getDB(ctx, r.db).Model(&AlertModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"status":      string(a.Status),
			"resolved_at": a.ResolvedAt,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新告警失败")
	}
	return nil
}

// List 按状态分页查询告警
func (r *alertRepository) List(ctx context.Context, status stock.AlertStatus, page, pageSize int) ([]*stock.Alert, int64, error) {
	query := getDB(ctx, r.db).Model(&AlertModel{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询告警总数失败")
	}

	var models []AlertModel
	offset := (page - 1) * pageSize
	err := query.Order("opened_at DESC, id DESC").
		Limit(pageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询告警列表失败")
	}

	alerts := make([]*stock.Alert, len(models))
	for i := range models {
		alerts[i] = toAlertEntity(&models[i])
	}

	return alerts, total, nil
}

// toAlertModel 领域实体 → GORM模型
func toAlertModel(a *stock.Alert) *AlertModel {
	return &AlertModel{
		ID:         a.ID,
		Kind:       string(a.Kind),
		LocationID: a.LocationID,
		BookID:     a.BookID,
		Status:     string(a.Status),
		Quantity:   a.Quantity,
		Threshold:  a.Threshold,
		OpenedAt:   a.OpenedAt,
		ResolvedAt: a.ResolvedAt,
	}
}

// toAlertEntity GORM模型 → 领域实体
func toAlertEntity(model *AlertModel) *stock.Alert {
	return &stock.Alert{
		ID:         model.ID,
		Kind:       registry.LocationKind(model.Kind),
		LocationID: model.LocationID,
		BookID:     model.BookID,
		Status:     stock.AlertStatus(model.Status),
		Quantity:   model.Quantity,
		Threshold:  model.Threshold,
		OpenedAt:   model.OpenedAt,
		ResolvedAt: model.ResolvedAt,
	}
}
