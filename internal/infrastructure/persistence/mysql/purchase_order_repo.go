package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/warehouse/internal/domain/purchase"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// purchaseOrderRepository 采购单仓储实现(MySQL)
// 设计说明:
// 1. 采购单与明细是一对多聚合,Create时一并写入(GORM关联插入)
// 2. 收货时LockByID锁住单头行,串行化对同一张单的并发收货
type purchaseOrderRepository struct {
	db *gorm.DB
}

// NewPurchaseOrderRepository 创建采购单仓储
func NewPurchaseOrderRepository(db *gorm.DB) purchase.OrderRepository {
	return &purchaseOrderRepository{db: db}
}

// Create 创建采购单(含明细行)
func (r *purchaseOrderRepository) Create(ctx context.Context, o *purchase.Order) error {
	model := toOrderModel(o)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建采购单失败")
	}

	// 回填自增ID(单头与明细)
	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i, it := range model.Items {
		o.Items[i].ID = it.ID
		o.Items[i].OrderID = it.OrderID
	}
	return nil
}

// FindByID 根据ID查找采购单(含明细行)
func (r *purchaseOrderRepository) FindByID(ctx context.Context, id uint) (*purchase.Order, error) {
	var model PurchaseOrderModel
	err := getDB(ctx, r.db).Preload("Items").First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, purchase.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询采购单失败")
	}

	return toOrderEntity(&model), nil
}

// LockByID 悲观锁查询采购单(含明细行)
// 锁住单头行即可:所有收货路径都先过这把锁
func (r *purchaseOrderRepository) LockByID(ctx context.Context, id uint) (*purchase.Order, error) {
	var model PurchaseOrderModel
	db := getDB(ctx, r.db)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, purchase.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "锁定采购单失败")
	}

	// 明细行在锁内读取
	if err := db.Where("order_id = ?", id).Find(&model.Items).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询采购单明细失败")
	}

	return toOrderEntity(&model), nil
}

// Update 更新采购单头
func (r *purchaseOrderRepository) Update(ctx context.Context, o *purchase.Order) error {
	result := getDB(ctx, r.db).Model(&PurchaseOrderModel{}).
		Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"status":      string(o.Status),
			"note":        o.Note,
			"expected_at": o.ExpectedAt,
			"sent_at":     o.SentAt,
			"received_at": o.ReceivedAt,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新采购单失败")
	}
	if result.RowsAffected == 0 {
		return purchase.ErrOrderNotFound
	}
	return nil
}

// UpdateItem 更新明细行的已收数量
func (r *purchaseOrderRepository) UpdateItem(ctx context.Context, it *purchase.OrderItem) error {
	result := getDB(ctx, r.db).Model(&PurchaseOrderItemModel{}).
		Where("id = ?", it.ID).
		Update("received_quantity", it.ReceivedQuantity)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新采购单明细失败")
	}
	return nil
}

// List 按状态分页查询采购单
func (r *purchaseOrderRepository) List(ctx context.Context, status purchase.OrderStatus, page, pageSize int) ([]*purchase.Order, int64, error) {
	query := getDB(ctx, r.db).Model(&PurchaseOrderModel{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询采购单总数失败")
	}

	var models []PurchaseOrderModel
	offset := (page - 1) * pageSize
	err := query.Preload("Items").
		Order("created_at DESC, id DESC").
		Limit(pageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询采购单列表失败")
	}

	orders := make([]*purchase.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}

	return orders, total, nil
}

// toOrderModel 领域实体 → GORM模型
func toOrderModel(o *purchase.Order) *PurchaseOrderModel {
	items := make([]PurchaseOrderItemModel, len(o.Items))
	for i, it := range o.Items {
		items[i] = PurchaseOrderItemModel{
			ID:               it.ID,
			OrderID:          it.OrderID,
			BookID:           it.BookID,
			OrderedQuantity:  it.OrderedQuantity,
			ReceivedQuantity: it.ReceivedQuantity,
			UnitCost:         it.UnitCost,
		}
	}

	return &PurchaseOrderModel{
		ID:          o.ID,
		RequestID:   o.RequestID,
		VendorID:    o.VendorID,
		WarehouseID: o.WarehouseID,
		Status:      string(o.Status),
		TotalCost:   o.TotalCost,
		Note:        o.Note,
		CreatedBy:   o.CreatedBy,
		ApprovedBy:  o.ApprovedBy,
		ExpectedAt:  o.ExpectedAt,
		SentAt:      o.SentAt,
		ReceivedAt:  o.ReceivedAt,
		Items:       items,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *PurchaseOrderModel) *purchase.Order {
	items := make([]*purchase.OrderItem, len(model.Items))
	for i := range model.Items {
		m := &model.Items[i]
		items[i] = &purchase.OrderItem{
			ID:               m.ID,
			OrderID:          m.OrderID,
			BookID:           m.BookID,
			OrderedQuantity:  m.OrderedQuantity,
			ReceivedQuantity: m.ReceivedQuantity,
			UnitCost:         m.UnitCost,
		}
	}

	return &purchase.Order{
		ID:          model.ID,
		RequestID:   model.RequestID,
		VendorID:    model.VendorID,
		WarehouseID: model.WarehouseID,
		Status:      purchase.OrderStatus(model.Status),
		TotalCost:   model.TotalCost,
		Note:        model.Note,
		CreatedBy:   model.CreatedBy,
		ApprovedBy:  model.ApprovedBy,
		ExpectedAt:  model.ExpectedAt,
		SentAt:      model.SentAt,
		ReceivedAt:  model.ReceivedAt,
		Items:       items,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
