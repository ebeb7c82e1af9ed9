package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/warehouse/internal/domain/purchase"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// purchaseRequestRepository 采购申请仓储实现(MySQL)
type purchaseRequestRepository struct {
	db *gorm.DB
}

// NewPurchaseRequestRepository 创建采购申请仓储
func NewPurchaseRequestRepository(db *gorm.DB) purchase.RequestRepository {
	return &purchaseRequestRepository{db: db}
}

// Create 创建申请
func (r *purchaseRequestRepository) Create(ctx context.Context, req *purchase.Request) error {
	model := toRequestModel(req)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建采购申请失败")
	}

	req.ID = model.ID
	req.CreatedAt = model.CreatedAt
	req.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找申请
func (r *purchaseRequestRepository) FindByID(ctx context.Context, id uint) (*purchase.Request, error) {
	var model PurchaseRequestModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, purchase.ErrRequestNotFound
		}
		return nil, apperrors.Wrap(err, "查询采购申请失败")
	}

	return toRequestEntity(&model), nil
}

// LockByID 悲观锁查询申请
// 教学要点:转单时锁住申请行,防止并发把同一申请转成两张采购单
func (r *purchaseRequestRepository) LockByID(ctx context.Context, id uint) (*purchase.Request, error) {
	var model PurchaseRequestModel
	db := getDB(ctx, r.db)
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, purchase.ErrRequestNotFound
		}
		return nil, apperrors.Wrap(err, "锁定采购申请失败")
	}

	return toRequestEntity(&model), nil
}

// Update 更新申请
func (r *purchaseRequestRepository) Update(ctx context.Context, req *purchase.Request) error {
	model := toRequestModel(req)
	model.ID = req.ID
	model.CreatedAt = req.CreatedAt

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新采购申请失败")
	}

	req.UpdatedAt = model.UpdatedAt
	return nil
}

// List 按状态分页查询申请
func (r *purchaseRequestRepository) List(ctx context.Context, status purchase.RequestStatus, page, pageSize int) ([]*purchase.Request, int64, error) {
	query := getDB(ctx, r.db).Model(&PurchaseRequestModel{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询采购申请总数失败")
	}

	var models []PurchaseRequestModel
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC, id DESC").
		Limit(pageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询采购申请列表失败")
	}

	requests := make([]*purchase.Request, len(models))
	for i := range models {
		requests[i] = toRequestEntity(&models[i])
	}

	return requests, total, nil
}

// toRequestModel 领域实体 → GORM模型
func toRequestModel(req *purchase.Request) *PurchaseRequestModel {
	return &PurchaseRequestModel{
		ID:                req.ID,
		BookID:            req.BookID,
		WarehouseID:       req.WarehouseID,
		RequestedQuantity: req.RequestedQuantity,
		EstimatedCost:     req.EstimatedCost,
		Status:            string(req.Status),
		ApprovedQuantity:  req.ApprovedQuantity,
		ApprovedCost:      req.ApprovedCost,
		ReviewNote:        req.ReviewNote,
		RequestedBy:       req.RequestedBy,
		ApprovedBy:        req.ApprovedBy,
		PurchaseOrderID:   req.PurchaseOrderID,
		CreatedAt:         req.CreatedAt,
		UpdatedAt:         req.UpdatedAt,
	}
}

// toRequestEntity GORM模型 → 领域实体
func toRequestEntity(model *PurchaseRequestModel) *purchase.Request {
	return &purchase.Request{
		ID:                model.ID,
		BookID:            model.BookID,
		WarehouseID:       model.WarehouseID,
		RequestedQuantity: model.RequestedQuantity,
		EstimatedCost:     model.EstimatedCost,
		Status:            purchase.RequestStatus(model.Status),
		ApprovedQuantity:  model.ApprovedQuantity,
		ApprovedCost:      model.ApprovedCost,
		ReviewNote:        model.ReviewNote,
		RequestedBy:       model.RequestedBy,
		ApprovedBy:        model.ApprovedBy,
		PurchaseOrderID:   model.PurchaseOrderID,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}
