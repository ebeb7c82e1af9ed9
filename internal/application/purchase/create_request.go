package purchase

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/purchase"
	"github.com/xiebiao/warehouse/internal/domain/registry"
)

// CreateRequestUseCase 创建采购申请用例
// 设计说明:
// 1. 申请只面向仓库:门店缺货走调拨,不直接采购
// 2. submitForApproval=true时跳过草稿直接进入待审批
type CreateRequestUseCase struct {
	requestRepo  purchase.RequestRepository
	locationRepo registry.LocationRepository
}

// NewCreateRequestUseCase 创建采购申请创建用例
func NewCreateRequestUseCase(
	requestRepo purchase.RequestRepository,
	locationRepo registry.LocationRepository,
) *CreateRequestUseCase {
	return &CreateRequestUseCase{
		requestRepo:  requestRepo,
		locationRepo: locationRepo,
	}
}

// CreateRequestRequest 创建采购申请请求DTO
type CreateRequestRequest struct {
	BookID            uint
	WarehouseID       uint   // 目的仓库
	Quantity          int    // 申请数量(>0)
	EstimatedCost     *int64 // 预估成本(分,可选)
	SubmitForApproval bool   // true时直接进入待审批
	ActorID           uint   // 申请人(从JWT中提取)
}

// RequestDTO 采购申请响应DTO
type RequestDTO struct {
	ID                uint   `json:"id"`
	BookID            uint   `json:"book_id"`
	WarehouseID       uint   `json:"warehouse_id"`
	RequestedQuantity int    `json:"requested_quantity"`
	EstimatedCost     *int64 `json:"estimated_cost,omitempty"`
	Status            string `json:"status"`
	ApprovedQuantity  *int   `json:"approved_quantity,omitempty"`
	ApprovedCost      *int64 `json:"approved_cost,omitempty"`
	ReviewNote        string `json:"review_note,omitempty"`
	RequestedBy       uint   `json:"requested_by"`
	ApprovedBy        *uint  `json:"approved_by,omitempty"`
	PurchaseOrderID   *uint  `json:"purchase_order_id,omitempty"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

func toRequestDTO(r *purchase.Request) *RequestDTO {
	return &RequestDTO{
		ID:                r.ID,
		BookID:            r.BookID,
		WarehouseID:       r.WarehouseID,
		RequestedQuantity: r.RequestedQuantity,
		EstimatedCost:     r.EstimatedCost,
		Status:            string(r.Status),
		ApprovedQuantity:  r.ApprovedQuantity,
		ApprovedCost:      r.ApprovedCost,
		ReviewNote:        r.ReviewNote,
		RequestedBy:       r.RequestedBy,
		ApprovedBy:        r.ApprovedBy,
		PurchaseOrderID:   r.PurchaseOrderID,
		CreatedAt:         r.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:         r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Execute 执行采购申请创建
func (uc *CreateRequestUseCase) Execute(ctx context.Context, req CreateRequestRequest) (*RequestDTO, error) {
	// 1. 目的仓库必须存在、是仓库类型、不在回收站
	wh, err := uc.locationRepo.FindByID(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh.Kind != registry.KindWarehouse || wh.Trashed() {
		return nil, registry.ErrLocationNotFound
	}

	// 2. 工厂方法校验数量
	r, err := purchase.NewRequest(req.BookID, req.WarehouseID, req.Quantity, req.EstimatedCost, req.SubmitForApproval, req.ActorID)
	if err != nil {
		return nil, err
	}

	// 3. 持久化
	if err := uc.requestRepo.Create(ctx, r); err != nil {
		return nil, err
	}

	return toRequestDTO(r), nil
}
