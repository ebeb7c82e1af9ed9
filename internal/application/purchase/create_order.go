package purchase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/warehouse/internal/domain/purchase"
	"github.com/xiebiao/warehouse/internal/domain/registry"
	"github.com/xiebiao/warehouse/pkg/logger"
	"github.com/xiebiao/warehouse/pkg/metrics"
)

// CreateOrderUseCase 由采购申请创建采购单用例
// 设计说明:
// 1. 只有APPROVED且未关联过采购单的申请可以转单
// 2. 事务内锁申请行:两个并发转单请求只有一个能成功,
//    另一个看到已关联后得到ErrRequestNotApprovable
// 3. 创建即下发:采购单落库时状态已是SENT
type CreateOrderUseCase struct {
	orderRepo   purchase.OrderRepository
	requestRepo purchase.RequestRepository
	vendorRepo  registry.VendorRepository
	txManager   TxManager
}

// NewCreateOrderUseCase 创建采购单创建用例
func NewCreateOrderUseCase(
	orderRepo purchase.OrderRepository,
	requestRepo purchase.RequestRepository,
	vendorRepo registry.VendorRepository,
	txManager TxManager,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:   orderRepo,
		requestRepo: requestRepo,
		vendorRepo:  vendorRepo,
		txManager:   txManager,
	}
}

// CreateOrderRequest 创建采购单请求DTO
type CreateOrderRequest struct {
	RequestID  uint
	VendorID   uint
	UnitCost   int64      // 单价(分,>=0)
	ExpectedAt *time.Time // 预计到货(可选)
	Note       string     // 备注(可选)
	ActorID    uint       // 创建人(从JWT中提取)
}

// OrderItemDTO 采购单明细DTO
type OrderItemDTO struct {
	ID               uint  `json:"id"`
	BookID           uint  `json:"book_id"`
	OrderedQuantity  int   `json:"ordered_quantity"`
	ReceivedQuantity int   `json:"received_quantity"`
	UnitCost         int64 `json:"unit_cost"`
}

// OrderDTO 采购单响应DTO
type OrderDTO struct {
	ID          uint           `json:"id"`
	RequestID   uint           `json:"request_id"`
	VendorID    uint           `json:"vendor_id"`
	WarehouseID uint           `json:"warehouse_id"`
	Status      string         `json:"status"`
	Items       []OrderItemDTO `json:"items"`
	TotalCost   int64          `json:"total_cost"`
	Note        string         `json:"note,omitempty"`
	CreatedBy   uint           `json:"created_by"`
	ApprovedBy  *uint          `json:"approved_by,omitempty"`
	ExpectedAt  string         `json:"expected_at,omitempty"`
	SentAt      string         `json:"sent_at,omitempty"`
	ReceivedAt  string         `json:"received_at,omitempty"`
	CreatedAt   string         `json:"created_at"`
}

func toOrderDTO(o *purchase.Order) *OrderDTO {
	items := make([]OrderItemDTO, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemDTO{
			ID:               it.ID,
			BookID:           it.BookID,
			OrderedQuantity:  it.OrderedQuantity,
			ReceivedQuantity: it.ReceivedQuantity,
			UnitCost:         it.UnitCost,
		}
	}

	dto := &OrderDTO{
		ID:          o.ID,
		RequestID:   o.RequestID,
		VendorID:    o.VendorID,
		WarehouseID: o.WarehouseID,
		Status:      string(o.Status),
		Items:       items,
		TotalCost:   o.TotalCost,
		Note:        o.Note,
		CreatedBy:   o.CreatedBy,
		ApprovedBy:  o.ApprovedBy,
		CreatedAt:   o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if o.ExpectedAt != nil {
		dto.ExpectedAt = o.ExpectedAt.Format("2006-01-02 15:04:05")
	}
	if o.SentAt != nil {
		dto.SentAt = o.SentAt.Format("2006-01-02 15:04:05")
	}
	if o.ReceivedAt != nil {
		dto.ReceivedAt = o.ReceivedAt.Format("2006-01-02 15:04:05")
	}
	return dto
}

// Execute 执行采购单创建
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*OrderDTO, error) {
	// 1. 参数校验
	if req.UnitCost < 0 {
		return nil, purchase.ErrInvalidQuantity
	}

	// 2. 供应商必须存在且不在回收站
	vendor, err := uc.vendorRepo.FindByID(ctx, req.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor.Trashed() {
		return nil, registry.ErrVendorNotFound
	}

	// 3. 事务:锁申请 → 建单 → 回写关联
	var result *purchase.Order
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 悲观锁防止并发重复转单
		r, err := uc.requestRepo.LockByID(txCtx, req.RequestID)
		if err != nil {
			return err
		}

		order, err := purchase.NewOrderFromRequest(r, req.VendorID, req.UnitCost, req.ExpectedAt, req.Note, req.ActorID)
		if err != nil {
			return err
		}

		if err := uc.orderRepo.Create(txCtx, order); err != nil {
			return err
		}

		// 申请关联采购单(至多一次)
		if err := r.LinkOrder(order.ID); err != nil {
			return err
		}
		if err := uc.requestRepo.Update(txCtx, r); err != nil {
			return err
		}

		result = order
		return nil
	})

	if err != nil {
		return nil, err
	}

	metrics.PurchaseOrdersCreatedTotal.Inc()
	logger.L().Info("采购单已创建并下发",
		zap.Uint("order_id", result.ID),
		zap.Uint("request_id", result.RequestID),
		zap.Uint("vendor_id", result.VendorID),
	)
	return toOrderDTO(result), nil
}
