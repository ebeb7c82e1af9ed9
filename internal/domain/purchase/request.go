package purchase

import (
	"time"
)

// RequestStatus 采购申请状态
// 状态机: DRAFT → PENDING_APPROVAL → {APPROVED | REJECTED}; APPROVED → COMPLETED
// REJECTED和COMPLETED是终态,任何状态都不会被重新进入
type RequestStatus string

const (
	RequestDraft           RequestStatus = "DRAFT"            // 草稿
	RequestPendingApproval RequestStatus = "PENDING_APPROVAL" // 待审批
	RequestApproved        RequestStatus = "APPROVED"         // 已批准
	RequestRejected        RequestStatus = "REJECTED"         // 已驳回(终态)
	RequestCompleted       RequestStatus = "COMPLETED"        // 已完成(终态)
)

// ReviewAction 审批动作
type ReviewAction string

const (
	ReviewApprove ReviewAction = "APPROVE"
	ReviewReject  ReviewAction = "REJECT"
)

// Request 采购申请(聚合根)
// 设计说明:
// 1. 申请永远面向仓库(补货节点),门店通过调拨获得库存
// 2. PurchaseOrderID只允许设置一次:一条申请最多生成一张采购单
// 3. 申请从不删除,只走状态机,保留完整审计链
type Request struct {
	ID                uint
	BookID            uint
	WarehouseID       uint
	RequestedQuantity int    // 申请数量(>0)
	EstimatedCost     *int64 // 预估成本(分,可选)
	Status            RequestStatus
	ApprovedQuantity  *int   // 审批通过的数量(审批时设置)
	ApprovedCost      *int64 // 审批通过的成本(分,可选)
	ReviewNote        string // 审批备注
	RequestedBy       uint   // 申请人
	ApprovedBy        *uint  // 审批人
	PurchaseOrderID   *uint  // 关联的采购单(至多设置一次)
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewRequest 创建采购申请(工厂方法)
// submitForApproval为true时直接进入待审批,否则停在草稿
func NewRequest(bookID, warehouseID uint, quantity int, estimatedCost *int64, submitForApproval bool, actorID uint) (*Request, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	status := RequestDraft
	if submitForApproval {
		status = RequestPendingApproval
	}

	now := time.Now()
	return &Request{
		BookID:            bookID,
		WarehouseID:       warehouseID,
		RequestedQuantity: quantity,
		EstimatedCost:     estimatedCost,
		Status:            status,
		RequestedBy:       actorID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// Submit 提交审批: DRAFT → PENDING_APPROVAL
func (r *Request) Submit() error {
	if r.Status != RequestDraft {
		return ErrInvalidTransition
	}
	r.Status = RequestPendingApproval
	r.UpdatedAt = time.Now()
	return nil
}

// Review 审批: PENDING_APPROVAL → APPROVED | REJECTED
// 批准时approvedQuantity缺省取申请数量,且必须>0
func (r *Request) Review(action ReviewAction, approvedQuantity *int, approvedCost *int64, note string, actorID uint) error {
	if r.Status != RequestPendingApproval {
		return ErrInvalidTransition
	}

	switch action {
	case ReviewApprove:
		qty := r.RequestedQuantity
		if approvedQuantity != nil {
			qty = *approvedQuantity
		}
		if qty <= 0 {
			return ErrInvalidQuantity
		}
		r.Status = RequestApproved
		r.ApprovedQuantity = &qty
		r.ApprovedCost = approvedCost
	case ReviewReject:
		r.Status = RequestRejected
	default:
		return ErrInvalidReviewAction
	}

	r.ReviewNote = note
	r.ApprovedBy = &actorID
	r.UpdatedAt = time.Now()
	return nil
}

// Complete 完成: APPROVED → COMPLETED
// 在关联采购单到达收货/关闭终态后调用
func (r *Request) Complete() error {
	if r.Status != RequestApproved {
		return ErrInvalidTransition
	}
	r.Status = RequestCompleted
	r.UpdatedAt = time.Now()
	return nil
}

// Convertible 判断能否转为采购单:已批准且尚未关联采购单
func (r *Request) Convertible() bool {
	return r.Status == RequestApproved && r.PurchaseOrderID == nil
}

// LinkOrder 关联采购单(只允许一次)
func (r *Request) LinkOrder(orderID uint) error {
	if !r.Convertible() {
		return ErrRequestNotApprovable
	}
	r.PurchaseOrderID = &orderID
	r.UpdatedAt = time.Now()
	return nil
}

// QuantityToOrder 转单数量:审批数量,未设置时取申请数量
func (r *Request) QuantityToOrder() int {
	if r.ApprovedQuantity != nil {
		return *r.ApprovedQuantity
	}
	return r.RequestedQuantity
}
