package dto

// CreatePurchaseRequestRequest HTTP创建采购申请请求
type CreatePurchaseRequestRequest struct {
	BookID            uint   `json:"book_id" binding:"required" example:"1"`
	WarehouseID       uint   `json:"warehouse_id" binding:"required" example:"1"`
	Quantity          int    `json:"quantity" binding:"required,min=1" example:"50"`
	EstimatedCost     *int64 `json:"estimated_cost" binding:"omitempty,min=0" example:"250000"` // 分
	SubmitForApproval bool   `json:"submit_for_approval" example:"true"`
}

// ReviewPurchaseRequestRequest HTTP审批采购申请请求
type ReviewPurchaseRequestRequest struct {
	Action           string `json:"action" binding:"required,oneof=APPROVE REJECT" example:"APPROVE"`
	ApprovedQuantity *int   `json:"approved_quantity" binding:"omitempty,min=1" example:"40"`
	ApprovedCost     *int64 `json:"approved_cost" binding:"omitempty,min=0"`
	Note             string `json:"note" binding:"max=200"`
}

// ListPurchaseRequestsRequest HTTP采购申请列表请求
type ListPurchaseRequestsRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=DRAFT PENDING_APPROVAL APPROVED REJECTED COMPLETED"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CreatePurchaseOrderRequest HTTP创建采购单请求
type CreatePurchaseOrderRequest struct {
	RequestID  uint   `json:"request_id" binding:"required" example:"1"`
	VendorID   uint   `json:"vendor_id" binding:"required" example:"1"`
	UnitCost   int64  `json:"unit_cost" binding:"min=0" example:"5000"`      // 分
	ExpectedAt string `json:"expected_at" binding:"omitempty" example:"2025-07-01"` // YYYY-MM-DD
	Note       string `json:"note" binding:"max=200"`
}

// CreatePurchaseOrdersBatchRequest HTTP批量创建采购单请求
type CreatePurchaseOrdersBatchRequest struct {
	RequestIDs []uint `json:"request_ids" binding:"required,min=1"`
	VendorID   uint   `json:"vendor_id" binding:"required"`
	UnitCost   int64  `json:"unit_cost" binding:"min=0"`
	ExpectedAt string `json:"expected_at" binding:"omitempty"`
	Note       string `json:"note" binding:"max=200"`
}

// ReceivePurchaseOrderRequest HTTP采购单收货请求
type ReceivePurchaseOrderRequest struct {
	Note                   string `json:"note" binding:"max=200"`
	CloseWhenFullyReceived bool   `json:"close_when_fully_received" example:"true"`
}

// ListPurchaseOrdersRequest HTTP采购单列表请求
type ListPurchaseOrdersRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=DRAFT SENT PARTIALLY_RECEIVED RECEIVED CLOSED CANCELLED"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}
