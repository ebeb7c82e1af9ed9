package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	apppurchase "github.com/xiebiao/warehouse/internal/application/purchase"
	dompurchase "github.com/xiebiao/warehouse/internal/domain/purchase"
	"github.com/xiebiao/warehouse/internal/interface/http/dto"
	"github.com/xiebiao/warehouse/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
	"github.com/xiebiao/warehouse/pkg/response"
)

// parseExpectedAt 解析预计到货日期(YYYY-MM-DD,可选)
func parseExpectedAt(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// PurchaseRequestHandler 采购申请HTTP处理器
type PurchaseRequestHandler struct {
	createUseCase   *apppurchase.CreateRequestUseCase
	submitUseCase   *apppurchase.SubmitRequestUseCase
	reviewUseCase   *apppurchase.ReviewRequestUseCase
	completeUseCase *apppurchase.CompleteRequestUseCase
	listUseCase     *apppurchase.ListRequestsUseCase
	getUseCase      *apppurchase.GetRequestUseCase
}

// NewPurchaseRequestHandler 创建采购申请处理器
func NewPurchaseRequestHandler(
	createUseCase *apppurchase.CreateRequestUseCase,
	submitUseCase *apppurchase.SubmitRequestUseCase,
	reviewUseCase *apppurchase.ReviewRequestUseCase,
	completeUseCase *apppurchase.CompleteRequestUseCase,
	listUseCase *apppurchase.ListRequestsUseCase,
	getUseCase *apppurchase.GetRequestUseCase,
) *PurchaseRequestHandler {
	return &PurchaseRequestHandler{
		createUseCase:   createUseCase,
		submitUseCase:   submitUseCase,
		reviewUseCase:   reviewUseCase,
		completeUseCase: completeUseCase,
		listUseCase:     listUseCase,
		getUseCase:      getUseCase,
	}
}

// Create 创建采购申请
// @Summary      创建采购申请(可直接提交审批)
// @Tags         采购模块
// @Security     BearerAuth
// @Param        request body dto.CreatePurchaseRequestRequest true "申请信息"
// @Success      200 {object} response.Response
// @Router       /purchase-requests [post]
func (h *PurchaseRequestHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	actorID := middleware.MustGetActorID(c)

	result, err := h.createUseCase.Execute(c.Request.Context(), apppurchase.CreateRequestRequest{
		BookID:            req.BookID,
		WarehouseID:       req.WarehouseID,
		Quantity:          req.Quantity,
		EstimatedCost:     req.EstimatedCost,
		SubmitForApproval: req.SubmitForApproval,
		ActorID:           actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Submit 提交审批
// @Summary      采购申请提交审批(DRAFT→PENDING_APPROVAL)
// @Tags         采购模块
// @Security     BearerAuth
// @Param        id path int true "申请ID"
// @Success      200 {object} response.Response
// @Failure      40003 {object} response.Response "状态不允许"
// @Router       /purchase-requests/{id}/submit [patch]
func (h *PurchaseRequestHandler) Submit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.submitUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Review 审批
// @Summary      审批采购申请(APPROVE/REJECT)
// @Tags         采购模块
// @Security     BearerAuth
// @Param        id path int true "申请ID"
// @Param        request body dto.ReviewPurchaseRequestRequest true "审批信息"
// @Success      200 {object} response.Response
// @Failure      40003 {object} response.Response "状态不允许"
// @Router       /purchase-requests/{id}/review [patch]
func (h *PurchaseRequestHandler) Review(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ReviewPurchaseRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	actorID := middleware.MustGetActorID(c)

	result, err := h.reviewUseCase.Execute(c.Request.Context(), apppurchase.ReviewRequestRequest{
		ID:               id,
		Action:           dompurchase.ReviewAction(req.Action),
		ApprovedQuantity: req.ApprovedQuantity,
		ApprovedCost:     req.ApprovedCost,
		Note:             req.Note,
		ActorID:          actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Complete 手动完成
// @Summary      完成采购申请(APPROVED→COMPLETED,线下补货场景)
// @Tags         采购模块
// @Security     BearerAuth
// @Param        id path int true "申请ID"
// @Success      200 {object} response.Response
// @Router       /purchase-requests/{id}/complete [patch]
func (h *PurchaseRequestHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.completeUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// List 申请列表
// @Summary      按状态分页查询采购申请
// @Tags         采购模块
// @Param        status query string false "状态"
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response
// @Router       /purchase-requests [get]
func (h *PurchaseRequestHandler) List(c *gin.Context) {
	var req dto.ListPurchaseRequestsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), req.Status, req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 申请详情
// @Summary      采购申请详情
// @Tags         采购模块
// @Param        id path int true "申请ID"
// @Success      200 {object} response.Response
// @Router       /purchase-requests/{id} [get]
func (h *PurchaseRequestHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// PurchaseOrderHandler 采购单HTTP处理器
type PurchaseOrderHandler struct {
	createUseCase  *apppurchase.CreateOrderUseCase
	batchUseCase   *apppurchase.CreateOrdersBatchUseCase
	receiveUseCase *apppurchase.ReceiveOrderUseCase
	cancelUseCase  *apppurchase.CancelOrderUseCase
	listUseCase    *apppurchase.ListOrdersUseCase
	getUseCase     *apppurchase.GetOrderUseCase
}

// NewPurchaseOrderHandler 创建采购单处理器
func NewPurchaseOrderHandler(
	createUseCase *apppurchase.CreateOrderUseCase,
	batchUseCase *apppurchase.CreateOrdersBatchUseCase,
	receiveUseCase *apppurchase.ReceiveOrderUseCase,
	cancelUseCase *apppurchase.CancelOrderUseCase,
	listUseCase *apppurchase.ListOrdersUseCase,
	getUseCase *apppurchase.GetOrderUseCase,
) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		createUseCase:  createUseCase,
		batchUseCase:   batchUseCase,
		receiveUseCase: receiveUseCase,
		cancelUseCase:  cancelUseCase,
		listUseCase:    listUseCase,
		getUseCase:     getUseCase,
	}
}

// Create 创建采购单
// @Summary      由已批准的采购申请创建采购单(创建即下发)
// @Tags         采购模块
// @Security     BearerAuth
// @Param        request body dto.CreatePurchaseOrderRequest true "采购单信息"
// @Success      200 {object} response.Response
// @Failure      40004 {object} response.Response "申请不可转单"
// @Router       /purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	expectedAt, err := parseExpectedAt(req.ExpectedAt)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "预计到货日期格式错误,应为YYYY-MM-DD")
		return
	}

	actorID := middleware.MustGetActorID(c)

	result, err := h.createUseCase.Execute(c.Request.Context(), apppurchase.CreateOrderRequest{
		RequestID:  req.RequestID,
		VendorID:   req.VendorID,
		UnitCost:   req.UnitCost,
		ExpectedAt: expectedAt,
		Note:       req.Note,
		ActorID:    actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateBatch 批量创建采购单
// @Summary      批量转单(尽力而为,每条申请独立成败)
// @Tags         采购模块
// @Security     BearerAuth
// @Param        request body dto.CreatePurchaseOrdersBatchRequest true "批量信息"
// @Success      200 {object} response.Response
// @Router       /purchase-orders/batch [post]
func (h *PurchaseOrderHandler) CreateBatch(c *gin.Context) {
	var req dto.CreatePurchaseOrdersBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	expectedAt, err := parseExpectedAt(req.ExpectedAt)
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "预计到货日期格式错误,应为YYYY-MM-DD")
		return
	}

	actorID := middleware.MustGetActorID(c)

	result, err := h.batchUseCase.Execute(c.Request.Context(), apppurchase.CreateOrdersBatchRequest{
		RequestIDs: req.RequestIDs,
		VendorID:   req.VendorID,
		UnitCost:   req.UnitCost,
		ExpectedAt: expectedAt,
		Note:       req.Note,
		ActorID:    actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Receive 收货
// @Summary      采购单全量收货(幂等,增量入账仓库台账)
// @Tags         采购模块
// @Security     BearerAuth
// @Param        id path int true "采购单ID"
// @Param        request body dto.ReceivePurchaseOrderRequest true "收货信息"
// @Success      200 {object} response.Response
// @Failure      40003 {object} response.Response "状态不允许收货"
// @Router       /purchase-orders/{id}/receive [patch]
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ReceivePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.receiveUseCase.Execute(c.Request.Context(), apppurchase.ReceiveOrderRequest{
		OrderID:                id,
		Note:                   req.Note,
		CloseWhenFullyReceived: req.CloseWhenFullyReceived,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Cancel 取消
// @Summary      取消采购单(仅DRAFT/SENT且未收货)
// @Tags         采购模块
// @Security     BearerAuth
// @Param        id path int true "采购单ID"
// @Success      200 {object} response.Response
// @Failure      40003 {object} response.Response "状态不允许取消"
// @Router       /purchase-orders/{id}/cancel [patch]
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.cancelUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// List 采购单列表
// @Summary      按状态分页查询采购单
// @Tags         采购模块
// @Param        status query string false "状态"
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response
// @Router       /purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var req dto.ListPurchaseOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), req.Status, req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 采购单详情
// @Summary      采购单详情(含明细行)
// @Tags         采购模块
// @Param        id path int true "采购单ID"
// @Success      200 {object} response.Response
// @Router       /purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
