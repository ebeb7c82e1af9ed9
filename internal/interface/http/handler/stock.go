package handler

import (
	"github.com/gin-gonic/gin"

	appstock "github.com/xiebiao/warehouse/internal/application/stock"
	domregistry "github.com/xiebiao/warehouse/internal/domain/registry"
	"github.com/xiebiao/warehouse/internal/interface/http/dto"
	"github.com/xiebiao/warehouse/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
	"github.com/xiebiao/warehouse/pkg/response"
)

// StockHandler 库存台账HTTP处理器
// 覆盖:设置库存、增减、查询、调拨、告警
type StockHandler struct {
	setUseCase           *appstock.SetStockUseCase
	adjustUseCase        *appstock.AdjustStockUseCase
	getUseCase           *appstock.GetStockUseCase
	listUseCase          *appstock.ListStockUseCase
	transferUseCase      *appstock.TransferUseCase
	listTransfersUseCase *appstock.ListTransfersUseCase
	listAlertsUseCase    *appstock.ListAlertsUseCase
}

// NewStockHandler 创建库存处理器
func NewStockHandler(
	setUseCase *appstock.SetStockUseCase,
	adjustUseCase *appstock.AdjustStockUseCase,
	getUseCase *appstock.GetStockUseCase,
	listUseCase *appstock.ListStockUseCase,
	transferUseCase *appstock.TransferUseCase,
	listTransfersUseCase *appstock.ListTransfersUseCase,
	listAlertsUseCase *appstock.ListAlertsUseCase,
) *StockHandler {
	return &StockHandler{
		setUseCase:           setUseCase,
		adjustUseCase:        adjustUseCase,
		getUseCase:           getUseCase,
		listUseCase:          listUseCase,
		transferUseCase:      transferUseCase,
		listTransfersUseCase: listTransfersUseCase,
		listAlertsUseCase:    listAlertsUseCase,
	}
}

// SetStock 设置库存
// @Summary      设置某地点某本书的库存和阈值(Upsert)
// @Tags         库存模块
// @Security     BearerAuth
// @Param        id path int true "地点ID"
// @Param        bookId path int true "图书ID"
// @Param        request body dto.SetStockRequest true "库存信息"
// @Success      200 {object} response.Response
// @Router       /locations/{id}/stocks/{bookId} [put]
func (h *StockHandler) SetStock(c *gin.Context) {
	locationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	var req dto.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	threshold := 0
	if req.LowStockThreshold != nil {
		threshold = *req.LowStockThreshold
	}

	result, err := h.setUseCase.Execute(c.Request.Context(), appstock.SetStockRequest{
		Kind:       domregistry.LocationKind(req.Kind),
		LocationID: locationID,
		BookID:     bookID,
		Quantity:   req.Stock,
		Threshold:  threshold,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Credit 库存入账
// @Summary      某地点某本书库存增加
// @Tags         库存模块
// @Security     BearerAuth
// @Param        id path int true "地点ID"
// @Param        bookId path int true "图书ID"
// @Param        request body dto.AdjustStockRequest true "入账数量"
// @Success      200 {object} response.Response
// @Router       /locations/{id}/stocks/{bookId}/credit [post]
func (h *StockHandler) Credit(c *gin.Context) {
	h.adjust(c, true)
}

// Debit 库存出账
// @Summary      某地点某本书库存减少(不足时整笔失败)
// @Tags         库存模块
// @Security     BearerAuth
// @Param        id path int true "地点ID"
// @Param        bookId path int true "图书ID"
// @Param        request body dto.AdjustStockRequest true "出账数量"
// @Success      200 {object} response.Response
// @Failure      40001 {object} response.Response "库存不足"
// @Router       /locations/{id}/stocks/{bookId}/debit [post]
func (h *StockHandler) Debit(c *gin.Context) {
	h.adjust(c, false)
}

func (h *StockHandler) adjust(c *gin.Context, credit bool) {
	locationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	appReq := appstock.AdjustStockRequest{
		Kind:       domregistry.LocationKind(req.Kind),
		LocationID: locationID,
		BookID:     bookID,
		Quantity:   req.Quantity,
	}

	var (
		result *appstock.AdjustStockResponse
		err    error
	)
	if credit {
		result, err = h.adjustUseCase.Credit(c.Request.Context(), appReq)
	} else {
		result, err = h.adjustUseCase.Debit(c.Request.Context(), appReq)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetStock 单条台账查询
// @Summary      查询某地点某本书的台账记录
// @Tags         库存模块
// @Param        id path int true "地点ID"
// @Param        bookId path int true "图书ID"
// @Param        kind query string true "地点类型" Enums(WAREHOUSE, STORE)
// @Success      200 {object} response.Response
// @Router       /locations/{id}/stocks/{bookId} [get]
func (h *StockHandler) GetStock(c *gin.Context) {
	locationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "bookId")
	if !ok {
		return
	}

	var req dto.ListStocksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), domregistry.LocationKind(req.Kind), locationID, bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListStocks 地点台账列表
// @Summary      查询某地点的全部台账记录(走Redis读缓存)
// @Tags         库存模块
// @Param        id path int true "地点ID"
// @Param        kind query string true "地点类型" Enums(WAREHOUSE, STORE)
// @Success      200 {object} response.Response
// @Router       /locations/{id}/stocks [get]
func (h *StockHandler) ListStocks(c *gin.Context) {
	locationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ListStocksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), domregistry.LocationKind(req.Kind), locationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Transfer 库存调拨
// @Summary      两地点间调拨库存(原子,死锁安全)
// @Tags         库存模块
// @Security     BearerAuth
// @Param        request body dto.TransferRequest true "调拨信息"
// @Success      200 {object} response.Response
// @Failure      40001 {object} response.Response "源地点库存不足"
// @Failure      40006 {object} response.Response "源与目标相同"
// @Router       /transfers [post]
func (h *StockHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	actorID := middleware.MustGetActorID(c)

	result, err := h.transferUseCase.Execute(c.Request.Context(), appstock.TransferRequest{
		BookID:       req.BookID,
		FromKind:     domregistry.LocationKind(req.FromKind),
		FromLocation: req.FromLocationID,
		ToKind:       domregistry.LocationKind(req.ToKind),
		ToLocation:   req.ToLocationID,
		Quantity:     req.Quantity,
		Note:         req.Note,
		ActorID:      actorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListTransfers 调拨日志列表
// @Summary      分页查询调拨日志(时间倒序)
// @Tags         库存模块
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response
// @Router       /transfers [get]
func (h *StockHandler) ListTransfers(c *gin.Context) {
	var req dto.ListTransfersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listTransfersUseCase.Execute(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListAlerts 告警列表
// @Summary      按状态分页查询低库存告警
// @Tags         库存模块
// @Param        status query string false "状态" Enums(OPEN, RESOLVED)
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response
// @Router       /alerts [get]
func (h *StockHandler) ListAlerts(c *gin.Context) {
	var req dto.ListAlertsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listAlertsUseCase.Execute(c.Request.Context(), req.Status, req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
