package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appregistry "github.com/xiebiao/warehouse/internal/application/registry"
	domregistry "github.com/xiebiao/warehouse/internal/domain/registry"
	"github.com/xiebiao/warehouse/internal/interface/http/dto"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
	"github.com/xiebiao/warehouse/pkg/response"
)

// parseIDParam 解析路径中的ID参数
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的ID参数")
		return 0, false
	}
	return uint(id), true
}

// LocationHandler 地点HTTP处理器(仓库/门店)
type LocationHandler struct {
	createUseCase  *appregistry.CreateLocationUseCase
	updateUseCase  *appregistry.UpdateLocationUseCase
	trashUseCase   *appregistry.TrashLocationUseCase
	restoreUseCase *appregistry.RestoreLocationUseCase
	listUseCase    *appregistry.ListLocationsUseCase
	getUseCase     *appregistry.GetLocationUseCase
}

// NewLocationHandler 创建地点处理器
func NewLocationHandler(
	createUseCase *appregistry.CreateLocationUseCase,
	updateUseCase *appregistry.UpdateLocationUseCase,
	trashUseCase *appregistry.TrashLocationUseCase,
	restoreUseCase *appregistry.RestoreLocationUseCase,
	listUseCase *appregistry.ListLocationsUseCase,
	getUseCase *appregistry.GetLocationUseCase,
) *LocationHandler {
	return &LocationHandler{
		createUseCase:  createUseCase,
		updateUseCase:  updateUseCase,
		trashUseCase:   trashUseCase,
		restoreUseCase: restoreUseCase,
		listUseCase:    listUseCase,
		getUseCase:     getUseCase,
	}
}

// Create 创建地点
// @Summary      创建仓库或门店
// @Tags         地点模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateLocationRequest true "地点信息"
// @Success      200 {object} response.Response "创建成功"
// @Failure      40005 {object} response.Response "编码已存在"
// @Router       /locations [post]
func (h *LocationHandler) Create(c *gin.Context) {
	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appregistry.CreateLocationRequest{
		Kind:    domregistry.LocationKind(req.Kind),
		Code:    req.Code,
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Update 更新地点
// @Summary      更新仓库或门店(Kind和Code不可变)
// @Tags         地点模块
// @Security     BearerAuth
// @Param        id path int true "地点ID"
// @Param        request body dto.UpdateLocationRequest true "更新字段"
// @Success      200 {object} response.Response
// @Router       /locations/{id} [put]
func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), appregistry.UpdateLocationRequest{
		ID:      id,
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
		Active:  req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Trash 地点移入回收站
// @Summary      地点移入回收站(可恢复,不级联删库存)
// @Tags         地点模块
// @Security     BearerAuth
// @Param        id path int true "地点ID"
// @Success      200 {object} response.Response
// @Router       /locations/{id} [delete]
func (h *LocationHandler) Trash(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.trashUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Restore 地点从回收站恢复
// @Summary      地点从回收站恢复
// @Tags         地点模块
// @Security     BearerAuth
// @Param        id path int true "地点ID"
// @Success      200 {object} response.Response
// @Failure      40005 {object} response.Response "编码已被新记录占用"
// @Router       /locations/{id}/restore [patch]
func (h *LocationHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.restoreUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// List 地点列表
// @Summary      地点列表(默认只含正常记录)
// @Tags         地点模块
// @Param        kind query string false "类型" Enums(WAREHOUSE, STORE)
// @Param        filter query string false "过滤" Enums(active, trashed, all)
// @Success      200 {object} response.Response
// @Router       /locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	var req dto.ListLocationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), appregistry.ListLocationsRequest{
		Kind:   domregistry.LocationKind(req.Kind),
		Filter: domregistry.ListFilter(req.Filter),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 地点详情
// @Summary      地点详情(回收站记录也可寻址)
// @Tags         地点模块
// @Param        id path int true "地点ID"
// @Success      200 {object} response.Response
// @Router       /locations/{id} [get]
func (h *LocationHandler) Get(c *gin.Context) {
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

// VendorHandler 供应商HTTP处理器
type VendorHandler struct {
	createUseCase  *appregistry.CreateVendorUseCase
	updateUseCase  *appregistry.UpdateVendorUseCase
	trashUseCase   *appregistry.TrashVendorUseCase
	restoreUseCase *appregistry.RestoreVendorUseCase
	listUseCase    *appregistry.ListVendorsUseCase
	getUseCase     *appregistry.GetVendorUseCase
}

// NewVendorHandler 创建供应商处理器
func NewVendorHandler(
	createUseCase *appregistry.CreateVendorUseCase,
	updateUseCase *appregistry.UpdateVendorUseCase,
	trashUseCase *appregistry.TrashVendorUseCase,
	restoreUseCase *appregistry.RestoreVendorUseCase,
	listUseCase *appregistry.ListVendorsUseCase,
	getUseCase *appregistry.GetVendorUseCase,
) *VendorHandler {
	return &VendorHandler{
		createUseCase:  createUseCase,
		updateUseCase:  updateUseCase,
		trashUseCase:   trashUseCase,
		restoreUseCase: restoreUseCase,
		listUseCase:    listUseCase,
		getUseCase:     getUseCase,
	}
}

// Create 创建供应商
// @Summary      创建供应商
// @Tags         供应商模块
// @Security     BearerAuth
// @Param        request body dto.CreateVendorRequest true "供应商信息"
// @Success      200 {object} response.Response
// @Failure      40005 {object} response.Response "编码已存在"
// @Router       /vendors [post]
func (h *VendorHandler) Create(c *gin.Context) {
	var req dto.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appregistry.CreateVendorRequest{
		Code:        req.Code,
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Update 更新供应商
// @Summary      更新供应商(Code不可变)
// @Tags         供应商模块
// @Security     BearerAuth
// @Param        id path int true "供应商ID"
// @Param        request body dto.UpdateVendorRequest true "更新字段"
// @Success      200 {object} response.Response
// @Router       /vendors/{id} [put]
func (h *VendorHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), appregistry.UpdateVendorRequest{
		ID:          id,
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Active:      req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Trash 供应商移入回收站
// @Summary      供应商移入回收站
// @Tags         供应商模块
// @Security     BearerAuth
// @Param        id path int true "供应商ID"
// @Success      200 {object} response.Response
// @Router       /vendors/{id} [delete]
func (h *VendorHandler) Trash(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.trashUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Restore 供应商从回收站恢复
// @Summary      供应商从回收站恢复
// @Tags         供应商模块
// @Security     BearerAuth
// @Param        id path int true "供应商ID"
// @Success      200 {object} response.Response
// @Router       /vendors/{id}/restore [patch]
func (h *VendorHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.restoreUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// List 供应商列表
// @Summary      供应商列表
// @Tags         供应商模块
// @Param        filter query string false "过滤" Enums(active, trashed, all)
// @Success      200 {object} response.Response
// @Router       /vendors [get]
func (h *VendorHandler) List(c *gin.Context) {
	var req dto.ListVendorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), domregistry.ListFilter(req.Filter))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Get 供应商详情
// @Summary      供应商详情
// @Tags         供应商模块
// @Param        id path int true "供应商ID"
// @Success      200 {object} response.Response
// @Router       /vendors/{id} [get]
func (h *VendorHandler) Get(c *gin.Context) {
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
