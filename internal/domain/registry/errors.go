package registry

import (
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// 地点/供应商领域错误定义
var (
	// ErrLocationNotFound 仓库或门店不存在
	ErrLocationNotFound = apperrors.ErrLocationNotFound

	// ErrVendorNotFound 供应商不存在
	ErrVendorNotFound = apperrors.ErrVendorNotFound

	// ErrDuplicateCode 编码在同类型未回收记录中已存在
	ErrDuplicateCode = apperrors.ErrDuplicateCode

	// ErrInvalidKind 地点类型非法
	ErrInvalidKind = apperrors.New(apperrors.ErrCodeInvalidParams, "地点类型必须是WAREHOUSE或STORE")

	// ErrInvalidRegistryParams 必填字段缺失
	ErrInvalidRegistryParams = apperrors.New(apperrors.ErrCodeInvalidParams, "编码和名称不能为空")

	// ErrAlreadyTrashed 记录已在回收站
	ErrAlreadyTrashed = apperrors.New(apperrors.ErrCodeInvalidTransition, "记录已在回收站")

	// ErrNotTrashed 记录不在回收站,无法恢复
	ErrNotTrashed = apperrors.New(apperrors.ErrCodeInvalidTransition, "记录不在回收站")
)
