package stock

import (
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// 库存台账领域错误定义
var (
	// ErrInvalidQuantity 数量非法(负数,或必须为正的场景传了0)
	ErrInvalidQuantity = apperrors.ErrInvalidQuantity

	// ErrInsufficientStock 扣减会导致库存为负
	ErrInsufficientStock = apperrors.ErrInsufficientStock

	// ErrStockNotFound 台账记录不存在
	ErrStockNotFound = apperrors.ErrStockNotFound

	// ErrSameLocation 调拨源与目标相同
	ErrSameLocation = apperrors.ErrSameLocation

	// ErrInvalidAlertStatus 告警状态过滤参数非法
	ErrInvalidAlertStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "告警状态必须是OPEN或RESOLVED")

	// ErrAlertAlreadyOpen 该Key已有OPEN告警
	// 并发评估撞上唯一索引时返回,调用方视作告警已就位
	ErrAlertAlreadyOpen = apperrors.New(apperrors.ErrCodeBusinessError, "该库存位置已有未解除的告警")
)
