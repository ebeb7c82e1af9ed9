package purchase

import (
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// 采购领域错误定义
var (
	// ErrRequestNotFound 采购申请不存在
	ErrRequestNotFound = apperrors.ErrRequestNotFound

	// ErrOrderNotFound 采购单不存在
	ErrOrderNotFound = apperrors.ErrOrderNotFound

	// ErrInvalidQuantity 数量必须为正
	ErrInvalidQuantity = apperrors.ErrInvalidQuantity

	// ErrInvalidTransition 状态机不允许该流转
	ErrInvalidTransition = apperrors.ErrInvalidTransition

	// ErrRequestNotApprovable 申请未批准或已关联采购单,不可转单
	ErrRequestNotApprovable = apperrors.ErrRequestNotApprovable

	// ErrInvalidReviewAction 审批动作必须是APPROVE或REJECT
	ErrInvalidReviewAction = apperrors.New(apperrors.ErrCodeInvalidParams, "审批动作必须是APPROVE或REJECT")

	// ErrReceivedExceedsOrdered 已收数量超过订购数量(数据异常)
	ErrReceivedExceedsOrdered = apperrors.New(apperrors.ErrCodeBusinessError, "已收数量超过订购数量")
)
