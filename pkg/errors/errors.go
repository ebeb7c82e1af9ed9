package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeMQError       = 50003 // 消息队列错误

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized = 40100 // 缺少操作人身份
	ErrCodeInvalidToken = 40101 // 身份Token无效

	// 资源错误（40400-40499）
	ErrCodeNotFound         = 40400 // 资源不存在(通用)
	ErrCodeLocationNotFound = 40401 // 仓库/门店不存在
	ErrCodeVendorNotFound   = 40402 // 供应商不存在
	ErrCodeStockNotFound    = 40403 // 库存记录不存在
	ErrCodeRequestNotFound  = 40404 // 采购申请不存在
	ErrCodeOrderNotFound    = 40405 // 采购单不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError        = 40000 // 业务错误(通用)
	ErrCodeInsufficientStock    = 40001 // 库存不足
	ErrCodeInvalidQuantity      = 40002 // 数量非法(负数或必须为正)
	ErrCodeInvalidTransition    = 40003 // 状态流转非法
	ErrCodeRequestNotApprovable = 40004 // 采购申请不可转单
	ErrCodeDuplicateCode        = 40005 // 编码重复
	ErrCodeSameLocation         = 40006 // 调拨源与目标相同

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	// 身份
	ErrUnauthorized = New(ErrCodeUnauthorized, "缺少操作人身份")
	ErrInvalidToken = New(ErrCodeInvalidToken, "无效的身份Token")

	// 资源不存在
	ErrLocationNotFound = New(ErrCodeLocationNotFound, "仓库或门店不存在")
	ErrVendorNotFound   = New(ErrCodeVendorNotFound, "供应商不存在")
	ErrStockNotFound    = New(ErrCodeStockNotFound, "库存记录不存在")
	ErrRequestNotFound  = New(ErrCodeRequestNotFound, "采购申请不存在")
	ErrOrderNotFound    = New(ErrCodeOrderNotFound, "采购单不存在")

	// 业务规则
	ErrInsufficientStock    = New(ErrCodeInsufficientStock, "库存不足")
	ErrInvalidQuantity      = New(ErrCodeInvalidQuantity, "数量非法")
	ErrInvalidTransition    = New(ErrCodeInvalidTransition, "当前状态不允许此操作")
	ErrRequestNotApprovable = New(ErrCodeRequestNotApprovable, "采购申请未审批通过或已生成采购单")
	ErrDuplicateCode        = New(ErrCodeDuplicateCode, "编码已存在")
	ErrSameLocation         = New(ErrCodeSameLocation, "调拨源与目标不能相同")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}
