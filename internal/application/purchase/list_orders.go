package purchase

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/purchase"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// ListOrdersUseCase 采购单列表查询用例
type ListOrdersUseCase struct {
	orderRepo purchase.OrderRepository
}

// NewListOrdersUseCase 创建采购单列表查询用例
func NewListOrdersUseCase(orderRepo purchase.OrderRepository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// ListOrdersResponse 采购单列表响应DTO
type ListOrdersResponse struct {
	List     []*OrderDTO `json:"list"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// validOrderStatus 列表过滤允许的状态值
func validOrderStatus(s purchase.OrderStatus) bool {
	switch s {
	case purchase.OrderDraft, purchase.OrderSent, purchase.OrderPartiallyReceived,
		purchase.OrderReceived, purchase.OrderClosed, purchase.OrderCancelled:
		return true
	default:
		return false
	}
}

// Execute 按状态分页查询采购单,status为空表示全部
func (uc *ListOrdersUseCase) Execute(ctx context.Context, status string, page, pageSize int) (*ListOrdersResponse, error) {
	filter := purchase.OrderStatus(status)
	if status != "" && !validOrderStatus(filter) {
		return nil, apperrors.ErrInvalidParams
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	orders, total, err := uc.orderRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*OrderDTO, len(orders))
	for i, o := range orders {
		list[i] = toOrderDTO(o)
	}

	return &ListOrdersResponse{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetOrderUseCase 单个采购单查询用例
type GetOrderUseCase struct {
	orderRepo purchase.OrderRepository
}

// NewGetOrderUseCase 创建单个采购单查询用例
func NewGetOrderUseCase(orderRepo purchase.OrderRepository) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo}
}

// Execute 按ID查询采购单(含明细行)
func (uc *GetOrderUseCase) Execute(ctx context.Context, id uint) (*OrderDTO, error) {
	o, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrderDTO(o), nil
}
