package purchase

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/purchase"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// ListRequestsUseCase 采购申请列表查询用例
type ListRequestsUseCase struct {
	requestRepo purchase.RequestRepository
}

// NewListRequestsUseCase 创建申请列表查询用例
func NewListRequestsUseCase(requestRepo purchase.RequestRepository) *ListRequestsUseCase {
	return &ListRequestsUseCase{requestRepo: requestRepo}
}

// ListRequestsResponse 申请列表响应DTO
type ListRequestsResponse struct {
	List     []*RequestDTO `json:"list"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// validRequestStatus 列表过滤允许的状态值
func validRequestStatus(s purchase.RequestStatus) bool {
	switch s {
	case purchase.RequestDraft, purchase.RequestPendingApproval,
		purchase.RequestApproved, purchase.RequestRejected, purchase.RequestCompleted:
		return true
	default:
		return false
	}
}

// Execute 按状态分页查询申请,status为空表示全部
func (uc *ListRequestsUseCase) Execute(ctx context.Context, status string, page, pageSize int) (*ListRequestsResponse, error) {
	filter := purchase.RequestStatus(status)
	if status != "" && !validRequestStatus(filter) {
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

	requests, total, err := uc.requestRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*RequestDTO, len(requests))
	for i, r := range requests {
		list[i] = toRequestDTO(r)
	}

	return &ListRequestsResponse{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetRequestUseCase 单个采购申请查询用例
type GetRequestUseCase struct {
	requestRepo purchase.RequestRepository
}

// NewGetRequestUseCase 创建单个申请查询用例
func NewGetRequestUseCase(requestRepo purchase.RequestRepository) *GetRequestUseCase {
	return &GetRequestUseCase{requestRepo: requestRepo}
}

// Execute 按ID查询申请
func (uc *GetRequestUseCase) Execute(ctx context.Context, id uint) (*RequestDTO, error) {
	r, err := uc.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRequestDTO(r), nil
}
