package stock

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/stock"
)

// ListTransfersUseCase 调拨日志查询用例
type ListTransfersUseCase struct {
	transferRepo stock.TransferRepository
}

// NewListTransfersUseCase 创建调拨日志查询用例
func NewListTransfersUseCase(transferRepo stock.TransferRepository) *ListTransfersUseCase {
	return &ListTransfersUseCase{transferRepo: transferRepo}
}

// TransferItem 调拨日志DTO
type TransferItem struct {
	ID           uint   `json:"id"`
	BookID       uint   `json:"book_id"`
	FromKind     string `json:"from_kind"`
	FromLocation uint   `json:"from_location"`
	ToKind       string `json:"to_kind"`
	ToLocation   uint   `json:"to_location"`
	Quantity     int    `json:"quantity"`
	Note         string `json:"note"`
	ActorID      uint   `json:"actor_id"`
	CreatedAt    string `json:"created_at"`
}

// ListTransfersResponse 调拨日志列表响应DTO
type ListTransfersResponse struct {
	List     []TransferItem `json:"list"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Execute 分页查询调拨日志(按时间倒序)
func (uc *ListTransfersUseCase) Execute(ctx context.Context, page, pageSize int) (*ListTransfersResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	transfers, total, err := uc.transferRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]TransferItem, len(transfers))
	for i, t := range transfers {
		list[i] = TransferItem{
			ID:           t.ID,
			BookID:       t.BookID,
			FromKind:     string(t.FromKind),
			FromLocation: t.FromLocationID,
			ToKind:       string(t.ToKind),
			ToLocation:   t.ToLocationID,
			Quantity:     t.Quantity,
			Note:         t.Note,
			ActorID:      t.ActorID,
			CreatedAt:    t.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	return &ListTransfersResponse{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
