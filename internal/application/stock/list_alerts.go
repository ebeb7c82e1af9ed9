package stock

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/stock"
)

// ListAlertsUseCase 低库存告警列表查询用例
type ListAlertsUseCase struct {
	alertRepo stock.AlertRepository
}

// NewListAlertsUseCase 创建告警列表查询用例
func NewListAlertsUseCase(alertRepo stock.AlertRepository) *ListAlertsUseCase {
	return &ListAlertsUseCase{alertRepo: alertRepo}
}

// AlertItem 告警DTO
type AlertItem struct {
	ID         uint   `json:"id"`
	Kind       string `json:"kind"`
	LocationID uint   `json:"location_id"`
	BookID     uint   `json:"book_id"`
	Status     string `json:"status"`
	Quantity   int    `json:"quantity"`  // 打开时刻的库存快照
	Threshold  int    `json:"threshold"` // 打开时刻的阈值快照
	OpenedAt   string `json:"opened_at"`
	ResolvedAt string `json:"resolved_at,omitempty"`
}

// ListAlertsResponse 告警列表响应DTO
type ListAlertsResponse struct {
	List     []AlertItem `json:"list"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// Execute 按状态分页查询告警
// status为空表示全部,否则必须是OPEN或RESOLVED
func (uc *ListAlertsUseCase) Execute(ctx context.Context, status string, page, pageSize int) (*ListAlertsResponse, error) {
	filter := stock.AlertStatus(status)
	if status != "" && !filter.Valid() {
		return nil, stock.ErrInvalidAlertStatus
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

	alerts, total, err := uc.alertRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]AlertItem, len(alerts))
	for i, a := range alerts {
		item := AlertItem{
			ID:         a.ID,
			Kind:       string(a.Kind),
			LocationID: a.LocationID,
			BookID:     a.BookID,
			Status:     string(a.Status),
			Quantity:   a.Quantity,
			Threshold:  a.Threshold,
			OpenedAt:   a.OpenedAt.Format("2006-01-02 15:04:05"),
		}
		if a.ResolvedAt != nil {
			item.ResolvedAt = a.ResolvedAt.Format("2006-01-02 15:04:05")
		}
		list[i] = item
	}

	return &ListAlertsResponse{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
