package purchase

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/xiebiao/warehouse/pkg/errors"
	"github.com/xiebiao/warehouse/pkg/logger"
)

// CreateOrdersBatchUseCase 批量创建采购单用例
// 教学要点:尽力而为(best-effort)的批量语义
//
// 设计说明:
// 1. 每条申请生成一张独立采购单(不合并成多行单),共用供应商/单价/到期参数
// 2. 每张单各自一个事务:一条申请失败(如已关联)不影响其余申请成功
// 3. 返回成功清单和跳过明细,调用方按需对跳过的单独重试
type CreateOrdersBatchUseCase struct {
	createOrder *CreateOrderUseCase
}

// NewCreateOrdersBatchUseCase 创建批量建单用例
func NewCreateOrdersBatchUseCase(createOrder *CreateOrderUseCase) *CreateOrdersBatchUseCase {
	return &CreateOrdersBatchUseCase{createOrder: createOrder}
}

// CreateOrdersBatchRequest 批量建单请求DTO
type CreateOrdersBatchRequest struct {
	RequestIDs []uint
	VendorID   uint
	UnitCost   int64
	ExpectedAt *time.Time
	Note       string
	ActorID    uint
}

// SkippedRequest 跳过的申请及原因
type SkippedRequest struct {
	RequestID uint   `json:"request_id"`
	Code      int    `json:"code"`
	Reason    string `json:"reason"`
}

// CreateOrdersBatchResponse 批量建单响应DTO
type CreateOrdersBatchResponse struct {
	Created      []*OrderDTO      `json:"created"`
	Skipped      []SkippedRequest `json:"skipped"`
	CreatedCount int              `json:"created_count"`
	SkippedCount int              `json:"skipped_count"`
}

// Execute 执行批量建单
func (uc *CreateOrdersBatchUseCase) Execute(ctx context.Context, req CreateOrdersBatchRequest) (*CreateOrdersBatchResponse, error) {
	if len(req.RequestIDs) == 0 {
		return nil, apperrors.ErrInvalidParams
	}

	resp := &CreateOrdersBatchResponse{
		Created: make([]*OrderDTO, 0, len(req.RequestIDs)),
		Skipped: make([]SkippedRequest, 0),
	}

	for _, requestID := range req.RequestIDs {
		order, err := uc.createOrder.Execute(ctx, CreateOrderRequest{
			RequestID:  requestID,
			VendorID:   req.VendorID,
			UnitCost:   req.UnitCost,
			ExpectedAt: req.ExpectedAt,
			Note:       req.Note,
			ActorID:    req.ActorID,
		})
		if err != nil {
			appErr := apperrors.GetAppError(err)
			resp.Skipped = append(resp.Skipped, SkippedRequest{
				RequestID: requestID,
				Code:      appErr.Code,
				Reason:    appErr.Message,
			})
			logger.L().Warn("批量建单跳过申请",
				zap.Uint("request_id", requestID),
				zap.Error(err),
			)
			continue
		}
		resp.Created = append(resp.Created, order)
	}

	resp.CreatedCount = len(resp.Created)
	resp.SkippedCount = len(resp.Skipped)
	return resp, nil
}
