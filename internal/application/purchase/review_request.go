package purchase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/warehouse/internal/domain/purchase"
	"github.com/xiebiao/warehouse/pkg/logger"
)

// ReviewRequestUseCase 审批采购申请用例
// 状态机: PENDING_APPROVAL → APPROVED | REJECTED
//
// 业务规则:
// 1. 批准时approvedQuantity缺省取申请数量,且必须>0
// 2. REJECTED是终态,驳回后只能重新发起新申请
type ReviewRequestUseCase struct {
	requestRepo purchase.RequestRepository
}

// NewReviewRequestUseCase 创建申请审批用例
func NewReviewRequestUseCase(requestRepo purchase.RequestRepository) *ReviewRequestUseCase {
	return &ReviewRequestUseCase{requestRepo: requestRepo}
}

// ReviewRequestRequest 审批请求DTO
type ReviewRequestRequest struct {
	ID               uint
	Action           purchase.ReviewAction // APPROVE或REJECT
	ApprovedQuantity *int                  // 批准数量(可选,缺省取申请数量)
	ApprovedCost     *int64                // 批准成本(分,可选)
	Note             string                // 审批备注
	ActorID          uint                  // 审批人(从JWT中提取)
}

// Execute 执行申请审批
func (uc *ReviewRequestUseCase) Execute(ctx context.Context, req ReviewRequestRequest) (*RequestDTO, error) {
	r, err := uc.requestRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := r.Review(req.Action, req.ApprovedQuantity, req.ApprovedCost, req.Note, req.ActorID); err != nil {
		return nil, err
	}

	if err := uc.requestRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	logger.L().Info("采购申请已审批",
		zap.Uint("request_id", r.ID),
		zap.String("action", string(req.Action)),
		zap.String("status", string(r.Status)),
		zap.Uint("actor_id", req.ActorID),
	)
	return toRequestDTO(r), nil
}
