package purchase

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/purchase"
)

// SubmitRequestUseCase 提交采购申请用例: DRAFT → PENDING_APPROVAL
type SubmitRequestUseCase struct {
	requestRepo purchase.RequestRepository
}

// NewSubmitRequestUseCase 创建申请提交用例
func NewSubmitRequestUseCase(requestRepo purchase.RequestRepository) *SubmitRequestUseCase {
	return &SubmitRequestUseCase{requestRepo: requestRepo}
}

// Execute 执行申请提交
// 非草稿状态的申请返回ErrInvalidTransition
func (uc *SubmitRequestUseCase) Execute(ctx context.Context, id uint) (*RequestDTO, error) {
	r, err := uc.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.Submit(); err != nil {
		return nil, err
	}

	if err := uc.requestRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	return toRequestDTO(r), nil
}
