package purchase

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/purchase"
)

// CompleteRequestUseCase 手动完成采购申请用例: APPROVED → COMPLETED
// 正常路径是采购单收货终态时自动完成,
// 这个入口用于没有走采购单的线下补货场景
type CompleteRequestUseCase struct {
	requestRepo purchase.RequestRepository
}

// NewCompleteRequestUseCase 创建申请完成用例
func NewCompleteRequestUseCase(requestRepo purchase.RequestRepository) *CompleteRequestUseCase {
	return &CompleteRequestUseCase{requestRepo: requestRepo}
}

// Execute 执行申请完成
func (uc *CompleteRequestUseCase) Execute(ctx context.Context, id uint) (*RequestDTO, error) {
	r, err := uc.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.Complete(); err != nil {
		return nil, err
	}

	if err := uc.requestRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	return toRequestDTO(r), nil
}
