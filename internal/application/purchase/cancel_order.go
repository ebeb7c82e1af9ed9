package purchase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/warehouse/internal/domain/purchase"
	"github.com/xiebiao/warehouse/pkg/logger"
)

// CancelOrderUseCase 取消采购单用例
// 业务规则:仅DRAFT/SENT且未发生任何收货时允许,
// 收过货的单只能走完收货流程,不能取消
type CancelOrderUseCase struct {
	orderRepo purchase.OrderRepository
	txManager TxManager
}

// NewCancelOrderUseCase 创建采购单取消用例
func NewCancelOrderUseCase(orderRepo purchase.OrderRepository, txManager TxManager) *CancelOrderUseCase {
	return &CancelOrderUseCase{orderRepo: orderRepo, txManager: txManager}
}

// Execute 执行采购单取消
// 事务内加锁:与并发的收货请求互斥,不会取消一张正在收货的单
func (uc *CancelOrderUseCase) Execute(ctx context.Context, id uint) (*OrderDTO, error) {
	var result *purchase.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		order, err := uc.orderRepo.LockByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := order.Cancel(); err != nil {
			return err
		}

		if err := uc.orderRepo.Update(txCtx, order); err != nil {
			return err
		}

		result = order
		return nil
	})

	if err != nil {
		return nil, err
	}

	logger.L().Info("采购单已取消",
		zap.Uint("order_id", result.ID),
		zap.Uint("request_id", result.RequestID),
	)
	return toOrderDTO(result), nil
}
