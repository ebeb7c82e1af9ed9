package purchase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/warehouse/internal/domain/purchase"
	"github.com/xiebiao/warehouse/internal/domain/registry"
	"github.com/xiebiao/warehouse/internal/domain/stock"
	"github.com/xiebiao/warehouse/pkg/logger"
	"github.com/xiebiao/warehouse/pkg/metrics"
)

// ReceiveOrderUseCase 采购单收货用例
// 教学重点:收货是"采购侧"和"台账侧"的交汇点
//
// 设计说明:
// 1. 全量收货:每条明细的已收数量补齐到订购数量
// 2. 台账按"本次新收增量"入账:重复收货增量为0,天然幂等,
//    绝不会重复加库存
// 3. 整个收货在一个事务里:明细更新、台账入账、状态重算、
//    申请完成,要么全部生效要么全部回滚
// 4. 采购单到达收货终态时,自动完成来源采购申请,闭环整条采购链
type ReceiveOrderUseCase struct {
	orderRepo   purchase.OrderRepository
	requestRepo purchase.RequestRepository
	stockRepo   stock.Repository
	txManager   TxManager
	monitor     AlertEvaluator
	publisher   EventPublisher
	cache       StockCache
}

// NewReceiveOrderUseCase 创建收货用例
func NewReceiveOrderUseCase(
	orderRepo purchase.OrderRepository,
	requestRepo purchase.RequestRepository,
	stockRepo stock.Repository,
	txManager TxManager,
	monitor AlertEvaluator,
	publisher EventPublisher,
	cache StockCache,
) *ReceiveOrderUseCase {
	return &ReceiveOrderUseCase{
		orderRepo:   orderRepo,
		requestRepo: requestRepo,
		stockRepo:   stockRepo,
		txManager:   txManager,
		monitor:     monitor,
		publisher:   publisher,
		cache:       cache,
	}
}

// ReceiveOrderRequest 收货请求DTO
type ReceiveOrderRequest struct {
	OrderID                uint
	Note                   string // 收货备注(可选,覆盖原备注)
	CloseWhenFullyReceived bool   // 全部收货后是否直接关闭
}

// ReceiveOrderResponse 收货响应DTO
type ReceiveOrderResponse struct {
	Order            *OrderDTO    `json:"order"`
	CreditedDeltas   map[uint]int `json:"credited_deltas"` // BookID → 本次入账数量
	RequestCompleted bool         `json:"request_completed"`
}

// ReceivedEvent 收货事件(MQ消息体)
type ReceivedEvent struct {
	OrderID     uint         `json:"order_id"`
	WarehouseID uint         `json:"warehouse_id"`
	Deltas      map[uint]int `json:"deltas"` // BookID → 入账数量
	OccurredAt  time.Time    `json:"occurred_at"`
}

// Execute 执行收货
func (uc *ReceiveOrderUseCase) Execute(ctx context.Context, req ReceiveOrderRequest) (*ReceiveOrderResponse, error) {
	start := time.Now()

	var (
		result           *purchase.Order
		deltas           map[uint]int
		requestCompleted bool
	)

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// ========================================
		// 步骤1:锁定采购单(防止并发重复收货)
		// ========================================
		order, err := uc.orderRepo.LockByID(txCtx, req.OrderID)
		if err != nil {
			return err
		}

		// ========================================
		// 步骤2:领域层全量收货,拿到每条明细的新收增量
		// ========================================
		deltas, err = order.ReceiveAll()
		if err != nil {
			return err
		}

		// ========================================
		// 步骤3:按增量给仓库台账入账
		// ========================================
		// 教学要点:增量为0的明细跳过入账,重复收货因此幂等
		for bookID, delta := range deltas {
			if delta == 0 {
				continue
			}
			if err := uc.credit(txCtx, order.WarehouseID, bookID, delta); err != nil {
				return err
			}
		}

		// ========================================
		// 步骤4:明细与单头落库,可选关闭
		// ========================================
		for _, it := range order.Items {
			if err := uc.orderRepo.UpdateItem(txCtx, it); err != nil {
				return err
			}
		}

		if req.CloseWhenFullyReceived && order.Status == purchase.OrderReceived {
			if err := order.Close(); err != nil {
				return err
			}
		}
		if req.Note != "" {
			order.Note = req.Note
		}
		if err := uc.orderRepo.Update(txCtx, order); err != nil {
			return err
		}

		// ========================================
		// 步骤5:采购单到达终态时完成来源申请
		// ========================================
		// 申请已是COMPLETED时跳过(重复收货的幂等路径)
		if order.Terminal() {
			r, err := uc.requestRepo.LockByID(txCtx, order.RequestID)
			if err != nil {
				return err
			}
			if r.Status == purchase.RequestApproved {
				if err := r.Complete(); err != nil {
					return err
				}
				if err := uc.requestRepo.Update(txCtx, r); err != nil {
					return err
				}
				requestCompleted = true
			}
		}

		result = order
		return nil
	})

	if err != nil {
		return nil, err
	}

	metrics.PurchaseOrdersReceivedTotal.Inc()
	metrics.ReceiveDuration.Observe(time.Since(start).Seconds())

	// 提交后:评估告警、失效仓库缓存、发布事件(均尽力而为)
	uc.afterCommit(ctx, result, deltas)

	logger.L().Info("采购单已收货",
		zap.Uint("order_id", result.ID),
		zap.String("status", string(result.Status)),
		zap.Bool("request_completed", requestCompleted),
	)

	return &ReceiveOrderResponse{
		Order:            toOrderDTO(result),
		CreditedDeltas:   deltas,
		RequestCompleted: requestCompleted,
	}, nil
}

// credit 仓库台账入账,首次收这本书时惰性创建台账记录(阈值0)
func (uc *ReceiveOrderUseCase) credit(ctx context.Context, warehouseID, bookID uint, delta int) error {
	key := stock.Key{Kind: registry.KindWarehouse, LocationID: warehouseID, BookID: bookID}

	err := uc.stockRepo.AdjustQuantity(ctx, key, delta)
	if err == nil {
		return nil
	}
	if !errors.Is(err, stock.ErrStockNotFound) {
		return err
	}

	rec, err := stock.NewRecord(key, delta, 0)
	if err != nil {
		return err
	}
	return uc.stockRepo.Create(ctx, rec)
}

// afterCommit 事务提交后的派生动作
func (uc *ReceiveOrderUseCase) afterCommit(ctx context.Context, order *purchase.Order, deltas map[uint]int) {
	credited := false
	for bookID, delta := range deltas {
		if delta == 0 {
			continue
		}
		credited = true
		if uc.monitor != nil {
			uc.monitor.Evaluate(ctx, stock.Key{
				Kind:       registry.KindWarehouse,
				LocationID: order.WarehouseID,
				BookID:     bookID,
			})
		}
	}

	if !credited {
		return
	}

	if uc.cache != nil {
		_ = uc.cache.InvalidateLocation(ctx, string(registry.KindWarehouse), order.WarehouseID)
	}

	if uc.publisher != nil {
		event := ReceivedEvent{
			OrderID:     order.ID,
			WarehouseID: order.WarehouseID,
			Deltas:      deltas,
			OccurredAt:  time.Now(),
		}
		if err := uc.publisher.Publish("stock.received", event); err != nil {
			metrics.MessagesPublishedTotal.WithLabelValues("stock.received", "failure").Inc()
			return
		}
		metrics.MessagesPublishedTotal.WithLabelValues("stock.received", "success").Inc()
	}
}
