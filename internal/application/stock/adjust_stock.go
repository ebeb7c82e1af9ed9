package stock

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/registry"
	"github.com/xiebiao/warehouse/internal/domain/stock"
	"github.com/xiebiao/warehouse/pkg/metrics"
)

// AdjustStockUseCase 库存增减用例(credit入账/debit出账)
// 教学要点:台账的两个增量原语
//
// 设计说明:
// 1. 底层是一条原子的条件UPDATE,不需要显式事务:
//    UPDATE ... SET quantity = quantity + ? WHERE ... AND quantity + ? >= 0
// 2. 扣减不足时返回ErrInsufficientStock,记录保持原样(不部分扣减)
// 3. 增减只改数量,阈值不动
type AdjustStockUseCase struct {
	stockRepo stock.Repository
	monitor   *AlertMonitor
	cache     StockCache
}

// NewAdjustStockUseCase 创建库存增减用例
func NewAdjustStockUseCase(
	stockRepo stock.Repository,
	monitor *AlertMonitor,
	cache StockCache,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		stockRepo: stockRepo,
		monitor:   monitor,
		cache:     cache,
	}
}

// AdjustStockRequest 库存增减请求DTO
type AdjustStockRequest struct {
	Kind       registry.LocationKind
	LocationID uint
	BookID     uint
	Quantity   int // 增减数量(>0)
}

// AdjustStockResponse 库存增减响应DTO
type AdjustStockResponse struct {
	Kind       string `json:"kind"`
	LocationID uint   `json:"location_id"`
	BookID     uint   `json:"book_id"`
	Quantity   int    `json:"quantity"` // 变更后数量
	Threshold  int    `json:"threshold"`
	Low        bool   `json:"low"`
}

// Credit 入账:数量增加
func (uc *AdjustStockUseCase) Credit(ctx context.Context, req AdjustStockRequest) (*AdjustStockResponse, error) {
	return uc.adjust(ctx, req, "credit", req.Quantity)
}

// Debit 出账:数量减少
// 库存不足时整笔失败,台账保持原样
func (uc *AdjustStockUseCase) Debit(ctx context.Context, req AdjustStockRequest) (*AdjustStockResponse, error) {
	return uc.adjust(ctx, req, "debit", -req.Quantity)
}

func (uc *AdjustStockUseCase) adjust(ctx context.Context, req AdjustStockRequest, op string, delta int) (*AdjustStockResponse, error) {
	// 1. 参数校验:增减数量必须为正
	if req.Quantity <= 0 {
		return nil, stock.ErrInvalidQuantity
	}

	key := stock.Key{Kind: req.Kind, LocationID: req.LocationID, BookID: req.BookID}

	// 2. 原子增减
	if err := uc.stockRepo.AdjustQuantity(ctx, key, delta); err != nil {
		metrics.StockMutationsTotal.WithLabelValues(op, "failure").Inc()
		return nil, err
	}
	metrics.StockMutationsTotal.WithLabelValues(op, "success").Inc()

	// 3. 变更后:重新评估告警、失效读缓存
	uc.monitor.Evaluate(ctx, key)
	if uc.cache != nil {
		_ = uc.cache.InvalidateLocation(ctx, string(key.Kind), key.LocationID)
	}

	// 4. 回读返回最新台账
	rec, err := uc.stockRepo.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	return &AdjustStockResponse{
		Kind:       string(rec.Kind),
		LocationID: rec.LocationID,
		BookID:     rec.BookID,
		Quantity:   rec.Quantity,
		Threshold:  rec.LowStockThreshold,
		Low:        rec.IsLow(),
	}, nil
}
