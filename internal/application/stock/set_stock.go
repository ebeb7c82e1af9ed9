package stock

import (
	"context"
	"errors"

	"github.com/xiebiao/warehouse/internal/domain/registry"
	"github.com/xiebiao/warehouse/internal/domain/stock"
	"github.com/xiebiao/warehouse/pkg/metrics"
)

// SetStockUseCase 设置库存用例(绝对数量+阈值的Upsert)
// 设计说明:
// 1. 台账记录首次设置时惰性创建,之后覆盖数量和阈值
// 2. 在事务内加悲观锁,防止与调拨/收货并发交错
// 3. 提交后重新评估告警并失效读缓存
type SetStockUseCase struct {
	stockRepo    stock.Repository
	locationRepo registry.LocationRepository
	txManager    TxManager
	monitor      *AlertMonitor
	cache        StockCache
}

// NewSetStockUseCase 创建设置库存用例
func NewSetStockUseCase(
	stockRepo stock.Repository,
	locationRepo registry.LocationRepository,
	txManager TxManager,
	monitor *AlertMonitor,
	cache StockCache,
) *SetStockUseCase {
	return &SetStockUseCase{
		stockRepo:    stockRepo,
		locationRepo: locationRepo,
		txManager:    txManager,
		monitor:      monitor,
		cache:        cache,
	}
}

// SetStockRequest 设置库存请求DTO
type SetStockRequest struct {
	Kind       registry.LocationKind // 地点类型
	LocationID uint                  // 地点ID
	BookID     uint                  // 图书ID
	Quantity   int                   // 绝对数量(>=0)
	Threshold  int                   // 低库存阈值(>=0)
}

// SetStockResponse 设置库存响应DTO
type SetStockResponse struct {
	Kind       string `json:"kind"`
	LocationID uint   `json:"location_id"`
	BookID     uint   `json:"book_id"`
	Quantity   int    `json:"quantity"`
	Threshold  int    `json:"threshold"`
	Low        bool   `json:"low"` // 是否触达低库存
}

// Execute 执行设置库存
func (uc *SetStockUseCase) Execute(ctx context.Context, req SetStockRequest) (*SetStockResponse, error) {
	// 1. 参数校验
	if req.Quantity < 0 || req.Threshold < 0 {
		return nil, stock.ErrInvalidQuantity
	}
	if !req.Kind.Valid() {
		return nil, registry.ErrInvalidKind
	}

	// 2. 校验地点:必须存在、类型匹配、不在回收站
	if err := uc.checkLocation(ctx, req.Kind, req.LocationID); err != nil {
		return nil, err
	}

	key := stock.Key{Kind: req.Kind, LocationID: req.LocationID, BookID: req.BookID}

	// 3. 事务内Upsert
	var result *stock.Record
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		rec, err := uc.stockRepo.Lock(txCtx, key)
		if err != nil {
			if !errors.Is(err, stock.ErrStockNotFound) {
				return err
			}
			// 首次设置:惰性创建
			rec, err = stock.NewRecord(key, req.Quantity, req.Threshold)
			if err != nil {
				return err
			}
			if err := uc.stockRepo.Create(txCtx, rec); err != nil {
				return err
			}
			result = rec
			return nil
		}

		rec.Quantity = req.Quantity
		rec.LowStockThreshold = req.Threshold
		if err := uc.stockRepo.Save(txCtx, rec); err != nil {
			return err
		}
		result = rec
		return nil
	})

	if err != nil {
		metrics.StockMutationsTotal.WithLabelValues("set", "failure").Inc()
		return nil, err
	}
	metrics.StockMutationsTotal.WithLabelValues("set", "success").Inc()

	// 4. 提交后:重新评估告警、失效读缓存(均为尽力而为)
	uc.monitor.Evaluate(ctx, key)
	if uc.cache != nil {
		_ = uc.cache.InvalidateLocation(ctx, string(key.Kind), key.LocationID)
	}

	return &SetStockResponse{
		Kind:       string(result.Kind),
		LocationID: result.LocationID,
		BookID:     result.BookID,
		Quantity:   result.Quantity,
		Threshold:  result.LowStockThreshold,
		Low:        result.IsLow(),
	}, nil
}

// checkLocation 校验台账目标地点
func (uc *SetStockUseCase) checkLocation(ctx context.Context, kind registry.LocationKind, id uint) error {
	loc, err := uc.locationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	// 类型不匹配或已回收,对台账而言等同不存在
	if loc.Kind != kind || loc.Trashed() {
		return registry.ErrLocationNotFound
	}
	return nil
}
