package stock

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/registry"
	"github.com/xiebiao/warehouse/internal/domain/stock"
)

// StockItem 台账记录DTO
type StockItem struct {
	Kind       string `json:"kind"`
	LocationID uint   `json:"location_id"`
	BookID     uint   `json:"book_id"`
	Quantity   int    `json:"quantity"`
	Threshold  int    `json:"threshold"`
	Low        bool   `json:"low"`
	UpdatedAt  string `json:"updated_at"`
}

func toStockItem(rec *stock.Record) StockItem {
	return StockItem{
		Kind:       string(rec.Kind),
		LocationID: rec.LocationID,
		BookID:     rec.BookID,
		Quantity:   rec.Quantity,
		Threshold:  rec.LowStockThreshold,
		Low:        rec.IsLow(),
		UpdatedAt:  rec.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GetStockUseCase 单条台账查询用例
type GetStockUseCase struct {
	stockRepo stock.Repository
}

// NewGetStockUseCase 创建单条台账查询用例
func NewGetStockUseCase(stockRepo stock.Repository) *GetStockUseCase {
	return &GetStockUseCase{stockRepo: stockRepo}
}

// Execute 查询某地点某本书的台账记录
// 不存在返回ErrStockNotFound(从未设置过库存)
func (uc *GetStockUseCase) Execute(ctx context.Context, kind registry.LocationKind, locationID, bookID uint) (*StockItem, error) {
	rec, err := uc.stockRepo.Get(ctx, stock.Key{Kind: kind, LocationID: locationID, BookID: bookID})
	if err != nil {
		return nil, err
	}
	item := toStockItem(rec)
	return &item, nil
}

// ListStockUseCase 地点台账列表查询用例
// 设计说明:
// 1. Cache-Aside:先查Redis,未命中回源MySQL并写缓存
// 2. 缓存以地点为粒度,任何台账变更后按地点失效
// 3. 缓存故障降级为直接读库,查询永远可用
type ListStockUseCase struct {
	stockRepo stock.Repository
	cache     StockCache
}

// NewListStockUseCase 创建台账列表查询用例
func NewListStockUseCase(stockRepo stock.Repository, cache StockCache) *ListStockUseCase {
	return &ListStockUseCase{stockRepo: stockRepo, cache: cache}
}

// ListStockResponse 台账列表响应DTO
type ListStockResponse struct {
	List  []StockItem `json:"list"`
	Total int         `json:"total"`
}

// Execute 查询某地点的全部台账记录
func (uc *ListStockUseCase) Execute(ctx context.Context, kind registry.LocationKind, locationID uint) (*ListStockResponse, error) {
	if !kind.Valid() {
		return nil, registry.ErrInvalidKind
	}

	records, err := uc.load(ctx, kind, locationID)
	if err != nil {
		return nil, err
	}

	list := make([]StockItem, len(records))
	for i, rec := range records {
		list[i] = toStockItem(rec)
	}

	return &ListStockResponse{List: list, Total: len(list)}, nil
}

// load 先查缓存,未命中回源并写缓存
func (uc *ListStockUseCase) load(ctx context.Context, kind registry.LocationKind, locationID uint) ([]*stock.Record, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.GetLocation(ctx, string(kind), locationID); err == nil && cached != nil {
			return cached, nil
		}
	}

	records, err := uc.stockRepo.ListByLocation(ctx, kind, locationID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		// 写缓存失败不影响查询结果
		_ = uc.cache.SetLocation(ctx, string(kind), locationID, records)
	}

	return records, nil
}
