package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/warehouse/internal/domain/stock"
)

// StockCache 库存读缓存(Cache-Aside)
//
// 设计说明:
// 1. MySQL是台账的唯一事实来源,Redis只加速地点维度的读
// 2. 读路径:先查缓存,未命中回源MySQL并写缓存(带TTL兜底)
// 3. 写路径:任何台账变更后按地点失效缓存,下次读时重建
//    失效而非更新:变更在事务里,缓存在事务外,更新会引入双写一致性问题
//
// Key设计: stocks:{kind}:{location_id} → JSON数组
type StockCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStockCache 创建库存读缓存
func NewStockCache(client *redis.Client, ttl time.Duration) *StockCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StockCache{client: client, ttl: ttl}
}

// locationKey 地点维度的缓存Key
func locationKey(kind string, locationID uint) string {
	return fmt.Sprintf("stocks:%s:%d", kind, locationID)
}

// GetLocation 读取某地点的台账缓存
// 未命中返回(nil, nil),由调用方回源
func (c *StockCache) GetLocation(ctx context.Context, kind string, locationID uint) ([]*stock.Record, error) {
	data, err := c.client.Get(ctx, locationKey(kind, locationID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("读取库存缓存失败: %w", err)
	}

	var records []*stock.Record
	if err := json.Unmarshal(data, &records); err != nil {
		// 缓存数据损坏当未命中处理,回源会覆盖
		return nil, nil
	}

	return records, nil
}

// SetLocation 写入某地点的台账缓存
func (c *StockCache) SetLocation(ctx context.Context, kind string, locationID uint, records []*stock.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("序列化库存缓存失败: %w", err)
	}

	if err := c.client.Set(ctx, locationKey(kind, locationID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("写入库存缓存失败: %w", err)
	}
	return nil
}

// InvalidateLocation 失效某地点的台账缓存
// 台账变更(设置库存、调拨两侧、采购收货)后调用
func (c *StockCache) InvalidateLocation(ctx context.Context, kind string, locationID uint) error {
	if err := c.client.Del(ctx, locationKey(kind, locationID)).Err(); err != nil {
		return fmt.Errorf("失效库存缓存失败: %w", err)
	}
	return nil
}
