package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/warehouse/internal/domain/registry"
)

// TestNewRecord 测试台账记录工厂方法
func TestNewRecord(t *testing.T) {
	key := Key{Kind: registry.KindWarehouse, LocationID: 1, BookID: 10}

	t.Run("正常创建", func(t *testing.T) {
		rec, err := NewRecord(key, 20, 5)
		require.NoError(t, err)
		assert.Equal(t, 20, rec.Quantity)
		assert.Equal(t, 5, rec.LowStockThreshold)
		assert.Equal(t, key, rec.Key())
	})

	t.Run("数量为0合法", func(t *testing.T) {
		rec, err := NewRecord(key, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, rec.Quantity)
	})

	t.Run("负数数量被拒绝", func(t *testing.T) {
		_, err := NewRecord(key, -1, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("负数阈值被拒绝", func(t *testing.T) {
		_, err := NewRecord(key, 10, -1)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

// TestRecord_CanDebit 测试扣减判断
func TestRecord_CanDebit(t *testing.T) {
	rec := &Record{Quantity: 10}

	assert.True(t, rec.CanDebit(10), "扣减到0应该允许")
	assert.True(t, rec.CanDebit(1))
	assert.False(t, rec.CanDebit(11), "扣成负数应该拒绝")
	assert.False(t, rec.CanDebit(0), "扣减数量必须为正")
	assert.False(t, rec.CanDebit(-5))
}

// TestRecord_IsLow 测试低库存判断(<=阈值触发)
func TestRecord_IsLow(t *testing.T) {
	assert.False(t, (&Record{Quantity: 6, LowStockThreshold: 5}).IsLow())
	assert.True(t, (&Record{Quantity: 5, LowStockThreshold: 5}).IsLow(), "等于阈值也算触达")
	assert.True(t, (&Record{Quantity: 0, LowStockThreshold: 5}).IsLow())
	assert.True(t, (&Record{Quantity: 0, LowStockThreshold: 0}).IsLow(), "阈值0时数量0触达")
}

// TestKey_Less 测试Key全序关系(调拨加锁顺序依赖它)
func TestKey_Less(t *testing.T) {
	a := Key{Kind: registry.KindStore, LocationID: 1, BookID: 1}
	b := Key{Kind: registry.KindWarehouse, LocationID: 1, BookID: 1}

	// STORE < WAREHOUSE(字典序)
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))

	// 同类型按LocationID
	c := Key{Kind: registry.KindWarehouse, LocationID: 2, BookID: 1}
	assert.True(t, b.Less(c))
	assert.False(t, c.Less(b))

	// 同类型同地点按BookID
	d := Key{Kind: registry.KindWarehouse, LocationID: 2, BookID: 9}
	assert.True(t, c.Less(d))

	// 自反:相等时两个方向都不Less
	assert.False(t, c.Less(c))

	// 两个不同Key必有一个方向成立
	assert.True(t, a.Less(b) != b.Less(a))
}
