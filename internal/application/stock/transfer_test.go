package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/warehouse/internal/domain/registry"
	"github.com/xiebiao/warehouse/internal/domain/stock"
)

// transferFixture 组装调拨用例及其全部内存依赖
type transferFixture struct {
	uc           *TransferUseCase
	stockRepo    *fakeStockRepo
	transferRepo *fakeTransferRepo
	alertRepo    *fakeAlertRepo
	publisher    *recordingPublisher
}

func newTransferFixture(locs ...*registry.Location) *transferFixture {
	stockRepo := newFakeStockRepo()
	transferRepo := newFakeTransferRepo()
	alertRepo := newFakeAlertRepo()
	publisher := &recordingPublisher{}
	monitor := NewAlertMonitor(stockRepo, alertRepo, publisher)
	tx := &fakeTxManager{stockRepo: stockRepo, transferRepo: transferRepo}

	return &transferFixture{
		uc: NewTransferUseCase(
			stockRepo, transferRepo, newFakeLocationRepo(locs...),
			tx, monitor, publisher, nil,
		),
		stockRepo:    stockRepo,
		transferRepo: transferRepo,
		alertRepo:    alertRepo,
		publisher:    publisher,
	}
}

// TestTransferUseCase_Execute 测试调拨主路径
// 端到端场景:仓库20册、阈值5,调拨15册到门店,
// 源余额落到5(恰好等于阈值),低库存告警随之打开
func TestTransferUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	fx := newTransferFixture(testWarehouse(1), testStore(2))

	from := stock.Key{Kind: registry.KindWarehouse, LocationID: 1, BookID: 10}
	to := stock.Key{Kind: registry.KindStore, LocationID: 2, BookID: 10}
	mustCreateRecord(t, fx.stockRepo, from, 20, 5)
	mustCreateRecord(t, fx.stockRepo, to, 0, 0)

	resp, err := fx.uc.Execute(ctx, TransferRequest{
		BookID:       10,
		FromKind:     registry.KindWarehouse,
		FromLocation: 1,
		ToKind:       registry.KindStore,
		ToLocation:   2,
		Quantity:     15,
		ActorID:      7,
	})
	require.NoError(t, err)

	// 两侧余额
	assert.Equal(t, 5, resp.FromQuantity)
	assert.Equal(t, 15, resp.ToQuantity)

	fromRec, _ := fx.stockRepo.Get(ctx, from)
	toRec, _ := fx.stockRepo.Get(ctx, to)
	assert.Equal(t, 5, fromRec.Quantity)
	assert.Equal(t, 15, toRec.Quantity)

	// 调拨日志落账
	require.Len(t, fx.transferRepo.transfers, 1)
	logged := fx.transferRepo.transfers[0]
	assert.Equal(t, from, logged.From())
	assert.Equal(t, to, logged.To())
	assert.Equal(t, 15, logged.Quantity)
	assert.Equal(t, uint(7), logged.ActorID)

	// 源落到阈值(5<=5),告警打开并快照
	require.Equal(t, 1, fx.alertRepo.openCount(from))
	open, _ := fx.alertRepo.FindOpen(ctx, from)
	assert.Equal(t, 5, open.Quantity)
	assert.Equal(t, 5, open.Threshold)

	// 事件:先告警后调拨完成
	assert.Contains(t, fx.publisher.routingKeys, "alert.opened")
	assert.Contains(t, fx.publisher.routingKeys, "stock.transferred")
}

// TestTransferUseCase_LazyDestination 测试目标端首次收书的惰性建账
// 门店没有这本书的台账记录时,调拨在事务内创建零数量记录再入账,
// 不要求调用方先手工建账
func TestTransferUseCase_LazyDestination(t *testing.T) {
	ctx := context.Background()
	fx := newTransferFixture(testWarehouse(1), testStore(2))

	from := stock.Key{Kind: registry.KindWarehouse, LocationID: 1, BookID: 10}
	to := stock.Key{Kind: registry.KindStore, LocationID: 2, BookID: 10}
	mustCreateRecord(t, fx.stockRepo, from, 20, 5)
	// 门店侧不预建台账

	resp, err := fx.uc.Execute(ctx, TransferRequest{
		BookID:       10,
		FromKind:     registry.KindWarehouse,
		FromLocation: 1,
		ToKind:       registry.KindStore,
		ToLocation:   2,
		Quantity:     15,
		ActorID:      7,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.FromQuantity)
	assert.Equal(t, 15, resp.ToQuantity)

	// 惰性创建的记录:数量为入账量,阈值为0
	toRec, err := fx.stockRepo.Get(ctx, to)
	require.NoError(t, err)
	assert.Equal(t, 15, toRec.Quantity)
	assert.Equal(t, 0, toRec.LowStockThreshold)

	require.Len(t, fx.transferRepo.transfers, 1)
	assert.Contains(t, fx.publisher.routingKeys, "stock.transferred")

	// 源端不存在仍然报错,不会被惰性建账掩盖
	_, err = fx.uc.Execute(ctx, TransferRequest{
		BookID:       99,
		FromKind:     registry.KindWarehouse,
		FromLocation: 1,
		ToKind:       registry.KindStore,
		ToLocation:   2,
		Quantity:     1,
		ActorID:      7,
	})
	assert.ErrorIs(t, err, stock.ErrStockNotFound)
	_, err = fx.stockRepo.Get(ctx, stock.Key{Kind: registry.KindStore, LocationID: 2, BookID: 99})
	assert.ErrorIs(t, err, stock.ErrStockNotFound, "失败的调拨不留下惰性记录")
}

// TestTransferUseCase_InsufficientStock 测试库存不足时的原子性
// 中间态(已扣源、未加目标)绝不外泄:两侧余额都不变,也不留调拨日志
func TestTransferUseCase_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	fx := newTransferFixture(testWarehouse(1), testStore(2))

	from := stock.Key{Kind: registry.KindWarehouse, LocationID: 1, BookID: 10}
	to := stock.Key{Kind: registry.KindStore, LocationID: 2, BookID: 10}
	mustCreateRecord(t, fx.stockRepo, from, 3, 0)
	mustCreateRecord(t, fx.stockRepo, to, 8, 0)

	_, err := fx.uc.Execute(ctx, TransferRequest{
		BookID:       10,
		FromKind:     registry.KindWarehouse,
		FromLocation: 1,
		ToKind:       registry.KindStore,
		ToLocation:   2,
		Quantity:     5,
		ActorID:      7,
	})
	require.ErrorIs(t, err, stock.ErrInsufficientStock)

	fromRec, _ := fx.stockRepo.Get(ctx, from)
	toRec, _ := fx.stockRepo.Get(ctx, to)
	assert.Equal(t, 3, fromRec.Quantity, "源保持原样")
	assert.Equal(t, 8, toRec.Quantity, "目标保持原样")
	assert.Empty(t, fx.transferRepo.transfers, "失败的调拨不留日志")
	assert.Empty(t, fx.publisher.routingKeys)
}

// TestTransferUseCase_Validation 测试参数与地点校验
func TestTransferUseCase_Validation(t *testing.T) {
	ctx := context.Background()

	base := TransferRequest{
		BookID:       10,
		FromKind:     registry.KindWarehouse,
		FromLocation: 1,
		ToKind:       registry.KindStore,
		ToLocation:   2,
		Quantity:     5,
		ActorID:      7,
	}

	t.Run("数量必须为正", func(t *testing.T) {
		fx := newTransferFixture(testWarehouse(1), testStore(2))
		req := base
		req.Quantity = 0
		_, err := fx.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, stock.ErrInvalidQuantity)
	})

	t.Run("源目标不能相同", func(t *testing.T) {
		fx := newTransferFixture(testWarehouse(1))
		req := base
		req.ToKind = registry.KindWarehouse
		req.ToLocation = 1
		_, err := fx.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, stock.ErrSameLocation)
	})

	t.Run("目标地点不存在", func(t *testing.T) {
		fx := newTransferFixture(testWarehouse(1))
		_, err := fx.uc.Execute(ctx, base)
		assert.ErrorIs(t, err, registry.ErrLocationNotFound)
	})

	t.Run("回收站地点不可调拨", func(t *testing.T) {
		store := testStore(2)
		require.NoError(t, store.Trash())
		fx := newTransferFixture(testWarehouse(1), store)
		_, err := fx.uc.Execute(ctx, base)
		assert.ErrorIs(t, err, registry.ErrLocationNotFound)
	})

	t.Run("类型与登记不符", func(t *testing.T) {
		// 地点2其实是仓库,却按门店寻址
		fx := newTransferFixture(testWarehouse(1), testWarehouse(2))
		_, err := fx.uc.Execute(ctx, base)
		assert.ErrorIs(t, err, registry.ErrLocationNotFound)
	})
}

// TestSetStockThenTransfer 测试"设置库存→调拨"的组合路径
// 覆盖SetStock的惰性创建与调拨后的缓存外告警联动
func TestSetStockThenTransfer(t *testing.T) {
	ctx := context.Background()
	fx := newTransferFixture(testWarehouse(1), testStore(2))

	setUC := NewSetStockUseCase(
		fx.stockRepo,
		newFakeLocationRepo(testWarehouse(1), testStore(2)),
		&fakeTxManager{stockRepo: fx.stockRepo},
		NewAlertMonitor(fx.stockRepo, fx.alertRepo, nil),
		nil,
	)

	// 惰性创建仓库侧台账
	setResp, err := setUC.Execute(ctx, SetStockRequest{
		Kind:       registry.KindWarehouse,
		LocationID: 1,
		BookID:     10,
		Quantity:   20,
		Threshold:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, setResp.Quantity)
	assert.False(t, setResp.Low)

	// 门店侧从0开始
	_, err = setUC.Execute(ctx, SetStockRequest{
		Kind:       registry.KindStore,
		LocationID: 2,
		BookID:     10,
		Quantity:   0,
		Threshold:  0,
	})
	require.NoError(t, err)

	resp, err := fx.uc.Execute(ctx, TransferRequest{
		BookID:       10,
		FromKind:     registry.KindWarehouse,
		FromLocation: 1,
		ToKind:       registry.KindStore,
		ToLocation:   2,
		Quantity:     15,
		ActorID:      7,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.FromQuantity)
	assert.Equal(t, 15, resp.ToQuantity)
	assert.Equal(t, 1, fx.alertRepo.openCount(stock.Key{
		Kind: registry.KindWarehouse, LocationID: 1, BookID: 10,
	}))
}
