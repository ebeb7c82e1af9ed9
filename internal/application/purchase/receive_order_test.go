package purchase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/warehouse/internal/domain/purchase"
	"github.com/xiebiao/warehouse/internal/domain/registry"
	"github.com/xiebiao/warehouse/internal/domain/stock"
)

// receiveFixture 组装从申请到收货的完整采购链路
type receiveFixture struct {
	requestRepo *fakeRequestRepo
	orderRepo   *fakeOrderRepo
	stockRepo   *fakeStockRepo
	evaluator   *recordingEvaluator
	publisher   *recordingPublisher

	createRequest *CreateRequestUseCase
	submitRequest *SubmitRequestUseCase
	reviewRequest *ReviewRequestUseCase
	createOrder   *CreateOrderUseCase
	receiveOrder  *ReceiveOrderUseCase
	cancelOrder   *CancelOrderUseCase
}

func newReceiveFixture() *receiveFixture {
	requestRepo := newFakeRequestRepo()
	orderRepo := newFakeOrderRepo()
	stockRepo := newFakeStockRepo()
	evaluator := &recordingEvaluator{}
	publisher := &recordingPublisher{}
	tx := &fakeTxManager{requestRepo: requestRepo, orderRepo: orderRepo, stockRepo: stockRepo}

	return &receiveFixture{
		requestRepo:   requestRepo,
		orderRepo:     orderRepo,
		stockRepo:     stockRepo,
		evaluator:     evaluator,
		publisher:     publisher,
		createRequest: NewCreateRequestUseCase(requestRepo, newFakeLocationRepo(testWarehouse(1))),
		submitRequest: NewSubmitRequestUseCase(requestRepo),
		reviewRequest: NewReviewRequestUseCase(requestRepo),
		createOrder:   NewCreateOrderUseCase(orderRepo, requestRepo, newFakeVendorRepo(testVendor(5)), tx),
		receiveOrder:  NewReceiveOrderUseCase(orderRepo, requestRepo, stockRepo, tx, evaluator, publisher, nil),
		cancelOrder:   NewCancelOrderUseCase(orderRepo, tx),
	}
}

// seedSentOrder 走完"申请→审批→转单"链路,返回一张SENT采购单
// 申请10册,批准8册
func (fx *receiveFixture) seedSentOrder(t *testing.T) *OrderDTO {
	t.Helper()
	ctx := context.Background()

	req, err := fx.createRequest.Execute(ctx, CreateRequestRequest{
		BookID:      10,
		WarehouseID: 1,
		Quantity:    10,
		ActorID:     99,
	})
	require.NoError(t, err)
	assert.Equal(t, string(purchase.RequestDraft), req.Status)

	req, err = fx.submitRequest.Execute(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, string(purchase.RequestPendingApproval), req.Status)

	req, err = fx.reviewRequest.Execute(ctx, ReviewRequestRequest{
		ID:               req.ID,
		Action:           purchase.ReviewApprove,
		ApprovedQuantity: intPtr(8),
		ActorID:          7,
	})
	require.NoError(t, err)
	assert.Equal(t, string(purchase.RequestApproved), req.Status)

	order, err := fx.createOrder.Execute(ctx, CreateOrderRequest{
		RequestID: req.ID,
		VendorID:  5,
		UnitCost:  5000,
		ActorID:   99,
	})
	require.NoError(t, err)
	return order
}

// TestReceiveOrderUseCase_Execute 测试采购链路闭环
// 端到端场景:申请10册批准8册,收货后仓库台账入账8册,
// 采购单RECEIVED,来源申请自动COMPLETED
func TestReceiveOrderUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	fx := newReceiveFixture()
	order := fx.seedSentOrder(t)

	resp, err := fx.receiveOrder.Execute(ctx, ReceiveOrderRequest{OrderID: order.ID})
	require.NoError(t, err)

	// 台账按审批数量入账(不是申请数量)
	assert.Equal(t, map[uint]int{10: 8}, resp.CreditedDeltas)

	key := stock.Key{Kind: registry.KindWarehouse, LocationID: 1, BookID: 10}
	rec, err := fx.stockRepo.Get(ctx, key)
	require.NoError(t, err, "首次收货惰性创建台账记录")
	assert.Equal(t, 8, rec.Quantity)
	assert.Equal(t, 0, rec.LowStockThreshold)

	// 采购单到达终态
	assert.Equal(t, string(purchase.OrderReceived), resp.Order.Status)
	assert.Equal(t, 8, resp.Order.Items[0].ReceivedQuantity)

	// 来源申请自动完成,闭环整条采购链
	assert.True(t, resp.RequestCompleted)
	storedReq, _ := fx.requestRepo.FindByID(ctx, order.RequestID)
	assert.Equal(t, purchase.RequestCompleted, storedReq.Status)

	// 提交后动作:告警评估受影响的Key、发布收货事件
	assert.Equal(t, []stock.Key{key}, fx.evaluator.keys)
	assert.Equal(t, []string{"stock.received"}, fx.publisher.routingKeys)
}

// TestReceiveOrderUseCase_Idempotent 测试重复收货的幂等性
func TestReceiveOrderUseCase_Idempotent(t *testing.T) {
	ctx := context.Background()
	fx := newReceiveFixture()
	order := fx.seedSentOrder(t)

	_, err := fx.receiveOrder.Execute(ctx, ReceiveOrderRequest{OrderID: order.ID})
	require.NoError(t, err)

	// 再收一次:增量为0,台账不重复入账
	resp, err := fx.receiveOrder.Execute(ctx, ReceiveOrderRequest{OrderID: order.ID})
	require.NoError(t, err)

	assert.Equal(t, map[uint]int{10: 0}, resp.CreditedDeltas)
	assert.Equal(t, string(purchase.OrderReceived), resp.Order.Status)
	assert.False(t, resp.RequestCompleted, "申请已完成,无需重复流转")

	key := stock.Key{Kind: registry.KindWarehouse, LocationID: 1, BookID: 10}
	rec, _ := fx.stockRepo.Get(ctx, key)
	assert.Equal(t, 8, rec.Quantity, "重复收货不加库存")

	// 没有实际入账就没有派生动作
	assert.Len(t, fx.evaluator.keys, 1, "只有首次收货触发告警评估")
	assert.Equal(t, []string{"stock.received"}, fx.publisher.routingKeys)
}

// TestReceiveOrderUseCase_ExistingLedger 已有台账记录时按增量入账,阈值不动
func TestReceiveOrderUseCase_ExistingLedger(t *testing.T) {
	ctx := context.Background()
	fx := newReceiveFixture()

	key := stock.Key{Kind: registry.KindWarehouse, LocationID: 1, BookID: 10}
	existing, err := stock.NewRecord(key, 5, 3)
	require.NoError(t, err)
	require.NoError(t, fx.stockRepo.Create(ctx, existing))

	order := fx.seedSentOrder(t)
	_, err = fx.receiveOrder.Execute(ctx, ReceiveOrderRequest{OrderID: order.ID})
	require.NoError(t, err)

	rec, _ := fx.stockRepo.Get(ctx, key)
	assert.Equal(t, 13, rec.Quantity, "5+8")
	assert.Equal(t, 3, rec.LowStockThreshold, "收货只动数量")
}

// TestReceiveOrderUseCase_CloseWhenFullyReceived 收货后直接关闭
func TestReceiveOrderUseCase_CloseWhenFullyReceived(t *testing.T) {
	ctx := context.Background()
	fx := newReceiveFixture()
	order := fx.seedSentOrder(t)

	resp, err := fx.receiveOrder.Execute(ctx, ReceiveOrderRequest{
		OrderID:                order.ID,
		CloseWhenFullyReceived: true,
		Note:                   "到货验收完毕",
	})
	require.NoError(t, err)

	assert.Equal(t, string(purchase.OrderClosed), resp.Order.Status)
	assert.NotEmpty(t, resp.Order.ReceivedAt)
	assert.Equal(t, "到货验收完毕", resp.Order.Note)
	assert.True(t, resp.RequestCompleted, "CLOSED同样是收货终态")
}

// TestReceiveOrderUseCase_Guards 测试收货与取消的互斥守卫
func TestReceiveOrderUseCase_Guards(t *testing.T) {
	ctx := context.Background()

	t.Run("收货后不能取消", func(t *testing.T) {
		fx := newReceiveFixture()
		order := fx.seedSentOrder(t)

		_, err := fx.receiveOrder.Execute(ctx, ReceiveOrderRequest{OrderID: order.ID})
		require.NoError(t, err)

		_, err = fx.cancelOrder.Execute(ctx, order.ID)
		assert.ErrorIs(t, err, purchase.ErrInvalidTransition)
	})

	t.Run("取消后不能收货", func(t *testing.T) {
		fx := newReceiveFixture()
		order := fx.seedSentOrder(t)

		_, err := fx.cancelOrder.Execute(ctx, order.ID)
		require.NoError(t, err)

		_, err = fx.receiveOrder.Execute(ctx, ReceiveOrderRequest{OrderID: order.ID})
		assert.ErrorIs(t, err, purchase.ErrInvalidTransition)

		// 取消的单上什么都没发生
		key := stock.Key{Kind: registry.KindWarehouse, LocationID: 1, BookID: 10}
		_, err = fx.stockRepo.Get(ctx, key)
		assert.ErrorIs(t, err, stock.ErrStockNotFound)
	})

	t.Run("采购单不存在", func(t *testing.T) {
		fx := newReceiveFixture()
		_, err := fx.receiveOrder.Execute(ctx, ReceiveOrderRequest{OrderID: 404})
		assert.ErrorIs(t, err, purchase.ErrOrderNotFound)
	})
}
