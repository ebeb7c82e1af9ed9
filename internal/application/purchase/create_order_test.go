package purchase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/warehouse/internal/domain/purchase"
	"github.com/xiebiao/warehouse/internal/domain/registry"
)

// orderFixture 组装建单相关用例及其内存依赖
type orderFixture struct {
	requestRepo *fakeRequestRepo
	orderRepo   *fakeOrderRepo
	vendorRepo  *fakeVendorRepo
	createOrder *CreateOrderUseCase
}

func newOrderFixture(vendors ...*registry.Vendor) *orderFixture {
	requestRepo := newFakeRequestRepo()
	orderRepo := newFakeOrderRepo()
	vendorRepo := newFakeVendorRepo(vendors...)
	tx := &fakeTxManager{requestRepo: requestRepo, orderRepo: orderRepo}

	return &orderFixture{
		requestRepo: requestRepo,
		orderRepo:   orderRepo,
		vendorRepo:  vendorRepo,
		createOrder: NewCreateOrderUseCase(orderRepo, requestRepo, vendorRepo, tx),
	}
}

// seedApprovedRequest 预置一条已批准的申请(申请10,批准8)
func (fx *orderFixture) seedApprovedRequest(t *testing.T) *purchase.Request {
	t.Helper()
	return fx.seedRequest(t, 10, intPtr(8))
}

func (fx *orderFixture) seedRequest(t *testing.T, requested int, approved *int) *purchase.Request {
	t.Helper()
	ctx := context.Background()

	r, err := purchase.NewRequest(10, 1, requested, nil, true, 99)
	require.NoError(t, err)
	require.NoError(t, fx.requestRepo.Create(ctx, r))

	if approved != nil {
		require.NoError(t, r.Review(purchase.ReviewApprove, approved, nil, "", 7))
		require.NoError(t, fx.requestRepo.Update(ctx, r))
	}
	return r
}

// TestCreateOrderUseCase_Execute 测试申请转采购单
func TestCreateOrderUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("正常转单并回写关联", func(t *testing.T) {
		fx := newOrderFixture(testVendor(5))
		r := fx.seedApprovedRequest(t)

		dto, err := fx.createOrder.Execute(ctx, CreateOrderRequest{
			RequestID: r.ID,
			VendorID:  5,
			UnitCost:  5000,
			ActorID:   99,
		})
		require.NoError(t, err)

		assert.Equal(t, string(purchase.OrderSent), dto.Status)
		assert.NotEmpty(t, dto.SentAt)
		require.Len(t, dto.Items, 1)
		assert.Equal(t, 8, dto.Items[0].OrderedQuantity, "数量取审批数量")
		assert.Equal(t, int64(8*5000), dto.TotalCost)

		// 申请已关联,重复转单被拒
		stored, _ := fx.requestRepo.FindByID(ctx, r.ID)
		require.NotNil(t, stored.PurchaseOrderID)
		assert.Equal(t, dto.ID, *stored.PurchaseOrderID)

		_, err = fx.createOrder.Execute(ctx, CreateOrderRequest{
			RequestID: r.ID,
			VendorID:  5,
			UnitCost:  5000,
			ActorID:   99,
		})
		assert.ErrorIs(t, err, purchase.ErrRequestNotApprovable)
	})

	t.Run("未批准的申请不可转单", func(t *testing.T) {
		fx := newOrderFixture(testVendor(5))
		r := fx.seedRequest(t, 10, nil) // 停在待审批

		_, err := fx.createOrder.Execute(ctx, CreateOrderRequest{
			RequestID: r.ID,
			VendorID:  5,
			UnitCost:  5000,
		})
		assert.ErrorIs(t, err, purchase.ErrRequestNotApprovable)
		// 事务回滚:没有残留采购单
		assert.Empty(t, fx.orderRepo.orders)
	})

	t.Run("供应商不存在", func(t *testing.T) {
		fx := newOrderFixture()
		r := fx.seedApprovedRequest(t)

		_, err := fx.createOrder.Execute(ctx, CreateOrderRequest{
			RequestID: r.ID,
			VendorID:  5,
			UnitCost:  5000,
		})
		assert.ErrorIs(t, err, registry.ErrVendorNotFound)
	})

	t.Run("回收站供应商不可下单", func(t *testing.T) {
		vendor := testVendor(5)
		require.NoError(t, vendor.Trash())
		fx := newOrderFixture(vendor)
		r := fx.seedApprovedRequest(t)

		_, err := fx.createOrder.Execute(ctx, CreateOrderRequest{
			RequestID: r.ID,
			VendorID:  5,
			UnitCost:  5000,
		})
		assert.ErrorIs(t, err, registry.ErrVendorNotFound)
	})

	t.Run("单价不能为负", func(t *testing.T) {
		fx := newOrderFixture(testVendor(5))
		r := fx.seedApprovedRequest(t)

		_, err := fx.createOrder.Execute(ctx, CreateOrderRequest{
			RequestID: r.ID,
			VendorID:  5,
			UnitCost:  -1,
		})
		assert.ErrorIs(t, err, purchase.ErrInvalidQuantity)
	})
}

// TestCreateOrdersBatchUseCase 测试批量建单的尽力而为语义
func TestCreateOrdersBatchUseCase(t *testing.T) {
	ctx := context.Background()
	fx := newOrderFixture(testVendor(5))
	batch := NewCreateOrdersBatchUseCase(fx.createOrder)

	ok1 := fx.seedApprovedRequest(t)
	pending := fx.seedRequest(t, 6, nil) // 待审批,转单必然失败
	ok2 := fx.seedApprovedRequest(t)

	resp, err := batch.Execute(ctx, CreateOrdersBatchRequest{
		RequestIDs: []uint{ok1.ID, pending.ID, ok2.ID, 404},
		VendorID:   5,
		UnitCost:   3000,
		ActorID:    99,
	})
	require.NoError(t, err, "单条失败不拖垮整批")

	assert.Equal(t, 2, resp.CreatedCount)
	require.Equal(t, 2, resp.SkippedCount)

	// 跳过明细带原因,便于调用方单独重试
	assert.Equal(t, pending.ID, resp.Skipped[0].RequestID)
	assert.NotEmpty(t, resp.Skipped[0].Reason)
	assert.Equal(t, uint(404), resp.Skipped[1].RequestID)

	// 成功的申请各自独立成单
	assert.Len(t, fx.orderRepo.orders, 2)

	t.Run("空ID列表被拒", func(t *testing.T) {
		_, err := batch.Execute(ctx, CreateOrdersBatchRequest{VendorID: 5})
		assert.Error(t, err)
	})
}

// TestCancelOrderUseCase 测试采购单取消守卫
func TestCancelOrderUseCase(t *testing.T) {
	ctx := context.Background()
	fx := newOrderFixture(testVendor(5))
	cancel := NewCancelOrderUseCase(fx.orderRepo, &fakeTxManager{orderRepo: fx.orderRepo})

	r := fx.seedApprovedRequest(t)
	dto, err := fx.createOrder.Execute(ctx, CreateOrderRequest{
		RequestID: r.ID,
		VendorID:  5,
		UnitCost:  5000,
	})
	require.NoError(t, err)

	cancelled, err := cancel.Execute(ctx, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, string(purchase.OrderCancelled), cancelled.Status)

	// 终态不可重复取消
	_, err = cancel.Execute(ctx, dto.ID)
	assert.ErrorIs(t, err, purchase.ErrInvalidTransition)

	t.Run("采购单不存在", func(t *testing.T) {
		_, err := cancel.Execute(ctx, 404)
		assert.ErrorIs(t, err, purchase.ErrOrderNotFound)
	})
}
