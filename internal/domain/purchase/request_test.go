package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

// TestNewRequest 测试采购申请工厂方法
func TestNewRequest(t *testing.T) {
	t.Run("默认停在草稿", func(t *testing.T) {
		r, err := NewRequest(10, 1, 50, nil, false, 99)
		require.NoError(t, err)
		assert.Equal(t, RequestDraft, r.Status)
		assert.Equal(t, 50, r.RequestedQuantity)
		assert.Equal(t, uint(99), r.RequestedBy)
	})

	t.Run("直接提交审批", func(t *testing.T) {
		r, err := NewRequest(10, 1, 50, int64Ptr(250000), true, 99)
		require.NoError(t, err)
		assert.Equal(t, RequestPendingApproval, r.Status)
	})

	t.Run("数量必须为正", func(t *testing.T) {
		_, err := NewRequest(10, 1, 0, nil, false, 99)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

// TestRequest_Submit 测试提交状态机守卫
func TestRequest_Submit(t *testing.T) {
	r, _ := NewRequest(10, 1, 50, nil, false, 99)
	require.NoError(t, r.Submit())
	assert.Equal(t, RequestPendingApproval, r.Status)

	// 重复提交被拒绝
	assert.ErrorIs(t, r.Submit(), ErrInvalidTransition)
}

// TestRequest_Review 测试审批
func TestRequest_Review(t *testing.T) {
	newPending := func() *Request {
		r, _ := NewRequest(10, 1, 50, nil, true, 99)
		return r
	}

	t.Run("批准缺省取申请数量", func(t *testing.T) {
		r := newPending()
		require.NoError(t, r.Review(ReviewApprove, nil, nil, "", 7))
		assert.Equal(t, RequestApproved, r.Status)
		require.NotNil(t, r.ApprovedQuantity)
		assert.Equal(t, 50, *r.ApprovedQuantity)
		require.NotNil(t, r.ApprovedBy)
		assert.Equal(t, uint(7), *r.ApprovedBy)
	})

	t.Run("批准可以改数量", func(t *testing.T) {
		r := newPending()
		require.NoError(t, r.Review(ReviewApprove, intPtr(40), int64Ptr(200000), "减量采购", 7))
		assert.Equal(t, 40, *r.ApprovedQuantity)
		assert.Equal(t, int64(200000), *r.ApprovedCost)
		assert.Equal(t, "减量采购", r.ReviewNote)
	})

	t.Run("批准数量必须为正", func(t *testing.T) {
		r := newPending()
		assert.ErrorIs(t, r.Review(ReviewApprove, intPtr(0), nil, "", 7), ErrInvalidQuantity)
		// 失败不改变状态
		assert.Equal(t, RequestPendingApproval, r.Status)
	})

	t.Run("驳回是终态", func(t *testing.T) {
		r := newPending()
		require.NoError(t, r.Review(ReviewReject, nil, nil, "预算不足", 7))
		assert.Equal(t, RequestRejected, r.Status)

		// 终态不能再审批
		assert.ErrorIs(t, r.Review(ReviewApprove, nil, nil, "", 7), ErrInvalidTransition)
	})

	t.Run("非待审批状态不能审批", func(t *testing.T) {
		r, _ := NewRequest(10, 1, 50, nil, false, 99)
		assert.ErrorIs(t, r.Review(ReviewApprove, nil, nil, "", 7), ErrInvalidTransition)
	})

	t.Run("非法审批动作", func(t *testing.T) {
		r := newPending()
		assert.ErrorIs(t, r.Review("MAYBE", nil, nil, "", 7), ErrInvalidReviewAction)
	})
}

// TestRequest_LinkOrder 测试采购单关联(至多一次)
func TestRequest_LinkOrder(t *testing.T) {
	r, _ := NewRequest(10, 1, 50, nil, true, 99)
	require.NoError(t, r.Review(ReviewApprove, nil, nil, "", 7))

	assert.True(t, r.Convertible())
	require.NoError(t, r.LinkOrder(123))
	require.NotNil(t, r.PurchaseOrderID)
	assert.Equal(t, uint(123), *r.PurchaseOrderID)

	// 已关联的申请不能再转单
	assert.False(t, r.Convertible())
	assert.ErrorIs(t, r.LinkOrder(456), ErrRequestNotApprovable)
}

// TestRequest_Complete 测试完成状态机守卫
func TestRequest_Complete(t *testing.T) {
	t.Run("已批准可完成", func(t *testing.T) {
		r, _ := NewRequest(10, 1, 50, nil, true, 99)
		require.NoError(t, r.Review(ReviewApprove, nil, nil, "", 7))
		require.NoError(t, r.Complete())
		assert.Equal(t, RequestCompleted, r.Status)

		// 终态不可重复完成
		assert.ErrorIs(t, r.Complete(), ErrInvalidTransition)
	})

	t.Run("未批准不可完成", func(t *testing.T) {
		r, _ := NewRequest(10, 1, 50, nil, true, 99)
		assert.ErrorIs(t, r.Complete(), ErrInvalidTransition)
	})
}

// TestRequest_QuantityToOrder 测试转单数量
func TestRequest_QuantityToOrder(t *testing.T) {
	r, _ := NewRequest(10, 1, 50, nil, true, 99)
	assert.Equal(t, 50, r.QuantityToOrder(), "未审批时取申请数量")

	require.NoError(t, r.Review(ReviewApprove, intPtr(40), nil, "", 7))
	assert.Equal(t, 40, r.QuantityToOrder(), "审批后取审批数量")
}
