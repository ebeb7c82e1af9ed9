package purchase

import (
	"time"
)

// OrderStatus 采购单状态
// 状态机: DRAFT → SENT → {PARTIALLY_RECEIVED → RECEIVED} → CLOSED
// 未收货的非终态可以转CANCELLED
type OrderStatus string

const (
	OrderDraft             OrderStatus = "DRAFT"              // 草稿
	OrderSent              OrderStatus = "SENT"               // 已下发供应商
	OrderPartiallyReceived OrderStatus = "PARTIALLY_RECEIVED" // 部分收货
	OrderReceived          OrderStatus = "RECEIVED"           // 全部收货
	OrderClosed            OrderStatus = "CLOSED"             // 已关闭(终态)
	OrderCancelled         OrderStatus = "CANCELLED"          // 已取消(终态)
)

// OrderItem 采购单明细行
// 不变式: 0 <= ReceivedQuantity <= OrderedQuantity,且ReceivedQuantity单调不减
type OrderItem struct {
	ID               uint
	OrderID          uint
	BookID           uint
	OrderedQuantity  int   // 订购数量(>0,创建后不可变)
	ReceivedQuantity int   // 已收数量
	UnitCost         int64 // 单价(分)
}

// FullyReceived 明细行是否已全部收货
func (it *OrderItem) FullyReceived() bool {
	return it.ReceivedQuantity >= it.OrderedQuantity
}

// Order 采购单(聚合根)
// 设计说明:
// 1. 由已批准的采购申请转化而来,目的仓库继承申请的仓库
// 2. TotalCost是派生字段: Σ(订购数量×单价)
// 3. 采购单从不删除,取消也只是状态流转,保留审计链
type Order struct {
	ID          uint
	RequestID   uint // 来源采购申请
	VendorID    uint
	WarehouseID uint // 收货入账的仓库
	Status      OrderStatus
	Items       []*OrderItem
	TotalCost   int64  // 派生:Σ(ordered×unitCost)
	Note        string // 备注
	CreatedBy   uint   // 创建人
	ApprovedBy  *uint  // 审批人(继承自申请)
	ExpectedAt  *time.Time
	SentAt      *time.Time
	ReceivedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrderFromRequest 由已批准的采购申请创建采购单(工厂方法)
// 业务规则:
// 1. 申请必须处于APPROVED且未关联过采购单,否则ErrRequestNotApprovable
// 2. 生成一条明细行,数量取申请的审批数量
// 3. 创建即下发:状态SENT,盖sentAt时间戳
func NewOrderFromRequest(req *Request, vendorID uint, unitCost int64, expectedAt *time.Time, note string, actorID uint) (*Order, error) {
	if !req.Convertible() {
		return nil, ErrRequestNotApprovable
	}

	qty := req.QuantityToOrder()
	now := time.Now()

	o := &Order{
		RequestID:   req.ID,
		VendorID:    vendorID,
		WarehouseID: req.WarehouseID,
		Status:      OrderSent,
		Note:        note,
		CreatedBy:   actorID,
		ApprovedBy:  req.ApprovedBy,
		ExpectedAt:  expectedAt,
		SentAt:      &now,
		CreatedAt:   now,
		UpdatedAt:   now,
		Items: []*OrderItem{{
			BookID:          req.BookID,
			OrderedQuantity: qty,
			UnitCost:        unitCost,
		}},
	}
	o.TotalCost = o.computeTotalCost()

	return o, nil
}

// computeTotalCost 重新计算派生的总成本
func (o *Order) computeTotalCost() int64 {
	var total int64
	for _, it := range o.Items {
		total += int64(it.OrderedQuantity) * it.UnitCost
	}
	return total
}

// Receivable 判断当前状态能否收货
// 已收完的单(RECEIVED/CLOSED)允许重复收货,增量为0(幂等)
func (o *Order) Receivable() bool {
	switch o.Status {
	case OrderSent, OrderPartiallyReceived, OrderReceived, OrderClosed:
		return true
	default:
		return false
	}
}

// ReceiveAll 全量收货:每条明细的已收数量补齐到订购数量
// 返回每条明细本次新收的增量(BookID → delta),用于台账入账
// 已收完的明细增量为0,重复收货因此天然幂等
func (o *Order) ReceiveAll() (map[uint]int, error) {
	if !o.Receivable() {
		return nil, ErrInvalidTransition
	}

	deltas := make(map[uint]int, len(o.Items))
	for _, it := range o.Items {
		delta := it.OrderedQuantity - it.ReceivedQuantity
		if delta < 0 {
			// 已收数量超订购属于数据异常,不应出现
			return nil, ErrReceivedExceedsOrdered
		}
		it.ReceivedQuantity = it.OrderedQuantity
		deltas[it.BookID] += delta
	}

	o.recomputeStatus()
	o.UpdatedAt = time.Now()
	return deltas, nil
}

// recomputeStatus 根据明细收货进度重算状态
// 已关闭/已取消的单状态不回退
func (o *Order) recomputeStatus() {
	if o.Status == OrderClosed || o.Status == OrderCancelled {
		return
	}

	all := true
	any := false
	for _, it := range o.Items {
		if it.FullyReceived() {
			any = true
		} else {
			all = false
		}
		if it.ReceivedQuantity > 0 {
			any = true
		}
	}

	switch {
	case all:
		o.Status = OrderReceived
	case any:
		o.Status = OrderPartiallyReceived
	}
}

// FullyReceived 是否全部收货
func (o *Order) FullyReceived() bool {
	for _, it := range o.Items {
		if !it.FullyReceived() {
			return false
		}
	}
	return true
}

// Close 关闭已全部收货的采购单,盖receivedAt时间戳
func (o *Order) Close() error {
	if o.Status != OrderReceived {
		return ErrInvalidTransition
	}
	now := time.Now()
	o.Status = OrderClosed
	o.ReceivedAt = &now
	o.UpdatedAt = now
	return nil
}

// Terminal 采购单是否到达"收货完成"终态(触发申请Complete)
func (o *Order) Terminal() bool {
	return o.Status == OrderReceived || o.Status == OrderClosed
}

// anyReceived 是否有任何收货记录
func (o *Order) anyReceived() bool {
	for _, it := range o.Items {
		if it.ReceivedQuantity > 0 {
			return true
		}
	}
	return false
}

// Cancel 取消采购单
// 业务规则:仅DRAFT/SENT且未发生任何收货时允许
func (o *Order) Cancel() error {
	if o.Status != OrderDraft && o.Status != OrderSent {
		return ErrInvalidTransition
	}
	if o.anyReceived() {
		return ErrInvalidTransition
	}
	o.Status = OrderCancelled
	o.UpdatedAt = time.Now()
	return nil
}
