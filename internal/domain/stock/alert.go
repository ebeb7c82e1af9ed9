package stock

import (
	"time"

	"github.com/xiebiao/warehouse/internal/domain/registry"
)

// AlertStatus 告警状态
type AlertStatus string

const (
	AlertOpen     AlertStatus = "OPEN"     // 告警中
	AlertResolved AlertStatus = "RESOLVED" // 已解除
)

// Valid 判断告警状态是否合法
func (s AlertStatus) Valid() bool {
	return s == AlertOpen || s == AlertResolved
}

// Alert 低库存告警
// 设计说明:
// 1. 由台账变更派生:每次变更后重新评估受影响的Key
// 2. 同一Key同时最多一条OPEN告警
// 3. Quantity/Threshold是告警打开时刻的快照,OPEN期间不跟随台账更新,
//    解除后的下一次触发才会产生新快照
type Alert struct {
	ID         uint
	Kind       registry.LocationKind
	LocationID uint
	BookID     uint
	Status     AlertStatus
	Quantity   int // 打开时刻的库存快照
	Threshold  int // 打开时刻的阈值快照
	OpenedAt   time.Time
	ResolvedAt *time.Time
}

// NewAlert 由当前台账记录打开一条告警
func NewAlert(rec *Record) *Alert {
	return &Alert{
		Kind:       rec.Kind,
		LocationID: rec.LocationID,
		BookID:     rec.BookID,
		Status:     AlertOpen,
		Quantity:   rec.Quantity,
		Threshold:  rec.LowStockThreshold,
		OpenedAt:   time.Now(),
	}
}

// Key 返回告警对应的台账Key
func (a *Alert) Key() Key {
	return Key{Kind: a.Kind, LocationID: a.LocationID, BookID: a.BookID}
}

// Resolve 解除告警
func (a *Alert) Resolve() {
	now := time.Now()
	a.Status = AlertResolved
	a.ResolvedAt = &now
}

// AlertAction 告警评估结论
type AlertAction int

const (
	AlertNoChange AlertAction = iota // 无需变化
	AlertShouldOpen                  // 需要打开新告警
	AlertShouldResolve               // 需要解除现有告警
)

// EvaluateAlert 纯函数:根据当前台账记录和现有OPEN告警得出结论
// 规则:
// - 数量<=阈值 且 无OPEN告警 → 打开(快照当前数量/阈值)
// - 数量>阈值  且 有OPEN告警 → 解除
// - 已有OPEN告警且持续偏低 → 不重复、不更新
func EvaluateAlert(rec *Record, open *Alert) AlertAction {
	low := rec.Quantity <= rec.LowStockThreshold

	switch {
	case low && open == nil:
		return AlertShouldOpen
	case !low && open != nil:
		return AlertShouldResolve
	default:
		return AlertNoChange
	}
}
