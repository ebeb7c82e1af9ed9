package stock

import (
	"time"

	"github.com/xiebiao/warehouse/internal/domain/registry"
)

// Transfer 调拨日志(不可变事实)
// 设计说明:
// 1. 只增不改(Append-Only):调拨一旦落账就是历史事实,永不修改
// 2. 记录操作人ID用于审计
// 3. 源和目标的类型可以不同(仓库→仓库/仓库→门店)
type Transfer struct {
	ID             uint
	BookID         uint
	FromKind       registry.LocationKind
	FromLocationID uint
	ToKind         registry.LocationKind
	ToLocationID   uint
	Quantity       int    // 调拨数量(>0)
	Note           string // 备注(可选)
	ActorID        uint   // 操作人
	CreatedAt      time.Time
}

// NewTransfer 创建调拨日志(工厂方法)
// 业务规则:数量必须为正,源和目标不能是同一地点
func NewTransfer(bookID uint, from, to Key, quantity int, note string, actorID uint) (*Transfer, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if from == to {
		return nil, ErrSameLocation
	}

	return &Transfer{
		BookID:         bookID,
		FromKind:       from.Kind,
		FromLocationID: from.LocationID,
		ToKind:         to.Kind,
		ToLocationID:   to.LocationID,
		Quantity:       quantity,
		Note:           note,
		ActorID:        actorID,
		CreatedAt:      time.Now(),
	}, nil
}

// From 源台账Key
func (t *Transfer) From() Key {
	return Key{Kind: t.FromKind, LocationID: t.FromLocationID, BookID: t.BookID}
}

// To 目标台账Key
func (t *Transfer) To() Key {
	return Key{Kind: t.ToKind, LocationID: t.ToLocationID, BookID: t.BookID}
}
