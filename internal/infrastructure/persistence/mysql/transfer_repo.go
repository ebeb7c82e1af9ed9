package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/warehouse/internal/domain/registry"
	"github.com/xiebiao/warehouse/internal/domain/stock"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// transferRepository 调拨日志仓储实现(MySQL)
// 只增不改(Append-Only):没有Update/Delete
type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository 创建调拨日志仓储
func NewTransferRepository(db *gorm.DB) stock.TransferRepository {
	return &transferRepository{db: db}
}

// Create 追加调拨日志
func (r *transferRepository) Create(ctx context.Context, t *stock.Transfer) error {
	model := &TransferModel{
		BookID:         t.BookID,
		FromKind:       string(t.FromKind),
		FromLocationID: t.FromLocationID,
		ToKind:         string(t.ToKind),
		ToLocationID:   t.ToLocationID,
		Quantity:       t.Quantity,
		Note:           t.Note,
		ActorID:        t.ActorID,
		CreatedAt:      t.CreatedAt,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "写入调拨日志失败")
	}

	t.ID = model.ID
	return nil
}

// List 分页查询调拨日志(按时间倒序)
func (r *transferRepository) List(ctx context.Context, page, pageSize int) ([]*stock.Transfer, int64, error) {
	db := getDB(ctx, r.db)

	var total int64
	if err := db.Model(&TransferModel{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询调拨日志总数失败")
	}

	var models []TransferModel
	offset := (page - 1) * pageSize
	err := db.Order("created_at DESC, id DESC").
		Limit(pageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询调拨日志失败")
	}

	transfers := make([]*stock.Transfer, len(models))
	for i := range models {
		m := &models[i]
		transfers[i] = &stock.Transfer{
			ID:             m.ID,
			BookID:         m.BookID,
			FromKind:       registry.LocationKind(m.FromKind),
			FromLocationID: m.FromLocationID,
			ToKind:         registry.LocationKind(m.ToKind),
			ToLocationID:   m.ToLocationID,
			Quantity:       m.Quantity,
			Note:           m.Note,
			ActorID:        m.ActorID,
			CreatedAt:      m.CreatedAt,
		}
	}

	return transfers, total, nil
}
