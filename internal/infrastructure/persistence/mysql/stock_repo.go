package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/warehouse/internal/domain/registry"
	"github.com/xiebiao/warehouse/internal/domain/stock"
	apperrors "github.com/xiebiao/warehouse/pkg/errors"
)

// stockRepository 库存台账仓储实现(MySQL)
// 设计说明:
// 1. 台账不变式(quantity >= 0)由AdjustQuantity的条件更新保证:
//    UPDATE stock_records SET quantity = quantity + ? WHERE ... AND quantity + ? >= 0
//    条件不满足时0行受影响,记录保持原样(没有部分写入)
// 2. Lock使用SELECT FOR UPDATE,配合TxManager实现同Key变更串行化
type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository 创建台账仓储
func NewStockRepository(db *gorm.DB) stock.Repository {
	return &stockRepository{db: db}
}

// keyWhere 台账主键查询条件
func keyWhere(db *gorm.DB, key stock.Key) *gorm.DB {
	return db.Where("kind = ? AND location_id = ? AND book_id = ?",
		string(key.Kind), key.LocationID, key.BookID)
}

// Get 查询台账记录
func (r *stockRepository) Get(ctx context.Context, key stock.Key) (*stock.Record, error) {
	var model StockRecordModel
	err := keyWhere(getDB(ctx, r.db), key).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stock.ErrStockNotFound
		}
		return nil, apperrors.Wrap(err, "查询库存失败")
	}

	return toStockEntity(&model), nil
}

// Lock 悲观锁查询台账记录(SELECT FOR UPDATE)
// 教学要点:必须在TxManager.Transaction内调用,
// 其他事务对同一行的锁请求会等待当前事务COMMIT/ROLLBACK
func (r *stockRepository) Lock(ctx context.Context, key stock.Key) (*stock.Record, error) {
	var model StockRecordModel
	db := getDB(ctx, r.db)
	err := keyWhere(db.Clauses(clause.Locking{Strength: "UPDATE"}), key).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stock.ErrStockNotFound
		}
		return nil, apperrors.Wrap(err, "锁定库存失败")
	}

	return toStockEntity(&model), nil
}

// Create 创建台账记录(首次设置库存时惰性创建)
func (r *stockRepository) Create(ctx context.Context, rec *stock.Record) error {
	model := toStockModel(rec)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			// 并发首次创建撞上唯一索引,调用方按已存在重试
			return apperrors.Wrap(err, "台账记录已存在")
		}
		return apperrors.Wrap(err, "创建库存记录失败")
	}

	rec.ID = model.ID
	rec.CreatedAt = model.CreatedAt
	rec.UpdatedAt = model.UpdatedAt
	return nil
}

// Save 更新数量与阈值
func (r *stockRepository) Save(ctx context.Context, rec *stock.Record) error {
	result := keyWhere(getDB(ctx, r.db).Model(&StockRecordModel{}), rec.Key()).
		Updates(map[string]interface{}{
			"quantity":            rec.Quantity,
			"low_stock_threshold": rec.LowStockThreshold,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}
	if result.RowsAffected == 0 {
		return stock.ErrStockNotFound
	}
	return nil
}

// AdjustQuantity 原子增减数量
// 教学要点:条件更新防止负库存
// UPDATE stock_records SET quantity = quantity + delta
// WHERE kind=? AND location_id=? AND book_id=? AND quantity + delta >= 0
func (r *stockRepository) AdjustQuantity(ctx context.Context, key stock.Key, delta int) error {
	db := getDB(ctx, r.db)
	result := keyWhere(db.Model(&StockRecordModel{}), key).
		Where("quantity + ? >= 0", delta). // 防止库存为负
		Update("quantity", gorm.Expr("quantity + ?", delta))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "调整库存失败")
	}

	if result.RowsAffected == 0 {
		// 可能是记录不存在,也可能是库存不足,再查一次确定原因
		var model StockRecordModel
		if err := keyWhere(db, key).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return stock.ErrStockNotFound
			}
			return apperrors.Wrap(err, "查询库存失败")
		}
		// 记录存在,说明是库存不足
		return stock.ErrInsufficientStock
	}

	return nil
}

// ListByLocation 查询某地点的全部台账记录
func (r *stockRepository) ListByLocation(ctx context.Context, kind registry.LocationKind, locationID uint) ([]*stock.Record, error) {
	var models []StockRecordModel
	err := getDB(ctx, r.db).
		Where("kind = ? AND location_id = ?", string(kind), locationID).
		Order("book_id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询库存列表失败")
	}

	records := make([]*stock.Record, len(models))
	for i := range models {
		records[i] = toStockEntity(&models[i])
	}

	return records, nil
}

// toStockModel 领域实体 → GORM模型
func toStockModel(rec *stock.Record) *StockRecordModel {
	return &StockRecordModel{
		ID:                rec.ID,
		Kind:              string(rec.Kind),
		LocationID:        rec.LocationID,
		BookID:            rec.BookID,
		Quantity:          rec.Quantity,
		LowStockThreshold: rec.LowStockThreshold,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
}

// toStockEntity GORM模型 → 领域实体
func toStockEntity(model *StockRecordModel) *stock.Record {
	return &stock.Record{
		ID:                model.ID,
		Kind:              registry.LocationKind(model.Kind),
		LocationID:        model.LocationID,
		BookID:            model.BookID,
		Quantity:          model.Quantity,
		LowStockThreshold: model.LowStockThreshold,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}
