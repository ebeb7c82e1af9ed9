package stock

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/warehouse/internal/domain/registry"
	"github.com/xiebiao/warehouse/internal/domain/stock"
	"github.com/xiebiao/warehouse/pkg/metrics"
)

// TransferUseCase 库存调拨用例
// 教学重点:跨两条台账记录的原子变更
//
// 核心问题:调拨经过一个中间态(已扣源、未加目标),
// 任何一步失败都必须整体回滚,外部永远看不到"书凭空消失"
//
// 并发问题:两个方向相反的调拨(A→B和B→A)同时执行,
// 如果各自先锁自己的源,会互相等待对方持有的锁而死锁
//
// 解法:
// 1. 事务包住扣减、入账、写日志三步
// 2. 加锁前先对两个Key排序,所有事务按同一全序加锁,死锁不可能成环
type TransferUseCase struct {
	stockRepo    stock.Repository
	transferRepo stock.TransferRepository
	locationRepo registry.LocationRepository
	txManager    TxManager
	monitor      *AlertMonitor
	publisher    EventPublisher
	cache        StockCache
}

// NewTransferUseCase 创建调拨用例
func NewTransferUseCase(
	stockRepo stock.Repository,
	transferRepo stock.TransferRepository,
	locationRepo registry.LocationRepository,
	txManager TxManager,
	monitor *AlertMonitor,
	publisher EventPublisher,
	cache StockCache,
) *TransferUseCase {
	return &TransferUseCase{
		stockRepo:    stockRepo,
		transferRepo: transferRepo,
		locationRepo: locationRepo,
		txManager:    txManager,
		monitor:      monitor,
		publisher:    publisher,
		cache:        cache,
	}
}

// TransferRequest 调拨请求DTO
type TransferRequest struct {
	BookID       uint
	FromKind     registry.LocationKind
	FromLocation uint
	ToKind       registry.LocationKind
	ToLocation   uint
	Quantity     int    // 调拨数量(>0)
	Note         string // 备注(可选)
	ActorID      uint   // 操作人(从JWT中提取)
}

// TransferResponse 调拨响应DTO
type TransferResponse struct {
	TransferID   uint   `json:"transfer_id"`
	BookID       uint   `json:"book_id"`
	FromQuantity int    `json:"from_quantity"` // 调拨后源数量
	ToQuantity   int    `json:"to_quantity"`   // 调拨后目标数量
	CreatedAt    string `json:"created_at"`
}

// TransferEvent 调拨事件(MQ消息体)
type TransferEvent struct {
	TransferID   uint      `json:"transfer_id"`
	BookID       uint      `json:"book_id"`
	FromKind     string    `json:"from_kind"`
	FromLocation uint      `json:"from_location"`
	ToKind       string    `json:"to_kind"`
	ToLocation   uint      `json:"to_location"`
	Quantity     int       `json:"quantity"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Execute 执行调拨
func (uc *TransferUseCase) Execute(ctx context.Context, req TransferRequest) (*TransferResponse, error) {
	start := time.Now()

	from := stock.Key{Kind: req.FromKind, LocationID: req.FromLocation, BookID: req.BookID}
	to := stock.Key{Kind: req.ToKind, LocationID: req.ToLocation, BookID: req.BookID}

	// 1. 构造调拨日志(工厂方法校验数量为正、源目标不同)
	transfer, err := stock.NewTransfer(req.BookID, from, to, req.Quantity, req.Note, req.ActorID)
	if err != nil {
		return nil, err
	}

	// 2. 校验两端地点:必须存在、类型匹配、不在回收站
	if err := uc.checkLocation(ctx, req.FromKind, req.FromLocation); err != nil {
		return nil, err
	}
	if err := uc.checkLocation(ctx, req.ToKind, req.ToLocation); err != nil {
		return nil, err
	}

	// 3. 事务执行调拨
	var fromQty, toQty int
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// ========================================
		// 步骤1:按全序锁定两条台账记录
		// ========================================
		// 教学要点:所有调拨事务按Key.Less定义的顺序加锁,
		// 两个方向相反的并发调拨不会互相死锁
		first, second := from, to
		if second.Less(first) {
			first, second = second, first
		}
		if err := uc.lockEndpoint(txCtx, first, to); err != nil {
			return err
		}
		if err := uc.lockEndpoint(txCtx, second, to); err != nil {
			return err
		}

		// ========================================
		// 步骤2:源出账(不足时整体失败,两侧都不动)
		// ========================================
		if err := uc.stockRepo.AdjustQuantity(txCtx, from, -req.Quantity); err != nil {
			return err
		}

		// ========================================
		// 步骤3:目标入账
		// ========================================
		if err := uc.stockRepo.AdjustQuantity(txCtx, to, req.Quantity); err != nil {
			return err
		}

		// ========================================
		// 步骤4:追加调拨日志(不可变事实)
		// ========================================
		if err := uc.transferRepo.Create(txCtx, transfer); err != nil {
			return err
		}

		// 回读两侧余额用于响应
		fromRec, err := uc.stockRepo.Get(txCtx, from)
		if err != nil {
			return err
		}
		toRec, err := uc.stockRepo.Get(txCtx, to)
		if err != nil {
			return err
		}
		fromQty, toQty = fromRec.Quantity, toRec.Quantity
		return nil
	})

	if err != nil {
		metrics.TransfersTotal.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.TransfersTotal.WithLabelValues("success").Inc()
	metrics.TransferDuration.Observe(time.Since(start).Seconds())

	// 4. 提交后:评估两侧告警、失效两侧缓存、发布事件(均尽力而为)
	uc.monitor.Evaluate(ctx, from)
	uc.monitor.Evaluate(ctx, to)
	if uc.cache != nil {
		_ = uc.cache.InvalidateLocation(ctx, string(from.Kind), from.LocationID)
		_ = uc.cache.InvalidateLocation(ctx, string(to.Kind), to.LocationID)
	}
	uc.publishEvent(transfer)

	return &TransferResponse{
		TransferID:   transfer.ID,
		BookID:       transfer.BookID,
		FromQuantity: fromQty,
		ToQuantity:   toQty,
		CreatedAt:    transfer.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// lockEndpoint 锁定一侧台账记录
// 目标端首次收这本书时没有台账记录,惰性创建零数量记录(阈值0),
// 事务内INSERT的新行同样被本事务独占,后续入账安全
// 源端不存在仍然报错:没有台账就没有可调出的库存
func (uc *TransferUseCase) lockEndpoint(ctx context.Context, key, to stock.Key) error {
	_, err := uc.stockRepo.Lock(ctx, key)
	if err == nil {
		return nil
	}
	if key != to || !errors.Is(err, stock.ErrStockNotFound) {
		return err
	}

	rec, err := stock.NewRecord(key, 0, 0)
	if err != nil {
		return err
	}
	return uc.stockRepo.Create(ctx, rec)
}

// checkLocation 校验调拨端点地点
func (uc *TransferUseCase) checkLocation(ctx context.Context, kind registry.LocationKind, id uint) error {
	if !kind.Valid() {
		return registry.ErrInvalidKind
	}
	loc, err := uc.locationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if loc.Kind != kind || loc.Trashed() {
		return registry.ErrLocationNotFound
	}
	return nil
}

// publishEvent 发布调拨事件(尽力而为)
func (uc *TransferUseCase) publishEvent(t *stock.Transfer) {
	if uc.publisher == nil {
		return
	}

	event := TransferEvent{
		TransferID:   t.ID,
		BookID:       t.BookID,
		FromKind:     string(t.FromKind),
		FromLocation: t.FromLocationID,
		ToKind:       string(t.ToKind),
		ToLocation:   t.ToLocationID,
		Quantity:     t.Quantity,
		OccurredAt:   time.Now(),
	}

	if err := uc.publisher.Publish("stock.transferred", event); err != nil {
		metrics.MessagesPublishedTotal.WithLabelValues("stock.transferred", "failure").Inc()
		return
	}
	metrics.MessagesPublishedTotal.WithLabelValues("stock.transferred", "success").Inc()
}
