package purchase

import (
	"context"
	"os"
	"testing"

	"github.com/xiebiao/warehouse/internal/domain/purchase"
	"github.com/xiebiao/warehouse/internal/domain/registry"
	"github.com/xiebiao/warehouse/internal/domain/stock"
	"github.com/xiebiao/warehouse/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	os.Exit(m.Run())
}

// ----------------------------------------------------------------------------
// 内存版仓储实现
// 读取返回深拷贝、写入覆盖存储,配合fakeTxManager的快照回滚,
// 与真实数据库的事务语义对齐
// ----------------------------------------------------------------------------

type fakeRequestRepo struct {
	requests map[uint]*purchase.Request
	nextID   uint
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[uint]*purchase.Request), nextID: 1}
}

func cloneRequest(r *purchase.Request) *purchase.Request {
	clone := *r
	return &clone
}

func (repo *fakeRequestRepo) Create(_ context.Context, r *purchase.Request) error {
	r.ID = repo.nextID
	repo.nextID++
	repo.requests[r.ID] = cloneRequest(r)
	return nil
}

func (repo *fakeRequestRepo) FindByID(_ context.Context, id uint) (*purchase.Request, error) {
	r, ok := repo.requests[id]
	if !ok {
		return nil, purchase.ErrRequestNotFound
	}
	return cloneRequest(r), nil
}

func (repo *fakeRequestRepo) LockByID(ctx context.Context, id uint) (*purchase.Request, error) {
	return repo.FindByID(ctx, id)
}

func (repo *fakeRequestRepo) Update(_ context.Context, r *purchase.Request) error {
	if _, ok := repo.requests[r.ID]; !ok {
		return purchase.ErrRequestNotFound
	}
	repo.requests[r.ID] = cloneRequest(r)
	return nil
}

func (repo *fakeRequestRepo) List(_ context.Context, status purchase.RequestStatus, page, pageSize int) ([]*purchase.Request, int64, error) {
	var out []*purchase.Request
	for _, r := range repo.requests {
		if status == "" || r.Status == status {
			out = append(out, cloneRequest(r))
		}
	}
	return out, int64(len(out)), nil
}

func (repo *fakeRequestRepo) snapshot() map[uint]*purchase.Request {
	s := make(map[uint]*purchase.Request, len(repo.requests))
	for id, r := range repo.requests {
		s[id] = cloneRequest(r)
	}
	return s
}

type fakeOrderRepo struct {
	orders     map[uint]*purchase.Order
	nextID     uint
	nextItemID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*purchase.Order), nextID: 1, nextItemID: 1}
}

func cloneOrder(o *purchase.Order) *purchase.Order {
	clone := *o
	clone.Items = make([]*purchase.OrderItem, len(o.Items))
	for i, it := range o.Items {
		itClone := *it
		clone.Items[i] = &itClone
	}
	return &clone
}

func (repo *fakeOrderRepo) Create(_ context.Context, o *purchase.Order) error {
	o.ID = repo.nextID
	repo.nextID++
	for _, it := range o.Items {
		it.ID = repo.nextItemID
		it.OrderID = o.ID
		repo.nextItemID++
	}
	repo.orders[o.ID] = cloneOrder(o)
	return nil
}

func (repo *fakeOrderRepo) FindByID(_ context.Context, id uint) (*purchase.Order, error) {
	o, ok := repo.orders[id]
	if !ok {
		return nil, purchase.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (repo *fakeOrderRepo) LockByID(ctx context.Context, id uint) (*purchase.Order, error) {
	return repo.FindByID(ctx, id)
}

func (repo *fakeOrderRepo) Update(_ context.Context, o *purchase.Order) error {
	stored, ok := repo.orders[o.ID]
	if !ok {
		return purchase.ErrOrderNotFound
	}
	// 单头更新不触碰明细,与mysql实现一致
	items := stored.Items
	repo.orders[o.ID] = cloneOrder(o)
	repo.orders[o.ID].Items = items
	return nil
}

func (repo *fakeOrderRepo) UpdateItem(_ context.Context, it *purchase.OrderItem) error {
	o, ok := repo.orders[it.OrderID]
	if !ok {
		return purchase.ErrOrderNotFound
	}
	for i, stored := range o.Items {
		if stored.ID == it.ID {
			itClone := *it
			o.Items[i] = &itClone
			return nil
		}
	}
	return purchase.ErrOrderNotFound
}

func (repo *fakeOrderRepo) List(_ context.Context, status purchase.OrderStatus, page, pageSize int) ([]*purchase.Order, int64, error) {
	var out []*purchase.Order
	for _, o := range repo.orders {
		if status == "" || o.Status == status {
			out = append(out, cloneOrder(o))
		}
	}
	return out, int64(len(out)), nil
}

func (repo *fakeOrderRepo) snapshot() map[uint]*purchase.Order {
	s := make(map[uint]*purchase.Order, len(repo.orders))
	for id, o := range repo.orders {
		s[id] = cloneOrder(o)
	}
	return s
}

type fakeVendorRepo struct {
	vendors map[uint]*registry.Vendor
}

func newFakeVendorRepo(vendors ...*registry.Vendor) *fakeVendorRepo {
	r := &fakeVendorRepo{vendors: make(map[uint]*registry.Vendor)}
	for _, v := range vendors {
		r.vendors[v.ID] = v
	}
	return r
}

func (r *fakeVendorRepo) Create(_ context.Context, v *registry.Vendor) error {
	r.vendors[v.ID] = v
	return nil
}

func (r *fakeVendorRepo) FindByID(_ context.Context, id uint) (*registry.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, registry.ErrVendorNotFound
	}
	return v, nil
}

func (r *fakeVendorRepo) Update(_ context.Context, v *registry.Vendor) error {
	r.vendors[v.ID] = v
	return nil
}

func (r *fakeVendorRepo) List(_ context.Context, filter registry.ListFilter) ([]*registry.Vendor, error) {
	var out []*registry.Vendor
	for _, v := range r.vendors {
		if filter == registry.FilterTrashed && !v.Trashed() {
			continue
		}
		if (filter == registry.FilterActive || filter == "") && v.Trashed() {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

type fakeLocationRepo struct {
	locations map[uint]*registry.Location
}

func newFakeLocationRepo(locs ...*registry.Location) *fakeLocationRepo {
	r := &fakeLocationRepo{locations: make(map[uint]*registry.Location)}
	for _, l := range locs {
		r.locations[l.ID] = l
	}
	return r
}

func (r *fakeLocationRepo) Create(_ context.Context, loc *registry.Location) error {
	r.locations[loc.ID] = loc
	return nil
}

func (r *fakeLocationRepo) FindByID(_ context.Context, id uint) (*registry.Location, error) {
	loc, ok := r.locations[id]
	if !ok {
		return nil, registry.ErrLocationNotFound
	}
	return loc, nil
}

func (r *fakeLocationRepo) Update(_ context.Context, loc *registry.Location) error {
	r.locations[loc.ID] = loc
	return nil
}

func (r *fakeLocationRepo) List(_ context.Context, kind registry.LocationKind, filter registry.ListFilter) ([]*registry.Location, error) {
	var out []*registry.Location
	for _, l := range r.locations {
		if kind == "" || l.Kind == kind {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeStockRepo struct {
	records map[stock.Key]*stock.Record
	nextID  uint
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{records: make(map[stock.Key]*stock.Record), nextID: 1}
}

func (r *fakeStockRepo) Get(_ context.Context, key stock.Key) (*stock.Record, error) {
	rec, ok := r.records[key]
	if !ok {
		return nil, stock.ErrStockNotFound
	}
	clone := *rec
	return &clone, nil
}

func (r *fakeStockRepo) Lock(ctx context.Context, key stock.Key) (*stock.Record, error) {
	return r.Get(ctx, key)
}

func (r *fakeStockRepo) Create(_ context.Context, rec *stock.Record) error {
	rec.ID = r.nextID
	r.nextID++
	clone := *rec
	r.records[rec.Key()] = &clone
	return nil
}

func (r *fakeStockRepo) Save(_ context.Context, rec *stock.Record) error {
	clone := *rec
	r.records[rec.Key()] = &clone
	return nil
}

func (r *fakeStockRepo) AdjustQuantity(_ context.Context, key stock.Key, delta int) error {
	rec, ok := r.records[key]
	if !ok {
		return stock.ErrStockNotFound
	}
	if rec.Quantity+delta < 0 {
		return stock.ErrInsufficientStock
	}
	rec.Quantity += delta
	return nil
}

func (r *fakeStockRepo) ListByLocation(_ context.Context, kind registry.LocationKind, locationID uint) ([]*stock.Record, error) {
	var out []*stock.Record
	for _, rec := range r.records {
		if rec.Kind == kind && rec.LocationID == locationID {
			clone := *rec
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) snapshot() map[stock.Key]*stock.Record {
	s := make(map[stock.Key]*stock.Record, len(r.records))
	for k, v := range r.records {
		clone := *v
		s[k] = &clone
	}
	return s
}

// fakeTxManager 模拟事务:fn返回错误时把全部仓储恢复到事务前的快照
type fakeTxManager struct {
	requestRepo *fakeRequestRepo
	orderRepo   *fakeOrderRepo
	stockRepo   *fakeStockRepo
}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	var (
		requestSnap map[uint]*purchase.Request
		orderSnap   map[uint]*purchase.Order
		stockSnap   map[stock.Key]*stock.Record
	)
	if m.requestRepo != nil {
		requestSnap = m.requestRepo.snapshot()
	}
	if m.orderRepo != nil {
		orderSnap = m.orderRepo.snapshot()
	}
	if m.stockRepo != nil {
		stockSnap = m.stockRepo.snapshot()
	}

	if err := fn(ctx); err != nil {
		if m.requestRepo != nil {
			m.requestRepo.requests = requestSnap
		}
		if m.orderRepo != nil {
			m.orderRepo.orders = orderSnap
		}
		if m.stockRepo != nil {
			m.stockRepo.records = stockSnap
		}
		return err
	}
	return nil
}

// recordingEvaluator 记录收货后被评估的台账Key
type recordingEvaluator struct {
	keys []stock.Key
}

func (e *recordingEvaluator) Evaluate(_ context.Context, key stock.Key) {
	e.keys = append(e.keys, key)
}

// recordingPublisher 记录发布过的路由键
type recordingPublisher struct {
	routingKeys []string
}

func (p *recordingPublisher) Publish(routingKey string, _ interface{}) error {
	p.routingKeys = append(p.routingKeys, routingKey)
	return nil
}

// 测试数据构造辅助

func testWarehouse(id uint) *registry.Location {
	loc, _ := registry.NewLocation(registry.KindWarehouse, "WH-T", "测试仓库", "", "", "")
	loc.ID = id
	return loc
}

func testVendor(id uint) *registry.Vendor {
	v, _ := registry.NewVendor("VD-T", "测试供应商", "", "", "")
	v.ID = id
	return v
}

func intPtr(v int) *int { return &v }
