package registry

import (
	"context"

	"github.com/xiebiao/warehouse/internal/domain/registry"
)

// ----------------------------------------------------------------------------
// 内存版仓储实现
// Create模拟数据库的唯一性约束:Code在同类型未回收记录内重复
// 时返回ErrDuplicateCode,与mysql实现一致
// ----------------------------------------------------------------------------

type fakeLocationRepo struct {
	locations map[uint]*registry.Location
	nextID    uint
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: make(map[uint]*registry.Location), nextID: 1}
}

func (r *fakeLocationRepo) Create(_ context.Context, loc *registry.Location) error {
	for _, other := range r.locations {
		if !other.Trashed() && other.Kind == loc.Kind && other.Code == loc.Code {
			return registry.ErrDuplicateCode
		}
	}
	loc.ID = r.nextID
	r.nextID++
	clone := *loc
	r.locations[loc.ID] = &clone
	return nil
}

func (r *fakeLocationRepo) FindByID(_ context.Context, id uint) (*registry.Location, error) {
	loc, ok := r.locations[id]
	if !ok {
		return nil, registry.ErrLocationNotFound
	}
	clone := *loc
	return &clone, nil
}

func (r *fakeLocationRepo) Update(_ context.Context, loc *registry.Location) error {
	if _, ok := r.locations[loc.ID]; !ok {
		return registry.ErrLocationNotFound
	}
	clone := *loc
	r.locations[loc.ID] = &clone
	return nil
}

func (r *fakeLocationRepo) List(_ context.Context, kind registry.LocationKind, filter registry.ListFilter) ([]*registry.Location, error) {
	var out []*registry.Location
	for _, loc := range r.locations {
		if kind != "" && loc.Kind != kind {
			continue
		}
		switch filter {
		case registry.FilterTrashed:
			if !loc.Trashed() {
				continue
			}
		case registry.FilterAll:
		default:
			if loc.Trashed() {
				continue
			}
		}
		clone := *loc
		out = append(out, &clone)
	}
	return out, nil
}

type fakeVendorRepo struct {
	vendors map[uint]*registry.Vendor
	nextID  uint
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{vendors: make(map[uint]*registry.Vendor), nextID: 1}
}

func (r *fakeVendorRepo) Create(_ context.Context, v *registry.Vendor) error {
	for _, other := range r.vendors {
		if !other.Trashed() && other.Code == v.Code {
			return registry.ErrDuplicateCode
		}
	}
	v.ID = r.nextID
	r.nextID++
	clone := *v
	r.vendors[v.ID] = &clone
	return nil
}

func (r *fakeVendorRepo) FindByID(_ context.Context, id uint) (*registry.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, registry.ErrVendorNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *fakeVendorRepo) Update(_ context.Context, v *registry.Vendor) error {
	if _, ok := r.vendors[v.ID]; !ok {
		return registry.ErrVendorNotFound
	}
	clone := *v
	r.vendors[v.ID] = &clone
	return nil
}

func (r *fakeVendorRepo) List(_ context.Context, filter registry.ListFilter) ([]*registry.Vendor, error) {
	var out []*registry.Vendor
	for _, v := range r.vendors {
		switch filter {
		case registry.FilterTrashed:
			if !v.Trashed() {
				continue
			}
		case registry.FilterAll:
		default:
			if v.Trashed() {
				continue
			}
		}
		clone := *v
		out = append(out, &clone)
	}
	return out, nil
}

func strPtr(s string) *string { return &s }
