package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/warehouse/internal/domain/registry"
)

// locationFixture 组装地点相关的全部用例
type locationFixture struct {
	repo    *fakeLocationRepo
	create  *CreateLocationUseCase
	update  *UpdateLocationUseCase
	trash   *TrashLocationUseCase
	restore *RestoreLocationUseCase
	list    *ListLocationsUseCase
	get     *GetLocationUseCase
}

func newLocationFixture() *locationFixture {
	repo := newFakeLocationRepo()
	return &locationFixture{
		repo:    repo,
		create:  NewCreateLocationUseCase(repo),
		update:  NewUpdateLocationUseCase(repo),
		trash:   NewTrashLocationUseCase(repo),
		restore: NewRestoreLocationUseCase(repo),
		list:    NewListLocationsUseCase(repo),
		get:     NewGetLocationUseCase(repo),
	}
}

func (fx *locationFixture) mustCreate(t *testing.T, kind registry.LocationKind, code string) *LocationDTO {
	t.Helper()
	dto, err := fx.create.Execute(context.Background(), CreateLocationRequest{
		Kind: kind,
		Code: code,
		Name: "测试地点-" + code,
	})
	require.NoError(t, err)
	return dto
}

// TestCreateLocation 测试地点创建与Code唯一性
func TestCreateLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("正常创建", func(t *testing.T) {
		fx := newLocationFixture()
		dto := fx.mustCreate(t, registry.KindWarehouse, "WH-001")
		assert.Equal(t, "WAREHOUSE", dto.Kind)
		assert.True(t, dto.Active)
		assert.False(t, dto.Trashed)
	})

	t.Run("同类型Code重复被拒", func(t *testing.T) {
		fx := newLocationFixture()
		fx.mustCreate(t, registry.KindWarehouse, "WH-001")
		_, err := fx.create.Execute(ctx, CreateLocationRequest{
			Kind: registry.KindWarehouse, Code: "WH-001", Name: "另一个仓库",
		})
		assert.ErrorIs(t, err, registry.ErrDuplicateCode)
	})

	t.Run("不同类型可以同Code", func(t *testing.T) {
		fx := newLocationFixture()
		fx.mustCreate(t, registry.KindWarehouse, "A-001")
		dto, err := fx.create.Execute(ctx, CreateLocationRequest{
			Kind: registry.KindStore, Code: "A-001", Name: "同编码门店",
		})
		require.NoError(t, err)
		assert.Equal(t, "STORE", dto.Kind)
	})

	t.Run("与回收站记录同Code可以创建", func(t *testing.T) {
		fx := newLocationFixture()
		old := fx.mustCreate(t, registry.KindStore, "ST-001")
		_, err := fx.trash.Execute(ctx, old.ID)
		require.NoError(t, err)

		_, err = fx.create.Execute(ctx, CreateLocationRequest{
			Kind: registry.KindStore, Code: "ST-001", Name: "接替门店",
		})
		assert.NoError(t, err, "唯一性只约束未回收记录")
	})

	t.Run("类型非法", func(t *testing.T) {
		fx := newLocationFixture()
		_, err := fx.create.Execute(ctx, CreateLocationRequest{
			Kind: "BRANCH", Code: "B-001", Name: "x",
		})
		assert.ErrorIs(t, err, registry.ErrInvalidKind)
	})

	t.Run("必填字段缺失", func(t *testing.T) {
		fx := newLocationFixture()
		_, err := fx.create.Execute(ctx, CreateLocationRequest{
			Kind: registry.KindWarehouse, Code: "", Name: "无编码",
		})
		assert.ErrorIs(t, err, registry.ErrInvalidRegistryParams)
	})
}

// TestTrashRestoreLocation 测试回收站往返
func TestTrashRestoreLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("回收后从正常列表消失但仍可寻址", func(t *testing.T) {
		fx := newLocationFixture()
		dto := fx.mustCreate(t, registry.KindWarehouse, "WH-001")

		trashed, err := fx.trash.Execute(ctx, dto.ID)
		require.NoError(t, err)
		assert.True(t, trashed.Trashed)

		active, err := fx.list.Execute(ctx, ListLocationsRequest{Kind: registry.KindWarehouse})
		require.NoError(t, err)
		assert.Equal(t, 0, active.Total, "缺省过滤只看正常记录")

		inTrash, err := fx.list.Execute(ctx, ListLocationsRequest{Filter: registry.FilterTrashed})
		require.NoError(t, err)
		assert.Equal(t, 1, inTrash.Total)

		got, err := fx.get.Execute(ctx, dto.ID)
		require.NoError(t, err)
		assert.True(t, got.Trashed, "回收站记录仍可按ID查询")
	})

	t.Run("重复回收被拒", func(t *testing.T) {
		fx := newLocationFixture()
		dto := fx.mustCreate(t, registry.KindWarehouse, "WH-001")
		_, err := fx.trash.Execute(ctx, dto.ID)
		require.NoError(t, err)
		_, err = fx.trash.Execute(ctx, dto.ID)
		assert.ErrorIs(t, err, registry.ErrAlreadyTrashed)
	})

	t.Run("正常往返恢复", func(t *testing.T) {
		fx := newLocationFixture()
		dto := fx.mustCreate(t, registry.KindWarehouse, "WH-001")
		_, err := fx.trash.Execute(ctx, dto.ID)
		require.NoError(t, err)

		restored, err := fx.restore.Execute(ctx, dto.ID)
		require.NoError(t, err)
		assert.False(t, restored.Trashed)
	})

	t.Run("未回收的记录不能恢复", func(t *testing.T) {
		fx := newLocationFixture()
		dto := fx.mustCreate(t, registry.KindWarehouse, "WH-001")
		_, err := fx.restore.Execute(ctx, dto.ID)
		assert.ErrorIs(t, err, registry.ErrNotTrashed)
	})

	t.Run("恢复撞上同Code新记录被拒", func(t *testing.T) {
		fx := newLocationFixture()
		old := fx.mustCreate(t, registry.KindStore, "ST-001")
		_, err := fx.trash.Execute(ctx, old.ID)
		require.NoError(t, err)

		// 回收期间有人用同一Code建了新门店
		fx.mustCreate(t, registry.KindStore, "ST-001")

		_, err = fx.restore.Execute(ctx, old.ID)
		assert.ErrorIs(t, err, registry.ErrDuplicateCode, "恢复后唯一性约束仍要成立")
	})
}

// TestUpdateLocation 测试地点更新
func TestUpdateLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("指针字段传了才改", func(t *testing.T) {
		fx := newLocationFixture()
		dto := fx.mustCreate(t, registry.KindWarehouse, "WH-001")

		updated, err := fx.update.Execute(ctx, UpdateLocationRequest{
			ID:   dto.ID,
			City: strPtr("上海"),
		})
		require.NoError(t, err)
		assert.Equal(t, "上海", updated.City)
		assert.Equal(t, dto.Name, updated.Name, "未传字段保持原值")
	})

	t.Run("名称不能改为空", func(t *testing.T) {
		fx := newLocationFixture()
		dto := fx.mustCreate(t, registry.KindWarehouse, "WH-001")
		_, err := fx.update.Execute(ctx, UpdateLocationRequest{
			ID:   dto.ID,
			Name: strPtr(""),
		})
		assert.ErrorIs(t, err, registry.ErrInvalidRegistryParams)
	})

	t.Run("回收站记录不能编辑", func(t *testing.T) {
		fx := newLocationFixture()
		dto := fx.mustCreate(t, registry.KindWarehouse, "WH-001")
		_, err := fx.trash.Execute(ctx, dto.ID)
		require.NoError(t, err)

		_, err = fx.update.Execute(ctx, UpdateLocationRequest{
			ID:   dto.ID,
			Name: strPtr("改名"),
		})
		assert.ErrorIs(t, err, registry.ErrAlreadyTrashed)
	})
}

// TestListLocations 测试列表过滤
func TestListLocations(t *testing.T) {
	ctx := context.Background()
	fx := newLocationFixture()

	wh := fx.mustCreate(t, registry.KindWarehouse, "WH-001")
	fx.mustCreate(t, registry.KindStore, "ST-001")
	_, err := fx.trash.Execute(ctx, wh.ID)
	require.NoError(t, err)

	t.Run("按类型过滤", func(t *testing.T) {
		resp, err := fx.list.Execute(ctx, ListLocationsRequest{Kind: registry.KindStore})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
	})

	t.Run("all看到全部", func(t *testing.T) {
		resp, err := fx.list.Execute(ctx, ListLocationsRequest{Filter: registry.FilterAll})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
	})

	t.Run("过滤参数非法", func(t *testing.T) {
		_, err := fx.list.Execute(ctx, ListLocationsRequest{Filter: "deleted"})
		assert.ErrorIs(t, err, registry.ErrInvalidRegistryParams)
	})
}
