package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLocation 测试地点工厂方法
func TestNewLocation(t *testing.T) {
	t.Run("正常创建", func(t *testing.T) {
		loc, err := NewLocation(KindWarehouse, "WH-001", "华东仓", "张江路1号", "上海", "")
		require.NoError(t, err)
		assert.True(t, loc.Active)
		assert.False(t, loc.Trashed())
	})

	t.Run("类型非法", func(t *testing.T) {
		_, err := NewLocation("BRANCH", "B-001", "x", "", "", "")
		assert.ErrorIs(t, err, ErrInvalidKind)
	})

	t.Run("编码名称必填", func(t *testing.T) {
		_, err := NewLocation(KindStore, "", "门店", "", "", "")
		assert.ErrorIs(t, err, ErrInvalidRegistryParams)
		_, err = NewLocation(KindStore, "ST-001", "", "", "", "")
		assert.ErrorIs(t, err, ErrInvalidRegistryParams)
	})
}

// TestLocation_TrashRestore 测试回收站状态机
func TestLocation_TrashRestore(t *testing.T) {
	loc, err := NewLocation(KindStore, "ST-001", "南京路店", "", "上海", "")
	require.NoError(t, err)

	require.NoError(t, loc.Trash())
	assert.True(t, loc.Trashed())
	assert.NotNil(t, loc.TrashedAt)

	assert.ErrorIs(t, loc.Trash(), ErrAlreadyTrashed)

	require.NoError(t, loc.Restore())
	assert.False(t, loc.Trashed())
	assert.Nil(t, loc.TrashedAt)

	assert.ErrorIs(t, loc.Restore(), ErrNotTrashed)
}

// TestListFilter_Valid 测试列表过滤参数
func TestListFilter_Valid(t *testing.T) {
	assert.True(t, FilterActive.Valid())
	assert.True(t, FilterTrashed.Valid())
	assert.True(t, FilterAll.Valid())
	assert.False(t, ListFilter("deleted").Valid())
}
