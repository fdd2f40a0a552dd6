package catalog

import (
	"LeafDB/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndReload(t *testing.T) {
	dir := t.TempDir()
	schema, err := types.ParseSchema("id:int,name:string")
	require.NoError(t, err)

	cm, err := NewCatalogManager(dir)
	require.NoError(t, err)
	assert.False(t, cm.TableExists("users"))
	require.NoError(t, cm.RegisterTable("users", schema))

	fresh, err := NewCatalogManager(dir)
	require.NoError(t, err)
	got, err := fresh.GetTableSchema("users")
	require.NoError(t, err)
	assert.Equal(t, schema, got)

	require.NoError(t, fresh.RegisterTable("users", schema))
}

func TestRegisterRejectsDifferentSchema(t *testing.T) {
	cm, err := NewCatalogManager(t.TempDir())
	require.NoError(t, err)

	first, _ := types.ParseSchema("id:int,name:string")
	second, _ := types.ParseSchema("id:int,age:int")
	require.NoError(t, cm.RegisterTable("users", first))

	err = cm.RegisterTable("users", second)
	assert.True(t, errors.Is(err, ErrSchemaMismatch))
}

func TestRegisterKeepsCorruptSchemaFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users_schema.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	cm, err := NewCatalogManager(dir)
	require.NoError(t, err)

	schema, err := types.ParseSchema("a:string")
	require.NoError(t, err)
	assert.Error(t, cm.RegisterTable("users", schema))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}
