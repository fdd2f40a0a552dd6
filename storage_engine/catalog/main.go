package catalog

import (
	"LeafDB/types"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

/*
This file is the main access of Catalog Manager.
It persists the schema of each table as <table>_schema.json so a heap file is
never decoded under a different field layout than it was written with.
Only schemas live here; the index root page id is not recorded.
*/

var ErrSchemaMismatch = errors.New("schema does not match the stored table schema")

func NewCatalogManager(tablesDir string) (*CatalogManager, error) {
	if err := os.MkdirAll(tablesDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create tables directory")
	}
	return &CatalogManager{
		tablesDir:    tablesDir,
		tableSchemas: make(map[string]types.Schema),
	}, nil
}

func (cm *CatalogManager) TableExists(tableName string) bool {
	_, err := cm.GetTableSchema(tableName)
	return err == nil
}

// GetTableSchema returns the stored schema, loading it from disk on first use.
func (cm *CatalogManager) GetTableSchema(tableName string) (types.Schema, error) {
	// Fast path: return from memory
	if schema, ok := cm.tableSchemas[tableName]; ok {
		return schema, nil
	}

	data, err := os.ReadFile(cm.schemaPath(tableName))
	if err != nil {
		return types.Schema{}, errors.Wrapf(err, "table '%s' does not exist", tableName)
	}

	var schema types.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return types.Schema{}, errors.Wrapf(err, "failed to parse schema for table '%s'", tableName)
	}

	cm.tableSchemas[tableName] = schema
	return schema, nil
}

// RegisterTable records schema for a new table. For an existing table the
// schema must be identical to the stored one.
func (cm *CatalogManager) RegisterTable(tableName string, schema types.Schema) error {
	stored, err := cm.GetTableSchema(tableName)
	switch {
	case err == nil:
		if stored.String() != schema.String() {
			return errors.Wrapf(ErrSchemaMismatch, "table '%s' is %s, got %s", tableName, stored, schema)
		}
		return nil
	case !errors.Is(err, os.ErrNotExist):
		// Unreadable or corrupt: never overwrite what is there.
		return err
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode schema")
	}
	if err := os.WriteFile(cm.schemaPath(tableName), data, 0644); err != nil {
		return errors.Wrapf(err, "failed to persist schema for table '%s'", tableName)
	}

	cm.tableSchemas[tableName] = schema
	return nil
}

func (cm *CatalogManager) schemaPath(tableName string) string {
	return filepath.Join(cm.tablesDir, tableName+"_schema.json")
}
