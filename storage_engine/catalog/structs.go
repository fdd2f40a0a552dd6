package catalog

import "LeafDB/types"

type CatalogManager struct {
	tablesDir    string                  // <data_dir>/tables, next to the heap files
	tableSchemas map[string]types.Schema // tableName -> schema, loaded lazily
}
