package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type Config struct {
	Storage Storage `mapstructure:"storage"`
	Logger  Logger  `mapstructure:"logger"`
}

// Storage is the configuration of the heap and index files
type Storage struct {
	DataDir          string `mapstructure:"data_dir" validate:"required"`
	Table            string `mapstructure:"table" validate:"required"`
	Schema           string `mapstructure:"schema" validate:"required"`
	BufferPoolSize   int    `mapstructure:"buffer_pool_size" validate:"min=2"`
	IndexRootPageID  int32  `mapstructure:"index_root_page_id" validate:"min=0"`
	RecordCacheSize  int64  `mapstructure:"record_cache_size" validate:"min=0"`
	RecordCacheCount int64  `mapstructure:"record_cache_counters" validate:"min=0"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAge      int    `mapstructure:"max_age" validate:"min=0"`
	MaxSize     int    `mapstructure:"max_size" validate:"min=0"`
	Compress    bool   `mapstructure:"compress"`
}

func Default() Config {
	return Config{
		Storage: Storage{
			DataDir:         "data",
			Table:           "users",
			Schema:          "id:int,name:string,age:int",
			BufferPoolSize:  16,
			IndexRootPageID: 0,
			RecordCacheSize: 1024,
		},
		Logger: Logger{
			LogLevel:   "info",
			MaxBackups: 3,
			MaxAge:     28,
			MaxSize:    100,
		},
	}
}

var validate = validator.New()

// Validate checks every field constraint and reports the first violations.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}
