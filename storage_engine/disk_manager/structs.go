package diskmanager

import (
	"os"

	"go.uber.org/zap"
)

// ############################################# DISK MANAGER #############################################

// DiskManager maps page ids onto one backing file of fixed-size pages.
// Page i occupies bytes [i*PageSize, (i+1)*PageSize).
type DiskManager struct {
	filePath string
	file     *os.File
	logger   *zap.Logger
}
