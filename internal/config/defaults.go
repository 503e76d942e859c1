package config

import (
	"os"
	"path/filepath"

	"github.com/dendrascience/dendra-file-organizer/index"
	"github.com/dendrascience/dendra-file-organizer/tree"
)

const (
	defaultLogLevel   = "info"
	defaultLogFormat  = "console"
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 28
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Tree: Tree{RootName: tree.DefaultRootName},
		Index: Index{
			InitialCapacity: index.DefaultInitialCapacity,
			GrowthFactor:    index.DefaultGrowthFactor,
			LoadFactor:      index.DefaultLoadFactor,
			Probing:         index.Linear.String(),
		},
		Logging: Logging{
			Level:      defaultLogLevel,
			Format:     defaultLogFormat,
			MaxSizeMB:  defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
			MaxAgeDays: defaultMaxAgeDays,
		},
		Mount: Mount{
			LockFile: filepath.Join(os.TempDir(), "organizer-mount.lock"),
		},
	}
}
