package constants

import (
	"os"
	"time"
)

const (
	DefaultAddr          = ":8080"
	DefaultJobs          = 4
	DefaultWatchInterval = 500 * time.Millisecond
	DefaultDebounce      = 250 * time.Millisecond
	ChartExt             = ".aff"

	// MaxUploadSize caps request bodies accepted by the server.
	MaxUploadSize = 8 * 1024 * 1024
)

const (
	EnvAddr   = "ARCKIT_ADDR"
	EnvJobs   = "ARCKIT_JOBS"
	EnvConfig = "ARCKIT_CONFIG"
)

func GetConfigPath() string {
	return os.Getenv(EnvConfig)
}
