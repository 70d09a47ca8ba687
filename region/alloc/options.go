package alloc

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joshuapare/segalloc/internal/format"
)

// Runtime debug flag for allocation logging - controlled by SEGALLOC_LOG_ALLOC env var.
var logAlloc = os.Getenv("SEGALLOC_LOG_ALLOC") != ""

// Options configures an allocator. The zero value selects the defaults.
type Options struct {
	// SizeClasses selects the class table (SegAllocator only). Nil means DefaultConfig.
	SizeClasses *SizeClassConfig

	// ChunkSize is the minimum heap extension in bytes. Zero means 4096.
	ChunkSize int

	// Logger receives growth and failure events. Nil discards them unless
	// SEGALLOC_LOG_ALLOC is set, in which case debug output goes to stderr.
	Logger *slog.Logger
}

func (o *Options) sizeClasses() SizeClassConfig {
	if o == nil || o.SizeClasses == nil {
		return DefaultConfig
	}
	return *o.SizeClasses
}

func (o *Options) chunkSize() (int, error) {
	if o == nil || o.ChunkSize == 0 {
		return format.ChunkSize, nil
	}
	if o.ChunkSize < format.MinBlockSize || !format.IsAligned(o.ChunkSize) {
		return 0, fmt.Errorf("%w: ChunkSize %d must be a multiple of %d and at least %d",
			ErrBadConfig, o.ChunkSize, format.Alignment, format.MinBlockSize)
	}
	return o.ChunkSize, nil
}

func (o *Options) logger() *slog.Logger {
	if o != nil && o.Logger != nil {
		return o.Logger
	}
	if logAlloc {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
