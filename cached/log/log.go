package log

import (
	"os"

	"github.com/on-the-ground/cached_method/cached"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	msgAttach  = "instance cache attached"
	msgHit     = "cache hit"
	msgMiss    = "cache miss"
	msgEvict   = "cache entry evicted"
	msgFailure = "cached method failed"
)

// Observer returns a cached.Observer that writes cache events to logger.
//
// Attach, hit and miss are logged at debug level, evictions at info and
// failures at warn. Argument values are never logged, only the key
// fingerprint.
func Observer(logger *zap.Logger) cached.Observer {
	return func(ev cached.Event) {
		level, msg := levelOf(ev.Kind)
		ce := logger.Check(level, msg)
		if ce == nil {
			return
		}

		fields := []zap.Field{
			zap.String("method", ev.Method),
			zap.Stringer("method_id", ev.MethodID),
			zap.Stringer("cache_id", ev.CacheID),
		}
		if ev.Kind != cached.EventAttach {
			fields = append(fields, zap.Uint64("key_fingerprint", ev.Key.Fingerprint()))
		}
		if ev.Kind == cached.EventFailure {
			if ev.Err != nil {
				fields = append(fields, zap.Error(ev.Err))
			} else {
				fields = append(fields, zap.Bool("panicked", true))
			}
		}
		ce.Write(fields...)
	}
}

func levelOf(kind cached.EventKind) (zapcore.Level, string) {
	switch kind {
	case cached.EventAttach:
		return zapcore.DebugLevel, msgAttach
	case cached.EventHit:
		return zapcore.DebugLevel, msgHit
	case cached.EventMiss:
		return zapcore.DebugLevel, msgMiss
	case cached.EventEvict:
		return zapcore.InfoLevel, msgEvict
	case cached.EventFailure:
		return zapcore.WarnLevel, msgFailure
	default:
		return zapcore.InfoLevel, "cache event " + kind.String()
	}
}

// NewConsoleLogger builds a development console logger writing to stdout at
// the given level.
func NewConsoleLogger(level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		level,
	)
	return zap.New(core)
}
