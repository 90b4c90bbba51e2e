package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	once   sync.Once
	logger *zap.SugaredLogger
)

// Options controls how the process logger is built. Empty values fall back
// to the LOG_LEVEL and JSON_LOG environment variables.
type Options struct {
	Level string
	JSON  bool
}

// Init builds the process logger from opts. Only the first call to Init or Get
// has an effect, later calls return the logger that was already built.
func Init(opts Options) *zap.SugaredLogger {
	once.Do(func() {
		logger = build(opts)
	})

	return logger
}

// Get returns the process logger, building it from the environment if Init
// was never called.
func Get() *zap.SugaredLogger {
	return Init(Options{})
}

func build(opts Options) *zap.SugaredLogger {
	stdout := zapcore.AddSync(os.Stdout)

	levelName := opts.Level
	if levelName == "" {
		levelName = os.Getenv("LOG_LEVEL")
	}

	level := zap.InfoLevel
	if levelName != "" {
		parsed, err := zapcore.ParseLevel(levelName)
		if err != nil {
			log.Println(fmt.Errorf("invalid level, defaulting to INFO: %w", err))
		} else {
			level = parsed
		}
	}

	productionCfg := zap.NewProductionEncoderConfig()
	productionCfg.TimeKey = "timestamp"
	productionCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	developmentCfg := zap.NewDevelopmentEncoderConfig()
	developmentCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	encoder := zapcore.NewConsoleEncoder(developmentCfg)
	if opts.JSON || os.Getenv("JSON_LOG") != "" {
		encoder = zapcore.NewJSONEncoder(productionCfg)
	}

	core := zapcore.NewCore(encoder, stdout, zap.NewAtomicLevelAt(level))

	fields := []zapcore.Field{zap.String("service", "marquee")}
	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		fields = append(fields, zap.String("go_version", buildInfo.GoVersion))
		for _, v := range buildInfo.Settings {
			if v.Key == "vcs.revision" && len(v.Value) >= 7 {
				fields = append(fields, zap.String("git_revision", v.Value[:7]))
				break
			}
		}
	}

	return zap.New(core.With(fields)).Sugar()
}

// FromCtx returns the Logger associated with the ctx, falling back to the
// process logger. Any key/value pairs in with are added to the returned logger.
func FromCtx(ctx context.Context, with ...any) *zap.SugaredLogger {
	l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger)
	if !ok {
		l = Get()
	}

	if len(with) == 0 {
		return l
	}

	return l.With(with...)
}

// WithCtx returns a copy of ctx with the Logger attached.
func WithCtx(ctx context.Context, l *zap.SugaredLogger) context.Context {
	if lp, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok && lp == l {
		return ctx
	}

	return context.WithValue(ctx, ctxKey{}, l)
}
