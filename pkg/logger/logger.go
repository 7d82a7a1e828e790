package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.SugaredLogger

// Init builds the global sugared logger. LOG_LEVEL overrides the default
// info level.
func Init() {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn", "warning":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	Log = l.Sugar()
}

func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

func Debugw(msg string, kv ...interface{}) {
	if Log != nil {
		Log.Debugw(msg, kv...)
	}
}

func Infow(msg string, kv ...interface{}) {
	if Log != nil {
		Log.Infow(msg, kv...)
	}
}

func Warnw(msg string, kv ...interface{}) {
	if Log != nil {
		Log.Warnw(msg, kv...)
	}
}

func Errorw(msg string, kv ...interface{}) {
	if Log != nil {
		Log.Errorw(msg, kv...)
	}
}
