package log

import (
	"os"
	"strings"

	"assetflow/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger JSON logger：warn 以上寫 stderr，其餘寫 stdout
func NewLogger(conf *config.Configuration) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(ParseLevel(conf.Log.Level))
	return newLogger(level, zapcore.AddSync(os.Stdout), zapcore.AddSync(os.Stderr)), nil
}

func newLogger(level zap.AtomicLevel, stdout, stderr zapcore.WriteSyncer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.MessageKey = "message"
	encCfg.LevelKey = "level"
	encCfg.TimeKey = "ts"
	encCfg.CallerKey = "caller"
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encCfg)

	low := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return level.Enabled(l) && l < zapcore.WarnLevel
	})
	high := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return level.Enabled(l) && l >= zapcore.WarnLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, stdout, low),
		zapcore.NewCore(encoder, stderr, high),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}

// ParseLevel 未知字串回退為 info
func ParseLevel(raw string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(raw)))); err != nil || raw == "" {
		return zap.InfoLevel
	}
	return lvl
}
