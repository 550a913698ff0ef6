package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log *zap.SugaredLogger

// Init configures the process logger. Development gets a colored console
// logger at debug level; production writes JSON to a rotated file and
// stdout at info level.
func Init(environment string) {
	if environment == "production" {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   "logs/app.log",
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})

		core := zapcore.NewTee(
			zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), fileWriter, zapcore.InfoLevel),
			zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(os.Stdout), zapcore.InfoLevel),
		)
		log = zap.New(core).Sugar()
		return
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	log = l.Sugar()
}

// ensure logs never panic before Init (tests, tooling)
func logger() *zap.SugaredLogger {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return log
}

// pairs tolerates a bare error (or any odd trailing value) instead of
// strict key/value pairs, which the call sites use for brevity.
func pairs(keysAndValues []any) []any {
	if len(keysAndValues)%2 == 1 {
		return append([]any{"error"}, keysAndValues...)
	}
	return keysAndValues
}

func Debug(msg string, keysAndValues ...any) {
	logger().Debugw(msg, pairs(keysAndValues)...)
}

func Info(msg string, keysAndValues ...any) {
	logger().Infow(msg, pairs(keysAndValues)...)
}

func Warn(msg string, keysAndValues ...any) {
	logger().Warnw(msg, pairs(keysAndValues)...)
}

func Error(msg string, keysAndValues ...any) {
	logger().Errorw(msg, pairs(keysAndValues)...)
}

func Fatal(msg string, keysAndValues ...any) {
	logger().Fatalw(msg, pairs(keysAndValues)...)
}
