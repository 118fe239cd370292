package main

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ANSI color constants for log lines
const (
	grey          = "\033[38;5;240m"
	boldLightGrey = "\033[1;38;5;240m"
	red           = "\033[38;5;9m"
	yellow        = "\033[38;5;11m"
	reset         = "\033[0m"
)

// fullLineColorLevelEncoder colors the entire output line based on log level
func fullLineColorLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var color string
	switch l {
	case zapcore.DebugLevel:
		color = grey
	case zapcore.InfoLevel:
		color = boldLightGrey
	case zapcore.WarnLevel:
		color = yellow
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		color = red
	default:
		color = reset
	}
	enc.AppendString(color + l.CapitalString())
}

// NewLogger creates a new zap SugaredLogger writing to stderr. Warn level by
// default, info with verbose, debug with debug.
func NewLogger(stderr io.Writer, verbose, debug bool) (*zap.SugaredLogger, error) {
	if stderr == nil {
		stderr = os.Stderr
	}

	loggerCfg := zap.NewProductionConfig()
	loggerCfg.Encoding = "console"
	loggerCfg.EncoderConfig.TimeKey = ""
	loggerCfg.EncoderConfig.LevelKey = "L"
	loggerCfg.EncoderConfig.NameKey = "N"
	loggerCfg.EncoderConfig.FunctionKey = ""
	loggerCfg.EncoderConfig.MessageKey = "M"
	loggerCfg.EncoderConfig.StacktraceKey = "S"
	loggerCfg.EncoderConfig.LineEnding = reset + zapcore.DefaultLineEnding
	loggerCfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	loggerCfg.EncoderConfig.ConsoleSeparator = " "
	loggerCfg.EncoderConfig.EncodeLevel = fullLineColorLevelEncoder

	loggerCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		loggerCfg.Level.SetLevel(zapcore.InfoLevel)
	}
	if debug {
		loggerCfg.Level.SetLevel(zapcore.DebugLevel)
		loggerCfg.DisableStacktrace = false
		loggerCfg.EncoderConfig.CallerKey = "C"
	}

	stderrSyncer := zapcore.AddSync(stderr)
	encoder := zapcore.NewConsoleEncoder(loggerCfg.EncoderConfig)
	core := zapcore.NewCore(encoder, stderrSyncer, loggerCfg.Level)

	loggerOpts := []zap.Option{}
	if debug {
		loggerOpts = append(loggerOpts, zap.AddCaller(), zap.AddCallerSkip(1))
	}

	logger := zap.New(core, loggerOpts...)
	return logger.Sugar(), nil
}
