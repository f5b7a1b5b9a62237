package logger

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/xerrors"
)

// Log is the default logger.
// It is replaced by the CLI once the log flags are known.
var Log *zap.Logger

// DefaultLoggerConfig returns a console config writing to stderr.
// Levels are colored only if both stdout and stderr are terminals.
func DefaultLoggerConfig(level zapcore.Level) zap.Config {
	encoder := zapcore.CapitalColorLevelEncoder
	if !isatty.IsTerminal(os.Stdout.Fd()) || !isatty.IsTerminal(os.Stderr.Fd()) {
		encoder = zapcore.CapitalLevelEncoder
	}

	return zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     "msg",
			LevelKey:       "level",
			TimeKey:        "ts",
			CallerKey:      "caller",
			EncodeLevel:    encoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   AdditionalComponentCallerEncoder,
		},
	}
}

// ApplyLogConfig switches the encoding of the config.
// Valid names are "console", "json" and "minimal".
func ApplyLogConfig(cfg *zap.Config, name string) error {
	switch name {
	case "console":
	case "json":
		level := cfg.Level
		*cfg = zap.NewProductionConfig()
		cfg.Level = level
		cfg.OutputPaths = []string{"stderr"}
	case "minimal":
		cfg.EncoderConfig = zapcore.EncoderConfig{
			MessageKey: "message",
			LevelKey:   "level",
			// Disable the rest of the fields
			TimeKey:       "",
			NameKey:       "",
			CallerKey:     "",
			FunctionKey:   "",
			StacktraceKey: "",
			LineEnding:    zapcore.DefaultLineEnding,
			EncodeLevel:   cfg.EncoderConfig.EncodeLevel,
		}
	default:
		return xerrors.Errorf("unsupported value \"%s\" for log config", name)
	}

	return nil
}

// ParseLevel converts the level names of the CLI into a zap level.
// "warning" is accepted as alias of "warn".
func ParseLevel(name string) (zapcore.Level, error) {
	if strings.EqualFold(name, "warning") {
		return zapcore.WarnLevel, nil
	}

	var l zapcore.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return l, xerrors.Errorf("unsupported value \"%s\" for log level: %w", name, err)
	}

	return l, nil
}

// AdditionalComponentCallerEncoder shortens the caller to the last three path components.
func AdditionalComponentCallerEncoder(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
	path := caller.String()
	lastIndex := len(path) - 1
	for i := 0; i < 3; i++ {
		lastIndex = strings.LastIndex(path[0:lastIndex], "/")
		if lastIndex == -1 {
			break
		}
	}
	if lastIndex > 0 {
		path = path[lastIndex+1:]
	}
	enc.AppendString(path)
}

func init() {
	level := zapcore.WarnLevel
	if env, ok := os.LookupEnv("LOG_LEVEL"); ok {
		if l, err := ParseLevel(env); err == nil {
			level = l
		}
	}

	Log = zap.Must(DefaultLoggerConfig(level).Build())
}
