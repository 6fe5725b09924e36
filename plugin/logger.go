package plugin

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/neovim/go-client/nvim"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a leveled logger. When attached to neovim, it writes to
// stdpath("cache")/iltable/iltable.log once the first message arrives.
type Logger struct {
	vim          *nvim.Nvim
	level        zap.AtomicLevel
	mu           sync.Mutex
	sugar        *zap.SugaredLogger
	file         *os.File
	triedFileSet bool
}

// ParseLevel converts a level name ("debug", "info", ...) to a zap level.
// Unknown names fall back to info.
func ParseLevel(name string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func newCore(w io.Writer, level zap.AtomicLevel) zapcore.Core {
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), level)
}

func newSugar(core zapcore.Core) *zap.SugaredLogger {
	return zap.New(core,
		zap.AddStacktrace(zap.WarnLevel),
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	).Sugar()
}

// NewLogger returns a logger that logs to a file in neovim's cache directory.
func NewLogger(vim *nvim.Nvim, level zapcore.Level) *Logger {
	lvl := zap.NewAtomicLevelAt(level)
	return &Logger{
		vim:   vim,
		level: lvl,
		sugar: newSugar(newCore(os.Stderr, lvl)),
	}
}

// NewStreamLogger returns a logger writing to w.
func NewStreamLogger(w io.Writer, level zapcore.Level) *Logger {
	lvl := zap.NewAtomicLevelAt(level)
	return &Logger{
		level:        lvl,
		sugar:        newSugar(newCore(w, lvl)),
		triedFileSet: true,
	}
}

func (l *Logger) setupFile() error {
	var dir string
	err := l.vim.Call("stdpath", &dir, "cache")
	if err != nil {
		return fmt.Errorf("vim.Call: %w", err)
	}
	dir = filepath.Join(dir, "iltable")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	file, err := os.OpenFile(filepath.Join(dir, "iltable.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o666)
	if err != nil {
		return fmt.Errorf("os.OpenFile: %w", err)
	}

	l.file = file
	l.sugar = newSugar(newCore(file, l.level))
	return nil
}

func (l *Logger) logger() *zap.SugaredLogger {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil && !l.triedFileSet && l.vim != nil {
		if err := l.setupFile(); err != nil {
			l.sugar.Errorf("setting up log file: %s", err)
		}
		l.triedFileSet = true
	}

	return l.sugar
}

// SetLevel changes the level at runtime.
func (l *Logger) SetLevel(level zapcore.Level) {
	l.level.SetLevel(level)
}

// Zap exposes the underlying logger.
func (l *Logger) Zap() *zap.Logger {
	return l.logger().Desugar()
}

func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	_ = l.sugar.Sync()
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.logger().Debugf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.logger().Infof(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.logger().Errorf(format, args...)
}
