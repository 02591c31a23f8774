// Package logging is the engine's log facility: zap-backed console and file
// output plus synchronous fanout to registered listener channels, so editor
// panels can mirror the log without scraping stdout.
package logging

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MessageKind is the severity of a log message.
type MessageKind int

const (
	KindInfo MessageKind = iota
	KindWarning
	KindError
)

func (k MessageKind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

func (k MessageKind) zapLevel() zapcore.Level {
	switch k {
	case KindWarning:
		return zapcore.WarnLevel
	case KindError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Message is a copy of one accepted log message, delivered to listeners.
// Time is relative to the moment the Log was constructed.
type Message struct {
	Kind    MessageKind
	Content string
	Time    time.Duration
}

// Options configures a Log.
type Options struct {
	// FilePath appends every accepted message to a log file when non-empty.
	FilePath string
	// Format selects the console encoder: "console" (default) or "json".
	Format string
	// Verbosity is the minimum kind that gets through.
	Verbosity MessageKind
}

// Log is the engine log. It is explicitly constructed and injected; there is
// no package-level singleton. Writes from any goroutine serialize on an
// internal mutex and fan out to listeners before returning.
type Log struct {
	mu        sync.Mutex
	zl        *zap.Logger
	level     zap.AtomicLevel
	file      *os.File
	listeners []chan<- Message
	verbosity MessageKind
	origin    time.Time
}

// New builds a Log writing to stderr and, optionally, a file.
func New(opts Options) (*Log, error) {
	level := zap.NewAtomicLevelAt(opts.Verbosity.zapLevel())

	var encoder zapcore.Encoder
	if opts.Format == "json" {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cfg.ConsoleSeparator = "  "
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level),
	}

	var file *os.File
	if opts.FilePath != "" {
		f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logging: open %s: %w", opts.FilePath, err)
		}
		file = f
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(fileCfg), zapcore.Lock(f), level))
	}

	return &Log{
		zl:        zap.New(zapcore.NewTee(cores...)),
		level:     level,
		file:      file,
		verbosity: opts.Verbosity,
		origin:    time.Now(),
	}, nil
}

// NewNop returns a Log that accepts everything and writes nowhere, for tests.
func NewNop() *Log {
	return &Log{
		zl:     zap.NewNop(),
		level:  zap.NewAtomicLevelAt(zapcore.InfoLevel),
		origin: time.Now(),
	}
}

// Zap exposes the underlying zap logger for packages that log structured
// fields directly.
func (l *Log) Zap() *zap.Logger { return l.zl }

// Info writes an informational message.
func (l *Log) Info(msg string) { l.write(KindInfo, msg) }

// Warn writes a warning.
func (l *Log) Warn(msg string) { l.write(KindWarning, msg) }

// Err writes an error message.
func (l *Log) Err(msg string) { l.write(KindError, msg) }

func (l *Log) write(kind MessageKind, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if kind < l.verbosity {
		return
	}
	m := Message{Kind: kind, Content: msg, Time: time.Since(l.origin)}
	for _, ch := range l.listeners {
		// Listeners must be buffered; a full listener drops the copy rather
		// than stalling the scene thread.
		select {
		case ch <- m:
		default:
		}
	}
	switch kind {
	case KindWarning:
		l.zl.Warn(msg)
	case KindError:
		l.zl.Error(msg)
	default:
		l.zl.Info(msg)
	}
}

// SetVerbosity raises or lowers the minimum accepted kind.
func (l *Log) SetVerbosity(kind MessageKind) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbosity = kind
	l.level.SetLevel(kind.zapLevel())
}

// AddListener registers a channel that receives a copy of every accepted
// message. The channel should be buffered.
func (l *Log) AddListener(ch chan<- Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, ch)
}

// Verify logs err and moves on. For operations whose failure the caller can
// ignore but wants on record.
func (l *Log) Verify(err error) {
	if err != nil {
		l.Err(fmt.Sprintf("operation failed: %v", err))
	}
}

// Close flushes and releases the file sink.
func (l *Log) Close() error {
	_ = l.zl.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
