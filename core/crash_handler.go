package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
)

// Finisher restores the terminal, satisfied by tcell.Screen
type Finisher interface {
	Fini()
}

var (
	crashMu       sync.Mutex
	crashTerminal Finisher
)

// Process hooks, swapped in tests
var (
	crashLogger = zap.NewNop()
	crashOut    = io.Writer(os.Stderr)
	crashExit   = os.Exit
)

// RegisterCrashTerminal sets the terminal restored before a crash report
func RegisterCrashTerminal(t Finisher) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashTerminal = t
}

// RegisterCrashLogger sets the logger that records crashes
func RegisterCrashLogger(l *zap.Logger) {
	crashMu.Lock()
	defer crashMu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	crashLogger = l
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	term, logger, out, exit := crashTerminal, crashLogger, crashOut, crashExit
	crashTerminal = nil
	crashMu.Unlock()

	stack := debug.Stack()

	// Restore terminal to sane state immediately
	if term != nil {
		term.Fini()
	}

	logger.Error("Crash", zap.Any("panic", r), zap.ByteString("stack", stack))
	_ = logger.Sync()

	fmt.Fprintf(out, "\r\n\x1b[31mSPRITZ CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(out, "Stack Trace:\r\n%s\r\n", stack)

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
