package core

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeTerminal struct{ finis int }

func (f *fakeTerminal) Fini() { f.finis++ }

// captureCrash swaps process hooks for the duration of a test
func captureCrash(t *testing.T) (*bytes.Buffer, chan int) {
	t.Helper()
	var out bytes.Buffer
	codes := make(chan int, 1)

	crashMu.Lock()
	prevOut, prevExit := crashOut, crashExit
	crashOut = &out
	crashExit = func(code int) { codes <- code }
	crashMu.Unlock()

	t.Cleanup(func() {
		crashMu.Lock()
		crashOut, crashExit = prevOut, prevExit
		crashTerminal = nil
		crashLogger = zap.NewNop()
		crashMu.Unlock()
	})
	return &out, codes
}

func TestHandleCrashNilIsNoop(t *testing.T) {
	out, codes := captureCrash(t)
	term := &fakeTerminal{}
	RegisterCrashTerminal(term)

	HandleCrash(nil)

	if term.finis != 0 || out.Len() != 0 || len(codes) != 0 {
		t.Error("nil recover value should not report a crash")
	}
}

func TestHandleCrashRestoresTerminal(t *testing.T) {
	out, codes := captureCrash(t)
	term := &fakeTerminal{}
	RegisterCrashTerminal(term)
	core, logs := observer.New(zapcore.ErrorLevel)
	RegisterCrashLogger(zap.New(core))

	HandleCrash("pool exhausted")

	if term.finis != 1 {
		t.Errorf("Fini called %d times, want 1", term.finis)
	}
	if code := <-codes; code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(out.String(), "pool exhausted") || !strings.Contains(out.String(), "Stack Trace") {
		t.Errorf("report = %q", out.String())
	}
	if logs.FilterMessage("Crash").Len() != 1 {
		t.Error("crash not logged")
	}
}

func TestGoRecoversPanics(t *testing.T) {
	_, codes := captureCrash(t)

	Go(func() { panic("frame loop") })

	if code := <-codes; code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}
