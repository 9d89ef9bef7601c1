package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

var (
	hookMu    sync.Mutex
	crashHook func()

	// Overridable in tests
	crashOut io.Writer = os.Stderr
	exit               = os.Exit
)

// SetCrashHook registers cleanup that runs before the crash report, typically screen.Fini
// Passing nil clears the hook
func SetCrashHook(fn func()) {
	hookMu.Lock()
	crashHook = fn
	hookMu.Unlock()
}

// SetExit replaces the exit called after a crash report and returns the previous one
func SetExit(fn func(code int)) func(code int) {
	hookMu.Lock()
	defer hookMu.Unlock()
	prev := exit
	exit = fn
	return prev
}

// HandleCrash restores the terminal through the hook, prints the stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	hookMu.Lock()
	hook, exitFn := crashHook, exit
	hookMu.Unlock()
	if hook != nil {
		hook()
	}

	// \r\n keeps the report readable if the terminal is still in raw mode
	fmt.Fprintf(crashOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())

	exitFn(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use instead of the go keyword so a crash never leaves the terminal in raw mode
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
