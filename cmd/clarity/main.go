// File: cmd/clarity/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/xkilldash9x/clarity-cli/cmd"
	"github.com/xkilldash9x/clarity-cli/internal/observability"
)

const panicLogFile = "panic.log"

// Exit codes.
const (
	exitOK       = 0
	exitFailure  = 1
	exitPanic    = 2
	exitCanceled = 130
)

// Define function variables for dependency injection/mocking in tests.
var (
	osWriteFile = os.WriteFile
	// Allows mocking os.Exit in tests.
	osExit = os.Exit
	// Allows replacing the command tree in tests.
	execute = cmd.Execute
)

// main is the entry point of the application.
func main() {
	// The Sentinel - Global Panic Handler
	defer handlePanic()

	// Set up a context that listens for interrupt signals (SIGINT, SIGTERM) for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	osExit(run(ctx))
}

// run executes the command tree and maps its outcome to an exit code.
func run(ctx context.Context) int {
	err := execute(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitCanceled
	default:
		return exitFailure
	}
}

// handlePanic records an unrecovered panic in panic.log and exits non-zero.
func handlePanic() {
	r := recover()
	if r == nil {
		return
	}

	// Ensure logs are flushed before proceeding.
	observability.Sync()

	panicMessage := fmt.Sprintf("panic: %v\n\n%s", r, debug.Stack())
	if err := osWriteFile(panicLogFile, []byte(panicMessage), 0o644); err != nil {
		// If logging fails, print to stderr as a fallback.
		fmt.Fprintf(os.Stderr, "CRITICAL: Failed to write panic log: %v\n", err)
		fmt.Fprintf(os.Stderr, "Panic details:\n%s\n", panicMessage)
		osExit(exitPanic)
		return // Return facilitates testing when osExit is mocked.
	}

	fmt.Fprintf(os.Stderr, "\nclarity crashed: %v\nDetails logged to %s\n", r, panicLogFile)
	osExit(exitPanic)
}
