// File: cmd/clarity/main_test.go
package main

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/clarity-cli/cmd"
)

// resetMocks restores the original function implementations.
func resetMocks() {
	osWriteFile = os.WriteFile
	osExit = os.Exit
	execute = cmd.Execute
}

func TestRun_ExitCodes(t *testing.T) {
	defer resetMocks()

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"failure", errors.New("boom"), exitFailure},
		{"canceled", context.Canceled, exitCanceled},
		{"wrapped cancel", errors.Join(errors.New("aborted"), context.Canceled), exitCanceled},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			execute = func(context.Context) error { return tc.err }
			assert.Equal(t, tc.want, run(context.Background()))
		})
	}
}

func TestHandlePanic(t *testing.T) {
	defer resetMocks()

	t.Run("should write the panic log and exit non-zero", func(t *testing.T) {
		var (
			writtenName string
			writtenData []byte
			exitCode    = -1
		)
		osWriteFile = func(name string, data []byte, perm os.FileMode) error {
			writtenName, writtenData = name, data
			return nil
		}
		osExit = func(code int) { exitCode = code }

		func() {
			defer handlePanic()
			panic("analysis exploded")
		}()

		assert.Equal(t, panicLogFile, writtenName)
		assert.Contains(t, string(writtenData), "panic: analysis exploded")
		assert.Contains(t, string(writtenData), "goroutine", "the stack trace is included")
		assert.Equal(t, exitPanic, exitCode)
	})

	t.Run("should still exit when the log cannot be written", func(t *testing.T) {
		exitCode := -1
		osWriteFile = func(string, []byte, os.FileMode) error { return errors.New("read-only filesystem") }
		osExit = func(code int) { exitCode = code }

		func() {
			defer handlePanic()
			panic("again")
		}()
		assert.Equal(t, exitPanic, exitCode)
	})

	t.Run("should do nothing without a panic", func(t *testing.T) {
		called := false
		osExit = func(int) { called = true }
		func() {
			defer handlePanic()
		}()
		require.False(t, called)
	})
}
