// internal/engine/engine_fuzz_test.go
package engine

import (
	"testing"

	fuzz "github.com/AdaLogics/go-fuzz-headers"
	"go.uber.org/zap"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
)

type fuzzInput struct {
	DOM      string
	Viewport schemas.Viewport
	Snapshot schemas.StyleSnapshot
}

// FuzzEngine_Analyze feeds arbitrary element snapshots to the engine. It must
// always return a well-formed report with a score in [0, 100].
func FuzzEngine_Analyze(f *testing.F) {
	e := New(zap.NewNop())
	f.Add([]byte("seed"))
	f.Fuzz(func(t *testing.T, data []byte) {
		fuzzConsumer := fuzz.NewConsumer(data)
		input := &fuzzInput{}
		if err := fuzzConsumer.GenerateStruct(input); err != nil {
			return
		}

		report := e.Analyze(input.DOM, input.Snapshot, input.Viewport)
		if report == nil {
			t.Fatal("nil report")
		}
		if report.Score < 0 || report.Score > 100 {
			t.Fatalf("score out of bounds: %d", report.Score)
		}
		if report.Features == nil {
			t.Fatal("nil features")
		}
	})
}
