package pipeline_test

import (
	"testing"
	"time"

	"github.com/askiada/go-chain/pkg/pipeline/model"
)

// recordHook keeps the labels it is notified with.
type recordHook struct {
	news, finishes int
	prepared       []string
	inputs         map[string]int
	last           string
}

func newRecordHook(t *testing.T) *recordHook {
	t.Helper()

	return &recordHook{inputs: make(map[string]int)}
}

func (h *recordHook) New() error {
	h.news++
	h.prepared = nil

	return nil
}

func (h *recordHook) PrepareSource(*model.StageInfo) error {
	return nil
}

func (h *recordHook) PrepareStage(parentStage, stage *model.StageInfo) error {
	h.prepared = append(h.prepared, parentStage.Label()+">"+stage.Label())

	return nil
}

func (h *recordHook) OnStageInput(_, stage *model.StageInfo, _ time.Duration) error {
	h.inputs[stage.Label()]++

	return nil
}

func (h *recordHook) OnResult(lastStage *model.StageInfo, _ time.Duration) error {
	h.last = lastStage.Label()

	return nil
}

func (h *recordHook) Finish() error {
	h.finishes++

	return nil
}

func isEven(v int) bool {
	return v%2 == 0
}

func firstLetter(s string) byte {
	return s[0]
}

func countingDouble(t *testing.T, calls *int) func(int) int {
	t.Helper()

	return func(v int) int {
		*calls++

		return v * 2
	}
}
