package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-chain/pkg/pipeline/model"
)

func TestAccepts(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input, from model.Style
		expected    bool
	}{
		"incremental from incremental": {input: model.Incremental, from: model.Incremental, expected: true},
		"incremental from complete":    {input: model.Incremental, from: model.Complete, expected: true},
		"complete from complete":       {input: model.Complete, from: model.Complete, expected: true},
		"complete from incremental":    {input: model.Complete, from: model.Incremental, expected: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.input.Accepts(tc.from))
		})
	}
}

func TestAliased(t *testing.T) {
	t.Parallel()

	assert.False(t, model.Owned.Aliased())
	assert.True(t, model.ConstAlias.Aliased())
	assert.True(t, model.MutableAlias.Aliased())
	assert.False(t, model.Moved.Aliased())
	assert.Equal(t, "mutable-alias", model.MutableAlias.String())
}

func TestLabel(t *testing.T) {
	t.Parallel()

	info := model.StageInfo{Name: "sort", Position: 2}
	assert.Equal(t, "2:sort", info.Label())
	assert.Equal(t, "start", model.StartStage.Label())
}
