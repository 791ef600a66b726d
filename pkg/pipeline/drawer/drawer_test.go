package drawer_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-chain/pkg/pipeline"
	"github.com/askiada/go-chain/pkg/pipeline/drawer"
	"github.com/askiada/go-chain/pkg/pipeline/measure"
	"github.com/askiada/go-chain/pkg/pipeline/model"
)

func TestDOTDrawer(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	d := drawer.NewDOTDrawer(buf)
	require.NoError(t, d.AddStage("start"))
	require.NoError(t, d.AddStage("0:sort"))
	require.NoError(t, d.AddLink("start", "0:sort", model.Complete, false))
	require.NoError(t, d.SetTotalTime("0:sort", time.Second))
	require.NoError(t, d.Draw())

	out := buf.String()
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, "0:sort")
	assert.Contains(t, out, "1s")
	assert.Contains(t, out, "complete")
}

func TestDOTDrawerErrors(t *testing.T) {
	t.Parallel()

	d := drawer.NewDOTDrawer(&bytes.Buffer{})
	require.NoError(t, d.AddStage("start"))
	assert.Error(t, d.AddStage("start"))
	assert.Error(t, d.AddLink("start", "missing", model.Incremental, false))
	assert.Error(t, d.SetTotalTime("missing", time.Second))
	require.NoError(t, d.Reset())
	assert.NoError(t, d.AddStage("start"))
}

func TestFileDrawer(t *testing.T) {
	t.Parallel()

	fileName := filepath.Join(t.TempDir(), "chain.dot")
	d := drawer.NewFileDrawer(fileName)
	require.NoError(t, d.AddStage("start"))
	require.NoError(t, d.Draw())

	content, err := os.ReadFile(fileName)
	require.NoError(t, err)
	assert.Contains(t, string(content), "start")

	assert.Error(t, drawer.NewFileDrawer(filepath.Join(t.TempDir(), "missing", "chain.dot")).Draw())
}

func TestPipelineDrawer(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	msr := measure.NewDefaultMeasure()
	pipe, err := pipeline.New(pipeline.WithHooks(
		measure.PipelineMeasure(msr),
		drawer.PipelineDrawer(drawer.NewDOTDrawer(buf), msr),
	))
	require.NoError(t, err)

	got, err := pipeline.Run[int](pipe, []int{1, 2, 3, 4},
		pipeline.Filter(func(v int) bool { return v > 2 }),
		pipeline.Count[int](),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	out := buf.String()
	assert.Contains(t, out, "0:filter")
	assert.Contains(t, out, "1:count")
	assert.Contains(t, out, "complete, iterated")
	assert.Contains(t, out, "4 in")

	buf.Reset()
	_, err = pipeline.Run[int](pipe, []int{1}, pipeline.Count[int]())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "0:count")
	assert.NotContains(t, buf.String(), "0:filter")
}
