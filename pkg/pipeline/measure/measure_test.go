package measure_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-chain/pkg/pipeline/measure"
)

func TestAddMetric(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	mt := msr.AddMetric("0:transform")
	mt.AddDuration(2 * time.Millisecond)
	mt.AddDuration(4 * time.Millisecond)
	mt.AddInput("start")

	same := msr.AddMetric("0:transform")
	assert.Equal(t, int64(2), same.Count())
	assert.Equal(t, 3*time.Millisecond, same.AVGDuration())
	assert.Equal(t, map[string]int64{"start": 1}, same.AllInputs())
	assert.Len(t, msr.AllMetrics(), 1)
	assert.Nil(t, msr.GetMetric("1:to"))
}

func TestAVGDuration(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		durations []time.Duration
		expected  time.Duration
	}{
		"no input": {
			expected: 0,
		},
		"nanoseconds": {
			durations: []time.Duration{10, 20},
			expected:  15,
		},
		"rounded to microseconds": {
			durations: []time.Duration{2*time.Millisecond + 1, 2*time.Millisecond + 3},
			expected:  2 * time.Millisecond,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			mt := measure.NewDefaultMeasure().AddMetric("stage")
			for _, d := range tc.durations {
				mt.AddDuration(d)
			}
			assert.Equal(t, tc.expected, mt.AVGDuration())
		})
	}
}

func TestTotalDuration(t *testing.T) {
	t.Parallel()

	mt := measure.NewDefaultMeasure().AddMetric("end")
	mt.SetTotalDuration(time.Second)
	assert.Equal(t, time.Second, mt.GetTotalDuration())
}
