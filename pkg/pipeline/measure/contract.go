package measure

import "time"

// Measure keeps one metric per stage label.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric collects the inputs received by one stage.
type Metric interface {
	// AddDuration records one input and the time the stage and its downstream spent on it.
	AddDuration(elapsed time.Duration)
	// AddInput records one input coming from the stage named inputStageName.
	AddInput(inputStageName string)
	Count() int64
	AVGDuration() time.Duration
	AllInputs() map[string]int64
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
}
