// Package drawer renders the chain of a pipeline as a DOT graph.
package drawer

import (
	"time"

	"github.com/askiada/go-chain/pkg/pipeline/measure"
	"github.com/askiada/go-chain/pkg/pipeline/model"
)

// Drawer is an interface that defines the methods for drawing a chain.
type Drawer interface {
	// Reset drops the stages of the previous chain.
	Reset() error
	// AddStage adds a stage to the drawer.
	AddStage(stageName string) error
	// AddLink adds a link between a stage and its successor.
	// handOff is the output style of the parent, adapted is set when it is iterated.
	AddLink(parentStageName, childStageName string, handOff model.Style, adapted bool) error
	// Draw writes the graph.
	Draw() error
	// SetTotalTime sets the total time for the stage.
	SetTotalTime(stageName string, total time.Duration) error
	// AddMeasure adds a measure to the drawer.
	AddMeasure(measure measure.Measure) error
}
