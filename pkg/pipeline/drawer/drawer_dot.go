package drawer

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-chain/pkg/pipeline/measure"
	"github.com/askiada/go-chain/pkg/pipeline/model"
)

// DOTDrawer is a drawer that writes the chain as a DOT graph.
type DOTDrawer struct {
	graph graph.Graph[string, string]
	open  func() (io.WriteCloser, error)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewDOTDrawer creates a drawer writing to wrt.
func NewDOTDrawer(wrt io.Writer) *DOTDrawer {
	return &DOTDrawer{
		graph: newGraph(),
		open: func() (io.WriteCloser, error) {
			return nopWriteCloser{wrt}, nil
		},
	}
}

// NewFileDrawer creates a drawer writing to fileName, replacing it on every Draw.
func NewFileDrawer(fileName string) *DOTDrawer {
	return &DOTDrawer{
		graph: newGraph(),
		open: func() (io.WriteCloser, error) {
			file, err := os.Create(fileName)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to create file %s", fileName)
			}

			return file, nil
		},
	}
}

func newGraph() graph.Graph[string, string] {
	return graph.New(graph.StringHash, graph.Directed())
}

// Reset drops every stage and link.
func (d *DOTDrawer) Reset() error {
	d.graph = newGraph()

	return nil
}

// AddStage adds a stage to the graph.
func (d *DOTDrawer) AddStage(name string) error {
	err := d.graph.AddVertex(name, graph.VertexAttribute("shape", "box"), graph.VertexAttribute("label", name))
	if err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", name)
	}

	return nil
}

// AddLink adds a link between a stage and its successor, coloured after the style of the hand-off.
func (d *DOTDrawer) AddLink(parentName, childName string, handOff model.Style, adapted bool) error {
	colour, err := linkColour(handOff, adapted)
	if err != nil {
		return err
	}
	label := handOff.String()
	if adapted {
		label += ", iterated"
	}
	err = d.graph.AddEdge(parentName, childName,
		graph.EdgeAttribute("label", label),
		graph.EdgeAttribute("color", colour),
		graph.EdgeAttribute("fontcolor", colour),
	)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childName)
	}

	return nil
}

const maxRGB = 240

func linkColour(handOff model.Style, adapted bool) (string, error) {
	var red, blue uint8
	switch {
	case adapted:
		red, blue = maxRGB/2, maxRGB/2
	case handOff == model.Complete:
		red = maxRGB
	default:
		blue = maxRGB
	}
	colour, err := colors.RGB(red, 0, blue) //nolint
	if err != nil {
		return "", errors.Wrap(err, "unable to get colour")
	}

	return colour.ToHEX().String(), nil
}

// Draw writes the graph in DOT format.
func (d *DOTDrawer) Draw() error {
	wrt, err := d.open()
	if err != nil {
		return err
	}
	defer wrt.Close()

	err = draw.DOT(d.graph, wrt, draw.GraphAttribute("rankdir", "LR"))
	if err != nil {
		return errors.Wrap(err, "unable to render DOT graph")
	}

	return nil
}

// SetTotalTime appends the total time to the label of the stage.
func (d *DOTDrawer) SetTotalTime(stageName string, total time.Duration) error {
	_, properties, err := d.graph.VertexWithProperties(stageName)
	if err != nil {
		return errors.Wrapf(err, "unable to get %s vertex properties", stageName)
	}
	properties.Attributes["label"] += "\\n" + total.String()

	return nil
}

// AddMeasure appends the number of inputs and their average duration to the label of every stage.
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	for name, mt := range msr.AllMetrics() {
		if mt.Count() == 0 {
			continue
		}
		_, properties, err := d.graph.VertexWithProperties(name)
		if errors.Is(err, graph.ErrVertexNotFound) {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "unable to get %s vertex properties", name)
		}
		properties.Attributes["label"] += fmt.Sprintf("\\n%d in, avg %s", mt.Count(), mt.AVGDuration())
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
