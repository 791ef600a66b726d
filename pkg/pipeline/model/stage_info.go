package model

import (
	"fmt"
	"reflect"
)

// Family groups built-in stages by what they do.
type Family string

const (
	SourceFamily      Family = "source"
	TransformFamily   Family = "transform"
	FilterFamily      Family = "filter"
	AccumulateFamily  Family = "accumulate"
	ReorderFamily     Family = "reorder"
	ReshapeFamily     Family = "reshape"
	HigherOrderFamily Family = "higher-order"
	UnwrapFamily      Family = "unwrap"
	CustomFamily      Family = "custom"
	SinkFamily        Family = "sink"
)

// StageInfo describes a stage of a chain.
type StageInfo struct {
	Name   string
	Family Family
	Input  Style
	Output Style
	// In and Out are optional. For an Incremental side they hold the element type,
	// for a Complete side the aggregate type. A nil type is not checked.
	In  reflect.Type
	Out reflect.Type
	// Adapted is set when a Complete output feeds the Incremental input of the stage.
	Adapted bool
	// Position is the index of the stage in the flattened chain, -1 for the source and the sink.
	Position int
}

// Label returns a unique, human readable name of the stage within its chain.
func (si *StageInfo) Label() string {
	if si.Position < 0 {
		return si.Name
	}

	return fmt.Sprintf("%d:%s", si.Position, si.Name)
}

var (
	// StartStage stands for the source of every chain.
	StartStage = &StageInfo{Name: "start", Family: SourceFamily, Input: Complete, Output: Complete, Position: -1}
	// EndStage stands for the sink collecting the result of every chain.
	EndStage = &StageInfo{Name: "end", Family: SinkFamily, Input: Complete, Output: Complete, Position: -1}
)
