package engine

import "github.com/sheikhrachel/go-life/model"

// SinkFuncs adapts a pair of functions to a Sink. Nil functions are skipped.
type SinkFuncs struct {
	OnUpdate   func(at model.Point, cell model.Cell)
	OnNoUpdate func(at model.Point, cell model.Cell)
}

func (s SinkFuncs) Update(at model.Point, cell model.Cell) {
	if s.OnUpdate != nil {
		s.OnUpdate(at, cell)
	}
}

func (s SinkFuncs) NoUpdate(at model.Point, cell model.Cell) {
	if s.OnNoUpdate != nil {
		s.OnNoUpdate(at, cell)
	}
}

// Visit returns a sink that calls fn for every cell regardless of whether it changed
func Visit(fn func(at model.Point, cell model.Cell, changed bool)) Sink {
	return SinkFuncs{
		OnUpdate:   func(at model.Point, cell model.Cell) { fn(at, cell, true) },
		OnNoUpdate: func(at model.Point, cell model.Cell) { fn(at, cell, false) },
	}
}

// Discard ignores every notification
var Discard Sink = SinkFuncs{}

// Counter tallies notifications
type Counter struct {
	Changed   int
	Unchanged int
}

func (c *Counter) Update(model.Point, model.Cell)   { c.Changed++ }
func (c *Counter) NoUpdate(model.Point, model.Cell) { c.Unchanged++ }

// Reset zeroes both tallies
func (c *Counter) Reset() { *c = Counter{} }

// Multi fans every notification out to each sink in order
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) Update(at model.Point, cell model.Cell) {
	for _, s := range m {
		s.Update(at, cell)
	}
}

func (m multiSink) NoUpdate(at model.Point, cell model.Cell) {
	for _, s := range m {
		s.NoUpdate(at, cell)
	}
}
