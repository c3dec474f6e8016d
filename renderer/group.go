package renderer

import (
	"github.com/voiengine/voi/gpuerr"
)

// BatchGroup is a contiguous run of batches in the renderer's batch list that share a drawing style.
// Current is the batch, relative to Start, that drawing calls of this style go to.
type BatchGroup struct {
	Name    string
	Start   int
	Count   int
	Current int
}

// Target returns the renderer batch index of the current batch
func (g *BatchGroup) Target() int {
	return g.Start + g.Current
}

// End returns one past the last batch index of the group
func (g *BatchGroup) End() int {
	return g.Start + g.Count
}

// Select makes localIndex the current batch. Out of range indices return an *gpuerr.IndexOutOfRangeError
// and leave the group unchanged.
func (g *BatchGroup) Select(localIndex int) error {

	if localIndex < 0 || localIndex >= g.Count {
		return &gpuerr.IndexOutOfRangeError{What: g.Name + " batch", Index: localIndex, Bound: g.Count}
	}

	g.Current = localIndex
	return nil
}
