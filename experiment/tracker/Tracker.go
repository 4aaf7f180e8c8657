// Package tracker implements Trackers, which record data generated
// during an experiment in memory
package tracker

import (
	ts "sfneuman.com/tabular/timestep"
)

// Tracker keeps track of experiment data. An experiment sends every
// TimeStep it generates to each of its Trackers.
type Tracker interface {
	Track(t ts.TimeStep[int])

	// Data returns one value per finished episode
	Data() []float64
}
