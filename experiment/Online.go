package experiment

import (
	"fmt"

	"sfneuman.com/tabular/agent"
	env "sfneuman.com/tabular/environment"
	"sfneuman.com/tabular/experiment/tracker"
	ts "sfneuman.com/tabular/timestep"
	"sfneuman.com/tabular/utils/progressbar"
)

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
type Online struct {
	env.Environment[int]
	agent.Agent
	maxSteps     int
	currentSteps int
	trackers     []tracker.Tracker
	progBar      *progressbar.ManualProgressBar
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines how
// many timesteps the experiment is run for, and the t parameter is a
// slice of tracker.Tracker which determine what data is recorded.
func NewOnline(e env.Environment[int], a agent.Agent, steps int,
	t ...tracker.Tracker) *Online {
	return &Online{
		Environment: e,
		Agent:       a,
		maxSteps:    steps,
		trackers:    t,
	}
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// ShowProgress displays bar after every episode
func (o *Online) ShowProgress(bar *progressbar.ManualProgressBar) {
	o.progBar = bar
}

// Steps returns the number of timesteps run so far
func (o *Online) Steps() int {
	return o.currentSteps
}

// RunEpisode runs a single episode of the experiment, returning whether
// or not the maximum timestep limit has been reached
func (o *Online) RunEpisode() (bool, error) {
	step := o.Environment.Reset()
	if err := o.Agent.ObserveFirst(step); err != nil {
		return false, fmt.Errorf("runEpisode: %w", err)
	}
	o.track(step)

	for !step.Last() && o.currentSteps < o.maxSteps {
		o.currentSteps++
		if o.progBar != nil {
			o.progBar.Increment()
		}

		// Select action, step in environment
		action := o.Agent.SelectAction(step)
		var err error
		step, _, err = o.Environment.Step(action)
		if err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}
		o.track(step)

		// Observe the timestep and step the agent
		if err := o.Agent.Observe(action, step); err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}
		if err := o.Agent.Step(); err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}
	}
	o.Agent.EndEpisode()

	if o.progBar != nil {
		o.progBar.Display()
	}
	return o.currentSteps >= o.maxSteps, nil
}

// Run runs the entire experiment for all timesteps
func (o *Online) Run() error {
	for {
		ended, err := o.RunEpisode()
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		if ended {
			if o.progBar != nil {
				o.progBar.Close()
			}
			return nil
		}
	}
}

// track tracks the current timestep by sending it to each Tracker
func (o *Online) track(t ts.TimeStep[int]) {
	for _, tr := range o.trackers {
		tr.Track(t)
	}
}
