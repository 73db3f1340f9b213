// Package iosched implements the IOSCH disk I/O scheduler simulator
// (spec.md §4.1): a tick-driven head-motion simulation over one of five
// arm-scheduling policies.
package iosched

import (
	"fmt"

	"github.com/oslab-go/ossim/internal/ifaces"
)

// Request is one disk I/O request (spec.md §3.2). Start and Completion
// are -1 until the request is dispatched/serviced.
type Request struct {
	Arrival    int
	Track      int
	Start      int
	Completion int
}

// Policy is the capability surface a disk-scheduling policy exposes to
// the simulator: it receives newly admitted requests via Add and
// surrenders them one at a time via Next, given the current head
// position. Next returns ok=false when the policy holds nothing
// dispatchable right now.
type Policy interface {
	Add(r *Request)
	Next(head int) (*Request, bool)
}

// Summary is the per-run report described in spec.md §4.1.
type Summary struct {
	TotalTime         int
	TotalHeadMovement int
	Utilization       float64
	AvgTurnaround     float64
	AvgWait           float64
	MaxWait           int
}

// Simulator drives the per-tick clock described in spec.md §4.1.
type Simulator struct {
	requests      []*Request
	nextAdmitIdx  int
	active        *Request
	trackHead     int
	clock         int
	policy        Policy
	logger        ifaces.Logger
	headMovement  int
}

// New constructs a Simulator. requests must be ordered by arrival time
// (ties broken by input order); that order is also the FIFO/insertion
// order policies rely on for tie-breaks.
func New(requests []*Request, policy Policy, logger ifaces.Logger) *Simulator {
	return &Simulator{requests: requests, policy: policy, logger: logger}
}

// Run executes the simulation to completion and returns the summary
// described in spec.md §4.1.
func (s *Simulator) Run() Summary {
	for {
		s.admit()

		if s.active != nil && s.trackHead == s.active.Track {
			s.complete()
		}

		for s.active == nil {
			req, ok := s.policy.Next(s.trackHead)
			if !ok {
				break
			}
			s.dispatch(req)
		}

		if s.active == nil && s.nextAdmitIdx >= len(s.requests) {
			break
		}

		s.moveHead()
		s.clock++
	}

	return s.summarize()
}

func (s *Simulator) admit() {
	for s.nextAdmitIdx < len(s.requests) && s.requests[s.nextAdmitIdx].Arrival == s.clock {
		r := s.requests[s.nextAdmitIdx]
		s.policy.Add(r)
		s.trace("%d: %d add", s.clock, r.Track)
		s.nextAdmitIdx++
	}
}

func (s *Simulator) complete() {
	s.active.Completion = s.clock
	s.trace("%d: %d done", s.clock, s.active.Track)
	s.active = nil
}

func (s *Simulator) dispatch(req *Request) {
	req.Start = s.clock
	s.active = req
	s.trace("%d: %d dispatch", s.clock, req.Track)
	if req.Track == s.trackHead {
		s.complete()
	}
}

func (s *Simulator) moveHead() {
	if s.active == nil {
		return
	}
	if s.trackHead < s.active.Track {
		s.trackHead++
	} else if s.trackHead > s.active.Track {
		s.trackHead--
	}
	s.headMovement++
}

func (s *Simulator) trace(format string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Trace(fmt.Sprintf(format, args...))
}

func (s *Simulator) summarize() Summary {
	n := len(s.requests)
	if n == 0 {
		return Summary{}
	}

	finish := s.clock
	var sumTurnaround, sumWait, totalBusy int
	maxWait := 0
	for _, r := range s.requests {
		turnaround := r.Completion - r.Arrival
		wait := turnaround - (r.Completion - r.Start)
		sumTurnaround += turnaround
		sumWait += wait
		totalBusy += r.Completion - r.Start
		if wait > maxWait {
			maxWait = wait
		}
	}

	return Summary{
		TotalTime:         finish,
		TotalHeadMovement: s.headMovement,
		Utilization:       float64(totalBusy) / float64(finish),
		AvgTurnaround:     float64(sumTurnaround) / float64(n),
		AvgWait:           float64(sumWait) / float64(n),
		MaxWait:           maxWait,
	}
}
