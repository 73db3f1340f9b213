// Package sched implements the SCHED preemptive CPU scheduler simulator
// (spec.md §4.2): a discrete-event machine over one of six dispatch
// policies, driven by an insertion-stable event queue.
package sched

import (
	"fmt"

	"github.com/oslab-go/ossim/internal/ifaces"
	"github.com/oslab-go/ossim/internal/objpool"
)

// State is a process's position in the CREATED/READY/RUNNING/BLOCKED/DONE
// state machine (spec.md §4.2).
type State int

const (
	StateCreated State = iota
	StateReady
	StateRunning
	StateBlocked
	StateDone
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "CREATED"
	case StateReady:
		return "READY"
	case StateRunning:
		return "RUNNING"
	case StateBlocked:
		return "BLOCKED"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// Transition labels an edge of the process state machine.
type Transition int

const (
	CreatedToReady Transition = iota
	ReadyToRunning
	RunningToBlocked
	RunningToReady
	RunningToDone
	BlockedToReady
)

func (t Transition) String() string {
	switch t {
	case CreatedToReady:
		return "CREATED_TO_READY"
	case ReadyToRunning:
		return "READY_TO_RUNNING"
	case RunningToBlocked:
		return "RUNNING_TO_BLOCKED"
	case RunningToReady:
		return "RUNNING_TO_READY"
	case RunningToDone:
		return "RUNNING_TO_DONE"
	case BlockedToReady:
		return "BLOCKED_TO_READY"
	default:
		return "UNKNOWN"
	}
}

// Process carries the scenario-fixed fields plus the mutable state spec.md
// §3.3 describes. PendingEvent tracks the one event (if any) currently
// queued on this process's behalf, so a preemption can find and delete it.
type Process struct {
	ID              int
	ArrivalTime     int
	TotalCPU        int
	CPUBurstMax     int
	IOBurstMax      int
	StaticPriority  int
	DynamicPriority int

	RemainingTime         int
	CurrentBurstRemaining int
	Preempted             bool
	State                 State
	StateEnteredAt        int

	FinishTime  int
	Turnaround  int
	IOTime      int
	WaitingTime int

	PendingEvent *Event
}

// NewProcess builds a Process in its initial CREATED state (spec.md §3.3):
// dynamic_priority = static_priority - 1, remaining_time = TC.
func NewProcess(id, arrivalTime, totalCPU, cpuBurstMax, ioBurstMax, staticPriority int) *Process {
	return &Process{
		ID:              id,
		ArrivalTime:     arrivalTime,
		TotalCPU:        totalCPU,
		CPUBurstMax:     cpuBurstMax,
		IOBurstMax:      ioBurstMax,
		StaticPriority:  staticPriority,
		DynamicPriority: staticPriority - 1,
		RemainingTime:   totalCPU,
		State:           StateCreated,
	}
}

// Event is one scheduled state transition (spec.md §3.3).
type Event struct {
	Clock      int
	Proc       *Process
	Transition Transition
}

// EventQueue is an ascending-clock, insertion-stable priority queue: among
// equal clocks, the event inserted first pops first (spec.md §5).
type EventQueue struct {
	events []*Event
}

// Insert places e after every already-queued event with Clock <= e.Clock,
// which preserves FIFO order among equal timestamps.
func (q *EventQueue) Insert(e *Event) {
	i := 0
	for i < len(q.events) && q.events[i].Clock <= e.Clock {
		i++
	}
	q.events = append(q.events, nil)
	copy(q.events[i+1:], q.events[i:])
	q.events[i] = e
}

// Pop removes and returns the earliest-ordered event.
func (q *EventQueue) Pop() (*Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	e := q.events[0]
	q.events = q.events[1:]
	return e, true
}

// PeekClock reports the clock of the earliest-ordered event, if any.
func (q *EventQueue) PeekClock() (int, bool) {
	if len(q.events) == 0 {
		return 0, false
	}
	return q.events[0].Clock, true
}

// Remove deletes a specific event from the queue, used to cancel a
// process's pending transition on preemption. Reports whether e was found.
func (q *EventQueue) Remove(e *Event) bool {
	for i, ev := range q.events {
		if ev == e {
			q.events = append(q.events[:i], q.events[i+1:]...)
			return true
		}
	}
	return false
}

// Policy is the capability surface a CPU-scheduling policy exposes
// (spec.md §3.3, §9 "Polymorphic policies"): it receives ready processes
// via Add, hands them back via PopNext, and Requeue places a
// preempted/quantum-expired process back on a ready queue (the hook
// PRIO/PREPRIO use to decay dynamic priority).
type Policy interface {
	Add(p *Process)
	Requeue(p *Process)
	PopNext() (*Process, bool)
	DoesPreempt() bool
	Quantum() int
	MaxPrio() int
}

// infiniteQuantum is the "effectively infinite" sentinel spec.md §4.2
// prescribes for non-quantum policies, so the quantum<burst branch never
// triggers.
const infiniteQuantum = int(^uint(0) >> 1)

// Summary is the per-run report spec.md §4.2 describes.
type Summary struct {
	FinishTime    int
	CPUUtil       float64
	IOUtil        float64
	AvgTurnaround float64
	AvgWait       float64
	Throughput    float64
}

// Simulator drives the event queue described in spec.md §4.2.
type Simulator struct {
	processes []*Process
	queue     EventQueue
	policy    Policy
	rng       ifaces.RandomSource
	logger    ifaces.Logger

	running       *Process
	clock         int
	callScheduler bool

	nIOBlocked      int
	ioIntervalStart int
	ioBlockedTotal  int

	eventPool *objpool.Pool[Event]
}

// New constructs a Simulator and seeds each process's CREATED_TO_READY
// event at its arrival time.
func New(processes []*Process, policy Policy, rng ifaces.RandomSource, logger ifaces.Logger) *Simulator {
	s := &Simulator{processes: processes, policy: policy, rng: rng, logger: logger, eventPool: objpool.New[Event]()}
	for _, p := range processes {
		s.queue.Insert(s.newEvent(p.ArrivalTime, p, CreatedToReady))
	}
	return s
}

// newEvent pulls a recycled *Event from the pool instead of allocating,
// since RUNNING_TO_READY/BLOCKED_TO_READY rescheduling fires on nearly
// every transition (spec.md §4.2).
func (s *Simulator) newEvent(clock int, p *Process, t Transition) *Event {
	ev := s.eventPool.Get()
	ev.Clock = clock
	ev.Proc = p
	ev.Transition = t
	return ev
}

// Run drives the event queue to exhaustion and returns the summary
// described in spec.md §4.2.
func (s *Simulator) Run() Summary {
	for {
		e, ok := s.queue.Pop()
		if !ok {
			break
		}
		s.clock = e.Clock
		s.handle(e)
		s.eventPool.Put(e)

		if s.callScheduler {
			nextClock, hasNext := s.queue.PeekClock()
			if hasNext && nextClock == s.clock {
				// More events due at this tick; defer the dispatch and
				// leave callScheduler armed for when they've drained.
				continue
			}
			if s.running == nil {
				if p, ok := s.policy.PopNext(); ok {
					ev := s.newEvent(s.clock, p, ReadyToRunning)
					s.queue.Insert(ev)
					p.PendingEvent = ev
				}
			}
			s.callScheduler = false
		}
	}
	return s.summarize()
}

func (s *Simulator) handle(e *Event) {
	p := e.Proc
	s.trace(p, e.Transition)

	switch e.Transition {
	case CreatedToReady:
		s.toReady(p, false)
	case BlockedToReady:
		s.toReady(p, true)
	case ReadyToRunning:
		s.toRunning(p)
	case RunningToReady:
		s.fromRunningToReady(p)
	case RunningToBlocked:
		s.fromRunningToBlocked(p)
	case RunningToDone:
		s.fromRunningToDone(p)
	}
}

func (s *Simulator) toReady(p *Process, fromBlocked bool) {
	if fromBlocked {
		p.IOTime += s.clock - p.StateEnteredAt
		s.nIOBlocked--
		if s.nIOBlocked == 0 {
			s.ioBlockedTotal += s.clock - s.ioIntervalStart
		}
	}
	p.StateEnteredAt = s.clock
	p.State = StateReady
	p.DynamicPriority = p.StaticPriority - 1

	if s.policy.DoesPreempt() && s.running != nil && p.DynamicPriority > s.running.DynamicPriority &&
		(s.running.PendingEvent == nil || s.running.PendingEvent.Clock != s.clock) {
		if s.running.PendingEvent != nil {
			s.queue.Remove(s.running.PendingEvent)
			s.eventPool.Put(s.running.PendingEvent)
		}
		s.running.Preempted = true
		ev := s.newEvent(s.clock, s.running, RunningToReady)
		s.queue.Insert(ev)
		s.running.PendingEvent = ev
	}

	s.policy.Add(p)
	s.callScheduler = true
}

func (s *Simulator) toRunning(p *Process) {
	if p.Preempted {
		// Burst already in progress; resume it.
	} else {
		p.CurrentBurstRemaining = min(s.rng.NextBounded(p.CPUBurstMax), p.RemainingTime)
	}
	p.WaitingTime += s.clock - p.StateEnteredAt
	p.Preempted = false
	p.State = StateRunning
	p.StateEnteredAt = s.clock
	s.running = p

	quantum := s.policy.Quantum()
	var next Transition
	var at int
	switch {
	case quantum < p.CurrentBurstRemaining:
		next, at = RunningToReady, s.clock+quantum
	case p.CurrentBurstRemaining >= p.RemainingTime:
		next, at = RunningToDone, s.clock+p.CurrentBurstRemaining
	default:
		next, at = RunningToBlocked, s.clock+p.CurrentBurstRemaining
	}
	ev := s.newEvent(at, p, next)
	s.queue.Insert(ev)
	p.PendingEvent = ev
}

func (s *Simulator) fromRunningToReady(p *Process) {
	delta := s.clock - p.StateEnteredAt
	p.RemainingTime -= delta
	p.CurrentBurstRemaining -= delta
	s.running = nil
	p.State = StateReady
	p.StateEnteredAt = s.clock
	p.Preempted = true
	s.policy.Requeue(p)
	s.callScheduler = true
}

func (s *Simulator) fromRunningToBlocked(p *Process) {
	delta := s.clock - p.StateEnteredAt
	p.RemainingTime -= delta
	s.running = nil
	p.State = StateBlocked
	p.StateEnteredAt = s.clock

	io := s.rng.NextBounded(p.IOBurstMax)
	if s.nIOBlocked == 0 {
		s.ioIntervalStart = s.clock
	}
	s.nIOBlocked++

	ev := s.newEvent(s.clock+io, p, BlockedToReady)
	s.queue.Insert(ev)
	p.PendingEvent = ev
	s.callScheduler = true
}

func (s *Simulator) fromRunningToDone(p *Process) {
	delta := s.clock - p.StateEnteredAt
	p.RemainingTime -= delta
	p.State = StateDone
	p.FinishTime = s.clock
	p.Turnaround = s.clock - p.ArrivalTime
	s.running = nil
	s.callScheduler = true
}

func (s *Simulator) trace(p *Process, t Transition) {
	if s.logger == nil {
		return
	}
	s.logger.Trace(fmt.Sprintf("%d: %d %s", s.clock, p.ID, t))
}

func (s *Simulator) summarize() Summary {
	n := len(s.processes)
	if n == 0 {
		return Summary{}
	}

	var sumTC, sumTurnaround, sumWait int
	for _, p := range s.processes {
		sumTC += p.TotalCPU
		sumTurnaround += p.Turnaround
		sumWait += p.WaitingTime
	}

	return Summary{
		FinishTime:    s.clock,
		CPUUtil:       100 * float64(sumTC) / float64(s.clock),
		IOUtil:        100 * float64(s.ioBlockedTotal) / float64(s.clock),
		AvgTurnaround: float64(sumTurnaround) / float64(n),
		AvgWait:       float64(sumWait) / float64(n),
		Throughput:    100 * float64(n) / float64(s.clock),
	}
}
