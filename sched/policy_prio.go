package sched

// PrioPolicy implements PRIO(q, L) and, with preempt set, PREPRIO(q, L):
// L priority levels, each with an active and an expired FIFO queue.
// PopNext drains the highest non-empty active level; when every active
// level is empty, active and expired swap (spec.md §4.2 table).
type PrioPolicy struct {
	quantum  int
	levels   int
	preempt  bool
	active   [][]*Process
	expired  [][]*Process
}

// NewPrioPolicy constructs a non-preemptive PRIO(q, L) policy.
func NewPrioPolicy(quantum, levels int) *PrioPolicy {
	return newPrioPolicy(quantum, levels, false)
}

// NewPrePrioPolicy constructs a preemptive PREPRIO(q, L) policy.
func NewPrePrioPolicy(quantum, levels int) *PrioPolicy {
	return newPrioPolicy(quantum, levels, true)
}

func newPrioPolicy(quantum, levels int, preempt bool) *PrioPolicy {
	return &PrioPolicy{
		quantum: quantum,
		levels:  levels,
		preempt: preempt,
		active:  make([][]*Process, levels),
		expired: make([][]*Process, levels),
	}
}

// Add enqueues a freshly-readied process onto its active level.
func (p *PrioPolicy) Add(proc *Process) {
	lvl := p.level(proc)
	p.active[lvl] = append(p.active[lvl], proc)
}

// Requeue implements the RUNNING_TO_READY decay rule: dynamic_priority is
// decremented; if it goes negative it resets to static_priority-1 and the
// process lands in the expired queue for its (new) level, otherwise it
// re-enters the active queue for its decremented level.
func (p *PrioPolicy) Requeue(proc *Process) {
	proc.DynamicPriority--
	if proc.DynamicPriority < 0 {
		proc.DynamicPriority = proc.StaticPriority - 1
		lvl := p.level(proc)
		p.expired[lvl] = append(p.expired[lvl], proc)
		return
	}
	lvl := p.level(proc)
	p.active[lvl] = append(p.active[lvl], proc)
}

func (p *PrioPolicy) level(proc *Process) int {
	lvl := proc.DynamicPriority
	if lvl < 0 {
		lvl = 0
	}
	if lvl >= p.levels {
		lvl = p.levels - 1
	}
	return lvl
}

func (p *PrioPolicy) PopNext() (*Process, bool) {
	if proc, ok := p.popActive(); ok {
		return proc, true
	}
	p.active, p.expired = p.expired, p.active
	return p.popActive()
}

func (p *PrioPolicy) popActive() (*Process, bool) {
	for lvl := p.levels - 1; lvl >= 0; lvl-- {
		if len(p.active[lvl]) > 0 {
			proc := p.active[lvl][0]
			p.active[lvl] = p.active[lvl][1:]
			return proc, true
		}
	}
	return nil, false
}

func (p *PrioPolicy) DoesPreempt() bool { return p.preempt }
func (p *PrioPolicy) Quantum() int      { return p.quantum }
func (p *PrioPolicy) MaxPrio() int      { return p.levels }
