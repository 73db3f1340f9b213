package sched

// FCFSPolicy services processes in arrival-at-ready order, never preempts,
// and never expires a quantum (spec.md §4.2 table).
type FCFSPolicy struct {
	queue []*Process
}

// NewFCFSPolicy constructs an FCFSPolicy.
func NewFCFSPolicy() *FCFSPolicy {
	return &FCFSPolicy{}
}

func (p *FCFSPolicy) Add(proc *Process)     { p.queue = append(p.queue, proc) }
func (p *FCFSPolicy) Requeue(proc *Process) { p.Add(proc) }

func (p *FCFSPolicy) PopNext() (*Process, bool) {
	if len(p.queue) == 0 {
		return nil, false
	}
	proc := p.queue[0]
	p.queue = p.queue[1:]
	return proc, true
}

func (p *FCFSPolicy) DoesPreempt() bool { return false }
func (p *FCFSPolicy) Quantum() int      { return infiniteQuantum }
func (p *FCFSPolicy) MaxPrio() int      { return 4 }
