package sched

// LCFSPolicy services the most recently readied process first (LIFO).
type LCFSPolicy struct {
	stack []*Process
}

// NewLCFSPolicy constructs an LCFSPolicy.
func NewLCFSPolicy() *LCFSPolicy {
	return &LCFSPolicy{}
}

func (p *LCFSPolicy) Add(proc *Process)     { p.stack = append(p.stack, proc) }
func (p *LCFSPolicy) Requeue(proc *Process) { p.Add(proc) }

func (p *LCFSPolicy) PopNext() (*Process, bool) {
	n := len(p.stack)
	if n == 0 {
		return nil, false
	}
	proc := p.stack[n-1]
	p.stack = p.stack[:n-1]
	return proc, true
}

func (p *LCFSPolicy) DoesPreempt() bool { return false }
func (p *LCFSPolicy) Quantum() int      { return infiniteQuantum }
func (p *LCFSPolicy) MaxPrio() int      { return 4 }
