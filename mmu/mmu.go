// Package mmu implements the MMU virtual-memory simulator (spec.md §4.3):
// an instruction-driven page-fault handler over one of six replacement
// policies, with a frame table sized at scenario-load time.
package mmu

import (
	"fmt"

	"github.com/oslab-go/ossim/internal/ifaces"
	"github.com/oslab-go/ossim/internal/simerr"
)

// MaxFrames is the hard cap spec.md §6 places on -f<n_frames>.
const MaxFrames = 128

// PageTableSize is the fixed per-process page-table length (spec.md §3.4).
const PageTableSize = 64

// Cost constants for the summary (spec.md §4.3).
const (
	costUnmap       = 410
	costMap         = 350
	costIn          = 3200
	costOut         = 2750
	costFin         = 2350
	costFout        = 2800
	costZero        = 150
	costSegv        = 440
	costSegprot     = 410
	costCtxSwitch   = 130
	costProcessExit = 1230
	costReadWrite   = 1
)

// VMA is one virtual memory area (spec.md §3.4): a contiguous run of
// virtual pages with a fixed write-protection and file-mapped flag.
type VMA struct {
	StartVPage     int
	EndVPage       int
	WriteProtected bool
	FileMapped     bool
}

func (v VMA) contains(vpage int) bool {
	return vpage >= v.StartVPage && vpage <= v.EndVPage
}

// PTE is a page-table entry (spec.md §3.4). All fields are zero-valued
// until the owning page is first faulted in.
type PTE struct {
	FrameNumber    int
	Valid          bool
	Referenced     bool
	Modified       bool
	PagedOut       bool
	WriteProtected bool
	FileMapped     bool
	IsValidVMA     bool
}

// Frame is one entry of the frame table (spec.md §3.4). OwnerPID == -1
// means the frame is free.
type Frame struct {
	OwnerPID int
	VPage    int
	Age      uint32
}

// Process owns a VMA list and a fixed-size page table, plus the
// per-process counters the cost summary credits (spec.md §4.3).
type Process struct {
	ID        int
	VMAs      []VMA
	PageTable [PageTableSize]PTE

	Unmaps, Maps       int
	Ins, Outs          int
	Fins, Fouts        int
	Zeros              int
	Segv, Segprot      int
}

// NewProcess builds a Process with a zeroed page table.
func NewProcess(id int, vmas []VMA) *Process {
	return &Process{ID: id, VMAs: vmas}
}

func (p *Process) findVMA(vpage int) *VMA {
	for i := range p.VMAs {
		if p.VMAs[i].contains(vpage) {
			return &p.VMAs[i]
		}
	}
	return nil
}

// Instruction is one line of the instruction stream (spec.md §6):
// op is one of 'c' (context switch), 'r'/'w' (reference), 'e' (exit).
type Instruction struct {
	Op  byte
	Arg int
}

// FrameView is the narrow accessor a Pager uses to read and mutate the
// PTE and age state of frames it visits (spec.md §5, §9 "Polymorphic
// policies"), without a global back-pointer into the simulator.
type FrameView interface {
	NumFrames() int
	PTEAt(frameIdx int) *PTE
	FrameAge(frameIdx int) uint32
	SetFrameAge(frameIdx int, age uint32)
	InstructionIndex() int
	RandomSource() ifaces.RandomSource
}

// Pager selects an eviction victim among occupied frames and optionally
// resets per-frame age when a frame is (re)mapped (spec.md §4.3).
type Pager interface {
	SelectVictim(view FrameView) int
	UpdateAge(view FrameView, frameIdx int)
}

// Summary is the cost/counter report spec.md §4.3 describes, aggregated
// across all processes plus the simulator-wide counters.
type Summary struct {
	Maps, Unmaps     int
	Ins, Outs        int
	Fins, Fouts      int
	Zeros            int
	Segv, Segprot    int
	CtxSwitches      int
	ProcessExits     int
	TotalCost        int64
}

// Simulator drives the instruction stream described in spec.md §4.3.
type Simulator struct {
	frames   []Frame
	freeList []int
	byPID    map[int]*Process
	pager    Pager
	rng      ifaces.RandomSource
	logger   ifaces.Logger

	currentPID   int
	instrIdx     int
	ctxSwitches  int
	processExits int
	totalCost    int64
}

// New constructs a Simulator with nFrames frames, all initially free.
func New(nFrames int, processes []*Process, pager Pager, rng ifaces.RandomSource, logger ifaces.Logger) (*Simulator, error) {
	if nFrames <= 0 || nFrames > MaxFrames {
		return nil, simerr.Newf("build mmu simulator", simerr.CodeOutOfRange, "n_frames %d out of range (1..%d)", nFrames, MaxFrames)
	}
	frames := make([]Frame, nFrames)
	free := make([]int, nFrames)
	for i := range frames {
		frames[i].OwnerPID = -1
		free[i] = nFrames - 1 - i // pop from the tail, so frame 0 is handed out first
	}
	byPID := make(map[int]*Process, len(processes))
	for _, p := range processes {
		byPID[p.ID] = p
	}
	return &Simulator{frames: frames, freeList: free, byPID: byPID, pager: pager, rng: rng, logger: logger}, nil
}

// Run executes the instruction stream to completion and returns the
// cost/counter summary.
func (s *Simulator) Run(instrs []Instruction) Summary {
	for idx, instr := range instrs {
		s.instrIdx = idx
		switch instr.Op {
		case 'c':
			s.currentPID = instr.Arg
			s.ctxSwitches++
			s.totalCost += costCtxSwitch
			s.trace("%d: ==> CTX SWITCH %d", idx, instr.Arg)
		case 'r', 'w':
			s.reference(idx, instr.Op, instr.Arg)
		case 'e':
			s.exitProcess(idx, instr.Arg)
		}
	}
	return s.summarize()
}

func (s *Simulator) reference(idx int, op byte, vpage int) {
	proc := s.byPID[s.currentPID]
	s.totalCost += costReadWrite
	pte := &proc.PageTable[vpage]

	if !pte.Valid {
		if s.handleFault(idx, proc, vpage) {
			return // SEGV: instruction skipped
		}
		pte = &proc.PageTable[vpage]
	}

	pte.Referenced = true
	if op == 'w' {
		if pte.WriteProtected {
			proc.Segprot++
			s.totalCost += costSegprot
			s.trace("%d: ==> SEGPROT", idx)
			return
		}
		pte.Modified = true
	}
}

// handleFault runs the page-fault handler (spec.md §4.3) and reports
// whether the access must be skipped (SEGV).
func (s *Simulator) handleFault(idx int, proc *Process, vpage int) bool {
	vma := proc.findVMA(vpage)
	if vma == nil {
		proc.Segv++
		s.totalCost += costSegv
		s.trace("%d: ==> SEGV", idx)
		return true
	}

	pte := &proc.PageTable[vpage]
	if !pte.IsValidVMA {
		pte.IsValidVMA = true
		pte.FileMapped = vma.FileMapped
		pte.WriteProtected = vma.WriteProtected
	}

	frameIdx := s.getFrame(idx)
	frame := &s.frames[frameIdx]
	frame.OwnerPID = proc.ID
	frame.VPage = vpage
	s.pager.UpdateAge(s, frameIdx)

	pte.Valid = true
	pte.Referenced = true
	pte.FrameNumber = frameIdx

	switch {
	case pte.FileMapped:
		proc.Fins++
		s.totalCost += costFin
		s.trace("%d: ==> FIN", idx)
	case pte.PagedOut:
		proc.Ins++
		s.totalCost += costIn
		s.trace("%d: ==> IN", idx)
	default:
		proc.Zeros++
		s.totalCost += costZero
		s.trace("%d: ==> ZERO", idx)
	}
	proc.Maps++
	s.totalCost += costMap
	s.trace("%d: ==> MAP %d", idx, frameIdx)
	return false
}

// getFrame implements spec.md §4.3's get_frame: pop the free list, else
// evict the pager's chosen victim.
func (s *Simulator) getFrame(idx int) int {
	if n := len(s.freeList); n > 0 {
		frameIdx := s.freeList[n-1]
		s.freeList = s.freeList[:n-1]
		return frameIdx
	}
	victim := s.pager.SelectVictim(s)
	s.evict(idx, victim)
	return victim
}

func (s *Simulator) evict(idx, frameIdx int) {
	frame := &s.frames[frameIdx]
	owner := s.byPID[frame.OwnerPID]
	pte := &owner.PageTable[frame.VPage]

	owner.Unmaps++
	s.totalCost += costUnmap
	s.trace("%d: ==> UNMAP %d:%d", idx, owner.ID, frame.VPage)

	if pte.Modified {
		pte.Modified = false
		if pte.FileMapped {
			owner.Fouts++
			s.totalCost += costFout
			s.trace("%d: ==> FOUT", idx)
		} else {
			pte.PagedOut = true
			owner.Outs++
			s.totalCost += costOut
			s.trace("%d: ==> OUT", idx)
		}
	}
	pte.Valid = false
}

func (s *Simulator) exitProcess(idx, pid int) {
	proc := s.byPID[pid]
	s.trace("%d: ==> EXIT currentPID=%d", idx, pid)
	for vp := range proc.PageTable {
		pte := &proc.PageTable[vp]
		if pte.Valid {
			proc.Unmaps++
			s.totalCost += costUnmap
			s.trace("%d: ==> UNMAP %d:%d", idx, proc.ID, vp)

			if pte.Modified && pte.FileMapped {
				proc.Fouts++
				s.totalCost += costFout
				s.trace("%d: ==> FOUT", idx)
			}

			frame := &s.frames[pte.FrameNumber]
			frame.OwnerPID = -1
			frame.VPage = -1
			frame.Age = 0
			// The free list is a queue whose head is the slice tail
			// (getFrame pops from there), so a freed frame joins at index 0.
			s.freeList = append([]int{pte.FrameNumber}, s.freeList...)

			pte.Valid = false
		}
		pte.PagedOut = false
	}
	s.processExits++
	s.totalCost += costProcessExit
}

func (s *Simulator) trace(format string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Trace(fmt.Sprintf(format, args...))
}

func (s *Simulator) summarize() Summary {
	var sum Summary
	sum.CtxSwitches = s.ctxSwitches
	sum.ProcessExits = s.processExits
	sum.TotalCost = s.totalCost
	for _, p := range s.byPID {
		sum.Maps += p.Maps
		sum.Unmaps += p.Unmaps
		sum.Ins += p.Ins
		sum.Outs += p.Outs
		sum.Fins += p.Fins
		sum.Fouts += p.Fouts
		sum.Zeros += p.Zeros
		sum.Segv += p.Segv
		sum.Segprot += p.Segprot
	}
	return sum
}

// FrameView implementation; SelectVictim/UpdateAge are called with the
// live simulator, which means Pagers never see a stale snapshot.

func (s *Simulator) NumFrames() int { return len(s.frames) }

func (s *Simulator) PTEAt(frameIdx int) *PTE {
	frame := &s.frames[frameIdx]
	owner := s.byPID[frame.OwnerPID]
	return &owner.PageTable[frame.VPage]
}

func (s *Simulator) FrameAge(frameIdx int) uint32 { return s.frames[frameIdx].Age }

func (s *Simulator) SetFrameAge(frameIdx int, age uint32) { s.frames[frameIdx].Age = age }

func (s *Simulator) InstructionIndex() int { return s.instrIdx }

func (s *Simulator) RandomSource() ifaces.RandomSource { return s.rng }
