package mmu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oslab-go/ossim/internal/fixture"
	"github.com/oslab-go/ossim/internal/logging"
	"github.com/oslab-go/ossim/internal/rng"
)

func TestScenarioE_FIFOPressureOnTwoFrames(t *testing.T) {
	rec := fixture.NewRecorder(logging.LevelInfo)
	proc := NewProcess(0, []VMA{{StartVPage: 0, EndVPage: 3, WriteProtected: false, FileMapped: false}})
	sim, err := New(2, []*Process{proc}, NewFIFOPager(), rng.New([]int64{0}), rec)
	require.NoError(t, err)

	sim.currentPID = 0 // no 'c' instruction needed for a single process
	summary := sim.Run([]Instruction{
		{Op: 'r', Arg: 0},
		{Op: 'r', Arg: 1},
		{Op: 'r', Arg: 2},
		{Op: 'r', Arg: 0},
	})

	require.Equal(t, 4, summary.Maps)
	require.Equal(t, 2, summary.Unmaps)
	require.Equal(t, 4, summary.Zeros)
	require.Equal(t, 0, summary.Outs)
	require.Equal(t, 0, summary.Fouts)

	require.Equal(t, []string{
		"0: ==> ZERO",
		"0: ==> MAP 0",
		"1: ==> ZERO",
		"1: ==> MAP 1",
		"2: ==> UNMAP 0:0",
		"2: ==> ZERO",
		"2: ==> MAP 0",
		"3: ==> UNMAP 0:1",
		"3: ==> ZERO",
		"3: ==> MAP 1",
	}, rec.Lines())
}

func TestSegvOnUnmappedVPage(t *testing.T) {
	proc := NewProcess(0, []VMA{{StartVPage: 0, EndVPage: 1}})
	sim, err := New(2, []*Process{proc}, NewFIFOPager(), rng.New([]int64{0}), nil)
	require.NoError(t, err)
	sim.currentPID = 0

	summary := sim.Run([]Instruction{{Op: 'r', Arg: 10}})

	require.Equal(t, 1, summary.Segv)
	require.Equal(t, 0, summary.Maps)
}

func TestWriteToWriteProtectedPageEmitsSegprot(t *testing.T) {
	proc := NewProcess(0, []VMA{{StartVPage: 0, EndVPage: 1, WriteProtected: true}})
	sim, err := New(2, []*Process{proc}, NewFIFOPager(), rng.New([]int64{0}), nil)
	require.NoError(t, err)
	sim.currentPID = 0

	summary := sim.Run([]Instruction{{Op: 'w', Arg: 0}})

	require.Equal(t, 1, summary.Maps) // the fault still succeeds
	require.Equal(t, 1, summary.Segprot)
	require.False(t, proc.PageTable[0].Modified)
}

func TestProcessExitUnmapsAllValidPages(t *testing.T) {
	proc := NewProcess(0, []VMA{{StartVPage: 0, EndVPage: 3}})
	sim, err := New(4, []*Process{proc}, NewFIFOPager(), rng.New([]int64{0}), nil)
	require.NoError(t, err)
	sim.currentPID = 0

	summary := sim.Run([]Instruction{
		{Op: 'r', Arg: 0},
		{Op: 'r', Arg: 1},
		{Op: 'e', Arg: 0},
	})

	require.Equal(t, 2, summary.Unmaps)
	require.Equal(t, 1, summary.ProcessExits)
	require.False(t, proc.PageTable[0].Valid)
	require.False(t, proc.PageTable[1].Valid)
}

func TestClockGivesReferencedFramesASecondChance(t *testing.T) {
	proc := NewProcess(0, []VMA{{StartVPage: 0, EndVPage: 3}})
	sim, err := New(2, []*Process{proc}, NewClockPager(), rng.New([]int64{0}), nil)
	require.NoError(t, err)
	sim.currentPID = 0

	// vp0, vp1 map to f0,f1, both referenced. Faulting in vp2 sweeps the
	// hand across both (clearing each referenced bit in turn) and comes
	// back around to evict f0, the first frame the hand revisits with a
	// clear bit.
	summary := sim.Run([]Instruction{
		{Op: 'r', Arg: 0},
		{Op: 'r', Arg: 1},
		{Op: 'r', Arg: 0},
		{Op: 'r', Arg: 2},
	})

	require.False(t, proc.PageTable[0].Valid)
	require.True(t, proc.PageTable[1].Valid)
	require.True(t, proc.PageTable[2].Valid)
	require.Equal(t, 1, summary.Unmaps)
}

func TestAgingResetsAgeToZeroOnMap(t *testing.T) {
	proc := NewProcess(0, []VMA{{StartVPage: 0, EndVPage: 1}})
	sim, err := New(2, []*Process{proc}, NewAgingPager(), rng.New([]int64{0}), nil)
	require.NoError(t, err)
	sim.currentPID = 0

	sim.Run([]Instruction{{Op: 'r', Arg: 0}})

	require.Equal(t, uint32(0), sim.FrameAge(proc.PageTable[0].FrameNumber))
}

func TestWorkingSetEvictsWhenNoFrameIsFree(t *testing.T) {
	proc := NewProcess(0, []VMA{{StartVPage: 0, EndVPage: 3}})
	sim, err := New(1, []*Process{proc}, NewWorkingSetPager(), rng.New([]int64{0}), nil)
	require.NoError(t, err)
	sim.currentPID = 0

	instrs := []Instruction{{Op: 'r', Arg: 0}}
	for i := 0; i < workingSetTau; i++ {
		instrs = append(instrs, Instruction{Op: 'r', Arg: 1})
	}
	summary := sim.Run(instrs)

	// With a single frame, the first fault on vp1 finds no free frame, so
	// the pager must evict vp0's frame; vp1 then stays resident for the
	// remaining references.
	require.GreaterOrEqual(t, summary.Unmaps, 1)
}

func TestRandomPagerStaysWithinBounds(t *testing.T) {
	proc := NewProcess(0, []VMA{{StartVPage: 0, EndVPage: 7}})
	sim, err := New(2, []*Process{proc}, NewRandomPager(), rng.New([]int64{-3, 5, 100}), nil)
	require.NoError(t, err)
	sim.currentPID = 0

	summary := sim.Run([]Instruction{
		{Op: 'r', Arg: 0},
		{Op: 'r', Arg: 1},
		{Op: 'r', Arg: 2},
		{Op: 'r', Arg: 3},
	})

	require.Equal(t, 4, summary.Maps)
	require.Equal(t, 2, summary.Unmaps)
}

func TestNewSimulatorRejectsOversizedFrameCount(t *testing.T) {
	_, err := New(MaxFrames+1, nil, NewFIFOPager(), rng.New([]int64{0}), nil)
	require.Error(t, err)
}

func TestNewPagerUnknownLetter(t *testing.T) {
	_, err := NewPager('z')
	require.Error(t, err)
}
