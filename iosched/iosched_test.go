package iosched

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oslab-go/ossim/internal/fixture"
	"github.com/oslab-go/ossim/internal/logging"
)

func TestScenarioA_FIFOSingleRequest(t *testing.T) {
	rec := fixture.NewRecorder(logging.LevelInfo)
	reqs := []*Request{{Arrival: 0, Track: 42, Start: -1, Completion: -1}}
	sim := New(reqs, NewFIFOPolicy(), rec)

	summary := sim.Run()

	require.Equal(t, 0, reqs[0].Start)
	require.Equal(t, 42, reqs[0].Completion)
	require.Equal(t, 42, summary.TotalTime)
	require.Equal(t, 42, summary.TotalHeadMovement)
	require.InDelta(t, 1.0, summary.Utilization, 1e-9)
	require.InDelta(t, 42.0, summary.AvgTurnaround, 1e-9)
	require.InDelta(t, 0.0, summary.AvgWait, 1e-9)
	require.Equal(t, 0, summary.MaxWait)

	require.Equal(t, []string{
		"0: 42 add",
		"0: 42 dispatch",
		"42: 42 done",
	}, rec.Lines())
}

func TestScenarioB_SSTFServiceOrder(t *testing.T) {
	req0 := &Request{Arrival: 0, Track: 10, Start: -1, Completion: -1}
	req1 := &Request{Arrival: 1, Track: 20, Start: -1, Completion: -1}
	req2 := &Request{Arrival: 2, Track: 15, Start: -1, Completion: -1}

	sim := New([]*Request{req0, req1, req2}, NewSSTFPolicy(), nil)
	summary := sim.Run()

	require.Equal(t, 10, req0.Completion)
	require.Equal(t, 15, req2.Completion)
	require.Equal(t, 20, req1.Completion)
	require.Equal(t, 20, summary.TotalHeadMovement)
}

func TestZeroMovementDispatchCompletesSameTick(t *testing.T) {
	req := &Request{Arrival: 0, Track: 0, Start: -1, Completion: -1}
	sim := New([]*Request{req}, NewFIFOPolicy(), nil)

	sim.Run()

	require.Equal(t, 0, req.Start)
	require.Equal(t, 0, req.Completion)
}

func TestLOOKReversesDirectionAtEdge(t *testing.T) {
	// Head starts at 5; one request behind it, one ahead.
	reqs := []*Request{
		{Arrival: 0, Track: 2, Start: -1, Completion: -1},
		{Arrival: 0, Track: 8, Start: -1, Completion: -1},
	}
	p := NewLOOKPolicy()
	p.Add(reqs[0])
	p.Add(reqs[1])

	// At head=5, +1 direction should prefer the request ahead (track 8).
	r, ok := p.Next(5)
	require.True(t, ok)
	require.Equal(t, 8, r.Track)

	// At head=8 nothing remains at or above the head, so LOOK reverses to
	// -1 and takes the request behind it (track 2).
	r, ok = p.Next(8)
	require.True(t, ok)
	require.Equal(t, 2, r.Track)
}

func TestCLOOKWrapsToLowestTrack(t *testing.T) {
	reqs := []*Request{
		{Arrival: 0, Track: 5, Start: -1, Completion: -1},
		{Arrival: 0, Track: 90, Start: -1, Completion: -1},
	}
	p := NewCLOOKPolicy()
	p.Add(reqs[0])
	p.Add(reqs[1])

	// head=95: nothing ahead (>=95), so it wraps to the smallest track (5).
	r, ok := p.Next(95)
	require.True(t, ok)
	require.Equal(t, 5, r.Track)
}

func TestFLOOKSwapsQueuesOnDrain(t *testing.T) {
	p := NewFLOOKPolicy()
	r1 := &Request{Arrival: 0, Track: 10}
	p.Add(r1)

	got, ok := p.Next(0)
	require.True(t, ok)
	require.Same(t, r1, got)

	// Active queue is now empty; a newly added request lands on "add"
	// until the next Next() call swaps it in.
	r2 := &Request{Arrival: 1, Track: 20}
	p.Add(r2)
	got, ok = p.Next(10)
	require.True(t, ok)
	require.Same(t, r2, got)
}

func TestNewPolicyUnknownLetter(t *testing.T) {
	_, err := NewPolicy('Z')
	require.Error(t, err)
}

func TestDeterminismAcrossRuns(t *testing.T) {
	build := func() []*Request {
		return []*Request{
			{Arrival: 0, Track: 10, Start: -1, Completion: -1},
			{Arrival: 1, Track: 20, Start: -1, Completion: -1},
			{Arrival: 2, Track: 15, Start: -1, Completion: -1},
		}
	}

	reqsA := build()
	sA := New(reqsA, NewSSTFPolicy(), nil).Run()

	reqsB := build()
	sB := New(reqsB, NewSSTFPolicy(), nil).Run()

	require.Equal(t, sA, sB)
	for i := range reqsA {
		require.Equal(t, fmt.Sprintf("%+v", reqsA[i]), fmt.Sprintf("%+v", reqsB[i]))
	}
}
