package mmu

// workingSetTau is the working-set window, in instructions (spec.md
// §4.3: "WorkingSet (τ = 50)").
const workingSetTau = 50

// WorkingSetPager evicts the first frame, scanning from hand, whose idle
// time has reached τ; absent such a frame, it falls back to the
// minimum-age unreferenced frame seen during the scan, or to the frame at
// hand when every frame was referenced (spec.md §4.3).
type WorkingSetPager struct {
	hand int
}

// NewWorkingSetPager constructs a WorkingSetPager.
func NewWorkingSetPager() *WorkingSetPager {
	return &WorkingSetPager{}
}

func (p *WorkingSetPager) SelectVictim(v FrameView) int {
	n := v.NumFrames()
	instrIdx := uint32(v.InstructionIndex())

	minIdx := -1
	var minAge uint32
	selected := -1

	for i := 0; i < n; i++ {
		idx := (p.hand + i) % n
		pte := v.PTEAt(idx)

		if pte.Referenced {
			pte.Referenced = false
			v.SetFrameAge(idx, instrIdx)
			continue
		}

		age := v.FrameAge(idx)
		if instrIdx-age >= workingSetTau {
			selected = idx
			break
		}
		if minIdx < 0 || age < minAge {
			minIdx, minAge = idx, age
		}
	}

	victim := selected
	if victim < 0 {
		victim = minIdx
	}
	if victim < 0 {
		victim = p.hand
	}

	p.hand = (victim + 1) % n
	return victim
}

func (p *WorkingSetPager) UpdateAge(v FrameView, frameIdx int) {
	v.SetFrameAge(frameIdx, uint32(v.InstructionIndex()))
}
