package mmu

// AgingPager approximates LRU with a 32-bit age counter per frame:
// every scan shifts age right by one, OR-ing in the sign bit for any
// frame that was referenced since the last scan (spec.md §4.3).
type AgingPager struct {
	hand int
}

// NewAgingPager constructs an AgingPager.
func NewAgingPager() *AgingPager {
	return &AgingPager{}
}

func (p *AgingPager) SelectVictim(v FrameView) int {
	n := v.NumFrames()
	best := -1
	var bestAge uint32

	for i := 0; i < n; i++ {
		idx := (p.hand + i) % n
		pte := v.PTEAt(idx)
		age := v.FrameAge(idx) >> 1
		if pte.Referenced {
			age |= 0x80000000
			pte.Referenced = false
		}
		v.SetFrameAge(idx, age)
		if best < 0 || age < bestAge {
			best, bestAge = idx, age
		}
	}

	p.hand = (best + 1) % n
	return best
}

func (p *AgingPager) UpdateAge(v FrameView, frameIdx int) {
	v.SetFrameAge(frameIdx, 0)
}
