package mmu

// FIFOPager evicts frames in the order they were last mapped, tracked by
// a circular hand (spec.md §4.3).
type FIFOPager struct {
	hand int
}

// NewFIFOPager constructs a FIFOPager.
func NewFIFOPager() *FIFOPager {
	return &FIFOPager{}
}

func (p *FIFOPager) SelectVictim(v FrameView) int {
	victim := p.hand
	p.hand = (p.hand + 1) % v.NumFrames()
	return victim
}

func (p *FIFOPager) UpdateAge(v FrameView, frameIdx int) {}
