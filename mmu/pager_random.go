package mmu

// RandomPager draws a victim frame directly from the deterministic
// random source, modulo the frame count (spec.md §4.3: "victim = sample
// mod n_frames" — the raw sample, not the 1-based SCHED convention).
type RandomPager struct{}

// NewRandomPager constructs a RandomPager.
func NewRandomPager() *RandomPager {
	return &RandomPager{}
}

func (p *RandomPager) SelectVictim(v FrameView) int {
	n := int64(v.NumFrames())
	sample := v.RandomSource().NextRaw() % n
	if sample < 0 {
		sample += n
	}
	return int(sample)
}

func (p *RandomPager) UpdateAge(v FrameView, frameIdx int) {}
