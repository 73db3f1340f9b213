package mmu

import "github.com/oslab-go/ossim/internal/simerr"

// NewPager builds the Pager named by a -a letter: f (FIFO), r (Random),
// c (Clock), e (NRU / Enhanced Second-Chance), a (Aging), w (WorkingSet)
// (spec.md §6's "-a {f|r|c|e|a|w}").
func NewPager(letter byte) (Pager, error) {
	switch letter {
	case 'f':
		return NewFIFOPager(), nil
	case 'r':
		return NewRandomPager(), nil
	case 'c':
		return NewClockPager(), nil
	case 'e':
		return NewNRUPager(), nil
	case 'a':
		return NewAgingPager(), nil
	case 'w':
		return NewWorkingSetPager(), nil
	default:
		return nil, simerr.Newf("select mmu pager", simerr.CodeBadFlag, "unknown mmu pager letter %q", letter)
	}
}
