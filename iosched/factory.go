package iosched

import "github.com/oslab-go/ossim/internal/simerr"

// NewPolicy builds the Policy named by a -s letter: N (FIFO), S (SSTF),
// L (LOOK), C (CLOOK), F (FLOOK). Letters follow the historical FIFO
// name "N" the original iosched CLI used (see spec.md §6's
// "-s {N|S|L|C|F}").
func NewPolicy(letter byte) (Policy, error) {
	switch letter {
	case 'N':
		return NewFIFOPolicy(), nil
	case 'S':
		return NewSSTFPolicy(), nil
	case 'L':
		return NewLOOKPolicy(), nil
	case 'C':
		return NewCLOOKPolicy(), nil
	case 'F':
		return NewFLOOKPolicy(), nil
	default:
		return nil, simerr.Newf("select iosched policy", simerr.CodeBadFlag, "unknown iosched policy letter %q", letter)
	}
}
