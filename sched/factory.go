package sched

import (
	"strconv"
	"strings"

	"github.com/oslab-go/ossim/internal/simerr"
)

// defaultMaxPrio is the maxprio used when a PRIO/PREPRIO spec omits the
// ":L" suffix (spec.md §4.2: "maxprio default is 4").
const defaultMaxPrio = 4

// NewPolicy parses a -s policy-spec of the form "F|L|S|R<q>|P<q>[:L]|E<q>[:L]"
// (spec.md §6) and builds the matching Policy.
func NewPolicy(spec string) (Policy, error) {
	if spec == "" {
		return nil, simerr.New("select sched policy", simerr.CodeBadFlag, "empty policy spec")
	}

	switch spec[0] {
	case 'F':
		return NewFCFSPolicy(), nil
	case 'L':
		return NewLCFSPolicy(), nil
	case 'S':
		return NewSRTFPolicy(), nil
	case 'R':
		q, err := parseQuantum(spec[1:])
		if err != nil {
			return nil, err
		}
		return NewRRPolicy(q), nil
	case 'P':
		q, levels, err := parseQuantumAndLevels(spec[1:])
		if err != nil {
			return nil, err
		}
		return NewPrioPolicy(q, levels), nil
	case 'E':
		q, levels, err := parseQuantumAndLevels(spec[1:])
		if err != nil {
			return nil, err
		}
		return NewPrePrioPolicy(q, levels), nil
	default:
		return nil, simerr.Newf("select sched policy", simerr.CodeBadFlag, "unknown sched policy spec %q", spec)
	}
}

func parseQuantum(rest string) (int, error) {
	q, err := strconv.Atoi(rest)
	if err != nil {
		return 0, simerr.Wrap("parse sched quantum", simerr.CodeBadFlag, err)
	}
	return q, nil
}

func parseQuantumAndLevels(rest string) (int, int, error) {
	parts := strings.SplitN(rest, ":", 2)
	q, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, simerr.Wrap("parse sched quantum", simerr.CodeBadFlag, err)
	}
	if len(parts) == 1 {
		return q, defaultMaxPrio, nil
	}
	levels, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, simerr.Wrap("parse sched maxprio", simerr.CodeBadFlag, err)
	}
	return q, levels, nil
}
