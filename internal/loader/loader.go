// Package loader parses the scenario and random-number text files
// described in spec.md §6 into the typed values the simulator cores
// consume. It is explicitly the "external collaborator" spec.md §1
// treats as out of scope for the cores themselves — iosched, sched, and
// mmu never see raw text, only []iosched.Request, []*sched.Process, and
// ([]*mmu.Process, []mmu.Instruction).
package loader

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/oslab-go/ossim/internal/ifaces"
	"github.com/oslab-go/ossim/internal/simerr"
	"github.com/oslab-go/ossim/iosched"
	"github.com/oslab-go/ossim/mmu"
	"github.com/oslab-go/ossim/sched"
)

// wordStream flattens a scenario file into whitespace-delimited tokens,
// skipping blank lines and '#'-prefixed comment lines (spec.md §6). The
// formats here are fixed-shape records rather than the free-form stream
// the linker's tokenizer contract targets, so a line-oriented scan (not
// internal/tokenizer) is the natural fit.
type wordStream struct {
	words []string
	pos   int
}

func newWordStream(r io.Reader) *wordStream {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.Fields(line)...)
	}
	return &wordStream{words: words}
}

func (w *wordStream) done() bool { return w.pos >= len(w.words) }

func (w *wordStream) next(op string) (string, error) {
	if w.pos >= len(w.words) {
		return "", simerr.New(op, simerr.CodeBadScenario, "unexpected end of input")
	}
	tok := w.words[w.pos]
	w.pos++
	return tok, nil
}

func (w *wordStream) nextInt(op string) (int, error) {
	tok, err := w.next(op)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(tok)
	if convErr != nil {
		return 0, simerr.Wrap(op, simerr.CodeBadScenario, convErr).WithContext("token", tok)
	}
	return n, nil
}

func (w *wordStream) nextBool01(op string) (bool, error) {
	n, err := w.nextInt(op)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// LoadRandomFile parses the random-number file format (spec.md §6): a
// leading count N followed by N signed integers.
func LoadRandomFile(r io.Reader) ([]int64, error) {
	const op = "load random file"
	ws := newWordStream(r)

	n, err := ws.nextInt(op)
	if err != nil {
		return nil, err
	}

	values := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		tok, err := ws.next(op)
		if err != nil {
			return nil, err
		}
		v, convErr := strconv.ParseInt(tok, 10, 64)
		if convErr != nil {
			return nil, simerr.Wrap(op, simerr.CodeBadRandomFile, convErr).WithContext("token", tok)
		}
		values = append(values, v)
	}
	return values, nil
}

// LoadIOSCHScenario parses "<arrival> <track>" lines into Requests whose
// Start/Completion are unset (spec.md §6).
func LoadIOSCHScenario(r io.Reader) ([]*iosched.Request, error) {
	const op = "load iosch scenario"
	ws := newWordStream(r)

	var requests []*iosched.Request
	for !ws.done() {
		arrival, err := ws.nextInt(op)
		if err != nil {
			return nil, err
		}
		track, err := ws.nextInt(op)
		if err != nil {
			return nil, err
		}
		requests = append(requests, &iosched.Request{Arrival: arrival, Track: track, Start: -1, Completion: -1})
	}
	return requests, nil
}

// LoadSCHEDScenario parses "<AT> <TC> <CB> <IO>" lines, drawing each
// process's static priority from source in file order with modulus
// maxPrio (spec.md §6).
func LoadSCHEDScenario(r io.Reader, source ifaces.RandomSource, maxPrio int) ([]*sched.Process, error) {
	const op = "load sched scenario"
	ws := newWordStream(r)

	var processes []*sched.Process
	id := 0
	for !ws.done() {
		at, err := ws.nextInt(op)
		if err != nil {
			return nil, err
		}
		tc, err := ws.nextInt(op)
		if err != nil {
			return nil, err
		}
		cb, err := ws.nextInt(op)
		if err != nil {
			return nil, err
		}
		ioBurst, err := ws.nextInt(op)
		if err != nil {
			return nil, err
		}
		staticPrio := source.NextBounded(maxPrio)
		processes = append(processes, sched.NewProcess(id, at, tc, cb, ioBurst, staticPrio))
		id++
	}
	return processes, nil
}

// LoadMMUScenario parses n_processes, each process's VMA list, and the
// trailing instruction stream (spec.md §6).
func LoadMMUScenario(r io.Reader) ([]*mmu.Process, []mmu.Instruction, error) {
	const op = "load mmu scenario"
	ws := newWordStream(r)

	nProcs, err := ws.nextInt(op)
	if err != nil {
		return nil, nil, err
	}

	processes := make([]*mmu.Process, 0, nProcs)
	for pid := 0; pid < nProcs; pid++ {
		nVMAs, err := ws.nextInt(op)
		if err != nil {
			return nil, nil, err
		}
		vmas := make([]mmu.VMA, 0, nVMAs)
		for i := 0; i < nVMAs; i++ {
			start, err := ws.nextInt(op)
			if err != nil {
				return nil, nil, err
			}
			end, err := ws.nextInt(op)
			if err != nil {
				return nil, nil, err
			}
			wprot, err := ws.nextBool01(op)
			if err != nil {
				return nil, nil, err
			}
			fmap, err := ws.nextBool01(op)
			if err != nil {
				return nil, nil, err
			}
			vmas = append(vmas, mmu.VMA{StartVPage: start, EndVPage: end, WriteProtected: wprot, FileMapped: fmap})
		}
		processes = append(processes, mmu.NewProcess(pid, vmas))
	}

	var instrs []mmu.Instruction
	for !ws.done() {
		opTok, err := ws.next(op)
		if err != nil {
			return nil, nil, err
		}
		arg, err := ws.nextInt(op)
		if err != nil {
			return nil, nil, err
		}
		instrs = append(instrs, mmu.Instruction{Op: opTok[0], Arg: arg})
	}
	return processes, instrs, nil
}
