// Package lnk implements the two-pass relocating linker (spec.md §4.4):
// a straightforward token-stream parser kept mainly to exercise the
// tokenizer contract also available to IOSCH/SCHED/MMU's loaders.
package lnk

import (
	"fmt"
	"io"
	"strconv"

	"github.com/oslab-go/ossim/internal/simerr"
	"github.com/oslab-go/ossim/internal/tokenizer"
)

// AddressMode selects how an instruction's operand is resolved in pass
// two: Immediate and Absolute pass the operand through unchanged,
// External resolves it as an index into the module's use list, and
// Relative adds the module's base address.
type AddressMode byte

const (
	Immediate AddressMode = 'I'
	External  AddressMode = 'E'
	Absolute  AddressMode = 'A'
	Relative  AddressMode = 'R'
)

// Diagnostic is a non-fatal, per-record error surfaced during pass two
// (spec.md §4.4): an external operand outside the use list, or a use-list
// symbol with no definition, is reported but does not abort the run,
// mirroring spec.md §7's split between fatal scenario errors and
// recoverable runtime events. Relative operands are not range-checked.
type Diagnostic struct {
	Address int
	Message string
}

// MemoryMapEntry is one resolved output line from pass two.
type MemoryMapEntry struct {
	Address     int
	Instruction int
}

// Linker holds the symbol table and module layout built by pass one.
type Linker struct {
	symbolTable map[string]int
	modules     []moduleLayout
}

type moduleLayout struct {
	base    int
	useList []string
	records []rawRecord
}

type rawRecord struct {
	mode    AddressMode
	opcode  int
	operand int
}

// New constructs an empty Linker.
func New() *Linker {
	return &Linker{symbolTable: make(map[string]int)}
}

// Run tokenizes r once and runs both passes over the buffered module
// list, returning the resolved memory map, the symbol table, and any
// per-record diagnostics collected in pass two.
func (l *Linker) Run(r io.Reader) ([]MemoryMapEntry, map[string]int, []Diagnostic, error) {
	tok := tokenizer.New(r)
	if err := l.pass1(tok); err != nil {
		return nil, nil, nil, err
	}
	entries, diags := l.pass2()
	return entries, l.symbolTable, diags, nil
}

func (l *Linker) pass1(tok *tokenizer.Tokenizer) error {
	baseAddr := 0
	for {
		defcount, ok, err := readInt(tok)
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		mod := moduleLayout{base: baseAddr}
		for i := 0; i < defcount; i++ {
			symbol, err := readSymbol(tok)
			if err != nil {
				return err
			}
			relAddr, _, err := readInt(tok)
			if err != nil {
				return err
			}
			l.symbolTable[symbol] = baseAddr + relAddr
		}

		usecount, _, err := readInt(tok)
		if err != nil {
			return err
		}
		for i := 0; i < usecount; i++ {
			symbol, err := readSymbol(tok)
			if err != nil {
				return err
			}
			mod.useList = append(mod.useList, symbol)
		}

		codecount, _, err := readInt(tok)
		if err != nil {
			return err
		}
		for i := 0; i < codecount; i++ {
			mode, err := readMode(tok)
			if err != nil {
				return err
			}
			instruction, _, err := readInt(tok)
			if err != nil {
				return err
			}
			mod.records = append(mod.records, rawRecord{mode: mode, opcode: instruction / 1000, operand: instruction % 1000})
		}

		l.modules = append(l.modules, mod)
		baseAddr += len(mod.records)
	}
	return nil
}

func (l *Linker) pass2() ([]MemoryMapEntry, []Diagnostic) {
	var entries []MemoryMapEntry
	var diags []Diagnostic

	for _, mod := range l.modules {
		for i, rec := range mod.records {
			addr := mod.base + i
			instruction := rec.opcode*1000 + rec.operand

			switch rec.mode {
			case Immediate, Absolute:
				// Operand passes through unchanged.
			case Relative:
				instruction = rec.opcode*1000 + (mod.base + rec.operand)
			case External:
				if rec.operand < 0 || rec.operand >= len(mod.useList) {
					diags = append(diags, Diagnostic{Address: addr, Message: fmt.Sprintf("%d is not a valid external operand", rec.operand)})
					break
				}
				symbol := mod.useList[rec.operand]
				symAddr, ok := l.symbolTable[symbol]
				if !ok {
					diags = append(diags, Diagnostic{Address: addr, Message: fmt.Sprintf("%s is not defined", symbol)})
					break
				}
				instruction = rec.opcode*1000 + symAddr
			}

			entries = append(entries, MemoryMapEntry{Address: addr, Instruction: instruction})
		}
	}
	return entries, diags
}

func readInt(tok *tokenizer.Tokenizer) (int, bool, error) {
	t, ok := tok.Next()
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(t.Value)
	if err != nil {
		return 0, false, simerr.Wrap("parse linker module", simerr.CodeBadScenario, err).
			WithContext("line", strconv.Itoa(t.Line)).WithContext("offset", strconv.Itoa(t.Offset))
	}
	return n, true, nil
}

func readSymbol(tok *tokenizer.Tokenizer) (string, error) {
	t, ok := tok.Next()
	if !ok {
		return "", simerr.New("parse linker module", simerr.CodeBadScenario, "unexpected end of input while reading a symbol")
	}
	return t.Value, nil
}

func readMode(tok *tokenizer.Tokenizer) (AddressMode, error) {
	t, ok := tok.Next()
	if !ok || len(t.Value) == 0 {
		return 0, simerr.New("parse linker module", simerr.CodeBadScenario, "unexpected end of input while reading an address mode")
	}
	return AddressMode(t.Value[0]), nil
}
