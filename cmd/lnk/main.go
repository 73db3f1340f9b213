// Command lnk runs the illustrative two-pass linker (spec.md §4.4) over
// a module-list input file, printing the resolved symbol table and
// memory map.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/oslab-go/ossim/lnk"
)

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: lnk <input>")
		os.Exit(1)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fatal(err)
	}
	defer f.Close()

	linker := lnk.New()
	entries, symbols, diags, err := linker.Run(f)
	if err != nil {
		fatal(err)
	}

	fmt.Println("Symbol Table")
	names := make([]string, 0, len(symbols))
	for name := range symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s=%d\n", name, symbols[name])
	}

	fmt.Println()
	fmt.Println("Memory Map")
	for _, e := range entries {
		fmt.Printf("%03d: %04d\n", e.Address, e.Instruction)
	}

	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "Error: %s at address %d\n", d.Message, d.Address)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
