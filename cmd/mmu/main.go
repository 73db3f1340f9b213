// Command mmu runs the MMU virtual-memory simulator over a scenario
// file, a random-number file, and one of the six page-replacement
// policies (spec.md §6).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/oslab-go/ossim/internal/loader"
	"github.com/oslab-go/ossim/internal/logging"
	"github.com/oslab-go/ossim/internal/rng"
	"github.com/oslab-go/ossim/mmu"
)

func main() {
	nFrames := flag.Int("f", 16, "number of physical frames (max 128)")
	pagerLetter := flag.String("a", "f", "page-replacement policy: f|r|c|e|a|w")
	// -o accepts the historical trace-category subset (OPFSxyfa) for
	// CLI compatibility; only per-instruction tracing (gated by -v) is
	// wired to the logger today.
	_ = flag.String("o", "", "trace options, any subset of OPFSxyfa")
	verbose := flag.Bool("v", false, "verbose per-instruction trace")
	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "usage: mmu -f <n_frames> -a <pager> <scenario> <random-file>")
		os.Exit(1)
	}

	logConfig := logging.DefaultConfig()
	if !*verbose {
		logConfig.Level = logging.LevelSilent
	}
	logger := logging.NewLogger(logConfig)

	if len(*pagerLetter) == 0 {
		fatal(fmt.Errorf("pager letter required"))
	}
	pager, err := mmu.NewPager((*pagerLetter)[0])
	if err != nil {
		fatal(err)
	}

	randFile, err := os.Open(flag.Arg(1))
	if err != nil {
		fatal(err)
	}
	defer randFile.Close()

	values, err := loader.LoadRandomFile(randFile)
	if err != nil {
		fatal(err)
	}
	source := rng.New(values)

	scenarioFile, err := os.Open(flag.Arg(0))
	if err != nil {
		fatal(err)
	}
	defer scenarioFile.Close()

	processes, instrs, err := loader.LoadMMUScenario(scenarioFile)
	if err != nil {
		fatal(err)
	}

	sim, err := mmu.New(*nFrames, processes, pager, source, logger)
	if err != nil {
		fatal(err)
	}

	summary := sim.Run(instrs)

	fmt.Printf("maps=%d unmaps=%d ins=%d outs=%d fins=%d fouts=%d zeros=%d segv=%d segprot=%d ctx=%d exits=%d\n",
		summary.Maps, summary.Unmaps, summary.Ins, summary.Outs, summary.Fins, summary.Fouts,
		summary.Zeros, summary.Segv, summary.Segprot, summary.CtxSwitches, summary.ProcessExits)
	fmt.Printf("Cost: %d\n", summary.TotalCost)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
