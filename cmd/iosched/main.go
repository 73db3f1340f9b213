// Command iosched runs the IOSCH disk-scheduling simulator over a
// scenario file and one of the five arm-scheduling policies (spec.md
// §6).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/oslab-go/ossim/internal/loader"
	"github.com/oslab-go/ossim/internal/logging"
	"github.com/oslab-go/ossim/iosched"
)

func main() {
	policyLetter := flag.String("s", "N", "disk-scheduling policy: N|S|L|C|F")
	verbose := flag.Bool("v", false, "verbose per-tick trace")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: iosched -s <policy> <scenario>")
		os.Exit(1)
	}

	logConfig := logging.DefaultConfig()
	if !*verbose {
		logConfig.Level = logging.LevelSilent
	}
	logger := logging.NewLogger(logConfig)

	if len(*policyLetter) == 0 {
		fatal(fmt.Errorf("policy letter required"))
	}
	policy, err := iosched.NewPolicy((*policyLetter)[0])
	if err != nil {
		fatal(err)
	}

	scenarioFile, err := os.Open(flag.Arg(0))
	if err != nil {
		fatal(err)
	}
	defer scenarioFile.Close()

	requests, err := loader.LoadIOSCHScenario(scenarioFile)
	if err != nil {
		fatal(err)
	}

	sim := iosched.New(requests, policy, logger)
	summary := sim.Run()

	for _, r := range requests {
		fmt.Printf("%5d: %5d %5d\n", r.Arrival, r.Start, r.Completion)
	}
	fmt.Printf("SUM: %d %d %.4f %.2f %.2f %d\n",
		summary.TotalTime, summary.TotalHeadMovement, summary.Utilization,
		summary.AvgTurnaround, summary.AvgWait, summary.MaxWait)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
