// Command sched runs the SCHED CPU-scheduling simulator over a scenario
// file, a random-number file, and one of the six dispatch policies
// (spec.md §6).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/oslab-go/ossim/internal/loader"
	"github.com/oslab-go/ossim/internal/logging"
	"github.com/oslab-go/ossim/internal/rng"
	"github.com/oslab-go/ossim/sched"
)

func main() {
	policySpec := flag.String("s", "F", "policy spec: F|L|S|R<q>|P<q>[:L]|E<q>[:L]")
	verbose := flag.Bool("v", false, "verbose event trace")
	flag.Parse()

	if flag.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "usage: sched -s <policy-spec> <scenario> <random-file>")
		os.Exit(1)
	}

	logConfig := logging.DefaultConfig()
	if !*verbose {
		logConfig.Level = logging.LevelSilent
	}
	logger := logging.NewLogger(logConfig)

	policy, err := sched.NewPolicy(*policySpec)
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

	processes, err := loader.LoadSCHEDScenario(scenarioFile, source, policy.MaxPrio())
	if err != nil {
		fatal(err)
	}

	sim := sched.New(processes, policy, source, logger)
	summary := sim.Run()

	for _, p := range processes {
		fmt.Printf("%04d: %4d %4d %4d %4d %d | %5d %5d %5d %5d\n",
			p.ID, p.ArrivalTime, p.TotalCPU, p.CPUBurstMax, p.IOBurstMax, p.StaticPriority,
			p.FinishTime, p.Turnaround, p.IOTime, p.WaitingTime)
	}
	fmt.Printf("SUM: %d %.2f%% %.2f%% %.2f %.2f %.3f\n",
		summary.FinishTime, summary.CPUUtil, summary.IOUtil,
		summary.AvgTurnaround, summary.AvgWait, summary.Throughput)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
