// Command relaysim is a headless batch runner: it loads one document
// JSON path from os.Args, builds an akita serial engine plus a relaysim
// Engine, runs to stability/oscillation/timeout, and prints a
// statistics table, in the same shape as zeonica's samples/*/main.go.
// It is not a terminal command interface (spec.md §1's Non-goals still
// exclude that); it runs once and exits.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/relaysim/diag"
	"github.com/sarchlab/relaysim/engineconfig"
	"github.com/sarchlab/relaysim/interact"
	"github.com/sarchlab/relaysim/logging"
	"github.com/sarchlab/relaysim/monitor"
	"github.com/sarchlab/relaysim/persist"
)

func main() {
	maxIterations := flag.Int("max-iterations", engineconfig.DefaultMaxIterations, "maximum settle iterations per step before OSCILLATION_ERROR")
	timeoutSeconds := flag.Float64("timeout-seconds", 30, "maximum simulated seconds before TIMEOUT_ERROR (0 disables)")
	withMonitor := flag.Bool("monitor", false, "start the akita monitoring web server")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: relaysim [flags] <document.json>")
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "relaysim:", err)
		os.Exit(1)
	}

	doc, err := persist.Load(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "relaysim: load failed:", err)
		os.Exit(1)
	}

	akitaEngine := sim.NewSerialEngine()

	var mon *monitor.Server
	if *withMonitor {
		mon = monitor.New()
		mon.RegisterEngine(akitaEngine)
	}

	builder := engineconfig.NewBuilder().
		WithEngine(akitaEngine).
		WithFreq(1 * sim.GHz).
		WithMaxIterations(*maxIterations).
		WithTimeoutSeconds(*timeoutSeconds)

	e, err := builder.Build("RelaySimEngine", doc)
	if err != nil {
		fmt.Fprintln(os.Stderr, "relaysim: initialize failed:", err)
		os.Exit(1)
	}

	diag.PrintTopologyWarnings(os.Stdout, e.Manager().BuildDiagnostics())
	diag.PrintLinkDiagnostics(os.Stdout, e.Manager().LinkDiagnostics())

	queue := interact.NewCommandQueue(e)
	e.SetCommandQueue(queue)

	if mon != nil {
		mon.RegisterSimulation(e)
		mon.StartServer()
	}

	if err := akitaEngine.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "relaysim: engine run failed:", err)
	}

	if err := e.Err(); err != nil {
		logging.Bridge("run ended with error", "error", err)
	}

	diag.PrintStatistics(os.Stdout, e.GetStatistics())

	e.Shutdown()
	atexit.Exit(0)
}
