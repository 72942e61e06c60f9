package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/procsim/unitsim/monitoring"
	"github.com/procsim/unitsim/record"
	"github.com/procsim/unitsim/solver"
)

func newRunCmd() *cobra.Command {
	var (
		traceDB     string
		monitor     bool
		monitorPort int
		openBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "run <case-file>",
		Short: "Build and initialize the model described by a case file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCase(args[0], traceDB, monitor, monitorPort, openBrowser)
		},
	}

	cmd.Flags().StringVar(&traceDB, "trace", "",
		"record solver invocations into a SQLite file at this path")
	cmd.Flags().BoolVar(&monitor, "monitor", false,
		"serve the model state over HTTP while running")
	cmd.Flags().IntVar(&monitorPort, "port", 0,
		"port of the monitoring server, random if unset")
	cmd.Flags().BoolVar(&openBrowser, "open-browser", false,
		"open the monitoring server in the default browser")

	return cmd
}

func runCase(
	path, traceDB string,
	monitor bool,
	monitorPort int,
	openBrowser bool,
) error {
	c, err := loadCaseFile(path)
	if err != nil {
		return err
	}

	u, err := c.buildHeater()
	if err != nil {
		return err
	}

	if monitor {
		m := monitoring.NewMonitor()
		if monitorPort != 0 {
			m.WithPortNumber(monitorPort)
		}
		if openBrowser {
			m.WithBrowser()
		}

		m.RegisterBlock(u.Block())
		m.StartServer()
	}

	var adapter solver.Adapter = solver.NewNewton()

	var recorder record.Recorder
	if traceDB != "" {
		recorder = record.New(traceDB)
		adapter = record.WrapAdapter(adapter, recorder)
	}

	opts := c.solverOptions()

	res, err := u.Initialize(adapter, opts)
	if err != nil {
		return err
	}

	if recorder != nil {
		recorder.Flush()
	}

	fmt.Printf("case:            %s\n", c.Name)
	fmt.Printf("status:          %s\n", res.Status)
	fmt.Printf("iterations:      %d\n", res.Iterations)
	fmt.Printf("residual:        %.3e\n", res.Residual)
	fmt.Printf("extraction flow: %.3f mol/s\n",
		u.SteamInlet().Variable("flow_mol").Value())
	fmt.Printf("feedwater out:   %.1f J/mol\n",
		u.FeedwaterOutlet().Variable("enth_mol").Value())

	if res.Status != solver.StatusOptimal {
		return fmt.Errorf("initialization ended with status %s", res.Status)
	}

	return nil
}

// solverOptions merges the case-file solver block with environment
// overrides. A .env file in the working directory is honored, so repeated
// experiments can change solver settings without editing the case.
func (c *caseFile) solverOptions() solver.Options {
	opts := solver.Options{}

	if c.Solver != nil {
		if c.Solver.MaxIter != nil {
			opts.MaxIter = *c.Solver.MaxIter
		}
		if c.Solver.Tolerance != nil {
			opts.Tolerance = *c.Solver.Tolerance
		}
		if c.Solver.OutLevel != nil {
			opts.OutLevel = *c.Solver.OutLevel
		}
	}

	_ = godotenv.Load()

	if s := os.Getenv("UNITSIM_MAX_ITER"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			opts.MaxIter = n
		}
	}

	if s := os.Getenv("UNITSIM_TOLERANCE"); s != "" {
		if tol, err := strconv.ParseFloat(s, 64); err == nil {
			opts.Tolerance = tol
		}
	}

	if s := os.Getenv("UNITSIM_OUT_LEVEL"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			opts.OutLevel = n
		}
	}

	return opts
}
