package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"q.log/tableau/config"
	"q.log/tableau/instance"
	"q.log/tableau/logging"
	"q.log/tableau/report"
	"q.log/tableau/simplex"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "tableau:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("tableau", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: tableau [flags] problem.(lp|mps)")
		fs.PrintDefaults()
	}
	config.RegisterFlags(fs)
	cfgPath := fs.StringP("config", "c", "", "config file (yaml, toml or json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.Errorf("expected one problem file, got %d", fs.NArg())
	}

	cfg, err := config.Load(*cfgPath, fs)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Log)

	p, err := instance.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprint(out, report.LP(p))
	fmt.Fprintln(out)

	method, err := cfg.SolveMethod()
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts = append(opts, simplex.WithLogger(logger))
	if cfg.Verbose {
		opts = append(opts, simplex.WithObserver(func(ev simplex.Event) {
			fmt.Fprintf(out, "phase %d  iteration %d  %s", ev.Phase, ev.Iteration, ev.State)
			if ev.Entering > 0 {
				fmt.Fprintf(out, "  x_%d enters, x_%d leaves", ev.Entering, ev.Leaving)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, report.Tableau(ev.Snapshot))
		}))
	}

	res, err := simplex.Solve(p, method, opts...)
	if err != nil {
		return err
	}
	if !cfg.Verbose {
		fmt.Fprintln(out, report.Tableau(res.Snapshot()))
	}
	fmt.Fprint(out, report.Summary(res))
	if res.Status == simplex.CycleDetected {
		fmt.Fprintln(out, "basis trace:")
		fmt.Fprint(out, report.Trace(res.Trace))
	}
	return nil
}
