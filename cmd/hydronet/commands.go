package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/hydronet/internal/config"
	"github.com/katalvlaran/hydronet/internal/httpapi"
	"github.com/katalvlaran/hydronet/network"
	"github.com/katalvlaran/hydronet/report"
)

// errInvalidNetwork signals a rejected network whose violations were already printed.
var errInvalidNetwork = errors.New("invalid network")

func cmdReference(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("reference", flag.ContinueOnError)
	format := fs.String("format", "yaml", "output format: yaml or json")
	out := fs.String("o", "", "write to file instead of stdout (format from extension)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	n := network.Reference()
	if *out != "" {
		return network.SaveFile(*out, n)
	}
	f, err := network.ParseFormat(*format)
	if err != nil {
		return err
	}

	return network.Encode(stdout, n, f)
}

func cmdValidate(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	file := fs.String("f", "", "network file (.yaml, .yml or .json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("validate: -f is required")
	}

	n, err := network.LoadFile(*file)
	if err != nil {
		return err
	}
	if !printViolations(stdout, n) {
		return errInvalidNetwork
	}
	fmt.Fprintf(stdout, "%s: valid (%d pipes, %d loops)\n", n.Name, n.Pipes(), n.LoopCount())

	return nil
}

func cmdSolve(args []string, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	fs := flag.NewFlagSet("solve", flag.ContinueOnError)
	file := fs.String("f", "", "network file (reference network when empty)")
	iterations := fs.Int("iterations", 0, "iteration bound (0 keeps the network's)")
	tolerance := fs.Float64("tolerance", cfg.Solver.Tolerance, "convergence tolerance on max |ΔQ|")
	exportDir := fs.String("export", "", "write the results export into DIR")
	save := fs.Bool("save", false, "write the results export into "+config.EnvExportDir)
	plotPath := fs.String("plot", "", "write a convergence chart (PNG) to this path")
	force := fs.Bool("force", false, "solve even when validation fails")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var n *network.Network
	if *file == "" {
		n = network.Reference()
		n.SetIterations(cfg.Solver.MaxIterations)
	} else {
		var err error
		if n, err = network.LoadFile(*file); err != nil {
			return err
		}
	}
	// Negative bounds are stored so the validator reports them.
	if *iterations != 0 {
		n.SetIterations(*iterations)
	}

	if !printViolations(stdout, n) && !*force {
		return errInvalidNetwork
	}

	opts := cfg.SolverOptions()
	opts.Tolerance = *tolerance
	opts.KeepHistory = *plotPath != ""
	opts.Logger = logger
	res, err := n.Solve(opts)
	if err != nil {
		return err
	}

	if err = report.WriteTable(stdout, report.Rows(n, res.Discharge)); err != nil {
		return err
	}
	fmt.Fprintln(stdout)
	if err = report.WriteSummary(stdout, report.Summarize(res.Discharge)); err != nil {
		return err
	}
	state := "converged"
	if !res.Converged {
		state = "not converged"
	}
	fmt.Fprintf(stdout, "Iterations: %d (%s, max |ΔQ| = %.3g)\n", res.Iterations, state, res.MaxCorrection)

	if *save && *exportDir == "" {
		*exportDir = cfg.Export.Dir
	}
	if *exportDir != "" {
		doc, err := report.NewExport(n, res.Discharge, time.Now())
		if err != nil {
			return err
		}
		path, err := report.WriteFile(*exportDir, doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Exported: %s\n", path)
	}

	if *plotPath != "" {
		if err = writePlot(*plotPath, res.History, opts.Tolerance); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Plot: %s\n", *plotPath)
	}

	return nil
}

func writePlot(path string, history []float64, tolerance float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	if err = report.WriteConvergencePlot(f, history, tolerance); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// printViolations reports whether n is valid, listing every violation otherwise.
func printViolations(w io.Writer, n *network.Network) bool {
	valid, violations := n.Validate()
	for _, v := range violations {
		fmt.Fprintf(w, "invalid: %s\n", v)
	}

	return valid
}

func cmdServe(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if lvl, _ := cfg.SlogLevel(); lvl > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpapi.NewRouter(cfg, version, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("hydronet server starting", "port", cfg.Server.Port, "version", version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutCtx)
}
