// Command striprouter autoroutes a stripboard circuit file and prints a
// summary of the best layout found within a time budget. Grounded on
// _examples/lixenwraith-vi-fighter's cmd/vi-fighter/main.go for flag
// parsing and log-file setup.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/striprouter/striprouter/circuit"
	"github.com/striprouter/striprouter/config"
	"github.com/striprouter/striprouter/control"
	"github.com/striprouter/striprouter/genetic"
)

const (
	logDir      = "logs"
	logFileName = "striprouter.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

// setupLogging configures log output based on the verbose flag. When not
// verbose, all logging is discarded so a batch run stays quiet on stderr.
func setupLogging(verbose bool) *os.File {
	if !verbose {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create logs directory: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)

	if info, err := os.Stat(logPath); err == nil {
		if info.Size() > maxLogSize {
			timestamp := time.Now().Format("2006-01-02-15-04-05")
			rotatedName := filepath.Join(logDir, fmt.Sprintf("striprouter-%s.log", timestamp))
			if err := os.Rename(logPath, rotatedName); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to rotate log file: %v\n", err)
			}
		}
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Printf("=== striprouter started ===")
	return logFile
}

func main() {
	circuitPath := flag.String("circuit", "", "Path to a .circuit file (required)")
	configPath := flag.String("config", "", "Path to a TOML settings file (optional)")
	duration := flag.Duration("duration", 5*time.Second, "How long to search before reporting the best layout")
	seed := flag.Uint64("seed", 1, "Seed for the genetic algorithm's random source")
	verbose := flag.Bool("verbose", false, "Enable logging to ./logs/striprouter.log")
	flag.Parse()

	logFile := setupLogging(*verbose)
	if logFile != nil {
		defer logFile.Close()
	}

	if *circuitPath == "" {
		fmt.Fprintln(os.Stderr, "striprouter: -circuit is required")
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*circuitPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "striprouter: %v\n", err)
		os.Exit(1)
	}
	c := circuit.Parse(f)
	f.Close()

	if c.HasParserError() {
		for _, e := range c.ParserErrors {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "striprouter: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg = cfg.Normalize()

	ga := genetic.New(cfg.PopulationSize, cfg.CrossoverRate, cfg.MutationRate, cfg.TournamentSize, *seed)
	ga.Reset(len(c.Connections))

	pool := control.New(ga, c.Board, c, cfg.ToSettings(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	sigCtx, stopSig := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSig()

	pool.Run(sigCtx)

	best := pool.Best()
	tried, improvements := pool.Stats()

	if best == nil {
		fmt.Println("no layout produced")
		os.Exit(1)
	}

	fmt.Printf("orderings tried:  %d\n", tried)
	fmt.Printf("improvements:     %d\n", improvements)
	fmt.Printf("completed routes: %d/%d\n", best.NCompletedRoutes, len(c.Connections))
	fmt.Printf("failed routes:    %d\n", best.NFailedRoutes)
	fmt.Printf("strip cuts:       %d\n", len(best.StripCuts))
	fmt.Printf("cost:             %d\n", best.Cost())
}
