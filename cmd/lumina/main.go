// Lumina plays "A Lenda do Cristal Perdido", a four-chapter text RPG.
// Usage: lumina [--version] [--plain] [--trace] [--seed <n>] [--script <file>] [content_directory]
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/nathoo/lumina/cli"
	"github.com/nathoo/lumina/config"
	"github.com/nathoo/lumina/content"
	"github.com/nathoo/lumina/engine"
	"github.com/nathoo/lumina/engine/state"
	"github.com/nathoo/lumina/loader"
	"github.com/nathoo/lumina/telemetry"
	"github.com/nathoo/lumina/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: lumina [--version] [--plain] [--trace] [--seed <n>] [--script <file>] [content_directory]"

func main() {
	log.SetFlags(0)
	log.SetPrefix("lumina: ")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var scriptFile string
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("lumina %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			cfg.Plain = true
		case "--trace":
			cfg.Trace = true
		case "--seed":
			if i+1 >= len(args) {
				log.Fatalf("--seed requires a number")
			}
			i++
			seed, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				log.Fatalf("invalid seed %q: %v", args[i], err)
			}
			cfg.Seed = seed
		case "--script":
			if i+1 >= len(args) {
				log.Fatalf("--script requires a file path")
			}
			i++
			scriptFile = args[i]
		case "-h", "--help":
			fmt.Println(usage)
			return
		default:
			if cfg.ContentDir == "" {
				cfg.ContentDir = args[i]
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, scriptFile); err != nil {
		stop()
		log.Fatalf("Game error: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config, scriptFile string) error {
	defs, err := loadContent(cfg.ContentDir)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = engine.NewSeed(); err != nil {
			return err
		}
	}

	rng := engine.NewRNG(seed)
	eng := engine.New(defs, nil, rng)
	eng.Trace = cfg.Trace
	eng.Tracer = telemetry.NoopTracer()

	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx, cfg.ServiceName, version)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
		} else {
			eng.Tracer = telemetry.Tracer("engine")
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}
	if cfg.Trace {
		log.Printf("seed %d", rng.Seed())
		defer func() { log.Printf("seed %d, %d rolls", rng.Seed(), rng.Position()) }()
	}

	switch {
	case scriptFile != "":
		f, err := os.Open(scriptFile)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		c := cli.New()
		c.In = f
		c.EchoInput = true
		c.SkipPauses = true
		eng.UI = c
		_, err = eng.Run(ctx)
		return farewell(err)

	case cfg.Plain || !isTerminal():
		eng.UI = cli.New()
		_, err = eng.Run(ctx)
		return farewell(err)

	default:
		_, err = tui.Run(ctx, eng)
		return farewell(err)
	}
}

// loadContent compiles the Lua files in dir, or the embedded story when
// dir is empty.
func loadContent(dir string) (*state.Defs, error) {
	if dir == "" {
		return loader.Load(content.FS())
	}
	return loader.LoadDir(dir)
}

// farewell swallows an aborted session so quitting is not an error.
func farewell(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, engine.ErrInputAborted) {
		fmt.Println("\nAté a próxima, aventureiro!")
		return nil
	}
	return err
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
