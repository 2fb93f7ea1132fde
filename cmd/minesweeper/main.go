package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/app"
	"github.com/vancomm/minesweeper/internal/config"
)

var (
	log = logrus.New()

	configPath string
	addr       string
	rows       int
	cols       int
	mineCount  int
)

func init() {
	registerFlags(flag.CommandLine)
}

func registerFlags(fs *flag.FlagSet) {
	const usage = "config file path"
	fs.StringVar(&configPath, "config", "", usage)
	fs.StringVar(&configPath, "c", "", usage+" (shorthand)")
	fs.StringVar(&addr, "addr", "", "listen address, overrides the config")
	fs.IntVar(&rows, "rows", 0, "board rows, overrides the config")
	fs.IntVar(&cols, "cols", 0, "board cols, overrides the config")
	fs.IntVar(&mineCount, "mines", 0, "mine count, overrides the config")
}

// applyFlags copies the flags that were set on the command line over cfg,
// so an explicit -mines 0 still wins over the config file.
func applyFlags(cfg *config.Config, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = addr
		case "rows":
			cfg.Game.Rows = rows
		case "cols":
			cfg.Game.Cols = cols
		case "mines":
			cfg.Game.MineCount = mineCount
		}
	})
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("unable to load config: ", err)
	}
	applyFlags(&cfg, flag.CommandLine)
	if err := cfg.Game.Validate(); err != nil {
		log.Fatal(err)
	}

	if err := app.SetupLogging(log, cfg); err != nil {
		log.Fatal("unable to set up logging: ", err)
	}

	log.Info("starting up, mode = ", cfg.Mode)
	log.WithFields(cfg.Fields()).Debug("config")

	if err := app.New(log, cfg).Start(mainCtx); err != nil {
		log.Printf("exit reason: %s\n", err)
		os.Exit(1)
	}
}
