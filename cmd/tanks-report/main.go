// Command tanks-report plays batches of AI-only matches and summarizes the outcomes
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/tanks/config"
	"github.com/lixenwraith/tanks/logging"
	"github.com/lixenwraith/tanks/report"
)

var (
	configFlag   = flag.String("config", "", "Config file (toml, yaml or json)")
	runsFlag     = flag.Int("runs", 10, "Number of matches")
	seedBaseFlag = flag.Int64("seed-base", 1, "Seed of the first run; run i uses seed-base+i")
	playersFlag  = flag.Int("players", 0, "Tanks per match, overrides players.count")
	maxTicksFlag = flag.Int("max-ticks", 60*60*10, "Tick budget per match before it counts as a timeout")
	outFlag      = flag.String("out", "", "Write the msgpack summary to this file")
	copyFlag     = flag.Bool("copy", false, "Copy the text summary to the clipboard")
	logFlag      = flag.String("log", "warn", "Console log level")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tanks-report: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	closeLog, err := logging.Setup(logging.Options{Level: *logFlag, Console: os.Stderr})
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *playersFlag > 0 {
		cfg.Players.Count = *playersFlag
	}
	cfg.Players.Humans = 0
	if err := cfg.Validate(); err != nil {
		return err
	}
	if *runsFlag < 1 || *maxTicksFlag < 1 {
		return fmt.Errorf("runs and max-ticks must be positive")
	}

	runs := make([]report.Run, 0, *runsFlag)
	for i := 0; i < *runsFlag; i++ {
		r, err := report.Play(cfg, i, *seedBaseFlag+int64(i), *maxTicksFlag)
		if err != nil {
			return fmt.Errorf("run %d: %w", i, err)
		}
		runs = append(runs, r)
	}

	summary := report.Summarize(runs)
	text := summary.Text()
	fmt.Print(text)

	if *outFlag != "" {
		f, err := os.Create(*outFlag)
		if err != nil {
			return err
		}
		if err := report.Encode(f, summary); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Info().Str("file", *outFlag).Msg("Summary written")
	}

	if *copyFlag {
		if err := clipboard.WriteAll(text); err != nil {
			log.Warn().Err(err).Msg("Clipboard unavailable")
		}
	}
	return nil
}
