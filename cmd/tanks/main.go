package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/tanks/audio"
	"github.com/lixenwraith/tanks/config"
	"github.com/lixenwraith/tanks/core"
	"github.com/lixenwraith/tanks/input"
	"github.com/lixenwraith/tanks/logging"
)

var (
	configFlag  = flag.String("config", "", "Config file (toml, yaml or json)")
	playersFlag = flag.Int("players", 0, "Number of tanks, overrides players.count")
	humansFlag  = flag.Int("humans", -1, "Keyboard players, overrides players.humans")
	seedFlag    = flag.Int64("seed", 0, "Terrain and placement seed, overrides sim.seed")
	muteFlag    = flag.Bool("mute", false, "Start without sound")
	logFlag     = flag.String("log", "", "Log level, overrides log.level")
)

func main() {
	// Panic Recovery: restore the terminal even if the main loop crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	// The screen owns stdout, so logs go to the file only
	closeLog, err := logging.Setup(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logging setup failed: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.HideCursor()
	core.SetCrashReset(screen.Fini)

	sound := audio.NewSoundManager()
	if cfg.Audio.Enabled {
		if err := sound.Initialize(); err != nil {
			log.Warn().Err(err).Msg("Audio unavailable, continuing without sound")
		} else {
			defer sound.Cleanup()
		}
	}

	// Input polling feeds a channel; PollEvent returns nil once the screen is finalized
	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	s := &session{
		cfg:        cfg,
		screen:     screen,
		sound:      sound,
		muted:      *muteFlag,
		translator: input.NewTranslator(nil, cfg.Input.HoldWindow),
		events:     events,
	}

	ctx := context.Background()
	for {
		restart, err := s.play(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Match failed")
			screen.Fini()
			fmt.Fprintf(os.Stderr, "Match failed: %v\n", err)
			os.Exit(1)
		}
		if !restart {
			return
		}
		log.Info().Msg("Restarting match")
	}
}

// loadConfig reads the config file and applies command-line overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return nil, err
	}
	if *playersFlag > 0 {
		cfg.Players.Count = *playersFlag
		if cfg.Players.Humans > cfg.Players.Count {
			cfg.Players.Humans = cfg.Players.Count
		}
	}
	if *humansFlag >= 0 {
		cfg.Players.Humans = *humansFlag
	}
	if *seedFlag != 0 {
		cfg.Sim.Seed = *seedFlag
	}
	if *logFlag != "" {
		cfg.Log.Level = *logFlag
	}
	return cfg, cfg.Validate()
}
