package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/tanks/audio"
	"github.com/lixenwraith/tanks/config"
	"github.com/lixenwraith/tanks/core"
	"github.com/lixenwraith/tanks/engine"
	"github.com/lixenwraith/tanks/event"
	"github.com/lixenwraith/tanks/game"
	"github.com/lixenwraith/tanks/input"
	"github.com/lixenwraith/tanks/render"
)

// session owns everything that outlives a single match
type session struct {
	cfg        *config.Config
	screen     tcell.Screen
	sound      *audio.SoundManager
	muted      bool
	translator *input.Translator
	events     <-chan tcell.Event
}

// play runs one match until the player quits or asks for a restart
func (s *session) play(parent context.Context) (restart bool, err error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	pool := render.NewPool(s.cfg.Render.Buffers)
	renderer := render.NewTerminalRenderer(s.screen)
	served := make(chan error, 1)
	core.Go(func() {
		served <- pool.Serve(ctx, renderer)
	})
	defer func() {
		cancel()
		if err := <-served; err != nil && !errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Msg("Renderer stopped")
		}
	}()

	m, err := game.NewMatch(s.cfg, game.WithRenderPool(ctx, pool))
	if err != nil {
		return false, err
	}
	s.translator.Attach(nil)
	m.SetBanner(controlsHelp)

	clock := m.Clock(engine.NewTimeProvider())
	ticker := time.NewTicker(clock.Interval())
	defer ticker.Stop()

	for {
		select {
		case ev := <-s.events:
			if _, ok := ev.(*tcell.EventResize); ok {
				s.screen.Sync()
				continue
			}
			switch s.translator.HandleEvent(ev, time.Now()) {
			case input.IntentQuit:
				m.Quit()
				s.dispatch(m)
				return false, nil
			case input.IntentRestart:
				m.Quit()
				s.dispatch(m)
				return true, nil
			case input.IntentMute:
				s.muted = !s.muted
				log.Debug().Bool("muted", s.muted).Msg("Sound toggled")
			}

		case now := <-ticker.C:
			s.translator.Tick(now)
			clock.Step()
			s.dispatch(m)
		}
	}
}

// dispatch routes game events to input, HUD and audio
func (s *session) dispatch(m *game.Match) {
	for _, ev := range m.Events() {
		switch ev.Type {
		case event.EventTurnStarted:
			p := ev.Payload.(event.TurnStartedPayload)
			if m.IsHuman(p.Player) {
				c, _ := m.Controls(p.Player)
				s.translator.Attach(c)
				m.SetBanner("")
			} else {
				s.translator.Attach(nil)
			}

		case event.EventGameOver:
			o := engine.Outcome(ev.Payload.(event.GameOverPayload))
			s.translator.Attach(nil)
			m.SetBanner(outcomeBanner(o))
			log.Info().
				Stringer("outcome", o).
				Int64("ticks", m.Ticks()).
				Msg("Match finished")
		}

		if !s.muted {
			s.sound.HandleEvent(ev)
		}
	}
}

const controlsHelp = "←/→ aim  ↑/↓ power  space fire  m mute  r restart  q quit"

// outcomeBanner is the HUD line shown once a match ends
func outcomeBanner(o engine.Outcome) string {
	switch o.Kind {
	case event.OutcomePlayerWon:
		return fmt.Sprintf("Player %d wins after %d turns  r restart  q quit", o.Player, o.Turn)
	case event.OutcomeDraw:
		return fmt.Sprintf("Draw after %d turns  r restart  q quit", o.Turn)
	}
	return "Match abandoned"
}
