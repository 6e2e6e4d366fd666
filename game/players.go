package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/tanks/component"
	"github.com/lixenwraith/tanks/control"
	"github.com/lixenwraith/tanks/core"
	"github.com/lixenwraith/tanks/engine"
	"github.com/lixenwraith/tanks/parameter"
	"github.com/lixenwraith/tanks/terrain"
)

// ErrNoPlayers rejects a roster without a single tank
var ErrNoPlayers = errors.New("game: at least one player required")

// CreatePlayers spawns count tanks spread across the world and appends them to the roster
// Tank i sits at a random x within the i-th of count+1 equal slots, offset half a slot,
// resting on the terrain surface and tilted to its normal
func CreatePlayers(w *engine.World, count int, rng *rand.Rand) ([]engine.Player, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoPlayers, count)
	}
	ground, ok := engine.LookupResource[terrain.Terrain](w)
	if !ok {
		return nil, errors.New("game: terrain resource not installed")
	}
	dims := engine.ReadResource[engine.Dimensions](w)
	scale := parameter.TankScale
	if r, ok := engine.LookupResource[engine.Rules](w); ok {
		scale = r.TankScale
	}

	roster := engine.WriteResource[engine.Roster](w)
	board, hasBoard := engine.LookupResource[control.Board](w)

	dx := dims.Width / float64(count+1)
	players := make([]engine.Player, 0, count)
	for i := 0; i < count; i++ {
		number := i + 1
		x := float64(i)*dx + dx/2 + rng.Float64()*dx
		y := ground.Height(x)
		barrel := core.Radians(-parameter.TankBarrelSpread + rng.Float64()*2*parameter.TankBarrelSpread)
		color := component.PlayerColor(number)

		eb := w.NewEntity()
		engine.With(eb, engine.Write[component.TankComponent](w), component.TankComponent{
			BarrelOrient: barrel,
			PowerLevel:   parameter.TankPowerDefault,
			Health:       parameter.TankHealth,
		})
		engine.With(eb, engine.Write[component.PositionComponent](w), component.PositionComponent{
			Point:  mgl64.Vec2{x, y},
			Orient: ground.NormalDir(x),
			Scale:  scale,
		})
		engine.With(eb, engine.Write[component.VelocityComponent](w), component.VelocityComponent{})
		engine.With(eb, engine.Write[component.DrawableComponent](w), component.DrawableComponent{
			Drawable: component.TankDrawable{
				Body:   component.Locals{Color: color},
				Barrel: component.Locals{Color: color},
			},
		})

		p := engine.Player{Number: number, Tank: eb.Build()}
		roster.Players = append(roster.Players, p)
		if hasBoard {
			board.Register(number)
		}
		players = append(players, p)

		log.Debug().
			Int("player", number).
			Float64("x", x).
			Float64("y", y).
			Float64("barrel", core.Degrees(barrel)).
			Msg("Tank placed")
	}
	return players, nil
}
