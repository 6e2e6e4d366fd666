// Package config loads match and runtime settings through viper
// Precedence: TANKS_* environment, then the optional file, then defaults
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/tanks/engine"
	"github.com/lixenwraith/tanks/parameter"
	"github.com/lixenwraith/tanks/physics"
)

// ErrInvalidConfig reports a value outside its supported range
var ErrInvalidConfig = errors.New("config: invalid value")

// EnvPrefix is prepended to environment overrides, e.g. TANKS_WORLD_WIDTH
const EnvPrefix = "TANKS"

type WorldConfig struct {
	Width         int `mapstructure:"width"`
	Height        int `mapstructure:"height"`
	TerrainPoints int `mapstructure:"terrainPoints"`
}

type PlayersConfig struct {
	Count  int `mapstructure:"count"`
	Humans int `mapstructure:"humans"`
}

type PhysicsConfig struct {
	Gravity        float64 `mapstructure:"gravity"`
	PowerMin       float64 `mapstructure:"powerMin"`
	PowerScale     float64 `mapstructure:"powerScale"`
	ProjectileMass float64 `mapstructure:"projectileMass"`
}

type ExplosionConfig struct {
	Duration   float64 `mapstructure:"duration"`
	DamageRate float64 `mapstructure:"damageRate"`
	MaxRadius  float64 `mapstructure:"maxRadius"`
}

type SimConfig struct {
	TickRate int     `mapstructure:"tickRate"`
	MaxDelta float64 `mapstructure:"maxDelta"` // Seconds
	Seed     int64   `mapstructure:"seed"`     // 0 picks a random seed
}

type AIConfig struct {
	MaxAlignTicks int `mapstructure:"maxAlignTicks"`
}

type RenderConfig struct {
	Buffers int `mapstructure:"buffers"`
}

type AudioConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type InputConfig struct {
	HoldWindow time.Duration `mapstructure:"holdWindow"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Config is the complete runtime configuration
type Config struct {
	World     WorldConfig     `mapstructure:"world"`
	Players   PlayersConfig   `mapstructure:"players"`
	Physics   PhysicsConfig   `mapstructure:"physics"`
	Explosion ExplosionConfig `mapstructure:"explosion"`
	Sim       SimConfig       `mapstructure:"sim"`
	AI        AIConfig        `mapstructure:"ai"`
	Render    RenderConfig    `mapstructure:"render"`
	Audio     AudioConfig     `mapstructure:"audio"`
	Input     InputConfig     `mapstructure:"input"`
	Log       LogConfig       `mapstructure:"log"`
}

// setDefaults registers every key so environment overrides resolve on Unmarshal
func setDefaults(v *viper.Viper) {
	v.SetDefault("world.width", parameter.DefaultWorldWidth)
	v.SetDefault("world.height", parameter.DefaultWorldHeight)
	v.SetDefault("world.terrainPoints", parameter.DefaultTerrainPoints)

	v.SetDefault("players.count", parameter.DefaultPlayerCount)
	v.SetDefault("players.humans", parameter.DefaultHumanPlayers)

	v.SetDefault("physics.gravity", parameter.Gravity)
	v.SetDefault("physics.powerMin", parameter.PowerMin)
	v.SetDefault("physics.powerScale", parameter.PowerScale)
	v.SetDefault("physics.projectileMass", parameter.ProjectileMass)

	v.SetDefault("explosion.duration", parameter.ExplosionDuration)
	v.SetDefault("explosion.damageRate", parameter.ExplosionDamageRate)
	v.SetDefault("explosion.maxRadius", parameter.ExplosionMaxRadius)

	v.SetDefault("sim.tickRate", parameter.DefaultTickRate)
	v.SetDefault("sim.maxDelta", parameter.DefaultMaxDelta)
	v.SetDefault("sim.seed", 0)

	v.SetDefault("ai.maxAlignTicks", parameter.AIMaxAlignTicks)
	v.SetDefault("render.buffers", parameter.DefaultRenderBuffers)
	v.SetDefault("audio.enabled", true)
	v.SetDefault("input.holdWindow", parameter.InputHoldWindow)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "tanks.log")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns the built-in configuration, ignoring the environment
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		panic(fmt.Sprintf("config: defaults do not decode: %v", err))
	}
	return cfg
}

// Load builds the configuration; path may be empty to skip the file
// The file format follows its extension (toml, yaml, json)
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every value against its supported range
func (c *Config) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.World.Width >= parameter.MinWorldWidth && c.World.Width <= parameter.MaxWorldWidth,
			fmt.Sprintf("world.width %d outside [%d, %d]", c.World.Width, parameter.MinWorldWidth, parameter.MaxWorldWidth)},
		{c.World.Height > 0, fmt.Sprintf("world.height %d must be positive", c.World.Height)},
		{c.World.TerrainPoints >= 1, fmt.Sprintf("world.terrainPoints %d must be at least 1", c.World.TerrainPoints)},
		{c.Players.Count >= 1, fmt.Sprintf("players.count %d must be at least 1", c.Players.Count)},
		{c.Players.Humans >= 0 && c.Players.Humans <= c.Players.Count,
			fmt.Sprintf("players.humans %d outside [0, %d]", c.Players.Humans, c.Players.Count)},
		{c.Physics.PowerScale >= 0, fmt.Sprintf("physics.powerScale %v must not be negative", c.Physics.PowerScale)},
		{c.Physics.ProjectileMass > 0, fmt.Sprintf("physics.projectileMass %v must be positive", c.Physics.ProjectileMass)},
		{c.Explosion.Duration > 0, fmt.Sprintf("explosion.duration %v must be positive", c.Explosion.Duration)},
		{c.Sim.TickRate > 0, fmt.Sprintf("sim.tickRate %d must be positive", c.Sim.TickRate)},
		{c.Sim.MaxDelta >= 0, fmt.Sprintf("sim.maxDelta %v must not be negative", c.Sim.MaxDelta)},
		{c.AI.MaxAlignTicks >= 1, fmt.Sprintf("ai.maxAlignTicks %d must be at least 1", c.AI.MaxAlignTicks)},
		{c.Render.Buffers >= 1, fmt.Sprintf("render.buffers %d must be at least 1", c.Render.Buffers)},
		{c.Input.HoldWindow > 0, fmt.Sprintf("input.holdWindow %v must be positive", c.Input.HoldWindow)},
	}
	for _, check := range checks {
		if !check.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, check.msg)
		}
	}
	return nil
}

// Rules derives the gameplay constants of a match
func (c *Config) Rules() engine.Rules {
	r := engine.DefaultRules()
	r.Ballistics = physics.Ballistics{
		PowerMin:   c.Physics.PowerMin,
		PowerScale: c.Physics.PowerScale,
		Gravity:    c.Physics.Gravity,
		Mass:       c.Physics.ProjectileMass,
	}
	r.ExplosionDuration = c.Explosion.Duration
	r.DamageRate = c.Explosion.DamageRate
	r.ExplosionMaxRadius = c.Explosion.MaxRadius
	r.AIMaxAlignTicks = c.AI.MaxAlignTicks
	return r
}

// TickInterval is the wall time between simulation ticks
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Sim.TickRate)
}
