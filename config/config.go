package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/signalnine/wonders/engine"
	"github.com/signalnine/wonders/mcts"
	"github.com/signalnine/wonders/simulation"
)

var (
	ErrPlayers       = errors.New("config: players")
	ErrAlgorithm     = errors.New("config: algorithm")
	ErrServer        = errors.New("config: server")
	ErrSimulation    = errors.New("config: simulation")
	defaultTicketTTL = 10 * time.Minute
)

type Config struct {
	Seed       int64                      `yaml:"seed"`
	Players    []simulation.AlgorithmSpec `yaml:"players"`
	MonteCarlo MonteCarlo                 `yaml:"montecarlo"`
	Simulation Simulation                 `yaml:"simulation"`
	Server     Server                     `yaml:"server"`
	LuaScript  string                     `yaml:"lua_script"`
}

// MonteCarlo holds defaults for montecarlo seats that leave fields unset
type MonteCarlo struct {
	Iterations  int     `yaml:"iterations"`
	Workers     int     `yaml:"workers"`
	Exploration float64 `yaml:"exploration"`
}

type Simulation struct {
	Games   int `yaml:"games"`
	Workers int `yaml:"workers"`
}

type Server struct {
	Addr         string        `yaml:"addr"`
	TicketSecret string        `yaml:"ticket_secret"`
	TicketTTL    time.Duration `yaml:"ticket_ttl"`
	// Bots fill the seats after the remote player at a websocket table
	Bots int `yaml:"bots"`
}

// Default is a five seat random table
func Default() *Config {
	c := &Config{
		Players: []simulation.AlgorithmSpec{
			{Type: simulation.TypeRandom},
			{Type: simulation.TypeRandom},
			{Type: simulation.TypeRandom},
			{Type: simulation.TypeRandom},
			{Type: simulation.TypeRandom},
		},
	}
	c.ApplyDefaults()
	return c
}

func (m *MonteCarlo) ApplyDefaults() {
	if m.Iterations == 0 {
		m.Iterations = mcts.DefaultIterations
	}
	if m.Exploration == 0 {
		m.Exploration = mcts.DefaultExplorationParam
	}
}

func (s *Server) ApplyDefaults() {
	if s.Addr == "" {
		s.Addr = ":8080"
	}
	if s.TicketTTL == 0 {
		s.TicketTTL = defaultTicketTTL
	}
	if s.Bots == 0 {
		s.Bots = 2
	}
}

func (c *Config) ApplyDefaults() {
	c.MonteCarlo.ApplyDefaults()
	c.Server.ApplyDefaults()
	if c.Simulation.Games == 0 {
		c.Simulation.Games = 100
	}
	for i := range c.Players {
		p := &c.Players[i]
		if p.Type == "" {
			p.Type = simulation.TypeRandom
		}
		if p.Type == simulation.TypeMonteCarlo {
			if p.Iterations == 0 {
				p.Iterations = c.MonteCarlo.Iterations
			}
			if p.Workers == 0 {
				p.Workers = c.MonteCarlo.Workers
			}
			if p.Exploration == 0 {
				p.Exploration = c.MonteCarlo.Exploration
			}
		}
		if p.Type == simulation.TypeLua && p.Script == "" {
			p.Script = c.LuaScript
		}
	}
}

// Validate checks the table can be seated
func (c *Config) Validate() error {
	if n := len(c.Players); n < engine.MinPlayers || n > engine.MaxPlayers {
		return fmt.Errorf("%w: need %d to %d, got %d", ErrPlayers, engine.MinPlayers, engine.MaxPlayers, n)
	}
	for i, p := range c.Players {
		switch p.Type {
		case simulation.TypeRandom, simulation.TypeMonteCarlo:
		case simulation.TypeLua:
			if p.Script == "" {
				return fmt.Errorf("%w: seat %d: lua needs a script", ErrAlgorithm, i)
			}
		default:
			return fmt.Errorf("%w: seat %d: unknown type %q", ErrAlgorithm, i, p.Type)
		}
		if p.Iterations < 0 || p.Workers < 0 {
			return fmt.Errorf("%w: seat %d: negative search budget", ErrAlgorithm, i)
		}
	}
	if c.Simulation.Games < 0 || c.Simulation.Workers < 0 {
		return fmt.Errorf("%w: negative games or workers", ErrSimulation)
	}
	if c.Server.TicketTTL < 0 {
		return fmt.Errorf("%w: negative ticket ttl", ErrServer)
	}
	if bots := c.Server.Bots; bots < engine.MinPlayers-1 || bots > engine.MaxPlayers-1 {
		return fmt.Errorf("%w: %d bots", ErrServer, bots)
	}
	return nil
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes YAML, applies defaults and validates
func Parse(b []byte) (*Config, error) {
	r := Config{}
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	if len(r.Players) == 0 {
		r.Players = Default().Players
	}
	r.ApplyDefaults()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}
