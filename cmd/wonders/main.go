// Package main provides the wonders CLI: play one game at the terminal or
// simulate a batch between bots.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/signalnine/wonders/algorithms"
	"github.com/signalnine/wonders/bindings"
	"github.com/signalnine/wonders/config"
	"github.com/signalnine/wonders/engine"
	"github.com/signalnine/wonders/simulation"
)

// Version information (set by build flags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const typeHuman = "human"

// CLI flags
var (
	configPath  string
	players     string
	seed        int64
	simulate    int
	workers     int
	iterations  int
	luaScript   string
	outputPath  string
	verbose     bool
	showVersion bool
)

func init() {
	flag.StringVar(&configPath, "config", "", "YAML configuration file")
	flag.StringVar(&players, "players", "", "Comma separated seats: human, random, montecarlo, lua (overrides config)")
	flag.Int64Var(&seed, "seed", 0, "Random seed (0 = config seed, then current time)")
	flag.IntVar(&simulate, "simulate", 0, "Simulate N games between bots instead of playing one")
	flag.IntVar(&workers, "workers", -1, "Simulation worker goroutines (0 = auto-detect CPU count)")
	flag.IntVar(&iterations, "iterations", 0, "Search iterations for montecarlo seats")
	flag.StringVar(&luaScript, "lua", "", "Strategy script for lua seats")
	flag.StringVar(&outputPath, "out", "", "Write simulation stats as FlatBuffers to this file")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose output")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("wonders %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if simulate > 0 {
		runSimulation(cfg, simulate)
		return
	}

	if err := playGame(cfg, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Game failed: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig merges the config file, environment and flags
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()

	if luaScript != "" {
		cfg.LuaScript = luaScript
	}
	if iterations > 0 {
		cfg.MonteCarlo.Iterations = iterations
	}
	if players != "" {
		cfg.Players = parseSeats(players)
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if workers >= 0 {
		cfg.Simulation.Workers = workers
	}
	cfg.ApplyDefaults()

	return cfg, validate(cfg)
}

// validate checks the table with human seats counted as random
func validate(cfg *config.Config) error {
	check := *cfg
	check.Players = make([]simulation.AlgorithmSpec, len(cfg.Players))
	for i, p := range cfg.Players {
		if p.Type == typeHuman {
			p.Type = simulation.TypeRandom
		}
		check.Players[i] = p
	}
	return check.Validate()
}

func parseSeats(list string) []simulation.AlgorithmSpec {
	var out []simulation.AlgorithmSpec
	for _, s := range strings.Split(list, ",") {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, simulation.AlgorithmSpec{Type: s})
		}
	}
	return out
}

func playGame(cfg *config.Config, in io.Reader, out io.Writer) error {
	rng := rand.New(rand.NewSource(cfg.Seed))

	algs := make([]engine.Algorithm, len(cfg.Players))
	human := algorithms.NewHuman(in, out)
	for i, spec := range cfg.Players {
		if spec.Type == typeHuman {
			algs[i] = human
			continue
		}
		alg, err := simulation.NewAlgorithm(spec, rand.New(rand.NewSource(rng.Int63())))
		if err != nil {
			return fmt.Errorf("seat %d: %w", i+1, err)
		}
		if l, ok := alg.(*algorithms.Lua); ok {
			defer l.Close()
		}
		algs[i] = alg
	}

	g, err := engine.NewGame(algs, rng)
	if err != nil {
		return err
	}
	if verbose {
		g.SetLogger(engine.StdLogger{L: log.New(os.Stderr, "", log.LstdFlags), Verbose: true})
	}

	scores, err := g.Play()
	if err != nil {
		return err
	}
	printRanking(out, g, scores)
	return nil
}

// printRanking prints the winner line and every seat by strength
func printRanking(w io.Writer, g *engine.Game, scores []int) {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	fmt.Fprintln(w)
	if len(order) > 1 && scores[order[0]] == scores[order[1]] {
		fmt.Fprintln(w, "It's a draw!")
	} else {
		fmt.Fprintf(w, "Player %d wins!\n", order[0]+1)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := []string{"Rank", "Player", "Wonder"}
	for _, c := range engine.Colours {
		header = append(header, c.String())
	}
	header = append(header, "Total")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	breakdowns := g.Breakdowns()
	for rank, seat := range order {
		row := []string{
			fmt.Sprint(rank + 1),
			fmt.Sprintf("Player %d", seat+1),
			g.Player(seat).Wonder().Name(),
		}
		for _, c := range engine.Colours {
			row = append(row, fmt.Sprint(breakdowns[seat].Of(c)))
		}
		row = append(row, fmt.Sprint(scores[seat]))
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

func runSimulation(cfg *config.Config, games int) {
	for _, p := range cfg.Players {
		if p.Type == typeHuman {
			fmt.Fprintln(os.Stderr, "Human seats cannot be simulated")
			os.Exit(1)
		}
	}

	printBanner(cfg, games)

	start := time.Now()
	stats := simulation.RunBatchParallel(cfg.Players, games, uint64(cfg.Seed), cfg.Simulation.Workers)
	printSummary(stats, time.Since(start))

	if outputPath != "" {
		if err := bindings.WriteStatsFile(outputPath, stats); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving stats: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Stats written to %s\n", outputPath)
	}
}

func printBanner(cfg *config.Config, games int) {
	seats := make([]string, len(cfg.Players))
	for i, p := range cfg.Players {
		seats[i] = p.Type
	}
	fmt.Println()
	fmt.Println("╔════════════════════════════════════════════════════════════╗")
	fmt.Println("║                 7 Wonders Simulator (Go)                   ║")
	fmt.Println("╚════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Seats:          %s\n", strings.Join(seats, ", "))
	fmt.Printf("  Games:          %d\n", games)
	fmt.Printf("  Workers:        %d (0=auto)\n", cfg.Simulation.Workers)
	fmt.Printf("  Seed:           %d\n", cfg.Seed)
	fmt.Println()
}

func printSummary(stats simulation.AggregatedStats, totalTime time.Duration) {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("                     SIMULATION SUMMARY")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("  Total Time:      %s\n", formatDuration(totalTime))
	fmt.Printf("  Games:           %d (%d errors)\n", stats.TotalGames, stats.Errors)
	for i, w := range stats.Wins {
		fmt.Printf("  Player %d:        %d wins, avg %.1f points\n", i+1, w, stats.AvgScores[i])
	}
	fmt.Printf("  Draws:           %d\n", stats.Draws)
	fmt.Printf("  Median Winner:   %d points\n", stats.MedianWinningScore)
	fmt.Printf("  Avg Game:        %s\n", time.Duration(stats.AvgDurationNs))
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
