// Command hexfront generates a hex map, seats the civilizations on it and
// plays the player's side from commands read on stdin.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/talgya/hexfront/internal/config"
	"github.com/talgya/hexfront/internal/persistence"
	"github.com/talgya/hexfront/internal/turn"
	"github.com/talgya/hexfront/internal/world"
)

func main() {
	configDir := flag.String("config", ".", "directory holding "+config.FileName)
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.Current()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	// ── World Map ─────────────────────────────────────────────────────
	slog.Info("generating world map...", "radius", cfg.Map.Radius, "seed", cfg.Map.Seed)
	worldMap := world.Generate(cfg.GenConfig())

	landHexes := 0
	for t, c := range world.TerrainCounts(worldMap) {
		if !t.IsWater() {
			landHexes += c
		}
		slog.Debug("terrain", "type", world.TerrainName(t), "count", c)
	}

	// ── Civilizations ─────────────────────────────────────────────────
	capitals := world.PlaceCapitals(worldMap, cfg.Game.Civilizations, cfg.Map.Seed)
	if len(capitals) == 0 {
		slog.Error("no room for any capital", "land", landHexes)
		os.Exit(1)
	}
	if len(capitals) < cfg.Game.Civilizations {
		slog.Warn("fewer capitals than requested", "placed", len(capitals), "requested", cfg.Game.Civilizations)
	}

	settings, err := cfg.GameSettings()
	if err != nil {
		slog.Error("invalid rules", "error", err)
		os.Exit(1)
	}
	game, err := turn.NewGame(worldMap, capitals, settings)
	if err != nil {
		slog.Error("failed to seat civilizations", "error", err)
		os.Exit(1)
	}
	// Everyone starts at war with the player.
	player := game.Player()
	for _, civ := range game.Civs {
		if civ != player {
			turn.DeclareWar(player, civ)
		}
	}

	// ── Journal ───────────────────────────────────────────────────────
	var journal *persistence.DB
	if cfg.DB.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.DB.Path), 0755); err != nil {
			slog.Error("failed to create data directory", "error", err)
			os.Exit(1)
		}
		journal, err = persistence.Open(cfg.DB.Path)
		if err != nil {
			slog.Error("failed to open journal", "error", err)
			os.Exit(1)
		}
		defer journal.Close()
		if err := journal.SaveMeta("seed", strconv.FormatInt(cfg.Map.Seed, 10)); err != nil {
			slog.Warn("failed to record seed", "error", err)
		}
		slog.Info("journal opened", "path", cfg.DB.Path)
	}

	fmt.Printf("\n%s rises among %d civilizations on %s land hexes (%s total).\n",
		player.Name, len(game.Civs), humanize.Comma(int64(landHexes)), humanize.Comma(int64(worldMap.Len())))
	fmt.Printf("Capital at (%d,%d). Type help for commands.\n", player.Capital.Q, player.Capital.R)

	s := newSession(game, journal, os.Stdout)
	if err := s.run(os.Stdin); err != nil {
		slog.Error("reading commands", "error", err)
	}
	s.checkpoint()
	fmt.Printf("\nStopped during the %s turn.\n", humanize.Ordinal(game.Turn+1))
}
