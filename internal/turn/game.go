// Package turn owns the game state around the grid: civilizations, the turn
// counter, standing orders, and the rules consulted by movement and
// visibility. It advances the world one turn at a time.
package turn

import (
	"fmt"
	"log/slog"

	"github.com/talgya/hexfront/internal/movement"
	"github.com/talgya/hexfront/internal/visibility"
	"github.com/talgya/hexfront/internal/world"
)

// Settings holds the rule switches a game is created with.
type Settings struct {
	Vision       visibility.Config
	Policy       movement.Policy
	Machinery    bool // Roads cost 1/3 instead of 1/2
	MaxPathTurns int  // Horizon for standing move orders
}

// DefaultSettings returns the standard rule set.
func DefaultSettings() Settings {
	return Settings{
		Vision:       visibility.DefaultConfig(),
		Policy:       movement.FinalStep,
		MaxPathTurns: 50,
	}
}

// Event is a notable occurrence during play.
type Event struct {
	Turn        int    `json:"turn" db:"turn"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"` // "move", "order", "turn", "sighting"
}

// Notification is a message for the player tied to a map location.
type Notification struct {
	Turn  int
	Text  string
	Coord world.HexCoord
}

// Game holds the complete state the core reads and mutates.
type Game struct {
	Grid     *world.Grid
	Civs     []*Civilization
	Turn     int
	Settings Settings

	Notifications []Notification
	Events        []Event // Not yet journaled

	civIndex   map[world.CivID]*Civilization
	visible    map[world.CivID]visibility.Set
	visVersion uint64
}

// NewGame wires civilizations onto a generated grid. Each civilization gets
// its capital tile as a city center, the surrounding ring as territory, and
// the starting units placed nearby. The first civilization is the player.
func NewGame(g *world.Grid, capitals []world.CapitalSeed, settings Settings) (*Game, error) {
	game := &Game{
		Grid:     g,
		Settings: settings,
		civIndex: make(map[world.CivID]*Civilization),
		visible:  make(map[world.CivID]visibility.Set),
	}

	for i, seed := range capitals {
		civ := NewCivilization(world.CivID(i+1), seed.Name, seed.Coord)
		civ.Player = i == 0
		game.AddCivilization(civ)

		if t := g.Get(seed.Coord); t != nil {
			t.CityCenter = true
		}
		id := civ.ID
		for _, t := range g.TilesWithin(seed.Coord, 1) {
			if t.Owner == nil {
				g.SetOwner(t.Coord, &id)
			}
		}

		for _, kind := range StartingUnits {
			u := world.NewUnit(kind.Name, civ.ID, world.Points(kind.Movement))
			if _, err := g.PlaceUnitNear(seed.Coord, u); err != nil {
				return nil, fmt.Errorf("starting units for %s: %w", civ.Name, err)
			}
		}
	}

	game.RefreshVisibility()
	return game, nil
}

// AddCivilization registers a civilization with the game.
func (g *Game) AddCivilization(c *Civilization) {
	g.Civs = append(g.Civs, c)
	g.civIndex[c.ID] = c
}

// Civilization returns a civilization by ID, or nil.
func (g *Game) Civilization(id world.CivID) *Civilization {
	return g.civIndex[id]
}

// Player returns the locally controlled civilization, or nil.
func (g *Game) Player() *Civilization {
	for _, c := range g.Civs {
		if c.Player {
			return c
		}
	}
	return nil
}

// AtWar reports whether civilizations a and b are at war.
func (g *Game) AtWar(a, b world.CivID) bool {
	c := g.civIndex[a]
	return c != nil && a != b && c.War[b]
}

// CurrentTileMap returns the grid the game is played on.
func (g *Game) CurrentTileMap() *world.Grid {
	return g.Grid
}

// CivilizationOf returns the civilization a unit belongs to.
func (g *Game) CivilizationOf(u *world.Unit) world.CivID {
	return u.Civ
}

// MovementPointsRemaining returns what a unit may still spend this turn.
func (g *Game) MovementPointsRemaining(u *world.Unit) world.Movement {
	return u.Movement
}

// VisibilityVersion changes every time any civilization's visible set changes.
func (g *Game) VisibilityVersion() uint64 {
	return g.visVersion
}

// Visible returns the last computed visible set for civ.
func (g *Game) Visible(civ world.CivID) visibility.Set {
	return g.visible[civ]
}

// RefreshVisibility recomputes what every civilization sees. Tile fog flags
// follow the player's view; other civilizations only keep their sets.
func (g *Game) RefreshVisibility() {
	for _, c := range g.Civs {
		var (
			set visibility.Set
			d   visibility.Delta
		)
		if c.Player {
			set, d = visibility.Refresh(g.Grid, c.ID, g.Settings.Vision)
		} else {
			set = visibility.Compute(g.Grid, c.ID, g.Settings.Vision)
			d.Revealed = symmetricDiff(g.visible[c.ID], set)
		}
		g.visible[c.ID] = set
		if d.Changed() {
			g.visVersion++
		}
	}
}

func symmetricDiff(a, b visibility.Set) int {
	n := 0
	for _, c := range a.Coords() {
		if !b.Contains(c) {
			n++
		}
	}
	for _, c := range b.Coords() {
		if !a.Contains(c) {
			n++
		}
	}
	return n
}

func (g *Game) record(category, format string, args ...any) {
	desc := fmt.Sprintf(format, args...)
	g.Events = append(g.Events, Event{Turn: g.Turn, Description: desc, Category: category})
	slog.Debug("event", "turn", g.Turn, "category", category, "description", desc)
}

// DrainEvents returns and clears events not yet handed to the journal.
func (g *Game) DrainEvents() []Event {
	events := g.Events
	g.Events = nil
	return events
}

func (g *Game) notify(text string, coord world.HexCoord) {
	g.Notifications = append(g.Notifications, Notification{Turn: g.Turn, Text: text, Coord: coord})
}
