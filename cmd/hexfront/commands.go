package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/dustin/go-humanize"

	"github.com/talgya/hexfront/internal/persistence"
	"github.com/talgya/hexfront/internal/selection"
	"github.com/talgya/hexfront/internal/turn"
	"github.com/talgya/hexfront/internal/world"
)

var commandNames = []string{"select", "move", "cancel", "deselect", "idle", "next", "show", "events", "help", "quit"}

var errQuit = errors.New("quit")

// session drives one game from text commands.
type session struct {
	game    *turn.Game
	ctl     *selection.Controller
	journal *persistence.DB // nil when disabled
	out     io.Writer
}

func newSession(game *turn.Game, journal *persistence.DB, out io.Writer) *session {
	player := game.Player()
	return &session{
		game:    game,
		ctl:     selection.New(game, game, game, player.ID),
		journal: journal,
		out:     out,
	}
}

// run reads commands until EOF or quit.
func (s *session) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(s.out, "> ")
	for scanner.Scan() {
		err := s.handle(scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		fmt.Fprint(s.out, "> ")
	}
	return scanner.Err()
}

func (s *session) handle(line string) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "select", "s":
		c, err := parseCoord(args)
		if err != nil {
			return err
		}
		if err := s.ctl.SelectTile(c); err != nil {
			return err
		}
		s.describeSelection()
	case "move", "m":
		if err := s.ctl.BeginMove(); err != nil {
			return err
		}
		reach := s.ctl.Reachable()
		fmt.Fprintf(s.out, "%d tiles reachable with %s movement\n", reach.Len()-1, reach.Budget())
	case "cancel":
		s.ctl.CancelMove()
		fmt.Fprintln(s.out, s.ctl.State())
	case "deselect":
		s.ctl.Deselect()
		fmt.Fprintln(s.out, s.ctl.State())
	case "idle", "i":
		if _, ok := s.ctl.SelectNextIdleUnit(); !ok {
			fmt.Fprintln(s.out, "no idle units")
			return nil
		}
		s.describeSelection()
	case "next", "n":
		s.game.NextTurn()
		fmt.Fprintf(s.out, "turn %d\n", s.game.Turn)
		for _, n := range s.game.Notifications {
			fmt.Fprintf(s.out, "  %s at (%d,%d)\n", n.Text, n.Coord.Q, n.Coord.R)
		}
		s.checkpoint()
	case "show":
		s.show()
	case "events":
		return s.events()
	case "help", "?":
		fmt.Fprintf(s.out, "commands: %s\n", strings.Join(commandNames, ", "))
	case "quit", "exit", "q":
		s.checkpoint()
		return errQuit
	default:
		if guess, ok := suggest(cmd); ok {
			return fmt.Errorf("unknown command %q, did you mean %q?", cmd, guess)
		}
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

func (s *session) describeSelection() {
	c, ok := s.ctl.Selected()
	if !ok {
		fmt.Fprintln(s.out, s.ctl.State())
		return
	}
	t := s.game.Grid.Get(c)
	if t == nil {
		fmt.Fprintf(s.out, "(%d,%d): nothing there\n", c.Q, c.R)
		return
	}
	desc := fmt.Sprintf("(%d,%d) %s cost %s", c.Q, c.R, world.TerrainName(t.Terrain), t.MoveCost)
	if !t.Explored {
		desc = fmt.Sprintf("(%d,%d) unexplored", c.Q, c.R)
	}
	if t.Occupant != nil && t.Visible {
		u := t.Occupant
		owner := "unknown"
		if civ := s.game.Civilization(u.Civ); civ != nil {
			owner = civ.Name
		}
		desc += fmt.Sprintf(", %s %s with %s/%s movement", owner, u.Name, u.Movement, u.MaxMovement)
		if u.Order != nil {
			desc += fmt.Sprintf(", heading to (%d,%d)", u.Order.Dest.Q, u.Order.Dest.R)
		}
	}
	fmt.Fprintln(s.out, desc)
}

func (s *session) show() {
	player := s.game.Player()
	var units, visible, explored int
	for t := range s.game.Grid.Tiles() {
		if t.Occupant != nil && t.Occupant.Civ == player.ID {
			units++
		}
		if t.Visible {
			visible++
		}
		if t.Explored {
			explored++
		}
	}
	fmt.Fprintf(s.out, "%s, turn %d: %d units, %s of %s tiles explored, %s visible\n",
		player.Name, s.game.Turn, units,
		humanize.Comma(int64(explored)), humanize.Comma(int64(s.game.Grid.Len())), humanize.Comma(int64(visible)))
	fmt.Fprintf(s.out, "selection: %s\n", s.ctl.State())
	if reach := s.ctl.Reachable(); reach != nil {
		for _, c := range reach.Coords() {
			cost, _ := reach.Cost(c)
			mark := ""
			if reach.IsFinal(c) {
				mark = " (stop)"
			}
			fmt.Fprintf(s.out, "  (%d,%d) %s%s\n", c.Q, c.R, cost, mark)
		}
	}
}

func (s *session) events() error {
	if s.journal == nil {
		return errors.New("journal disabled")
	}
	s.checkpoint()
	events, err := s.journal.RecentEvents(10)
	if err != nil {
		return fmt.Errorf("recent events: %w", err)
	}
	for _, e := range events {
		fmt.Fprintf(s.out, "  [turn %d] %s\n", e.Turn, e.Description)
	}
	return nil
}

func (s *session) checkpoint() {
	if s.journal == nil {
		s.game.DrainEvents()
		return
	}
	if err := s.journal.Checkpoint(s.game); err != nil {
		slog.Error("journal checkpoint failed", "error", err)
	}
}

// parseCoord accepts "q,r" or "q r".
func parseCoord(args []string) (world.HexCoord, error) {
	parts := strings.Fields(strings.ReplaceAll(strings.Join(args, " "), ",", " "))
	if len(parts) != 2 {
		return world.HexCoord{}, errors.New("usage: select q,r")
	}
	q, err := strconv.Atoi(parts[0])
	if err != nil {
		return world.HexCoord{}, fmt.Errorf("bad q: %w", err)
	}
	r, err := strconv.Atoi(parts[1])
	if err != nil {
		return world.HexCoord{}, fmt.Errorf("bad r: %w", err)
	}
	return world.HexCoord{Q: q, R: r}, nil
}

// suggest returns the closest known command to a mistyped one.
func suggest(cmd string) (string, bool) {
	best, bestDist := "", len(cmd)+1
	for _, name := range commandNames {
		d := levenshtein.ComputeDistance(cmd, name)
		if d < bestDist {
			best, bestDist = name, d
		}
	}
	if bestDist > levenshteinLimit(len(best)) {
		return "", false
	}
	return best, true
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
