package console

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/warzone/internal/command"
	"github.com/mitchelldurbincs/warzone/internal/game"
	"github.com/mitchelldurbincs/warzone/internal/game/core"
	"github.com/mitchelldurbincs/warzone/internal/game/states"
	"github.com/pterm/pterm"
)

// Renderer prints game state as pterm tables and banners.
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Banner prints a full-width header line.
func (r *Renderer) Banner(text string) {
	fmt.Fprintln(r.out, pterm.DefaultHeader.WithFullWidth().Sprint(text))
}

// Map prints one row per territory. Owner and armies are shown once a world
// exists.
func (r *Renderer) Map(m *core.Map, w *core.World) error {
	data := pterm.TableData{{"ID", "Territory", "Continent", "Owner", "Armies", "Borders"}}
	for _, t := range m.Territories() {
		continent := strconv.Itoa(t.ContinentID)
		if c, ok := m.ContinentByID(t.ContinentID); ok {
			continent = c.Name
		}
		owner := "-"
		if w != nil {
			if p := w.Owner(t); p != nil {
				owner = p.Name
			}
		}
		borders := make([]string, 0, len(t.Neighbors()))
		for _, n := range t.Neighbors() {
			borders = append(borders, strconv.Itoa(n.ID))
		}
		data = append(data, []string{
			strconv.Itoa(t.ID), t.Name, continent, owner, strconv.Itoa(t.Armies()), strings.Join(borders, " "),
		})
	}
	return r.table(data)
}

// Continents prints each continent with its bonus and controller.
func (r *Renderer) Continents(m *core.Map, w *core.World) error {
	data := pterm.TableData{{"Continent", "Bonus", "Territories", "Controlled by"}}
	for _, c := range m.Continents() {
		holder := "-"
		if id, ok := c.Controller(); ok && w != nil {
			if p, found := w.Player(id); found {
				holder = p.Name
			}
		}
		data = append(data, []string{c.Name, strconv.Itoa(c.Bonus), strconv.Itoa(len(c.Territories())), holder})
	}
	return r.table(data)
}

// Roster prints the active players.
func (r *Renderer) Roster(w *core.World) error {
	data := pterm.TableData{{"Player", "Strategy", "Territories", "Armies", "Pool", "Cards"}}
	for _, p := range w.Players() {
		kind := "-"
		if p.Strategy != nil {
			kind = p.Strategy.Kind().String()
		}
		cards := make([]string, 0, p.Hand().Size())
		for _, c := range p.Hand().Cards() {
			cards = append(cards, c.Type().String())
		}
		sort.Strings(cards)
		data = append(data, []string{
			p.Name, kind, strconv.Itoa(p.TerritoryCount()), strconv.Itoa(p.TotalArmies()),
			strconv.Itoa(p.Pool()), strings.Join(cards, ","),
		})
	}
	return r.table(data)
}

// Standings prints the end-of-game statistics.
func (r *Renderer) Standings(standings []game.PlayerStats) error {
	data := pterm.TableData{{"#", "Player", "Strategy", "Territories", "Armies", "Conquests", "Orders", "Skipped", "Out on"}}
	for i, s := range standings {
		out := "-"
		if s.EliminatedOn > 0 {
			out = "turn " + strconv.Itoa(s.EliminatedOn)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1), s.Name, s.Strategy, strconv.Itoa(s.Territories), strconv.Itoa(s.Armies),
			strconv.Itoa(s.Conquests), strconv.Itoa(s.OrdersExecuted), strconv.Itoa(s.OrdersSkipped), out,
		})
	}
	return r.table(data)
}

// History prints the state transitions recorded so far.
func (r *Renderer) History(history []states.Transition) error {
	data := pterm.TableData{{"Time", "From", "To", "Action", "Reason"}}
	for _, t := range history {
		data = append(data, []string{
			t.Timestamp.Format("15:04:05"), t.From.String(), t.To.String(), string(t.Action), t.Reason,
		})
	}
	return r.table(data)
}

// Allowed lists the commands accepted in phase.
func (r *Renderer) Allowed(phase states.GamePhase) {
	if phase.IsGameplay() {
		pterm.Info.WithWriter(r.out).Printfln("state %s, turn in progress", phase)
		return
	}
	names := make([]string, 0)
	for _, a := range phase.AllowedActions(false) {
		if spec, ok := phase.Lookup(a); ok {
			names = append(names, spec.Usage)
		}
	}
	pterm.Info.WithWriter(r.out).Printfln("state %s, commands: %s", phase, strings.Join(names, " | "))
}

// Result reports the outcome of one command.
func (r *Renderer) Result(c command.Command, err error) {
	if err != nil {
		pterm.Error.WithWriter(r.out).Printfln("%s: %v", c.Raw, err)
		return
	}
	pterm.Success.WithWriter(r.out).Println(c.Effect)
}

func (r *Renderer) table(data pterm.TableData) error {
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, s)
	return err
}
