package tournament

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Result is the outcome of one game.
type Result struct {
	Map    string `yaml:"map"`
	Game   int    `yaml:"game"`
	Winner string `yaml:"winner"`
	Turns  int    `yaml:"turns"`
	GameID string `yaml:"game_id"`
}

// Report is everything a tournament produced.
type Report struct {
	RunID     string        `yaml:"run_id"`
	StartedAt time.Time     `yaml:"started_at"`
	Duration  time.Duration `yaml:"duration"`
	Config    Config        `yaml:"config"`
	Results   []Result      `yaml:"results"`
}

// Wins counts games won per strategy; draws are counted under DrawResult.
func (r *Report) Wins() map[string]int {
	wins := make(map[string]int)
	for _, res := range r.Results {
		wins[res.Winner]++
	}
	return wins
}

// Summary renders the result grid, one line per map.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tournament %s: %d maps, %d games each, max %d turns\n",
		r.RunID, len(r.Config.Maps), r.Config.Games, r.Config.MaxTurns)
	byMap := make(map[string][]string)
	for _, res := range r.Results {
		byMap[res.Map] = append(byMap[res.Map], res.Winner)
	}
	for _, m := range r.Config.Maps {
		fmt.Fprintf(&b, "%s\t%s\n", m, strings.Join(byMap[m], "\t"))
	}
	wins := r.Wins()
	names := make([]string, 0, len(wins))
	for n := range wins {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%s=%d", n, wins[n])
	}
	fmt.Fprintf(&b, "totals: %s", strings.Join(parts, " "))
	return b.String()
}

// WriteLog appends one tab-separated row per game: map, game index and the
// winner or "draw".
func WriteLog(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	for _, res := range r.Results {
		if err := cw.Write([]string{res.Map, strconv.Itoa(res.Game), res.Winner}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteReport writes the full report as YAML.
func WriteReport(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	doc := struct {
		Report `yaml:",inline"`
		Wins   map[string]int `yaml:"wins"`
	}{*r, r.Wins()}
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// ReadReport decodes a report written by WriteReport.
func ReadReport(rd io.Reader) (*Report, error) {
	var r Report
	if err := yaml.NewDecoder(rd).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}
