package mapgen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/warzone/internal/game/core"
)

// ErrMalformedMap is returned when a map file cannot be parsed.
var ErrMalformedMap = errors.New("malformed map file")

type section int

const (
	sectionNone section = iota
	sectionContinents
	sectionCountries
	sectionBorders
	sectionOther
)

// ParseError points at the offending line of a map file.
type ParseError struct {
	File   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, ErrMalformedMap, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrMalformedMap }

// LoadFile reads a .map file. The map is named after the file without its
// extension and is not validated.
func LoadFile(path string) (*core.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map %s: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(f, name)
}

// Parse reads the [continents], [countries] and [borders] sections of a
// Domination style map. Lines starting with ';' and unknown sections are
// skipped. Countries must be listed with ids 1..N in order.
func Parse(r io.Reader, name string) (*core.Map, error) {
	m := core.NewMap(name)
	sc := bufio.NewScanner(r)
	cur := sectionNone
	lineNo := 0

	fail := func(format string, args ...interface{}) error {
		return &ParseError{File: name, Line: lineNo, Reason: fmt.Sprintf(format, args...)}
	}

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			cur = sectionFor(strings.ToLower(strings.Trim(line, "[]")))
			continue
		}

		fields := strings.Fields(line)
		switch cur {
		case sectionContinents:
			if len(fields) < 2 {
				return nil, fail("continent needs a name and a bonus")
			}
			bonus, err := strconv.Atoi(fields[1])
			if err != nil || bonus < 0 {
				return nil, fail("bad continent bonus %q", fields[1])
			}
			color := ""
			if len(fields) > 2 {
				color = fields[2]
			}
			if _, err := m.AddContinent(fields[0], color, bonus); err != nil {
				return nil, fail("%v", err)
			}

		case sectionCountries:
			if len(fields) < 3 {
				return nil, fail("country needs an id, a name and a continent")
			}
			nums, err := atois(fields[0], fields[2])
			if err != nil {
				return nil, fail("%v", err)
			}
			if want := m.Size() + 1; nums[0] != want {
				return nil, fail("country id %d out of sequence, expected %d", nums[0], want)
			}
			var pos core.Coordinate
			if len(fields) >= 5 {
				xy, err := atois(fields[3], fields[4])
				if err != nil {
					return nil, fail("%v", err)
				}
				pos = core.NewCoordinate(xy[0], xy[1])
			}
			if _, err := m.AddTerritory(fields[1], nums[1], pos); err != nil {
				return nil, fail("%v", err)
			}

		case sectionBorders:
			ids, err := atois(fields...)
			if err != nil {
				return nil, fail("%v", err)
			}
			if _, ok := m.TerritoryByID(ids[0]); !ok {
				return nil, fail("border for unknown country %d", ids[0])
			}
			for _, n := range ids[1:] {
				if err := m.AddEdge(ids[0], n); err != nil {
					return nil, fail("%v", err)
				}
			}

		case sectionNone, sectionOther:
			// header lines and [files] etc.
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read map %s: %w", name, err)
	}
	if m.Size() == 0 {
		return nil, &ParseError{File: name, Line: lineNo, Reason: "no countries"}
	}
	return m, nil
}

func sectionFor(name string) section {
	switch name {
	case "continents":
		return sectionContinents
	case "countries", "territories":
		return sectionCountries
	case "borders":
		return sectionBorders
	default:
		return sectionOther
	}
}

func atois(fields ...string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", f)
		}
		out[i] = n
	}
	return out, nil
}

// Write serialises m in the format Parse reads.
func Write(w io.Writer, m *core.Map) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "; %s\n\n[continents]\n", m.Name)
	for _, c := range m.Continents() {
		color := c.Color
		if color == "" {
			color = "gray"
		}
		fmt.Fprintf(bw, "%s %d %s\n", c.Name, c.Bonus, color)
	}
	bw.WriteString("\n[countries]\n")
	for _, t := range m.Territories() {
		fmt.Fprintf(bw, "%d %s %d %d %d\n", t.ID, t.Name, t.ContinentID, t.Position.X, t.Position.Y)
	}
	bw.WriteString("\n[borders]\n")
	for _, t := range m.Territories() {
		bw.WriteString(strconv.Itoa(t.ID))
		for _, n := range t.Neighbors() {
			bw.WriteString(" " + strconv.Itoa(n.ID))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
