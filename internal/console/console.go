// Package console is the terminal front end: prompts for human players,
// the command line and the pause between phases.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/warzone/internal/game/states"
	"github.com/pterm/pterm"
)

// Console talks to the user. With an input reader it works line by line,
// which is what tests and piped sessions use; without one it uses pterm's
// interactive widgets.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	info   *pterm.PrefixPrinter
	warn   *pterm.PrefixPrinter
	prompt func() string
}

// NewInteractive returns a console driven by pterm widgets on the terminal.
func NewInteractive(out io.Writer) *Console {
	return newConsole(nil, out)
}

// NewScripted returns a console that reads one answer per line from in.
func NewScripted(in io.Reader, out io.Writer) *Console {
	return newConsole(bufio.NewReader(in), out)
}

func newConsole(in *bufio.Reader, out io.Writer) *Console {
	return &Console{
		in:     in,
		out:    out,
		info:   pterm.Info.WithWriter(out),
		warn:   pterm.Warning.WithWriter(out),
		prompt: func() string { return "warzone" },
	}
}

// SetPrompt sets the function producing the command prompt text.
func (c *Console) SetPrompt(f func() string) { c.prompt = f }

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Choose shows options and returns the index picked.
func (c *Console) Choose(prompt string, options []string) (int, error) {
	if len(options) == 0 {
		return -1, errors.New("nothing to choose from")
	}
	if c.in == nil {
		picked, err := pterm.DefaultInteractiveSelect.
			WithDefaultText(prompt).
			WithOptions(options).
			Show()
		if err != nil {
			return -1, err
		}
		for i, o := range options {
			if o == picked {
				return i, nil
			}
		}
		return -1, fmt.Errorf("unknown option %q", picked)
	}

	fmt.Fprintln(c.out, prompt)
	for i, o := range options {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, o)
	}
	for {
		line, err := c.readLine()
		if err != nil {
			return -1, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		c.warn.Printfln("pick a number between 1 and %d", len(options))
	}
}

// ReadInt reads one integer, asking again until the input parses.
func (c *Console) ReadInt(prompt string) (int, error) {
	for {
		var line string
		var err error
		if c.in == nil {
			line, err = pterm.DefaultInteractiveTextInput.WithDefaultText(prompt).Show()
			line = strings.TrimSpace(line)
		} else {
			fmt.Fprintf(c.out, "%s: ", prompt)
			line, err = c.readLine()
		}
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		c.warn.Printfln("%q is not a number", line)
	}
}

// Message shows a line of feedback.
func (c *Console) Message(text string) {
	c.info.Println(text)
}

// Next reads the next command line.
func (c *Console) Next() (string, error) {
	if c.in == nil {
		return pterm.DefaultInteractiveTextInput.WithDefaultText(c.prompt()).Show()
	}
	fmt.Fprintf(c.out, "%s> ", c.prompt())
	return c.readLine()
}

// Pause waits for the user to press enter after a phase.
func (c *Console) Pause(phase states.GamePhase) {
	if c.in == nil {
		_, _ = pterm.DefaultInteractiveConfirm.
			WithDefaultText(fmt.Sprintf("%s done, continue?", phase)).
			WithDefaultValue(true).
			Show()
		return
	}
	fmt.Fprintf(c.out, "%s done, press enter to continue", phase)
	_, _ = c.readLine()
	fmt.Fprintln(c.out)
}
