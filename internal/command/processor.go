package command

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/mitchelldurbincs/warzone/internal/game/states"
	"github.com/rs/zerolog"
)

// Handler executes validated actions. *game.Engine satisfies it.
type Handler interface {
	Handle(ctx context.Context, action states.Action, args []string) (string, error)
	CurrentPhase() states.GamePhase
}

// Processor parses command lines, checks them against the current phase
// and forwards the legal ones to the handler. Every line it sees is kept in
// the history together with its effect.
type Processor struct {
	handler Handler
	logger  zerolog.Logger
	history []Command
}

// NewProcessor creates a processor driving h
func NewProcessor(h Handler, logger zerolog.Logger) *Processor {
	return &Processor{
		handler: h,
		logger:  logger.With().Str("component", "CommandProcessor").Logger(),
	}
}

// Execute runs one line. Invalid lines return an error wrapping
// ErrInvalidCommand and never reach the handler.
func (p *Processor) Execute(ctx context.Context, line string) (Command, error) {
	cmd, err := Parse(line)
	if err == nil {
		err = Validate(p.handler.CurrentPhase(), cmd).Err()
	}
	if err == nil {
		cmd.Effect, err = p.handler.Handle(ctx, cmd.Action, cmd.Args)
	}
	cmd.ExecutedAt = time.Now()
	cmd.Err = err
	if err != nil {
		cmd.Effect = "rejected: " + err.Error()
		p.logger.Debug().Str("command", cmd.Raw).Err(err).Msg("Command rejected")
	} else {
		p.logger.Debug().Str("command", cmd.String()).Str("effect", cmd.Effect).Msg("Command executed")
	}
	p.history = append(p.history, cmd)
	return cmd, err
}

// Run executes lines from src until it is exhausted or the session ends.
// Rejected commands are reported and do not stop the run; only a source
// failure or cancellation does.
func (p *Processor) Run(ctx context.Context, src Source, report func(Command, error)) error {
	for !p.handler.CurrentPhase().IsTerminal() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		cmd, err := p.Execute(ctx, line)
		if report != nil {
			report(cmd, err)
		}
		if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			return err
		}
	}
	return nil
}

// History returns every line executed so far, oldest first.
func (p *Processor) History() []Command {
	out := make([]Command, len(p.history))
	copy(out, p.history)
	return out
}
