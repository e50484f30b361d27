package subscribers

import (
	"fmt"
	"io"
	"sync"

	"github.com/mitchelldurbincs/warzone/internal/game/events"
)

// GameLogSubscriber writes one plain-text line per event to w. It is the
// human-readable game log; structured logs go through LoggerSubscriber.
type GameLogSubscriber struct {
	id  string
	mu  sync.Mutex
	w   io.Writer
	err error
}

// NewGameLogSubscriber creates a game log writing to w
func NewGameLogSubscriber(id string, w io.Writer) *GameLogSubscriber {
	return &GameLogSubscriber{id: id, w: w}
}

func (g *GameLogSubscriber) ID() string { return g.id }

// InterestedIn returns true for every event type
func (g *GameLogSubscriber) InterestedIn(string) bool { return true }

// HandleEvent appends the event's message to the log. After the first write
// error the subscriber stops writing and Err reports it.
func (g *GameLogSubscriber) HandleEvent(event events.Event) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.w, "%s [%s] %s\n", event.Timestamp().Format("15:04:05"), event.Type(), event.Message())
}

// Err returns the first write error, if any.
func (g *GameLogSubscriber) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}
