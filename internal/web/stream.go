package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/LyzrCore/spaces/pkg/app"
	"github.com/LyzrCore/spaces/pkg/ui"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type stepMessage struct {
	Label  string `json:"label"`
	Status string `json:"status"`
}

// streamMessage is one websocket frame. HTML is set on the last frame only
// and holds the form fragment to swap in.
type streamMessage struct {
	Stage   string        `json:"stage"`
	Agent   string        `json:"agent,omitempty"`
	Message string        `json:"message,omitempty"`
	Steps   []stepMessage `json:"steps,omitempty"`
	HTML    string        `json:"html,omitempty"`
	Done    bool          `json:"done"`
	Error   string        `json:"error,omitempty"`
}

func newStreamMessage(update app.StreamUpdate) streamMessage {
	steps := update.Steps
	if update.Outcome != nil && update.Outcome.Steps != nil {
		steps = *update.Outcome.Steps
	}
	return streamMessage{
		Stage:   string(update.Event.Stage),
		Agent:   update.Event.Agent,
		Message: update.Event.Message,
		Steps:   stepMessages(steps),
		Done:    update.Outcome != nil,
	}
}

func stepMessages(steps ui.Steps) []stepMessage {
	out := make([]stepMessage, 0, len(steps.Steps))
	for _, step := range steps.Steps {
		out = append(out, stepMessage{Label: step.Label, Status: string(step.Status)})
	}
	return out
}

// handleStream runs a submission taken from the query string and pushes a
// frame per progress event. The form page is checked before upgrading so
// unknown pages fail as plain HTTP errors.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookup(w, r)
	if !ok {
		return
	}
	path, values := formValues(r.URL.Query())
	if err := checkForm(a, path); err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The client never sends anything; reading surfaces its close.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	updates, err := a.Stream(ctx, path, values)
	if err != nil {
		s.writeFrame(conn, streamMessage{Done: true, Error: err.Error()})
		return
	}

	for update := range updates {
		msg := newStreamMessage(update)
		if update.Outcome != nil {
			s.recordSubmission(ctx, a, update.Outcome)
			html, err := s.fragment(ctx, a, update.Outcome)
			if err != nil {
				s.logger.ErrorContext(ctx, "render fragment failed", "app", a.ID(), "error", err)
				msg.Error = "render failed"
			} else {
				msg.HTML = string(html)
			}
		}
		if err := s.writeFrame(conn, msg); err != nil {
			s.logger.DebugContext(ctx, "websocket write failed", "app", a.ID(), "error", err)
			return
		}
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (s *Server) writeFrame(conn *websocket.Conn, msg streamMessage) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

func checkForm(a *app.App, path string) error {
	if path == "" {
		path = a.HomePath()
	}
	p, ok := a.Page(path)
	if !ok {
		return fmt.Errorf("%w: %s", app.ErrPageNotFound, path)
	}
	if _, ok := p.Form(); !ok {
		return fmt.Errorf("%w: %s", app.ErrNotForm, p.Path)
	}
	return nil
}
