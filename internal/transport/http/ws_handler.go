package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"puzzle-service/internal/app"
	"puzzle-service/internal/domain"
	"puzzle-service/internal/engine"
)

type WSHandler struct {
	service  *app.PuzzleService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.PuzzleService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// actionPayload carries the argument of any action; each type reads one field.
type actionPayload struct {
	Index  *int   `json:"index"`
	Value  *int   `json:"value"`
	Letter string `json:"letter"`
	Answer string `json:"answer"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type scorePayload struct {
	TotalScore int `json:"totalScore"`
}

var (
	errUnsupported = errors.New("unsupported message type")
	errPayload     = errors.New("invalid action payload")
)

// decodeAction maps a client message to an engine action. "select" picks a
// quiz option by index, or a number by value in the counting puzzle.
func decodeAction(kind domain.Kind, msg inboundMessage) (engine.Action, error) {
	var p actionPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return nil, errPayload
		}
	}
	switch msg.Type {
	case "flip":
		if p.Index == nil {
			return nil, errPayload
		}
		return engine.Flip{Index: *p.Index}, nil
	case "select":
		if kind == domain.KindCount {
			if p.Value == nil {
				return nil, errPayload
			}
			return engine.Select{Value: *p.Value}, nil
		}
		if p.Index == nil {
			return nil, errPayload
		}
		return engine.SelectOption{Index: *p.Index}, nil
	case "guess":
		return engine.Guess{Letter: p.Letter}, nil
	case "answer":
		return engine.Answer{Value: p.Answer}, nil
	case "hint":
		return engine.ToggleHint{}, nil
	case "next":
		return engine.Next{}, nil
	}
	return nil, errUnsupported
}

// enqueue hands msg to the writer. It reports false once the writer is gone.
func enqueue(send chan<- outboundMessage[any], writerDone <-chan struct{}, msg outboundMessage[any]) bool {
	select {
	case send <- msg:
		return true
	case <-writerDone:
		return false
	}
}

// ServeWS upgrades HTTP requests to websockets and runs one puzzle session
// for the lifetime of the connection.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseKind(r.URL.Query().Get("kind"))
	if err != nil {
		http.Error(w, "missing or unknown kind", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	loop, err := h.service.StartPuzzle(r.Context(), kind)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer h.service.EndPuzzle(loop.ID())

	views, cancel := loop.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	viewsDone := make(chan struct{})

	// Only the writer goroutine touches the connection for writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug().Err(err).Msg("ws write error")
				return
			}
		}
	}()

	go func() {
		defer close(viewsDone)
		lastScore := -1
		for {
			select {
			case view, ok := <-views:
				if !ok {
					return
				}
				out := []outboundMessage[any]{{Type: "view", Payload: view}}
				if view.Score != lastScore {
					lastScore = view.Score
					out = append(out, outboundMessage[any]{Type: "score", Payload: scorePayload{TotalScore: view.Score}})
				}
				for _, msg := range out {
					select {
					case send <- msg:
					case <-writerDone:
						return
					case <-closeSignals:
						return
					}
				}
			case <-closeSignals:
				return
			}
		}
	}()

	reportError := func(err error) bool {
		return enqueue(send, writerDone, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		action, err := decodeAction(loop.Kind(), inbound)
		if err != nil {
			if !reportError(err) {
				break
			}
			continue
		}
		if err := loop.Submit(r.Context(), action); err != nil {
			if !reportError(err) || errors.Is(err, engine.ErrClosed) {
				break
			}
		}
	}

	close(closeSignals)
	<-viewsDone
	close(send)
	<-writerDone
}
