package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/cumbiambero/genforge/internal/events"
)

// eventChanBuffer bounds how many unread events a slow websocket client
// can fall behind by before the oldest is dropped, same shape as the
// teacher's own bounded fan-out channel.
const eventChanBuffer = 64

// EventsStreamHandler streams one run's progress events over a
// websocket, one JSON message per event.
type EventsStreamHandler struct {
	log zerolog.Logger
}

// enqueueEvent pushes e onto ch, dropping the oldest queued event first
// if ch is full rather than blocking the publisher.
func (h *EventsStreamHandler) enqueueEvent(ch chan *events.Event, e *events.Event) {
	select {
	case ch <- e:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- e:
	default:
		h.log.Warn().Str("event_type", string(e.Type)).Msg("dropped event, stream still full")
	}
}

// HandleStream upgrades to a websocket and relays every event the run's
// bus emits until the run finishes or the client disconnects.
// GET /solve/{runID}/stream
func (h *Handlers) HandleStream(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	rn, ok := h.store.get(runID)
	if !ok {
		h.respondError(w, http.StatusNotFound, "unknown run")
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "stream closed")

	stream := &EventsStreamHandler{log: h.log}
	ch := make(chan *events.Event, eventChanBuffer)

	var subs []events.Subscription
	for _, t := range []events.Type{events.TypeTick, events.TypeNewBest, events.TypeStagnation, events.TypeDone} {
		t := t
		subs = append(subs, rn.bus.Subscribe(t, func(e *events.Event) {
			stream.enqueueEvent(ch, e)
		}))
	}
	defer func() {
		for _, sub := range subs {
			rn.bus.Unsubscribe(sub)
		}
	}()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-ch:
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(writeCtx, conn, e)
			cancel()
			if err != nil {
				return
			}
			if e.Type == events.TypeDone {
				return
			}
		}
	}
}
