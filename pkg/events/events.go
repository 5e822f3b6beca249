package events

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// Event kinds published by the document-store watcher.
const (
	KindCreated = "created"
	KindUpdated = "updated"
)

// DocumentEvent is the wire form of one document change. Before is empty for
// created events; both snapshots are present for updates.
type DocumentEvent struct {
	Collection string          `json:"collection"`
	Kind       string          `json:"eventKind"`
	DocumentID string          `json:"documentId"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
}

// HandlerFunc reacts to one document event. Handlers never report failure to
// the event host; anything that goes wrong is logged and dropped.
type HandlerFunc func(ctx context.Context, evt DocumentEvent)

// Registration binds one handler to a collection and event kind.
type Registration struct {
	Collection string
	Kind       string
	Handle     HandlerFunc
}

// Router routes decoded document events to their registered handlers.
type Router struct {
	table map[string][]HandlerFunc
}

// NewRouter builds the routing table from an explicit registration list.
func NewRouter(registrations []Registration) *Router {
	table := make(map[string][]HandlerFunc)
	for _, reg := range registrations {
		key := routeKey(reg.Collection, reg.Kind)
		table[key] = append(table[key], reg.Handle)
	}
	return &Router{table: table}
}

func routeKey(collection, kind string) string {
	return collection + "/" + kind
}

// Route decodes a raw event payload and invokes every matching handler.
// Malformed or unroutable events are logged and dropped.
func (r *Router) Route(ctx context.Context, payload []byte) {
	var evt DocumentEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		logrus.Errorf("[Events] Could not decode event payload: %v", err)
		return
	}

	handlers, ok := r.table[routeKey(evt.Collection, evt.Kind)]
	if !ok {
		logrus.Debugf("[Events] No handler for %s/%s, ignoring", evt.Collection, evt.Kind)
		return
	}

	for _, handle := range handlers {
		handle(ctx, evt)
	}
}
