package http

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	hasard "github.com/hasard-app/hasard-api"
)

// feedHub fans newly recorded responses out to the dashboard clients
// subscribed to the same class.
type feedHub struct {
	mu     sync.Mutex
	subs   map[int]map[chan hasard.LogEntry]struct{}
	closed bool
}

func newFeedHub() *feedHub {
	return &feedHub{subs: make(map[int]map[chan hasard.LogEntry]struct{})}
}

// subscribe registers a subscriber for classID. The returned cancel func is
// safe to call more than once.
func (h *feedHub) subscribe(classID int) (chan hasard.LogEntry, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := make(chan hasard.LogEntry, 8)
	if h.closed {
		close(c)
		return c, func() {}
	}

	if h.subs[classID] == nil {
		h.subs[classID] = make(map[chan hasard.LogEntry]struct{})
	}
	h.subs[classID][c] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[classID][c]; ok {
				delete(h.subs[classID], c)
				close(c)
			}
		})
	}
	return c, cancel
}

// publish delivers e to every subscriber of its class. Slow subscribers are
// skipped rather than blocking the recording request.
func (h *feedHub) publish(e hasard.LogEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.subs[e.ClassID] {
		select {
		case c <- e:
		default:
		}
	}
}

// close drops every subscriber. Further subscriptions get a closed channel.
func (h *feedHub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for _, subs := range h.subs {
		for c := range subs {
			close(c)
		}
	}
	h.subs = make(map[int]map[chan hasard.LogEntry]struct{})
}

// GET "/dashboard/feed"
//
// This is a websocket endpoint, the connection is upgraded to a websocket
// connection and every response recorded for the session's class is fed to
// the client as it happens. The connection closes when the hub shuts down or
// the peer stops answering pings.
func (s *Server) handleDashboardFeed(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)

	sub, cancel := s.feed.subscribe(sess.ClassID())
	defer cancel()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		LogError(r, err)
		return
	}

	timer := time.NewTicker(websocketPingConnections)
	defer timer.Stop()
	defer conn.Close()
	for {
		select {
		case entry, ok := <-sub:
			// hub closed, notify peer that the connection is closing.
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			sendBuf, err := json.Marshal(entry)
			if err != nil {
				LogError(r, err)
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			conn.SetWriteDeadline(time.Now().Add(websocketWriteTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, sendBuf); err != nil {
				LogError(r, err)
				return
			}

		case <-timer.C:
			conn.SetWriteDeadline(time.Now().Add(websocketWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
				LogError(r, err)
				return
			}
		}
	}
}
