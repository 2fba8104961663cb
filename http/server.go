package http

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	hasard "github.com/hasard-app/hasard-api"
)

const (
	// time allowed for connections to resolve before server shuts down.
	serverShutdownTime = 3 * time.Second
	// heartbeat for websocket connections.
	websocketPingConnections = 5 * time.Second
	websocketWriteTimeout    = 5 * time.Second
)

// Server represents an http server which exposes the injected services over
// http.
//
// It is used to provide an abstraction from the net/http package when running
// the http server.
type Server struct {
	server   *http.Server
	router   *chi.Mux
	upgrader *websocket.Upgrader
	sessions *SessionStore
	feed     *feedHub

	// The URL address of the server.
	Addr string
	// The URL address of the frontend server, the only origin allowed to
	// send credentialed requests.
	FrontendURL string
	// Debug exposes internal error details in responses.
	Debug bool

	// Services exposed via http.
	Auth              *hasard.SessionAuthority
	StudentService    hasard.StudentService
	EngagementService hasard.EngagementService
	LogService        hasard.LogService

	closed atomic.Bool
}

// NewServer creates a new server instance.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{},
		router: chi.NewRouter(),
		upgrader: &websocket.Upgrader{
			HandshakeTimeout: 3 * time.Second,
			CheckOrigin:      func(r *http.Request) bool { return true },
		},
		sessions: NewSessionStore(),
		feed:     newFeedHub(),
	}

	// common middleware.
	s.router.Use(chimw.Logger)
	s.router.Use(chimw.SetHeader("Content-Type", "application/json"))
	s.router.Use(cors.Handler(
		cors.Options{
			AllowOriginFunc: func(r *http.Request, origin string) bool {
				return origin == s.FrontendURL
			},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", csrfHeader},
			AllowCredentials: true,
		},
	))
	s.router.Use(s.withSession)

	// routes for issuing csrf tokens and managing the session lifecycle.
	s.registerAuthRoutes(s.router)
	// routes for selecting the active class.
	s.router.Route("/classes", func(r chi.Router) {
		s.registerClassRoutes(r)
	})
	// routes for the teacher dashboard: ranked roster, logs, live feed.
	s.router.Route("/dashboard", func(r chi.Router) {
		s.registerDashboardRoutes(r)
	})
	// routes for chart data consumed by the frontend renderers.
	s.router.Route("/charts", func(r chi.Router) {
		s.registerChartRoutes(r)
	})
	// routes for the read-only student views.
	s.router.Route("/student", func(r chi.Router) {
		s.registerStudentRoutes(r)
	})
	// recording responses and the cold-call pick.
	s.registerResponseRoutes(s.router)

	s.server.Handler = s.router
	return s
}

// Listen starts listening on the provided address using the
// (*http.Server).Serve() method.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}

	return s.server.Serve(ln)
}

// Close gracefully closes the http server and drops the live feed
// subscribers.
//
// no-op if already closed.
func (s *Server) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		ctx, cancel := context.WithTimeout(context.Background(), serverShutdownTime)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			return err
		}

		// the server is the only publisher to the feed.
		s.feed.close()
	}
	return nil
}
