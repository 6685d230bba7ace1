package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	common "github.com/usa-trezo/en-us/internal/app/common/exception_handler"
	"github.com/usa-trezo/en-us/internal/app/common/logger"
	"github.com/usa-trezo/en-us/internal/app/dto"
	"github.com/usa-trezo/en-us/internal/app/metrics"
	"github.com/usa-trezo/en-us/internal/app/services/render"
	"github.com/usa-trezo/en-us/internal/app/services/state"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Server pushes the rendered ticker to every open tab whenever the state
// version moves. It never writes to the state.
type Server struct {
	state    *state.TickerState
	format   *render.Formatter
	interval time.Duration
	logger   *logrus.Logger
	upgrader websocket.Upgrader
	clients  sync.Map // map[string]*Client

	// lastSent is only touched by the broadcaster goroutine.
	lastSent uint64
}

func NewServer(st *state.TickerState, format *render.Formatter, interval time.Duration, allowedOrigins []string) *Server {
	return &Server{
		state:    st,
		format:   format,
		interval: interval,
		logger:   logger.GetLogger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
	}
}

// checkOrigin allows same-host pages and the configured origins. "*" allows all.
func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

// Start runs the broadcaster until ctx is cancelled, then closes every client.
func (s *Server) Start(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("panic", r).Error("Websocket broadcaster panicked")
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	pings := time.NewTicker(pingPeriod)
	defer pings.Stop()

	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			s.logger.Info("Websocket broadcaster stopped")
			return
		case <-ticker.C:
			s.broadcast()
		case <-pings.C:
			s.each(func(c *Client) {
				if err := c.ping(); err != nil {
					s.drop(c)
				}
			})
		}
	}
}

func (s *Server) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).WithField("origin", r.Header.Get("Origin")).Debug("Websocket upgrade refused")
		return
	}

	client := newClient(conn)
	s.clients.Store(client.ID, client)
	metrics.WSClients.Inc()
	s.logger.WithField("client_id", client.ID).Debug("Websocket client connected")

	go s.readPump(client)

	msg, _, err := s.message()
	if err != nil {
		s.logger.WithError(err).Error("Failed to build initial ticker message")
		return
	}
	if err := client.write(msg); err != nil {
		s.drop(client)
	}
}

func (s *Server) broadcast() {
	if s.state.Version() == s.lastSent {
		return
	}
	msg, version, err := s.message()
	if err != nil {
		s.logger.WithError(err).Error("Failed to build ticker message")
		metrics.ErrorsTotal.WithLabelValues(common.CodeOf(err)).Inc()
		return
	}
	s.lastSent = version

	s.each(func(c *Client) {
		if err := c.write(msg); err != nil {
			s.logger.WithError(err).WithField("client_id", c.ID).Debug("Dropping websocket client")
			s.drop(c)
		}
	})
	metrics.BroadcastsTotal.Inc()
}

func (s *Server) message() ([]byte, uint64, error) {
	view := s.format.Render(s.state.View())
	html, err := render.Fragment(view)
	if err != nil {
		return nil, 0, err
	}
	msg, err := json.Marshal(dto.TickerMessage{
		Type:    dto.MessageTypeTicker,
		Version: view.Version,
		Loading: view.Loading,
		HTML:    string(html),
	})
	if err != nil {
		return nil, 0, common.NewCustomError(common.ErrMarshal, "Failed to marshal ticker message", err)
	}
	return msg, view.Version, nil
}

func (s *Server) readPump(c *Client) {
	defer s.drop(c)

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// drop forgets c and closes its connection. Safe to call more than once.
func (s *Server) drop(c *Client) {
	if _, loaded := s.clients.LoadAndDelete(c.ID); !loaded {
		return
	}
	metrics.WSClients.Dec()
	c.conn.Close()
	s.logger.WithField("client_id", c.ID).Debug("Websocket client disconnected")
}

func (s *Server) closeAll() {
	s.each(func(c *Client) {
		if _, loaded := s.clients.LoadAndDelete(c.ID); loaded {
			metrics.WSClients.Dec()
			c.close()
		}
	})
}

func (s *Server) each(fn func(c *Client)) {
	s.clients.Range(func(_, value any) bool {
		fn(value.(*Client))
		return true
	})
}

// ClientCount is the number of open connections.
func (s *Server) ClientCount() int {
	n := 0
	s.each(func(*Client) { n++ })
	return n
}
