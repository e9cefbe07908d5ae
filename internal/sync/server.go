package sync

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	gosync "sync"
	"time"

	"shopsphere/internal/model"
	"shopsphere/internal/store"

	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  32 * 1024,
	WriteBufferSize: 32 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			return true
		}
		// Basic same-origin check; good enough for a personal sync server.
		host := strings.TrimSpace(r.Host)
		return strings.Contains(origin, "://"+host)
	},
}

type ServerConfig struct {
	Addr string
	Docs *store.DocStore
}

// Server fans one user's document changes out to all of that user's
// connections. Every mutation triggers a fresh full snapshot broadcast.
type Server struct {
	cfg ServerConfig

	mu   gosync.Mutex
	subs map[string]map[*websocket.Conn]bool
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("sync: missing addr")
	}
	if cfg.Docs == nil {
		return nil, errors.New("sync: missing doc store")
	}
	return &Server{
		cfg:  cfg,
		subs: map[string]map[*websocket.Conn]bool{},
	}, nil
}

func (s *Server) Addr() string {
	return strings.TrimSpace(s.cfg.Addr)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWS)
	return mux
}

func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	user := strings.TrimSpace(r.URL.Query().Get("user"))
	if user == "" {
		http.Error(w, "missing user", http.StatusBadRequest)
		return
	}

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "websocket upgrade failed", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	s.register(user, conn)
	defer s.unregister(user, conn)

	// Initial load is itself a change event.
	if err := s.sendSnapshot(r.Context(), user, conn); err != nil {
		return
	}

	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			return
		}
		if err := s.apply(r.Context(), user, f); err != nil {
			log.Printf("sync: apply %s for %s: %v", f.Type, user, err)
			continue
		}
		s.broadcast(r.Context(), user)
	}
}

func (s *Server) apply(ctx context.Context, user string, f frame) error {
	switch f.Type {
	case framePut:
		if f.Shop == nil {
			return errors.New("put frame without shop")
		}
		return s.cfg.Docs.PutShop(ctx, user, *f.Shop)
	case frameDelete:
		if strings.TrimSpace(f.ShopID) == "" {
			return errors.New("delete frame without shopId")
		}
		return s.cfg.Docs.DeleteShop(ctx, user, f.ShopID)
	case frameReplace:
		return s.cfg.Docs.ReplaceAll(ctx, user, f.Shops)
	default:
		return errors.New("unknown frame type: " + f.Type)
	}
}

func (s *Server) register(user string, conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs[user] == nil {
		s.subs[user] = map[*websocket.Conn]bool{}
	}
	s.subs[user][conn] = true
}

func (s *Server) unregister(user string, conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs[user], conn)
	if len(s.subs[user]) == 0 {
		delete(s.subs, user)
	}
}

func (s *Server) sendSnapshot(ctx context.Context, user string, conn *websocket.Conn) error {
	shops, err := s.cfg.Docs.ListShops(ctx, user)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeSnapshot(conn, shops)
}

// broadcast pushes a fresh snapshot to every connection subscribed to user.
// Connections that fail to accept the write are dropped; their read loop
// will notice the closed conn and unregister.
func (s *Server) broadcast(ctx context.Context, user string) {
	shops, err := s.cfg.Docs.ListShops(ctx, user)
	if err != nil {
		log.Printf("sync: snapshot for %s: %v", user, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.subs[user] {
		if err := writeSnapshot(conn, shops); err != nil {
			_ = conn.Close()
			delete(s.subs[user], conn)
		}
	}
}

func writeSnapshot(conn *websocket.Conn, shops []model.Shop) error {
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(frame{Type: frameSnapshot, Shops: shops})
}
