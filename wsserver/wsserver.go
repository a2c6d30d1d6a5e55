// Package wsserver streams the match to read-only websocket spectators.
package wsserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mo-shahab/go-pong/client"
	"github.com/mo-shahab/go-pong/game"
	pb "github.com/mo-shahab/go-pong/proto"
	"github.com/mo-shahab/go-pong/room"
)

const (
	defaultQueueSize = 32
	shutdownTimeout  = 3 * time.Second
)

// Server upgrades /ws requests into spectator connections and fans frames out
// to them. It implements game.FrameHandler.
type Server struct {
	Upgrader websocket.Upgrader
	Room     *room.Room

	broadcastEvery uint64
	queueSize      int
	frames         uint64
	mux            *http.ServeMux
}

// New creates a server that forwards every broadcastEvery-th frame, plus every
// frame in which a point was scored.
func New(broadcastEvery int) *Server {
	if broadcastEvery < 1 {
		broadcastEvery = 1
	}

	s := &Server{
		Upgrader:       websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		Room:           room.New(),
		broadcastEvery: uint64(broadcastEvery),
		queueSize:      defaultQueueSize,
		mux:            http.NewServeMux(),
	}

	s.mux.HandleFunc("/ws", s.handleSpectator)
	s.mux.HandleFunc("/healthz", s.handleHealth)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// HandleFrame is called on the engine goroutine once per tick.
func (s *Server) HandleFrame(f game.Frame) {
	s.frames++

	if s.Room.Len() == 0 {
		return
	}
	if s.frames%s.broadcastEvery != 0 && !f.Events.Scored {
		return
	}

	frame := pb.FromGame(f)
	if dropped := s.Room.Broadcast(&frame); dropped > 0 {
		log.Printf("Dropped frame %d for %d spectators, send queue full", frame.Tick, dropped)
	}
}

func (s *Server) handleSpectator(w http.ResponseWriter, r *http.Request) {
	codec, err := pb.ParseCodec(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error %s when connecting to the socket", err)
		return
	}

	c := client.New(conn, codec, s.queueSize)
	s.Room.Join(c)

	go func() {
		if err := c.WritePump(); err != nil {
			log.Printf("Write error for spectator %s: %v", c.ID, err)
		}
		s.disconnect(c)
	}()

	// spectators have no controls; anything they send is discarded
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.disconnect(c)
			return
		}
	}
}

func (s *Server) disconnect(c *client.Client) {
	s.Room.Leave(c.ID)
	c.Conn.Close()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "ok spectators=%d\n", s.Room.Len())
}

// ListenAndServe serves on addr until ctx is cancelled, then disconnects all
// spectators and shuts the listener down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Spectator server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("spectator server: %w", err)
	case <-ctx.Done():
	}

	s.Room.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown spectator server: %w", err)
	}
	return nil
}
