package chart

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"

	"github.com/8ff/ookwav/pkg/misc"
	"github.com/gorilla/websocket"
)

// Embed all files from static folder to serve over HTTP
//
//go:embed static
var staticWeb embed.FS

type Server struct {
	mu        sync.Mutex
	clients   []*websocket.Conn
	lastFrame []byte
	upgrader  websocket.Upgrader
}

func NewServer() *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler serves the static page on / and chart frames on /ws
func (s *Server) Handler() http.Handler {
	html, _ := fs.Sub(staticWeb, "static")
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(html)))
	mux.HandleFunc("/ws", s.handleWs)
	return mux
}

// Serve blocks until ctx is cancelled or the listener fails
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		srv.Close()
		s.closeClients()
	}()

	misc.Log("info", fmt.Sprintf("Starting http server on %s", addr))
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		misc.Log("error", fmt.Sprintf("Error upgrading connection: %s", err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = append(s.clients, conn)

	if s.lastFrame != nil {
		if err := conn.WriteMessage(websocket.TextMessage, s.lastFrame); err != nil {
			misc.Log("error", fmt.Sprintf("Error sending lastFrame to client: %s", err))
		}
	}
	misc.Log("debug", fmt.Sprintf("Clients: %d", len(s.clients)))
}

// Publish stores c as the last frame and sends it to every client
func (s *Server) Publish(c Chart) error {
	data, err := c.JSON()
	if err != nil {
		return err
	}
	s.Broadcast(data)
	return nil
}

// Broadcast drops clients that fail to receive data
func (s *Server) Broadcast(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFrame = data

	alive := s.clients[:0]
	for _, client := range s.clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			misc.Log("error", fmt.Sprintf("%s", err))
			client.Close()
			continue
		}
		alive = append(alive, client)
	}
	s.clients = alive
}

func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clients = nil
}

// ServeOne serves a single chart until ctx is cancelled
func ServeOne(ctx context.Context, addr string, c Chart) error {
	s := NewServer()
	if err := s.Publish(c); err != nil {
		return err
	}
	return s.Serve(ctx, addr)
}
