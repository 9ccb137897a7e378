package devreload

import (
	"context"
	"encoding/gob"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"
)

const writeTimeout = 5 * time.Second

type peer struct {
	conn net.Conn
	enc  *gob.Encoder
}

// Server pushes reload packets to every connected client.
type Server struct {
	mu    sync.Mutex
	peers map[*peer]struct{}
	seq   uint64
}

func NewServer() *Server {
	RegisterGobTypes()
	return &Server{peers: make(map[*peer]struct{})}
}

// ServeHTTP upgrades the request to a websocket and keeps it open until the
// client goes away.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // dev tool, clients connect from anywhere
	})
	if err != nil {
		log.Warn().Err(err).Msg("reload: accept failed")
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	conn := websocket.NetConn(ctx, c, websocket.MessageBinary)
	p := &peer{conn: conn, enc: gob.NewEncoder(conn)}

	s.mu.Lock()
	err = s.send(p, Packet{Type: PacketHello, Data: HelloPacket{Seq: s.seq}})
	if err == nil {
		s.peers[p] = struct{}{}
	}
	s.mu.Unlock()
	if err != nil {
		conn.Close()
		return
	}
	log.Info().Str("remote", r.RemoteAddr).Msg("reload: client connected")

	// Clients never send anything; reading only detects the disconnect.
	_, _ = io.Copy(io.Discard, conn)

	s.mu.Lock()
	delete(s.peers, p)
	s.mu.Unlock()
	conn.Close()
	log.Info().Str("remote", r.RemoteAddr).Msg("reload: client disconnected")
}

// send must be called with s.mu held.
func (s *Server) send(p *peer, packet Packet) error {
	if err := p.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return p.enc.Encode(packet)
}

// Broadcast sends a reload packet for paths to every client and returns its
// sequence number. Clients that fail to receive it are dropped.
func (s *Server) Broadcast(paths []string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	packet := Packet{Type: PacketReload, Data: ReloadPacket{Seq: s.seq, Paths: paths}}
	for p := range s.peers {
		if err := s.send(p, packet); err != nil {
			log.Warn().Err(err).Msg("reload: dropping client")
			delete(s.peers, p)
			p.conn.Close()
		}
	}
	log.Info().Uint64("seq", s.seq).Strs("paths", paths).Int("clients", len(s.peers)).Msg("reload: broadcast")
	return s.seq
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.peers)
}

// Run broadcasts every change until ctx is done or changes is closed.
func (s *Server) Run(ctx context.Context, changes <-chan Change) {
	for {
		select {
		case <-ctx.Done():
			return
		case ch, ok := <-changes:
			if !ok {
				return
			}
			s.Broadcast(ch.Paths)
		}
	}
}

// Close disconnects every client.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p := range s.peers {
		p.conn.Close()
		delete(s.peers, p)
	}
}
