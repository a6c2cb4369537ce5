// Package broadcaster serves the session event feed produced by a
// download or upload over WebSocket: every connected client receives
// every sessionwire-framed event, in order, until it disconnects.
package broadcaster

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/kb9vty/cloneforge/pkg/sessionwire"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The event feed is read-only telemetry served to local tooling;
	// this server does not gate origins beyond what net/http already
	// restricts by binding to a local address.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Broadcaster fans out session events to every subscribed WebSocket
// client. The zero value is not usable; construct with New.
type Broadcaster struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// New returns an empty Broadcaster ready to accept subscribers.
func New() *Broadcaster {
	return &Broadcaster{clients: make(map[*websocket.Conn]struct{})}
}

// ServeHTTP upgrades the request to a WebSocket and registers the
// connection as a subscriber until it disconnects or errors.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("broadcaster: upgrade failed: %v", err)
		return
	}

	b.mu.Lock()
	b.clients[conn] = struct{}{}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.clients, conn)
		b.mu.Unlock()
		conn.Close()
	}()

	// Subscribers are write-only from the server's perspective; drain
	// and discard anything they send so ReadMessage's ping/pong
	// handling keeps running and a client-initiated close is noticed.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Progress frames ev and sends it to every connected subscriber.
func (b *Broadcaster) Progress(ev sessionwire.ProgressEvent) {
	frame, err := sessionwire.EncodeProgress(ev)
	if err != nil {
		log.Printf("broadcaster: encode progress: %v", err)
		return
	}
	b.send(frame)
}

// Log frames ev and sends it to every connected subscriber.
func (b *Broadcaster) Log(ev sessionwire.LogEvent) {
	frame, err := sessionwire.EncodeLog(ev)
	if err != nil {
		log.Printf("broadcaster: encode log: %v", err)
		return
	}
	b.send(frame)
}

func (b *Broadcaster) send(frame []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for conn := range b.clients {
		if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			log.Printf("broadcaster: write to subscriber failed: %v", err)
			conn.Close()
			delete(b.clients, conn)
		}
	}
}

// Count returns the number of currently connected subscribers.
func (b *Broadcaster) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}
