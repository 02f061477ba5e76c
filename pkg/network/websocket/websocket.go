package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hostcast/signaler/pkg/logger"
)

const (
	maxMessageSize = 64 * 1024
	pongTime       = 60 * time.Second
	pingTime       = pongTime * 9 / 10
	writeWait      = 10 * time.Second
	sendBuffer     = 32
)

// WS wraps a single websocket connection with
// read and write pump goroutines.
type WS struct {
	conn deadlinedConn
	send chan []byte
	log  *logger.Logger

	// OnMessage is called from the read pump for every
	// received frame, strictly in arrival order.
	// Must be set before Listen.
	OnMessage func(message []byte)

	mu     sync.Mutex
	closed bool
	once   sync.Once

	// Done closes after the last inbound frame has been handled.
	Done chan struct{}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	WriteBufferPool: &sync.Pool{},
	// the relay doesn't authenticate peers, so any origin may connect
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewServer upgrades an HTTP request to a websocket connection.
func NewServer(w http.ResponseWriter, r *http.Request, log *logger.Logger) (*WS, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return &WS{
		conn: deadlinedConn{sock: conn, wt: writeWait},
		send: make(chan []byte, sendBuffer),
		log:  log,
		Done: make(chan struct{}),
	}, nil
}

// Listen starts the read and write pumps.
func (ws *WS) Listen() {
	go ws.writer()
	go ws.reader()
}

// Write queues a message for the write pump. Messages to dead or
// stalled connections are dropped, never retried.
func (ws *WS) Write(data []byte) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.closed {
		return
	}
	select {
	case ws.send <- data:
	default:
		ws.log.Debug().Msg("send buffer overrun, frame dropped")
	}
}

// Close sends a close control frame with the given status code and
// reason, then tears the connection down. Safe to call multiple times.
func (ws *WS) Close(code int, reason string) {
	ws.once.Do(func() {
		_ = ws.conn.write(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason))
		_ = ws.conn.close()
	})
}

// reader pumps messages from the websocket connection to the OnMessage callback.
// Serializes all websocket reads.
func (ws *WS) reader() {
	defer func() {
		ws.closeSend()
		_ = ws.conn.close()
		close(ws.Done)
	}()
	ws.conn.setup(func(conn *websocket.Conn) {
		conn.SetReadLimit(maxMessageSize)
		_ = conn.SetReadDeadline(time.Now().Add(pongTime))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongTime))
		})
	})
	for {
		message, err := ws.conn.read()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				ws.log.Debug().Err(err).Msg("read fail")
			}
			return
		}
		ws.OnMessage(message)
	}
}

// writer pumps messages from the send channel to the websocket connection
// and keeps the peer alive with pings. Serializes all websocket writes.
func (ws *WS) writer() {
	ticker := time.NewTicker(pingTime)
	defer func() {
		ticker.Stop()
		// unblocks the reader when a write fails first
		_ = ws.conn.close()
	}()
	for {
		select {
		case message, ok := <-ws.send:
			if !ok {
				return
			}
			if err := ws.conn.write(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			if err := ws.conn.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (ws *WS) closeSend() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if !ws.closed {
		ws.closed = true
		close(ws.send)
	}
}
