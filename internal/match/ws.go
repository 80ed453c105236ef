package match

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = (wsPongWait * 9) / 10
	wsMaxMessageSize = 64 * 1024
	wsReceiveBuffer  = 64
)

// wsTransport adapts a websocket connection to the Transport interface.
// All frames are text JSON; control pings keep idle links alive.
type wsTransport struct {
	conn *websocket.Conn
	in   chan []byte

	writeMu sync.Mutex
	once    sync.Once
	done    chan struct{}
	onClose func()
}

// NewWebSocketTransport wraps an upgraded connection. It owns the read side
// from this point on. onClose fires exactly once when the link dies; it may
// be nil.
func NewWebSocketTransport(conn *websocket.Conn, onClose func()) Transport {
	t := &wsTransport{
		conn:    conn,
		in:      make(chan []byte, wsReceiveBuffer),
		done:    make(chan struct{}),
		onClose: onClose,
	}
	go t.readLoop()
	go t.pingLoop()
	return t
}

func (t *wsTransport) readLoop() {
	defer t.Close()
	defer close(t.in)

	t.conn.SetReadLimit(wsMaxMessageSize)
	t.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	t.conn.SetPongHandler(func(string) error {
		t.conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	for {
		_, data, err := t.conn.ReadMessage()
		if err != nil {
			return
		}
		select {
		case t.in <- data:
		case <-t.done:
			return
		}
	}
}

func (t *wsTransport) pingLoop() {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.writeMu.Lock()
			t.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			err := t.conn.WriteMessage(websocket.PingMessage, nil)
			t.writeMu.Unlock()
			if err != nil {
				t.Close()
				return
			}
		}
	}
}

func (t *wsTransport) Send(data []byte) error {
	select {
	case <-t.done:
		return ErrTransportClosed
	default:
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	t.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := t.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Close()
		return ErrTransportClosed
	}
	return nil
}

func (t *wsTransport) Receive() <-chan []byte {
	return t.in
}

func (t *wsTransport) Close() error {
	t.once.Do(func() {
		close(t.done)
		t.conn.Close()
		if t.onClose != nil {
			t.onClose()
		}
	})
	return nil
}
