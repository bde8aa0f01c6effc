package client

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/sportx-bet/go-sportx/sportx/types"
)

// realtimeChannel is the liveness-only pub/sub connection the modern
// relayer requires during Init. It carries no request/response traffic;
// after the handshake the client just keeps it alive.
type realtimeChannel struct {
	url string
	log *logrus.Entry

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	done      chan struct{}
}

// connectedFrame is the first frame the relayer pushes once the token is
// accepted.
type connectedFrame struct {
	Type string `json:"type"`
}

const realtimePingInterval = 15 * time.Second

func newRealtimeChannel(url string, log *logrus.Entry) *realtimeChannel {
	return &realtimeChannel{
		url: url,
		log: log.WithField("component", "sportx.realtime"),
	}
}

// connect dials the channel and races the "connected" handshake frame
// against timeout. First to settle wins; on timeout the dial is abandoned
// and a TimeoutError surfaces.
func (r *realtimeChannel) connect(ctx context.Context, token string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, _, err := dialer.DialContext(ctx, r.url+"?token="+token, nil)
	if err != nil {
		if ctx.Err() != nil {
			return &types.TimeoutError{Op: "realtime connect", Timeout: timeout}
		}
		return err
	}

	type handshake struct {
		frame connectedFrame
		err   error
	}
	result := make(chan handshake, 1)
	go func() {
		var frame connectedFrame
		err := conn.ReadJSON(&frame)
		result <- handshake{frame: frame, err: err}
	}()

	select {
	case <-ctx.Done():
		conn.Close()
		return &types.TimeoutError{Op: "realtime connect", Timeout: timeout}
	case h := <-result:
		if h.err != nil {
			conn.Close()
			return h.err
		}
		if h.frame.Type != "connected" {
			conn.Close()
			return &types.APIError{Reason: "realtime channel refused connection: " + h.frame.Type}
		}
	}

	r.mu.Lock()
	r.conn = conn
	r.connected = true
	r.done = make(chan struct{})
	r.mu.Unlock()

	go r.keepAlive(conn, r.done)
	r.log.Debug("realtime channel connected")
	return nil
}

// keepAlive pings the relayer and drains inbound frames so the connection
// stays healthy. Frames are presence traffic only; their content is
// ignored.
func (r *realtimeChannel) keepAlive(conn *websocket.Conn, done chan struct{}) {
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(realtimePingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(5 * time.Second)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				r.log.WithError(err).Debug("realtime ping failed")
				return
			}
		}
	}
}

func (r *realtimeChannel) close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.connected {
		return nil
	}
	r.connected = false
	close(r.done)
	err := r.conn.Close()
	r.conn = nil
	return err
}
