package legacy

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sportx-bet/go-sportx/sportx/types"
)

// Socket message keys the legacy relayer understands.
const (
	keyMetadata      = "metadata"
	keyActiveMarkets = "active_markets"
	keyNewOrder      = "new_order"
	keyCancelOrder   = "cancel_order"
)

// frame is the wire format in both directions: a named message key, a
// correlation id, and a JSON payload. Server replies echo the requestId and
// carry the {status, reason} ack envelope plus optional data.
type frame struct {
	Key       string          `json:"key"`
	RequestID string          `json:"requestId,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Status    string          `json:"status,omitempty"`
	Reason    string          `json:"reason,omitempty"`
}

// socket is the legacy relayer's realtime transport. A single connection
// serializes its own writes; each emission races its ack against a
// deadline that is armed before the write goes out, so the timer can
// neither fire after success nor stay unarmed when the server answers with
// a failure first.
type socket struct {
	url string
	log *logrus.Entry

	mu      sync.Mutex
	conn    *websocket.Conn
	pending map[string]chan frame
	closed  bool
}

func newSocket(url string, log *logrus.Entry) *socket {
	return &socket{
		url:     url,
		log:     log.WithField("component", "sportx.legacy.socket"),
		pending: make(map[string]chan frame),
	}
}

// connect dials the socket and starts the read loop. The caller bounds it
// with a context; a deadline becomes a TimeoutError.
func (s *socket) connect(ctx context.Context, timeout time.Duration) error {
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		if ctx.Err() != nil {
			return &types.TimeoutError{Op: "socket connect", Timeout: timeout}
		}
		return errors.Wrap(err, "dial legacy socket")
	}

	s.mu.Lock()
	s.conn = conn
	s.closed = false
	s.mu.Unlock()

	go s.readLoop(conn)
	return nil
}

func (s *socket) readLoop(conn *websocket.Conn) {
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			s.failAllPending(err)
			return
		}
		if f.RequestID == "" {
			// Server-pushed event with no caller waiting; presence traffic.
			continue
		}
		s.mu.Lock()
		ch, ok := s.pending[f.RequestID]
		if ok {
			delete(s.pending, f.RequestID)
		}
		s.mu.Unlock()
		if ok {
			ch <- f
		}
	}
}

// failAllPending unblocks every in-flight call when the connection dies.
func (s *socket) failAllPending(err error) {
	s.mu.Lock()
	pending := s.pending
	s.pending = make(map[string]chan frame)
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}
	s.log.WithError(err).Debug("legacy socket read loop ended")
	for _, ch := range pending {
		close(ch)
	}
}

// call emits a keyed message and waits for the matching ack, a server-side
// failure, or the deadline — whichever settles first.
func (s *socket) call(ctx context.Context, key string, data interface{}, timeout time.Duration, out interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "marshal socket payload")
	}
	requestID := uuid.NewString()
	ack := make(chan frame, 1)

	s.mu.Lock()
	conn := s.conn
	if conn == nil {
		s.mu.Unlock()
		return &types.ConfigurationError{Detail: "socket not connected"}
	}
	s.pending[requestID] = ack
	s.mu.Unlock()

	// Deadline armed before the write: if the server never answers, the
	// caller still gets a TimeoutError.
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.mu.Lock()
	conn.SetWriteDeadline(time.Now().Add(timeout))
	err = conn.WriteJSON(frame{Key: key, RequestID: requestID, Data: payload})
	s.mu.Unlock()
	if err != nil {
		s.dropPending(requestID)
		return errors.Wrapf(err, "emit %s", key)
	}

	select {
	case <-ctx.Done():
		s.dropPending(requestID)
		return &types.TimeoutError{Op: "emit " + key, Timeout: timeout}
	case f, ok := <-ack:
		if !ok {
			return errors.Errorf("connection lost while waiting for %s ack", key)
		}
		if f.Status != types.StatusSuccess {
			return &types.APIError{Reason: f.Reason, Body: string(f.Data)}
		}
		if out != nil && len(f.Data) > 0 {
			if err := json.Unmarshal(f.Data, out); err != nil {
				return &types.APIError{Body: string(f.Data), ParseFailure: true}
			}
		}
		return nil
	}
}

func (s *socket) dropPending(requestID string) {
	s.mu.Lock()
	delete(s.pending, requestID)
	s.mu.Unlock()
}

func (s *socket) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	s.closed = true
	err := s.conn.Close()
	s.conn = nil
	return err
}
