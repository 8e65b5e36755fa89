package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/fasthttp/websocket"
)

const streamHandshakeTimeout = 10 * time.Second

// ActivityStream is a live feed of the caller's new activity entries.
type ActivityStream struct {
	conn      *websocket.Conn
	entries   chan *ActivityEntry
	done      chan struct{}
	closeOnce sync.Once
}

// StreamActivity opens a websocket to the activity stream endpoint. Entries
// arrive on the returned stream's channel until the connection drops or
// Close is called.
func (c *Client) StreamActivity(ctx context.Context) (*ActivityStream, error) {
	token := c.AccessToken()
	if token == "" {
		return nil, fmt.Errorf("an access token is required to stream activity")
	}

	u, err := url.Parse(c.baseURL + "/activity/stream")
	if err != nil {
		return nil, fmt.Errorf("invalid stream URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}

	dialer := &websocket.Dialer{
		HandshakeTimeout: streamHandshakeTimeout,
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
	}
	headers := http.Header{
		"Authorization": {"Bearer " + token},
	}

	conn, _, err := dialer.DialContext(ctx, u.String(), headers)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to activity stream: %w", err)
	}

	stream := &ActivityStream{
		conn:    conn,
		entries: make(chan *ActivityEntry, 16),
		done:    make(chan struct{}),
	}
	go stream.readLoop()
	go stream.pingLoop()

	return stream, nil
}

// Entries returns the channel of incoming feed entries. It is closed when
// the stream ends.
func (s *ActivityStream) Entries() <-chan *ActivityEntry {
	return s.entries
}

// Close tears down the websocket. It is safe to call concurrently and more
// than once.
func (s *ActivityStream) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	return s.conn.Close()
}

func (s *ActivityStream) readLoop() {
	defer close(s.entries)
	defer s.conn.Close()

	for {
		var entry ActivityEntry
		if err := s.conn.ReadJSON(&entry); err != nil {
			return
		}

		select {
		case s.entries <- &entry:
		case <-s.done:
			return
		}
	}
}

// pingLoop keeps the server's read deadline from expiring on an idle feed.
func (s *ActivityStream) pingLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}
