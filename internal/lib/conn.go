package lib

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// SafeConn lets one goroutine read a websocket.Conn while any number of others write
// to it. Gorilla supports one concurrent reader and one concurrent writer, so writes
// are serialised here and every write gets the same deadline.
type SafeConn struct {
	c            *websocket.Conn
	writeTimeout time.Duration
	writeMu      sync.Mutex
}

func NewSafeConn(c *websocket.Conn, writeTimeout time.Duration) *SafeConn {
	return &SafeConn{c: c, writeTimeout: writeTimeout}
}

// ReadMessage returns the payload of the next message. Only one goroutine may read.
func (s *SafeConn) ReadMessage() ([]byte, error) {
	_, data, err := s.c.ReadMessage()
	return data, err
}

// WriteText writes data as one text message.
func (s *SafeConn) WriteText(data []byte) error {
	return s.write(websocket.TextMessage, data)
}

func (s *SafeConn) Ping() error {
	return s.write(websocket.PingMessage, nil)
}

func (s *SafeConn) write(messageType int, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.c.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
		return err
	}
	return s.c.WriteMessage(messageType, data)
}

// Close sends a normal closure frame, then closes the connection.
func (s *SafeConn) Close() error {
	s.writeMu.Lock()
	_ = s.c.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	s.writeMu.Unlock()
	return s.c.Close()
}
