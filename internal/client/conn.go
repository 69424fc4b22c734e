package client

import (
	"context"
	"io"
	"net"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/gorilla/websocket"
)

// Conn abstracts a WebSocket connection carrying one text frame per
// protocol line. This interface isolates the lifecycle logic from the
// WebSocket library in use.
type Conn interface {
	// ReadFrame reads a single inbound frame.
	ReadFrame() (string, error)

	// WriteFrame sends a single outbound frame.
	WriteFrame(frame string) error

	// Close closes the connection.
	Close() error
}

// DialFunc establishes a Conn to the given WebSocket URL.
type DialFunc func(url string) (Conn, error)

// GorillaConn wraps gorilla/websocket for text frame exchange.
type GorillaConn struct {
	conn *websocket.Conn
}

// DialGorilla connects using gorilla/websocket.
func DialGorilla(url string) (Conn, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &GorillaConn{conn: conn}, nil
}

func (gc *GorillaConn) ReadFrame() (string, error) {
	for {
		messageType, data, err := gc.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		// Binary frames are not part of the protocol; skip them.
		if messageType == websocket.TextMessage {
			return string(data), nil
		}
	}
}

func (gc *GorillaConn) WriteFrame(frame string) error {
	return gc.conn.WriteMessage(websocket.TextMessage, []byte(frame))
}

func (gc *GorillaConn) Close() error {
	return gc.conn.Close()
}

// isAbnormalClose reports whether a read error is a close with an
// unexpected status code, as opposed to a plain connection teardown.
func isAbnormalClose(err error) bool {
	return websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}

// GobwasConn wraps a net.Conn for WebSocket frame exchange using
// gobwas/ws.
type GobwasConn struct {
	conn net.Conn
	rw   io.ReadWriter
}

// DialGobwas connects using gobwas/ws.
func DialGobwas(url string) (Conn, error) {
	conn, br, _, err := ws.Dial(context.Background(), url)
	if err != nil {
		return nil, err
	}

	// The dialer may have buffered frames past the handshake; reads
	// must drain that buffer before touching the socket.
	var rw io.ReadWriter = conn
	if br != nil {
		rw = struct {
			io.Reader
			io.Writer
		}{br, conn}
	}

	return &GobwasConn{conn: conn, rw: rw}, nil
}

func (wc *GobwasConn) ReadFrame() (string, error) {
	data, err := wsutil.ReadServerText(wc.rw)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (wc *GobwasConn) WriteFrame(frame string) error {
	return wsutil.WriteClientText(wc.conn, []byte(frame))
}

func (wc *GobwasConn) Close() error {
	_ = wsutil.WriteClientMessage(wc.conn, ws.OpClose, nil)
	return wc.conn.Close()
}
