package ws

import "errors"

var (
	ErrConnectionClosed = errors.New("websocket connection closed")
	ErrSendBufferFull   = errors.New("websocket send buffer full")
)
