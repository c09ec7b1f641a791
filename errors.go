package musicplayer

import "errors"

var (
	ErrRead     = errors.New("failed to read sound source")
	ErrDecode   = errors.New("failed to decode sound")
	ErrNotReady = errors.New("audio buffer not ready")
	ErrClosed   = errors.New("transport closed")
)
