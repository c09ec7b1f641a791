package codec

import "errors"

var (
	ErrEmptyInput          = errors.New("codec: empty input")
	ErrUnsupportedFormat   = errors.New("codec: unsupported audio format")
	ErrNoSamples           = errors.New("codec: stream contains no samples")
	ErrUnsupportedChannels = errors.New("codec: unsupported channel count")
	ErrUnsupportedEncoding = errors.New("codec: unsupported sample encoding")
)
