package pcm

import "errors"

var (
	ErrInvalidChannels   = errors.New("pcm: channel count must be positive")
	ErrInvalidSampleRate = errors.New("pcm: sample rate must be positive")
	ErrPartialFrame      = errors.New("pcm: sample count is not a multiple of channels")
)
