package codec

import (
	"bytes"
	"fmt"

	"github.com/jfreymuth/oggvorbis"

	"github.com/Roman77St/musicplayer/pcm"
)

func decodeVorbis(data []byte) (*pcm.Buffer, error) {
	samples, format, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("vorbis decode error: %w", err)
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	return pcm.NewBuffer(format.Channels, format.SampleRate, samples)
}
