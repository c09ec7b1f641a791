package codec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"

	"github.com/Roman77St/musicplayer/pcm"
)

var errInvalidAIFF = errors.New("invalid aiff file")

func decodeAIFF(data []byte) (*pcm.Buffer, error) {
	d := aiff.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return nil, errInvalidAIFF
	}

	var ib *audio.IntBuffer
	ib, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("aiff read error: %w", err)
	}
	if ib == nil || ib.Format == nil || len(ib.Data) == 0 {
		return nil, ErrNoSamples
	}

	bits := ib.SourceBitDepth
	if bits == 0 {
		bits = int(d.BitDepth)
	}
	if bits < 8 || bits > 32 {
		return nil, fmt.Errorf("%w: %d-bit aiff", ErrUnsupportedEncoding, bits)
	}
	scale := float32(int64(1) << (bits - 1))

	samples := make([]float32, len(ib.Data))
	for i, v := range ib.Data {
		samples[i] = float32(v) / scale
	}

	return pcm.NewBuffer(ib.Format.NumChannels, ib.Format.SampleRate, samples)
}
