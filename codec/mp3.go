package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/Roman77St/musicplayer/pcm"
)

// decodeMP3 декодирует MP3. go-mp3 всегда отдаёт стерео 16 бит LE.
func decodeMP3(data []byte) (*pcm.Buffer, error) {
	dec, err := gomp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create mp3 decoder: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3 decode error: %w", err)
	}

	samples := int16LEToFloat(raw)
	samples = samples[:len(samples)/2*2]
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	return pcm.NewBuffer(2, dec.SampleRate(), samples)
}

func int16LEToFloat(raw []byte) []float32 {
	out := make([]float32, len(raw)/2)
	for i := range out {
		v := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		out[i] = float32(v) / 32768.0
	}
	return out
}
