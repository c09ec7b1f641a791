package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/Roman77St/musicplayer/pcm"
)

// decodeFLAC читает поток FLAC кадр за кадром и чередует каналы.
func decodeFLAC(data []byte) (*pcm.Buffer, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open flac stream: %w", err)
	}
	defer stream.Close()

	channels := int(stream.Info.NChannels)
	bits := int(stream.Info.BitsPerSample)
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, channels)
	}
	if bits < 4 || bits > 32 {
		return nil, fmt.Errorf("%w: %d-bit flac", ErrUnsupportedEncoding, bits)
	}
	scale := float32(int64(1) << (bits - 1))

	// NSamples берётся из заголовка и может быть любым: ёмкость ограничена размером входа
	hint := min(stream.Info.NSamples*uint64(channels), uint64(len(data))*8)
	samples := make([]float32, 0, hint)
	for {
		f, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flac frame error: %w", err)
		}
		if len(f.Subframes) < channels {
			return nil, fmt.Errorf("flac frame has %d subframes, want %d", len(f.Subframes), channels)
		}

		n := len(f.Subframes[0].Samples)
		for i := range n {
			for ch := range channels {
				samples = append(samples, float32(f.Subframes[ch].Samples[i])/scale)
			}
		}
	}

	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	return pcm.NewBuffer(channels, int(stream.Info.SampleRate), samples)
}
