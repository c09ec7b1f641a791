package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/youpy/go-wav"

	"github.com/Roman77St/musicplayer/pcm"
)

const wavFormatPCM = 1

// decodeWAV декодирует PCM WAV на 8, 16, 24 или 32 бита, моно или стерео.
func decodeWAV(data []byte) (*pcm.Buffer, error) {
	r := wav.NewReader(bytes.NewReader(data))

	format, err := r.Format()
	if err != nil {
		return nil, fmt.Errorf("invalid wav header: %w", err)
	}
	if format.AudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: wav format tag %d", ErrUnsupportedEncoding, format.AudioFormat)
	}

	// go-wav хранит не больше двух каналов в Sample.Values
	channels := int(format.NumChannels)
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, channels)
	}

	bits := int(format.BitsPerSample)
	var toFloat func(v int) float32
	switch bits {
	case 8:
		// 8-битный WAV беззнаковый
		toFloat = func(v int) float32 { return float32(v-128) / 128 }
	case 16, 24, 32:
		scale := float32(int64(1) << (bits - 1))
		toFloat = func(v int) float32 { return float32(v) / scale }
	default:
		return nil, fmt.Errorf("%w: %d-bit wav", ErrUnsupportedEncoding, bits)
	}

	// go-wav делит на BlockAlign и режет по нему семплы
	if want := channels * bits / 8; int(format.BlockAlign) != want {
		return nil, fmt.Errorf("%w: wav block align %d, want %d", ErrUnsupportedEncoding, format.BlockAlign, want)
	}

	var samples []float32
	for {
		chunk, err := r.ReadSamples()
		for _, s := range chunk {
			for ch := range channels {
				samples = append(samples, toFloat(s.Values[ch]))
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("wav read error: %w", err)
		}
		if len(chunk) == 0 {
			break
		}
	}

	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	return pcm.NewBuffer(channels, int(format.SampleRate), samples)
}
