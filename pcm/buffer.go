package pcm

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	resampling "github.com/tphakala/go-audio-resampling"
)

// Buffer хранит декодированный звук: чередующиеся (interleaved) семплы
// float32 в диапазоне [-1, 1]. После создания буфер не меняется,
// новый декод заменяет его целиком.
type Buffer struct {
	channels   int
	sampleRate int
	samples    []float32
}

// NewBuffer проверяет формат и оборачивает семплы в буфер.
// Срез переходит во владение буфера, вызывающий не должен его менять.
func NewBuffer(channels, sampleRate int, samples []float32) (*Buffer, error) {
	if channels <= 0 {
		return nil, ErrInvalidChannels
	}
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples, %d channels", ErrPartialFrame, len(samples), channels)
	}

	return &Buffer{
		channels:   channels,
		sampleRate: sampleRate,
		samples:    samples,
	}, nil
}

func (b *Buffer) Channels() int   { return b.channels }
func (b *Buffer) SampleRate() int { return b.sampleRate }

// Samples возвращает семплы буфера только для чтения.
func (b *Buffer) Samples() []float32 { return b.samples }

// Frames возвращает количество кадров (семплов на канал).
func (b *Buffer) Frames() int {
	return len(b.samples) / b.channels
}

// Duration возвращает длительность звука.
func (b *Buffer) Duration() time.Duration {
	return FramesToDuration(int64(b.Frames()), b.sampleRate)
}

// FrameAt переводит смещение во времени в номер кадра.
// Отрицательное смещение даёт ноль, выход за конец не ограничивается.
func (b *Buffer) FrameAt(offset time.Duration) int64 {
	return DurationToFrames(offset, b.sampleRate)
}

// ToStereo приводит буфер к двум каналам: моно дублируется,
// из многоканального звука берутся первые два канала.
func (b *Buffer) ToStereo() *Buffer {
	if b.channels == 2 {
		return b
	}

	frames := b.Frames()
	out := make([]float32, frames*2)
	for i := range frames {
		left := b.samples[i*b.channels]
		right := left
		if b.channels > 2 {
			right = b.samples[i*b.channels+1]
		}
		out[2*i] = left
		out[2*i+1] = right
	}

	return &Buffer{channels: 2, sampleRate: b.sampleRate, samples: out}
}

// Float32LE сериализует семплы в little-endian float32,
// формат oto.FormatFloat32LE.
func (b *Buffer) Float32LE() []byte {
	out := make([]byte, len(b.samples)*BytesPerSample)
	for i, s := range b.samples {
		binary.LittleEndian.PutUint32(out[i*BytesPerSample:], math.Float32bits(s))
	}
	return out
}

// Resample передискретизирует буфер на новую частоту.
// Если частота совпадает, возвращается тот же буфер.
func (b *Buffer) Resample(sampleRate int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if sampleRate == b.sampleRate {
		return b, nil
	}

	frames := b.Frames()
	out := make([][]float64, b.channels)
	for ch := range b.channels {
		input := make([]float64, frames)
		for i := range frames {
			input[i] = float64(b.samples[i*b.channels+ch])
		}

		resampled, err := resampleChannel(input, b.sampleRate, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("resample %d -> %d Hz: %w", b.sampleRate, sampleRate, err)
		}
		out[ch] = resampled
	}

	// Каналы обрабатываются одинаково, но хвосты могут отличаться на кадр
	n := len(out[0])
	for _, ch := range out[1:] {
		n = min(n, len(ch))
	}

	samples := make([]float32, n*b.channels)
	for i := range n {
		for ch := range b.channels {
			samples[i*b.channels+ch] = clamp(float32(out[ch][i]))
		}
	}

	return NewBuffer(b.channels, sampleRate, samples)
}

// resampleChannel передискретизирует один канал. Resampler обрабатывает
// только моно, поэтому на каждый канал заводится свой.
func resampleChannel(input []float64, from, to int) ([]float64, error) {
	r, err := resampling.New(&resampling.Config{
		InputRate:  float64(from),
		OutputRate: float64(to),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}

	output, err := r.Process(input)
	if err != nil {
		return nil, err
	}
	tail, err := r.Flush()
	if err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return append(output, tail...), nil
}

func clamp(s float32) float32 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}
