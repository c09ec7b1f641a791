package output

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/Roman77St/musicplayer/pcm"
)

// channelCount — oto всегда открывается в стерео.
const channelCount = 2

// oto допускает только один контекст на процесс.
var (
	otoCtx  *oto.Context
	otoRate int
	otoErr  error
	otoOnce sync.Once
)

// initContext инициализирует аудио-движок Oto один раз за все время работы программы.
func initContext(sampleRate int, bufferSize time.Duration) (*oto.Context, int, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatFloat32LE,
			BufferSize:   bufferSize,
		}
		var readyChan chan struct{}
		otoCtx, readyChan, otoErr = oto.NewContext(op)
		if otoErr == nil {
			<-readyChan
			otoRate = sampleRate
		}
	})
	return otoCtx, otoRate, otoErr
}

// Options настраивает движок Oto.
type Options struct {
	// SampleRate частота вывода. 0 — частота первого проигранного буфера.
	SampleRate int
	// BufferSize размер буфера oto. 0 — значение по умолчанию oto.
	BufferSize time.Duration
	Logger     *slog.Logger
}

// Oto — Engine поверх ebitengine/oto.
type Oto struct {
	opts   Options
	logger *slog.Logger

	mu     sync.Mutex
	ctx    *oto.Context
	rate   int
	closed bool

	// Последний подготовленный буфер: повторный Play не пересчитывает данные.
	lastBuf *pcm.Buffer
	lastPCM []byte
}

func NewOto(opts Options) *Oto {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Oto{opts: opts, logger: logger}
}

func (o *Oto) NewVoice(buf *pcm.Buffer) (Voice, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil, ErrEngineClosed
	}

	if o.ctx == nil {
		rate := o.opts.SampleRate
		if rate <= 0 {
			rate = buf.SampleRate()
		}
		ctx, actual, err := initContext(rate, o.opts.BufferSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create oto context: %w", err)
		}
		if actual != rate {
			o.logger.Warn("oto context already running at another rate",
				"requested", rate, "actual", actual)
		}
		// Контекст общий на процесс: Close прежнего движка мог оставить его на паузе
		if err := ctx.Resume(); err != nil {
			return nil, fmt.Errorf("failed to resume oto context: %w", err)
		}
		o.ctx = ctx
		o.rate = actual
		o.logger.Info("audio output initialized", "sample_rate", actual, "channels", channelCount)
	}

	data, err := o.render(buf)
	if err != nil {
		return nil, err
	}

	tracker := newPositionReader(bytes.NewReader(data), channelCount*pcm.BytesPerSample)
	return &otoVoice{
		player:  o.ctx.NewPlayer(tracker),
		tracker: tracker,
		rate:    o.rate,
	}, nil
}

// render приводит буфер к формату вывода: стерео, частота контекста, float32LE.
// Вызывается под o.mu.
func (o *Oto) render(buf *pcm.Buffer) ([]byte, error) {
	if buf == o.lastBuf {
		return o.lastPCM, nil
	}

	data, err := renderBuffer(buf, o.rate)
	if err != nil {
		return nil, err
	}

	o.lastBuf, o.lastPCM = buf, data
	return data, nil
}

func renderBuffer(buf *pcm.Buffer, sampleRate int) ([]byte, error) {
	stereo := buf.ToStereo()
	resampled, err := stereo.Resample(sampleRate)
	if err != nil {
		return nil, err
	}
	return resampled.Float32LE(), nil
}

func (o *Oto) Suspend() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ctx == nil || o.closed {
		return nil
	}
	return o.ctx.Suspend()
}

func (o *Oto) Resume() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ctx == nil || o.closed {
		return nil
	}
	return o.ctx.Resume()
}

// Close приостанавливает контекст: пересоздать контекст oto в процессе нельзя.
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.closed = true
	o.lastBuf, o.lastPCM = nil, nil
	if o.ctx == nil {
		return nil
	}
	return o.ctx.Suspend()
}

type otoVoice struct {
	player  *oto.Player
	tracker *positionReader
	rate    int
}

func (v *otoVoice) Seek(offset time.Duration) error {
	pos := pcm.DurationToBytes(offset, v.rate, channelCount)
	_, err := v.player.Seek(pos, io.SeekStart)
	return err
}

func (v *otoVoice) Play()           { v.player.Play() }
func (v *otoVoice) IsPlaying() bool { return v.player.IsPlaying() }

func (v *otoVoice) SetVolume(volume float64) { v.player.SetVolume(volume) }

// Position учитывает данные, которые oto прочитал, но ещё не вывел.
func (v *otoVoice) Position() time.Duration {
	pos := v.tracker.Offset() - int64(v.player.BufferedSize())
	if pos < 0 {
		pos = 0
	}
	return pcm.BytesToDuration(pos, v.rate, channelCount)
}

func (v *otoVoice) Close() error {
	v.player.Pause()
	return v.player.Close()
}
