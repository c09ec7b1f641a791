package musicplayer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Roman77St/musicplayer/output"
	"github.com/Roman77St/musicplayer/pcm"
)

const defaultMonitorInterval = 100 * time.Millisecond

// session — одна сессия воспроизведения буфера, подключённая к выводу.
// Сессия не меняется: её только запускают и останавливают.
type session struct {
	id     string
	voice  output.Voice
	buffer *pcm.Buffer
	offset time.Duration
	cancel context.CancelFunc // Останавливает горутину мониторинга.
}

// Transport владеет буфером и не более чем одной сессией над ним.
// Методы безопасны для конкурентного вызова, но рассчитаны на один
// управляющий поток, как кнопки плеера.
type Transport struct {
	engine          output.Engine
	decoder         SoundDecoder
	logger          *slog.Logger
	monitorInterval time.Duration

	mu      sync.Mutex
	buffer  *pcm.Buffer
	bufSeq  uint64 // номер запроса InitSound, чей буфер сейчас загружен
	nextSeq uint64
	session *session
	state   State
	volume  float64
}

// Option настраивает Transport.
type Option func(*Transport)

func WithLogger(logger *slog.Logger) Option {
	return func(t *Transport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithVolume задаёт громкость новых сессий, от 0 до 1.
func WithVolume(volume float64) Option {
	return func(t *Transport) { t.volume = validateVolume(volume) }
}

// WithMonitorInterval задаёт период проверки окончания трека.
func WithMonitorInterval(d time.Duration) Option {
	return func(t *Transport) {
		if d > 0 {
			t.monitorInterval = d
		}
	}
}

func New(engine output.Engine, decoder SoundDecoder, opts ...Option) *Transport {
	t := &Transport{
		engine:          engine,
		decoder:         decoder,
		logger:          slog.Default(),
		monitorInterval: defaultMonitorInterval,
		state:           StateIdle,
		volume:          1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// State возвращает текущее состояние движка.
func (t *Transport) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Ready сообщает, загружен ли буфер.
func (t *Transport) Ready() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buffer != nil
}

// Buffer возвращает загруженный буфер или nil.
func (t *Transport) Buffer() *pcm.Buffer {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buffer
}

// Close останавливает воспроизведение и освобождает движок.
// Состояние closed конечное.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateClosed {
		return nil
	}
	t.stopLocked()
	t.state = StateClosed
	t.buffer = nil
	return t.engine.Close()
}
