package musicplayer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Roman77St/musicplayer/pcm"
)

// InitSound асинхронно читает и декодирует источник и сохраняет буфер,
// заменяя прежний. Возвращает канал, который закрывается по окончании.
//
// Ошибки не возвращаются: они пишутся в лог, а ранее загруженный буфер
// остаётся нетронутым. Из нескольких одновременных вызовов побеждает
// самый поздний запрос: устаревший результат не перезапишет более новый.
// Источник нельзя передавать в параллельные вызовы.
func (t *Transport) InitSound(ctx context.Context, r io.Reader) <-chan struct{} {
	done := make(chan struct{})

	t.mu.Lock()
	if t.state == StateClosed {
		t.mu.Unlock()
		t.logger.Error("error initializing sound", "error", ErrClosed)
		close(done)
		return done
	}
	t.nextSeq++
	seq := t.nextSeq
	t.mu.Unlock()

	go func() {
		defer close(done)

		buf, err := t.decode(ctx, r)
		if err != nil {
			t.logger.Error("error initializing sound", "request", seq, "error", err)
			return
		}

		t.mu.Lock()
		defer t.mu.Unlock()

		if t.state == StateClosed {
			return
		}
		if seq < t.bufSeq {
			t.logger.Info("discarding stale decode", "request", seq, "loaded", t.bufSeq)
			return
		}
		t.buffer = buf
		t.bufSeq = seq
		t.logger.Info("sound initialized",
			"request", seq,
			"channels", buf.Channels(),
			"sample_rate", buf.SampleRate(),
			"duration", buf.Duration())
	}()

	return done
}

// decode не даёт панике декодера на битом файле уронить процесс.
func (t *Transport) decode(ctx context.Context, r io.Reader) (buf *pcm.Buffer, err error) {
	defer func() {
		if p := recover(); p != nil {
			buf, err = nil, fmt.Errorf("%w: panic: %v", ErrDecode, p)
		}
	}()
	return t.decoder.Decode(ctx, r)
}

// Play останавливает текущую сессию и запускает новую с позиции offset.
// Без загруженного буфера пишет диагностику и возвращает ErrNotReady,
// ничего не меняя. Смещение за концом буфера не проверяется.
func (t *Transport) Play(offset time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateClosed {
		return ErrClosed
	}
	if t.buffer == nil {
		t.logger.Warn("audio buffer not ready")
		return ErrNotReady
	}

	t.stopLocked()

	if offset < 0 {
		offset = 0
	}

	voice, err := t.engine.NewVoice(t.buffer)
	if err != nil {
		t.logger.Warn("failed to create voice", "error", err)
		return fmt.Errorf("create voice: %w", err)
	}
	voice.SetVolume(t.volume)
	if err := voice.Seek(offset); err != nil {
		voice.Close()
		t.logger.Warn("failed to seek voice", "offset", offset, "error", err)
		return fmt.Errorf("seek to %v: %w", offset, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		id:     uuid.NewString(),
		voice:  voice,
		buffer: t.buffer,
		offset: offset,
		cancel: cancel,
	}

	voice.Play()
	t.session = s
	t.state = StateRunning
	t.logger.Debug("playback started", "session", s.id, "offset", offset)

	// Фоновый мониторинг окончания трека.
	go t.monitorPlayback(ctx, s)
	return nil
}
