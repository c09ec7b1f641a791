package musicplayer

import (
	"fmt"
	"time"
)

// Suspend приостанавливает вывод, не уничтожая сессию.
// Вне состояния running ничего не делает.
func (t *Transport) Suspend() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateRunning {
		return nil
	}
	if err := t.engine.Suspend(); err != nil {
		t.logger.Warn("failed to suspend engine", "error", err)
		return fmt.Errorf("suspend: %w", err)
	}
	t.state = StateSuspended
	t.logger.Debug("playback suspended", "session", t.session.id)
	return nil
}

// Resume продолжает приостановленную сессию с того же места.
// Вне состояния suspended ничего не делает.
func (t *Transport) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateSuspended {
		return nil
	}
	if err := t.engine.Resume(); err != nil {
		t.logger.Warn("failed to resume engine", "error", err)
		return fmt.Errorf("resume: %w", err)
	}
	t.state = StateRunning
	t.logger.Debug("playback resumed", "session", t.session.id)
	return nil
}

// Stop останавливает и отключает текущую сессию. Без сессии ничего не делает.
func (t *Transport) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// stopLocked вызывается под t.mu.
func (t *Transport) stopLocked() {
	s := t.session
	if s == nil {
		return
	}

	s.cancel()
	if err := s.voice.Close(); err != nil {
		t.logger.Warn("failed to close voice", "session", s.id, "error", err)
	}
	t.session = nil

	// Движок не должен остаться на паузе: следующий Play иначе будет беззвучным.
	if t.state == StateSuspended {
		if err := t.engine.Resume(); err != nil {
			t.logger.Warn("failed to resume engine", "error", err)
		}
	}
	t.state = StateIdle
	t.logger.Debug("playback stopped", "session", s.id)
}

// Playing сообщает, есть ли активная сессия (в том числе на паузе).
func (t *Transport) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session != nil
}

// SessionID возвращает идентификатор активной сессии или пустую строку.
func (t *Transport) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		return ""
	}
	return t.session.id
}

// Position возвращает текущую позицию активной сессии.
func (t *Transport) Position() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		return 0, false
	}
	return t.session.voice.Position(), true
}

// Duration возвращает длительность загруженного буфера.
func (t *Transport) Duration() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.buffer == nil {
		return 0, false
	}
	return t.buffer.Duration(), true
}

func (t *Transport) Volume() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.volume
}

// SetVolume меняет громкость текущей сессии и всех следующих.
func (t *Transport) SetVolume(volume float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.volume = validateVolume(volume)
	if t.session != nil {
		t.session.voice.SetVolume(t.volume)
	}
}

// Status — снимок состояния для отображения в интерфейсе.
type Status struct {
	State     State
	Ready     bool
	SessionID string
	Offset    time.Duration // С какой позиции запущена сессия
	Position  time.Duration
	Duration  time.Duration
	Volume    float64
}

func (t *Transport) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := Status{
		State:  t.state,
		Ready:  t.buffer != nil,
		Volume: t.volume,
	}
	if t.buffer != nil {
		st.Duration = t.buffer.Duration()
	}
	if s := t.session; s != nil {
		st.SessionID = s.id
		st.Offset = s.offset
		st.Position = s.voice.Position()
		st.Duration = s.buffer.Duration()
	}
	return st
}
