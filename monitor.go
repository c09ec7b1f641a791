package musicplayer

import (
	"context"
	"time"
)

// monitorPlayback следит за окончанием трека: доигравшая сессия
// отключается, и движок возвращается в idle.
func (t *Transport) monitorPlayback(ctx context.Context, s *session) {
	ticker := time.NewTicker(t.monitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done(): // Сессию остановили через Stop или новый Play.
			return
		case <-ticker.C:
		}

		t.mu.Lock()
		if t.session != s {
			t.mu.Unlock()
			return
		}
		// На паузе плеер тоже может не играть, это не конец трека.
		if t.state == StateRunning && !s.voice.IsPlaying() {
			t.logger.Debug("playback finished", "session", s.id)
			t.stopLocked()
			t.mu.Unlock()
			return
		}
		t.mu.Unlock()
	}
}
