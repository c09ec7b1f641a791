package musicplayer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestStopIdempotent(t *testing.T) {
	tr, engine, _ := newTestTransport(t)

	// Stop без Play
	tr.Stop()
	if tr.Playing() || tr.State() != StateIdle {
		t.Fatalf("Stop() without session changed state: %v", tr.State())
	}

	if err := tr.Play(0); err != nil {
		t.Fatal(err)
	}
	tr.Stop()
	tr.Stop()

	if tr.Playing() {
		t.Error("no session expected after Stop")
	}
	if engine.connected() != 0 {
		t.Errorf("connected = %d; want 0", engine.connected())
	}
	if tr.State() != StateIdle {
		t.Errorf("State() = %v; want idle", tr.State())
	}
	if !tr.Ready() {
		t.Error("Stop must not drop the buffer")
	}
}

func TestSuspendTwice(t *testing.T) {
	tr, engine, _ := newTestTransport(t)
	if err := tr.Play(0); err != nil {
		t.Fatal(err)
	}

	if err := tr.Suspend(); err != nil {
		t.Fatalf("first Suspend() error = %v", err)
	}
	if err := tr.Suspend(); err != nil {
		t.Fatalf("second Suspend() error = %v", err)
	}

	if suspend, _ := engine.calls(); suspend != 1 {
		t.Errorf("engine Suspend calls = %d; want 1", suspend)
	}
	if tr.State() != StateSuspended {
		t.Errorf("State() = %v; want suspended", tr.State())
	}
}

func TestResumeWithoutSuspend(t *testing.T) {
	tr, engine, _ := newTestTransport(t)

	// До Play и во время воспроизведения Resume ничего не делает
	if err := tr.Resume(); err != nil {
		t.Fatal(err)
	}
	if err := tr.Play(0); err != nil {
		t.Fatal(err)
	}
	if err := tr.Resume(); err != nil {
		t.Fatal(err)
	}

	if _, resume := engine.calls(); resume != 0 {
		t.Errorf("engine Resume calls = %d; want 0", resume)
	}
	if tr.State() != StateRunning {
		t.Errorf("State() = %v; want running", tr.State())
	}
}

func TestSuspendWithoutSession(t *testing.T) {
	tr, engine, _ := newTestTransport(t)

	if err := tr.Suspend(); err != nil {
		t.Fatal(err)
	}
	if suspend, _ := engine.calls(); suspend != 0 || tr.State() != StateIdle {
		t.Errorf("Suspend() on idle engine: calls = %d, state = %v", suspend, tr.State())
	}
}

func TestSuspendResume(t *testing.T) {
	tr, engine, _ := newTestTransport(t)
	if err := tr.Play(0); err != nil {
		t.Fatal(err)
	}
	id := tr.SessionID()

	if err := tr.Suspend(); err != nil {
		t.Fatal(err)
	}
	if !tr.Playing() {
		t.Error("Suspend must keep the session")
	}
	if err := tr.Resume(); err != nil {
		t.Fatal(err)
	}

	if len(engine.allVoices()) != 1 || engine.connected() != 1 {
		t.Error("Resume must continue the existing session, not create a new one")
	}
	if tr.SessionID() != id {
		t.Error("session id changed across suspend/resume")
	}
	if tr.State() != StateRunning {
		t.Errorf("State() = %v; want running", tr.State())
	}
}

func TestStopWhileSuspended(t *testing.T) {
	tr, engine, _ := newTestTransport(t)
	if err := tr.Play(0); err != nil {
		t.Fatal(err)
	}
	if err := tr.Suspend(); err != nil {
		t.Fatal(err)
	}

	tr.Stop()

	if tr.State() != StateIdle {
		t.Errorf("State() = %v; want idle", tr.State())
	}
	if _, resume := engine.calls(); resume != 1 {
		t.Errorf("engine Resume calls = %d; want 1", resume)
	}

	// Следующий Play снова звучит
	if err := tr.Play(0); err != nil {
		t.Fatal(err)
	}
	if tr.State() != StateRunning {
		t.Errorf("State() = %v; want running", tr.State())
	}
}

func TestPlayWhileSuspended(t *testing.T) {
	tr, engine, _ := newTestTransport(t)
	if err := tr.Play(0); err != nil {
		t.Fatal(err)
	}
	if err := tr.Suspend(); err != nil {
		t.Fatal(err)
	}

	if err := tr.Play(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if tr.State() != StateRunning || engine.connected() != 1 {
		t.Errorf("State() = %v, connected = %d; want running, 1", tr.State(), engine.connected())
	}
}

func TestSuspendEngineError(t *testing.T) {
	tr, engine, logs := newTestTransport(t)
	if err := tr.Play(0); err != nil {
		t.Fatal(err)
	}

	// Движок уже приостановлен кем-то снаружи
	engine.mu.Lock()
	engine.suspended = true
	engine.mu.Unlock()

	if err := tr.Suspend(); err == nil {
		t.Error("Suspend() should report the engine error")
	}
	if tr.State() != StateRunning {
		t.Errorf("State() = %v; want running", tr.State())
	}
	if !logs.Contains("failed to suspend engine") {
		t.Error("missing engine failure diagnostic")
	}
}

func TestVolume(t *testing.T) {
	tr, engine, _ := newTestTransport(t, WithVolume(0.3))
	if err := tr.Play(0); err != nil {
		t.Fatal(err)
	}

	voice := engine.allVoices()[0]
	if voice.getVolume() != 0.3 {
		t.Errorf("voice volume = %v; want 0.3", voice.getVolume())
	}

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"Keep volume", 0.5, 0.5},
		{"Cap volume", 5.0, 1.0},
		{"Negative volume", -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr.SetVolume(tt.in)
			if tr.Volume() != tt.want || voice.getVolume() != tt.want {
				t.Errorf("volume = %v / %v; want %v", tr.Volume(), voice.getVolume(), tt.want)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	tr, _, _ := newTestTransport(t)

	st := tr.Status()
	if !st.Ready || st.State != StateIdle || st.SessionID != "" || st.Duration != time.Second {
		t.Errorf("idle Status() = %+v", st)
	}

	if err := tr.Play(250 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	st = tr.Status()
	if st.State != StateRunning || st.SessionID == "" || st.Offset != 250*time.Millisecond {
		t.Errorf("running Status() = %+v", st)
	}
	if pos, ok := tr.Position(); !ok || pos != 250*time.Millisecond {
		t.Errorf("Position() = %v, %v", pos, ok)
	}
	if d, ok := tr.Duration(); !ok || d != time.Second {
		t.Errorf("Duration() = %v, %v; want 1s", d, ok)
	}
}

func TestClose(t *testing.T) {
	tr, engine, _ := newTestTransport(t)
	if err := tr.Play(0); err != nil {
		t.Fatal(err)
	}

	if err := tr.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	engine.mu.Lock()
	engineClosed := engine.closed
	engine.mu.Unlock()
	if tr.State() != StateClosed || engine.connected() != 0 || !engineClosed {
		t.Errorf("after Close: state = %v, connected = %d, engine closed = %v",
			tr.State(), engine.connected(), engineClosed)
	}
	if err := tr.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	if err := tr.Play(0); !errors.Is(err, ErrClosed) {
		t.Errorf("Play() after Close error = %v; want ErrClosed", err)
	}
	if err := tr.Suspend(); err != nil {
		t.Errorf("Suspend() after Close error = %v", err)
	}
	tr.Stop()

	select {
	case <-tr.InitSound(context.Background(), strings.NewReader("valid")):
	case <-time.After(time.Second):
		t.Fatal("InitSound after Close should finish immediately")
	}
	if tr.Ready() || tr.State() != StateClosed {
		t.Error("closed transport must stay closed and empty")
	}
}
