package musicplayer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Roman77St/musicplayer/output"
	"github.com/Roman77St/musicplayer/pcm"
)

// fakeVoice имитирует голос движка и запоминает все вызовы.
type fakeVoice struct {
	mu       sync.Mutex
	offset   time.Duration
	volume   float64
	playing  bool
	closed   bool
	finished bool
	seekErr  error
}

func (v *fakeVoice) Seek(offset time.Duration) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.seekErr != nil {
		return v.seekErr
	}
	v.offset = offset
	return nil
}

func (v *fakeVoice) Play() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playing = true
}

func (v *fakeVoice) IsPlaying() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.playing && !v.finished && !v.closed
}

func (v *fakeVoice) Position() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.offset
}

func (v *fakeVoice) SetVolume(volume float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.volume = volume
}

func (v *fakeVoice) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.playing = false
	return nil
}

// finish имитирует естественное окончание трека.
func (v *fakeVoice) finish() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.finished = true
}

func (v *fakeVoice) isClosed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

func (v *fakeVoice) getVolume() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.volume
}

// fakeEngine ведёт себя как бэкенд: повторный Suspend или Resume — ошибка.
type fakeEngine struct {
	mu           sync.Mutex
	voices       []*fakeVoice
	suspended    bool
	closed       bool
	suspendCalls int
	resumeCalls  int
	newVoiceErr  error
	seekErr      error
}

func (e *fakeEngine) NewVoice(buf *pcm.Buffer) (output.Voice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.newVoiceErr != nil {
		return nil, e.newVoiceErr
	}
	v := &fakeVoice{seekErr: e.seekErr}
	e.voices = append(e.voices, v)
	return v, nil
}

func (e *fakeEngine) Suspend() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.suspendCalls++
	if e.suspended {
		return errors.New("engine already suspended")
	}
	e.suspended = true
	return nil
}

func (e *fakeEngine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resumeCalls++
	if !e.suspended {
		return errors.New("engine not suspended")
	}
	e.suspended = false
	return nil
}

func (e *fakeEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

func (e *fakeEngine) allVoices() []*fakeVoice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*fakeVoice(nil), e.voices...)
}

// connected считает голоса, ещё подключённые к выводу.
func (e *fakeEngine) connected() int {
	n := 0
	for _, v := range e.allVoices() {
		if !v.isClosed() {
			n++
		}
	}
	return n
}

func (e *fakeEngine) calls() (suspend, resume int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.suspendCalls, e.resumeCalls
}

// fakeBackend "декодирует" любые данные, кроме начинающихся с "bad".
type fakeBackend struct{}

func (fakeBackend) Decode(ctx context.Context, data []byte) (*pcm.Buffer, error) {
	if bytes.HasPrefix(data, []byte("bad")) {
		return nil, errors.New("unsupported format")
	}
	return pcm.NewBuffer(2, 8000, make([]float32, 2*8000))
}

// gatedDecoder отдаёт результат только после сигнала в gate.
type gatedDecoder struct {
	gates map[string]chan struct{}
	bufs  map[string]*pcm.Buffer
	errs  map[string]error
}

func (d *gatedDecoder) Decode(ctx context.Context, r io.Reader) (*pcm.Buffer, error) {
	raw, _ := io.ReadAll(r)
	name := string(raw)
	<-d.gates[name]
	return d.bufs[name], d.errs[name]
}

// panicDecoder падает, как сторонний декодер на битом заголовке.
type panicDecoder struct{}

func (panicDecoder) Decode(context.Context, io.Reader) (*pcm.Buffer, error) {
	panic("integer divide by zero")
}

// syncBuffer — потокобезопасный приёмник логов.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Contains(s string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Contains(b.buf.String(), s)
}

func newTestLogger() (*slog.Logger, *syncBuffer) {
	out := &syncBuffer{}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})), out
}

// newTestTransport собирает Transport с фейковым движком и загруженным буфером.
func newTestTransport(t testing.TB, opts ...Option) (*Transport, *fakeEngine, *syncBuffer) {
	t.Helper()
	engine := &fakeEngine{}
	logger, logs := newTestLogger()
	opts = append([]Option{WithLogger(logger)}, opts...)
	tr := New(engine, NewDecoder(fakeBackend{}), opts...)

	<-tr.InitSound(context.Background(), strings.NewReader("valid"))
	if !tr.Ready() {
		t.Fatal("buffer should be ready after a successful InitSound")
	}
	return tr, engine, logs
}

// waitFor ждёт выполнения условия, опрашивая его.
func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
