package codec

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Roman77St/musicplayer/pcm"
)

// Decoder превращает закодированный файл целиком в буфер семплов.
type Decoder interface {
	Decode(data []byte) (*pcm.Buffer, error)
}

// DecoderFunc позволяет использовать обычную функцию как Decoder.
type DecoderFunc func(data []byte) (*pcm.Buffer, error)

func (f DecoderFunc) Decode(data []byte) (*pcm.Buffer, error) { return f(data) }

// Sniffer проверяет сигнатуру данных.
type Sniffer func(data []byte) bool

type entry struct {
	decoder  Decoder
	sniff    Sniffer
	fallback bool
}

// Registry хранит декодеры по имени формата ("mp3", "wav", ...).
type Registry struct {
	mu     sync.Mutex
	codecs map[string]entry
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]entry),
	}
}

// Default возвращает реестр со всеми встроенными форматами.
// Порядок перебора без сигнатуры как и раньше: сначала MP3, потом WAV.
func Default() *Registry {
	r := NewRegistry()
	r.RegisterFallback("mp3", DecoderFunc(decodeMP3), isMP3)
	r.RegisterFallback("wav", DecoderFunc(decodeWAV), isWAV)
	r.Register("ogg", DecoderFunc(decodeVorbis), isOgg)
	r.Register("flac", DecoderFunc(decodeFLAC), isFLAC)
	r.Register("aiff", DecoderFunc(decodeAIFF), isAIFF)
	return r
}

// Register добавляет или заменяет декодер формата.
func (r *Registry) Register(format string, d Decoder, sniff Sniffer) {
	r.register(format, entry{decoder: d, sniff: sniff})
}

// RegisterFallback как Register, но декодер ещё и пробуется вслепую,
// когда ни одна сигнатура не подошла.
func (r *Registry) RegisterFallback(format string, d Decoder, sniff Sniffer) {
	r.register(format, entry{decoder: d, sniff: sniff, fallback: true})
}

func (r *Registry) register(format string, e entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.codecs[format]; !ok {
		r.order = append(r.order, format)
	}
	r.codecs[format] = e
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.codecs[format]
	return e.decoder, ok
}

// Formats возвращает зарегистрированные форматы в порядке регистрации.
func (r *Registry) Formats() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.order...)
}

// Detect определяет формат по сигнатуре.
func (r *Registry) Detect(data []byte) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, format := range r.order {
		if e := r.codecs[format]; e.sniff != nil && e.sniff(data) {
			return format, true
		}
	}
	return "", false
}

// Decode выбирает декодер по содержимому и декодирует данные целиком.
func (r *Registry) Decode(ctx context.Context, data []byte) (*pcm.Buffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if format, ok := r.Detect(data); ok {
		d, _ := r.Get(format)
		buf, err := decodeSafe(d, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", format, err)
		}
		return buf, nil
	}

	// Сигнатура не найдена, пробуем декодеры по очереди
	var errs []error
	for _, format := range r.fallbacks() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d, _ := r.Get(format)
		buf, err := decodeSafe(d, data)
		if err == nil {
			return buf, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", format, err))
	}

	if len(errs) == 0 {
		return nil, ErrUnsupportedFormat
	}
	return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, errors.Join(errs...))
}

// decodeSafe превращает панику стороннего декодера на битом файле в ошибку.
func decodeSafe(d Decoder, data []byte) (buf *pcm.Buffer, err error) {
	defer func() {
		if p := recover(); p != nil {
			buf, err = nil, fmt.Errorf("decoder panic: %v", p)
		}
	}()
	return d.Decode(data)
}

func (r *Registry) fallbacks() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for _, format := range r.order {
		if r.codecs[format].fallback {
			out = append(out, format)
		}
	}
	return out
}
