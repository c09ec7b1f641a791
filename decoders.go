package musicplayer

import (
	"context"
	"fmt"
	"io"

	"github.com/Roman77St/musicplayer/pcm"
)

// Backend декодирует содержимое файла целиком. Реализуется codec.Registry.
type Backend interface {
	Decode(ctx context.Context, data []byte) (*pcm.Buffer, error)
}

// SoundDecoder — то, что нужно Transport от декодера.
type SoundDecoder interface {
	Decode(ctx context.Context, r io.Reader) (*pcm.Buffer, error)
}

// Decoder декодирует источник в два этапа: чтение в память, затем бэкенд.
type Decoder struct {
	backend Backend
}

func NewDecoder(backend Backend) *Decoder {
	return &Decoder{backend: backend}
}

func (d *Decoder) Decode(ctx context.Context, r io.Reader) (*pcm.Buffer, error) {
	data, err := readAll(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	buf, err := d.backend.Decode(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return buf, nil
}

// readAll читает источник целиком, прерываясь при отмене контекста.
func readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("nil source")
	}
	return io.ReadAll(&ctxReader{ctx: ctx, r: r})
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
