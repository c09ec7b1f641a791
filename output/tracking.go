package output

import (
	"io"
	"sync/atomic"
)

// positionReader считает байты, отданные плееру oto. Спрашивать позицию
// у самого плеера во время вывода нельзя: это вызывает заикание.
type positionReader struct {
	src       io.ReadSeeker
	frameSize int64
	offset    atomic.Int64
}

func newPositionReader(src io.ReadSeeker, frameSize int) *positionReader {
	return &positionReader{src: src, frameSize: int64(frameSize)}
}

func (r *positionReader) Read(p []byte) (int, error) {
	n, err := r.src.Read(p)
	r.offset.Add(int64(n))
	return n, err
}

func (r *positionReader) Seek(offset int64, whence int) (int64, error) {
	pos, err := r.src.Seek(offset, whence)
	if err != nil {
		return pos, err
	}
	r.offset.Store(pos)
	return pos, nil
}

// Offset возвращает прочитанный объём, выровненный по кадру.
func (r *positionReader) Offset() int64 {
	off := r.offset.Load()
	if r.frameSize > 0 {
		off -= off % r.frameSize
	}
	return off
}
