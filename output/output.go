package output

import (
	"errors"
	"time"

	"github.com/Roman77St/musicplayer/pcm"
)

var ErrEngineClosed = errors.New("output: engine closed")

// Engine — движок рендеринга, к которому подключаются голоса.
type Engine interface {
	// NewVoice создаёт голос для буфера. Голос не играет, пока не вызван Play.
	NewVoice(buf *pcm.Buffer) (Voice, error)

	// Suspend приостанавливает весь вывод, не уничтожая голоса.
	Suspend() error

	// Resume продолжает вывод с того же места.
	Resume() error

	// Close освобождает движок. После Close новые голоса не создаются.
	Close() error
}

// Voice — один экземпляр воспроизведения буфера.
type Voice interface {
	// Seek переставляет позицию чтения. Выход за конец буфера допустим:
	// голос просто сразу закончится.
	Seek(offset time.Duration) error
	Play()
	IsPlaying() bool
	// Position возвращает позицию, реально дошедшую до вывода.
	Position() time.Duration
	SetVolume(volume float64)
	// Close останавливает голос и отключает его от вывода.
	Close() error
}
