package musicplayer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// OpenSource определяет источник аудио: локальный путь или URL.
// Возвращённый поток нужно закрыть после InitSound.
func OpenSource(ctx context.Context, location string) (io.ReadCloser, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("http error: %s", resp.Status)
		}
		return resp.Body, nil
	}

	return os.Open(location)
}

// validateVolume ограничивает громкость диапазоном [0, 1].
func validateVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
