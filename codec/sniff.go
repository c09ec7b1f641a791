package codec

import "bytes"

func isMP3(data []byte) bool {
	if bytes.HasPrefix(data, []byte("ID3")) {
		return true
	}
	// Кадр MPEG без тега: 11 бит синхронизации
	return len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0
}

func isWAV(data []byte) bool {
	return len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE"))
}

func isOgg(data []byte) bool {
	return bytes.HasPrefix(data, []byte("OggS"))
}

func isFLAC(data []byte) bool {
	return bytes.HasPrefix(data, []byte("fLaC"))
}

func isAIFF(data []byte) bool {
	if len(data) < 12 || !bytes.Equal(data[:4], []byte("FORM")) {
		return false
	}
	kind := string(data[8:12])
	return kind == "AIFF" || kind == "AIFC"
}
