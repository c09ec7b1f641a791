package pcm

import "time"

// BytesPerSample — размер одного семпла float32 в байтах.
const BytesPerSample = 4

// DurationToFrames рассчитывает номер кадра для смещения во времени.
// Формула: секунды * частота дискретизации.
func DurationToFrames(d time.Duration, sampleRate int) int64 {
	if d <= 0 || sampleRate <= 0 {
		return 0
	}
	// Целые секунды отдельно от остатка: прямое d*rate переполняется на ~53 ч при 48 кГц
	rate := int64(sampleRate)
	return int64(d/time.Second)*rate + int64(d%time.Second)*rate/int64(time.Second)
}

// FramesToDuration переводит количество кадров во время.
func FramesToDuration(frames int64, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	rate := int64(sampleRate)
	return time.Duration(frames/rate)*time.Second + time.Duration(frames%rate*int64(time.Second)/rate)
}

// DurationToBytes рассчитывает смещение в байтах, выровненное по кадру.
// Формула: кадры * каналы * 4 (float32 на семпл).
func DurationToBytes(d time.Duration, sampleRate, channels int) int64 {
	return DurationToFrames(d, sampleRate) * int64(channels*BytesPerSample)
}

// BytesToDuration переводит объём данных в байтах во время.
func BytesToDuration(b int64, sampleRate, channels int) time.Duration {
	if channels <= 0 {
		return 0
	}
	return FramesToDuration(b/int64(channels*BytesPerSample), sampleRate)
}
