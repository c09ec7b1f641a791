// Package codec — декодирующий бэкенд: определяет формат файла по
// сигнатуре и целиком декодирует его в pcm.Buffer.
//
// Встроенные форматы: MP3, WAV (PCM), Ogg Vorbis, FLAC и AIFF.
//
//	reg := codec.Default()
//	buf, err := reg.Decode(ctx, data)
package codec
