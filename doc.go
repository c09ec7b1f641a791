// Package musicplayer — контроллер воспроизведения одной дорожки.
//
// Decoder целиком читает файл в память и декодирует его в pcm.Buffer,
// Transport хранит этот буфер и не больше одной сессии воспроизведения
// над ним: Play с произвольного смещения, Suspend, Resume и Stop.
//
//	t := musicplayer.New(
//		output.NewOto(output.Options{}),
//		musicplayer.NewDecoder(codec.Default()),
//	)
//	defer t.Close()
//
//	<-t.InitSound(ctx, file)
//	if t.Ready() {
//		t.Play(5 * time.Second)
//	}
//
// Ошибки чтения и декодирования не возвращаются вызывающему, а пишутся в
// логгер: неудачный повторный декод не трогает ранее загруженный буфер.
package musicplayer
