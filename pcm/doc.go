// Package pcm описывает декодированный аудиобуфер и арифметику над ним:
// длительность, перевод времени в кадры и байты, приведение к стерео,
// сериализацию в float32LE для движка вывода и передискретизацию.
package pcm
