// Package output — приёмник звука и движок рендеринга.
//
// Engine управляет состоянием движка (приостановка и возобновление всего
// вывода), Voice — один проигрываемый экземпляр буфера, подключённый к
// системному выводу. Реализация Oto работает поверх ebitengine/oto:
// один контекст oto на процесс, один oto.Player на Voice.
package output
