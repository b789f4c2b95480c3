// Package session содержит менеджер сессии воспроизведения: фоновая музыка
// с ротацией плейлиста, пул плееров эффектов и реакции на настройки и
// жизненный цикл приложения.
package session

import "context"

// PlayerState наблюдаемое состояние плеера аудио-движка
type PlayerState string

const (
	StateStopped   PlayerState = "stopped"
	StatePlaying   PlayerState = "playing"
	StatePaused    PlayerState = "paused"
	StateCompleted PlayerState = "completed"
)

// Player контракт плеера аудио-движка. Менеджер не знает о деталях
// декодирования: он выдает команды и читает состояние.
type Player interface {
	// Play начинает воспроизведение файла с указанной громкостью (0..1),
	// прерывая текущее воспроизведение этого плеера
	Play(filename string, volume float64) error
	// Pause приостанавливает воспроизведение
	Pause()
	// Resume возобновляет воспроизведение. Может завершиться ошибкой
	// движка, если активного потока нет.
	Resume() error
	// Stop полностью останавливает воспроизведение
	Stop()
	// State возвращает текущее состояние плеера
	State() PlayerState
	// Close освобождает ресурсы плеера
	Close() error
}

// BackgroundPlayer плеер фоновой музыки: дополнительно сообщает о
// естественном завершении трека.
type BackgroundPlayer interface {
	Player
	SetOnFinished(func())
}

// Engine контракт аудио-движка: выделяет плееры и предзагружает ассеты
type Engine interface {
	NewBackgroundPlayer() BackgroundPlayer
	NewEffectPlayer() Player
	// Preload загружает перечисленные файлы эффектов в память;
	// первая же ошибка прерывает загрузку
	Preload(ctx context.Context, filenames []string) error
}
