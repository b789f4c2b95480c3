// Package engine содержит аудио-движок на основе beep: фоновый плеер со
// стримингом mp3 и плееры эффектов, играющие из предзагруженных буферов.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"

	"github.com/hazadus/go-soundbox/internal/session"
)

// ErrNoStream возвращается при попытке возобновить плеер без активного потока
var ErrNoStream = errors.New("нет активного потока воспроизведения")

// sampleRate единая частота дискретизации динамиков; все потоки с другой
// частотой ресэмплируются
const sampleRate = beep.SampleRate(44100)

const (
	// defaultMusicPrefix подкаталог фоновых треков внутри каталога ассетов
	defaultMusicPrefix = "music"
	// defaultSfxPrefix подкаталог звуковых эффектов
	defaultSfxPrefix = "sfx"
)

// Config настройки движка
type Config struct {
	// AssetsDir корневой каталог аудио ассетов
	AssetsDir string
	// MusicPrefix подкаталог фоновых треков (по умолчанию "music")
	MusicPrefix string
	// SfxPrefix подкаталог эффектов (по умолчанию "sfx")
	SfxPrefix string
}

// bufferedSound предзагруженный в память звуковой эффект
type bufferedSound struct {
	buffer *beep.Buffer
	format beep.Format
}

// Engine аудио-движок. Инициализирует динамики один раз при первом
// воспроизведении и хранит буферы предзагруженных эффектов.
type Engine struct {
	mu      sync.Mutex
	cfg     Config
	buffers map[string]*bufferedSound

	speakerOnce sync.Once
	speakerErr  error
}

// New создает движок
func New(cfg Config) *Engine {
	if cfg.MusicPrefix == "" {
		cfg.MusicPrefix = defaultMusicPrefix
	}
	if cfg.SfxPrefix == "" {
		cfg.SfxPrefix = defaultSfxPrefix
	}
	return &Engine{
		cfg:     cfg,
		buffers: make(map[string]*bufferedSound),
	}
}

// NewBackgroundPlayer выделяет плеер фоновой музыки
func (e *Engine) NewBackgroundPlayer() session.BackgroundPlayer {
	return &backgroundPlayer{engine: e, state: session.StateStopped}
}

// NewEffectPlayer выделяет плеер звуковых эффектов
func (e *Engine) NewEffectPlayer() session.Player {
	return &effectPlayer{engine: e, state: session.StateStopped}
}

// Preload декодирует перечисленные файлы эффектов в память.
// Завершается только после готовности всех файлов; первая ошибка
// прерывает загрузку и возвращается вызывающей стороне.
func (e *Engine) Preload(ctx context.Context, filenames []string) error {
	for _, filename := range filenames {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, err := e.bufferFor(filename); err != nil {
			return err
		}
	}
	return nil
}

// bufferFor возвращает буфер эффекта, при необходимости загружая файл с диска
func (e *Engine) bufferFor(filename string) (*bufferedSound, error) {
	e.mu.Lock()
	if sound, ok := e.buffers[filename]; ok {
		e.mu.Unlock()
		return sound, nil
	}
	e.mu.Unlock()

	file, err := os.Open(e.sfxPath(filename))
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла эффекта %q: %w", filename, err)
	}
	defer file.Close()

	streamer, format, err := mp3.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования эффекта %q: %w", filename, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	sound := &bufferedSound{buffer: buffer, format: format}

	e.mu.Lock()
	e.buffers[filename] = sound
	e.mu.Unlock()

	return sound, nil
}

// musicPath возвращает путь к файлу фонового трека
func (e *Engine) musicPath(filename string) string {
	return filepath.Join(e.cfg.AssetsDir, e.cfg.MusicPrefix, filename)
}

// sfxPath возвращает путь к файлу эффекта
func (e *Engine) sfxPath(filename string) string {
	return filepath.Join(e.cfg.AssetsDir, e.cfg.SfxPrefix, filename)
}

// initSpeaker инициализирует динамики (только один раз)
func (e *Engine) initSpeaker() error {
	e.speakerOnce.Do(func() {
		e.speakerErr = speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	})
	return e.speakerErr
}

// resample приводит поток к частоте дискретизации динамиков
func resample(format beep.Format, streamer beep.Streamer) beep.Streamer {
	if format.SampleRate == sampleRate {
		return streamer
	}
	return beep.Resample(4, format.SampleRate, sampleRate, streamer)
}

// withVolume оборачивает поток регулятором громкости.
// Множитель 0..1 переводится в логарифмическую шкалу beep.
func withVolume(streamer beep.Streamer, volume float64) beep.Streamer {
	if volume >= 1 {
		return streamer
	}
	vol := &effects.Volume{
		Streamer: streamer,
		Base:     2,
	}
	if volume <= 0 {
		vol.Silent = true
	} else {
		vol.Volume = math.Log2(volume)
	}
	return vol
}
