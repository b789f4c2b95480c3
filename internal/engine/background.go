package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"

	"github.com/hazadus/go-soundbox/internal/session"
	"github.com/hazadus/go-soundbox/internal/streaming"
)

// streamBufferSize размер буфера для потокового чтения по сети
const streamBufferSize = 256 * 1024 // 256KB

// backgroundPlayer плеер фоновой музыки: декодирует mp3 из файла или по
// URL и сообщает о естественном завершении трека.
type backgroundPlayer struct {
	engine *Engine

	mu         sync.Mutex
	state      session.PlayerState
	streamer   beep.StreamSeekCloser
	source     io.Closer
	ctrl       *beep.Ctrl
	onFinished func()

	// generation растет при каждом старте и стопе: позволяет игнорировать
	// запоздавшие коллбэки завершения от вытесненных потоков
	generation uint64
}

// SetOnFinished регистрирует обработчик естественного завершения трека
func (p *backgroundPlayer) SetOnFinished(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onFinished = fn
}

// Play начинает воспроизведение трека, прерывая текущий
func (p *backgroundPlayer) Play(filename string, volume float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	var source io.ReadCloser
	var err error
	if strings.HasPrefix(filename, "http://") || strings.HasPrefix(filename, "https://") {
		source, err = streaming.NewReader(context.Background(), filename, streamBufferSize)
		if err != nil {
			return fmt.Errorf("ошибка открытия потока %q: %w", filename, err)
		}
	} else {
		source, err = os.Open(p.engine.musicPath(filename))
		if err != nil {
			return fmt.Errorf("ошибка открытия трека %q: %w", filename, err)
		}
	}

	streamer, format, err := mp3.Decode(source)
	if err != nil {
		source.Close()
		return fmt.Errorf("ошибка декодирования трека %q: %w", filename, err)
	}

	if err := p.engine.initSpeaker(); err != nil {
		streamer.Close()
		source.Close()
		return fmt.Errorf("ошибка инициализации динамиков: %w", err)
	}

	p.streamer = streamer
	p.source = source
	p.ctrl = &beep.Ctrl{Streamer: withVolume(resample(format, streamer), volume)}

	p.generation++
	generation := p.generation

	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		// Коллбэк исполняется под блокировкой динамиков: обработчик
		// завершения запускается в отдельной горутине, иначе запуск
		// следующего трека заблокирует сам себя
		go p.handleFinished(generation)
	})))

	p.state = session.StatePlaying
	return nil
}

// Pause приостанавливает воспроизведение
func (p *backgroundPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil || p.state != session.StatePlaying {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = session.StatePaused
}

// Resume возобновляет приостановленное воспроизведение.
// Без активного потока возвращает ErrNoStream.
func (p *backgroundPlayer) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil || p.state != session.StatePaused {
		return ErrNoStream
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = session.StatePlaying
	return nil
}

// Stop полностью останавливает воспроизведение
func (p *backgroundPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// State возвращает текущее состояние плеера
func (p *backgroundPlayer) State() session.PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Close освобождает ресурсы плеера
func (p *backgroundPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.onFinished = nil
	return nil
}

// stopLocked останавливает воспроизведение и закрывает поток.
// Вызывается под мьютексом.
func (p *backgroundPlayer) stopLocked() {
	// Инвалидируем возможный коллбэк завершения от текущего потока
	p.generation++

	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Streamer = nil
		speaker.Unlock()
		p.ctrl = nil
	}
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.source != nil {
		p.source.Close()
		p.source = nil
	}
	p.state = session.StateStopped
}

// handleFinished обрабатывает естественное завершение трека
func (p *backgroundPlayer) handleFinished(generation uint64) {
	p.mu.Lock()
	if generation != p.generation {
		// Поток был вытеснен или остановлен вручную
		p.mu.Unlock()
		return
	}
	p.state = session.StateCompleted
	onFinished := p.onFinished
	p.mu.Unlock()

	if onFinished != nil {
		onFinished()
	}
}
