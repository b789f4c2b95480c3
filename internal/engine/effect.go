package engine

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/hazadus/go-soundbox/internal/session"
)

// effectPlayer плеер звуковых эффектов. Играет из предзагруженных буферов;
// новый эффект прерывает предыдущий на этом же плеере.
type effectPlayer struct {
	engine *Engine

	mu         sync.Mutex
	state      session.PlayerState
	ctrl       *beep.Ctrl
	generation uint64
}

// Play воспроизводит эффект из буфера, прерывая текущий
func (p *effectPlayer) Play(filename string, volume float64) error {
	// Буфер разрешается до остановки текущего эффекта: при ошибке
	// загрузки прежний эффект продолжает играть
	sound, err := p.engine.bufferFor(filename)
	if err != nil {
		return err
	}

	if err := p.engine.initSpeaker(); err != nil {
		return fmt.Errorf("ошибка инициализации динамиков: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	streamer := sound.buffer.Streamer(0, sound.buffer.Len())
	p.ctrl = &beep.Ctrl{Streamer: withVolume(resample(sound.format, streamer), volume)}

	p.generation++
	generation := p.generation

	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		go p.markDone(generation)
	})))

	p.state = session.StatePlaying
	return nil
}

// Pause для эффектов не используется менеджером, но контракт плеера
// поддерживается полностью
func (p *effectPlayer) Pause() {
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

// Resume возобновляет приостановленный эффект
func (p *effectPlayer) Resume() error {
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

// Stop останавливает воспроизведение эффекта
func (p *effectPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// State возвращает текущее состояние плеера
func (p *effectPlayer) State() session.PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Close освобождает ресурсы плеера
func (p *effectPlayer) Close() error {
	p.Stop()
	return nil
}

// stopLocked снимает текущий поток с воспроизведения. Вызывается под мьютексом.
func (p *effectPlayer) stopLocked() {
	p.generation++

	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Streamer = nil
		speaker.Unlock()
		p.ctrl = nil
	}
	p.state = session.StateStopped
}

// markDone переводит плеер в остановленное состояние после естественного
// окончания эффекта
func (p *effectPlayer) markDone(generation uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if generation != p.generation {
		return
	}
	p.ctrl = nil
	p.state = session.StateStopped
}
