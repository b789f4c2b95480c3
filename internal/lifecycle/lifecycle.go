// Package lifecycle содержит наблюдаемый сигнал жизненного цикла приложения
package lifecycle

import "sync"

// State состояние жизненного цикла приложения
type State string

const (
	// StateResumed приложение на переднем плане и принимает ввод
	StateResumed State = "resumed"
	// StateInactive приложение видимо, но не принимает ввод
	StateInactive State = "inactive"
	// StatePaused приложение свернуто в фон
	StatePaused State = "paused"
	// StateDetached приложение завершает работу
	StateDetached State = "detached"
)

// Listener получает новое состояние при каждом переходе
type Listener func(State)

// Signal наблюдаемое значение состояния жизненного цикла.
// Владелец сигнала — само приложение; менеджер сессии только подписывается.
type Signal struct {
	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	nextID    int
}

// NewSignal создает сигнал в состоянии resumed
func NewSignal() *Signal {
	return &Signal{
		state:     StateResumed,
		listeners: make(map[int]Listener),
	}
}

// State возвращает текущее состояние
func (s *Signal) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe регистрирует подписчика и возвращает его идентификатор
func (s *Signal) Subscribe(listener Listener) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	return id
}

// Unsubscribe удаляет подписчика по идентификатору
func (s *Signal) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, id)
}

// Set переводит сигнал в новое состояние и уведомляет подписчиков.
// Повторная установка того же состояния уведомлений не порождает.
func (s *Signal) Set(state State) {
	s.mu.Lock()
	if s.state == state {
		s.mu.Unlock()
		return
	}
	s.state = state
	listeners := make([]Listener, 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(state)
	}
}
