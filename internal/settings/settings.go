// Package settings содержит наблюдаемые настройки звука приложения
package settings

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Snapshot неизменяемый снимок текущих настроек
type Snapshot struct {
	Muted        bool `yaml:"muted"`
	MusicEnabled bool `yaml:"music_enabled"`
	SoundEnabled bool `yaml:"sound_enabled"`
}

// Listener получает снимок настроек после каждого изменения
type Listener func(Snapshot)

// Store хранит три флага настроек и список подписчиков.
// Store является единственным владельцем значений: менеджер сессии
// только читает их и подписывается на изменения.
type Store struct {
	mu        sync.Mutex
	snapshot  Snapshot
	listeners map[int]Listener
	nextID    int
}

// NewStore создает хранилище настроек со значениями по умолчанию:
// звук не отключен, музыка и эффекты включены.
func NewStore() *Store {
	return &Store{
		snapshot: Snapshot{
			Muted:        false,
			MusicEnabled: true,
			SoundEnabled: true,
		},
		listeners: make(map[int]Listener),
	}
}

// Load загружает настройки из yaml файла. Отсутствующий файл не является
// ошибкой: используются значения по умолчанию.
func Load(filePath string) (*Store, error) {
	store := NewStore()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("ошибка чтения файла настроек: %w", err)
	}

	if err := yaml.Unmarshal(data, &store.snapshot); err != nil {
		return nil, fmt.Errorf("ошибка разбора файла настроек: %w", err)
	}
	return store, nil
}

// Save сохраняет текущие настройки в yaml файл
func (s *Store) Save(filePath string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	path := strings.Replace(filePath, "~", home, 1)

	s.mu.Lock()
	data, err := yaml.Marshal(s.snapshot)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("ошибка сериализации настроек: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла настроек: %w", err)
	}
	return nil
}

// Snapshot возвращает текущий снимок настроек
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Subscribe регистрирует подписчика и возвращает его идентификатор
func (s *Store) Subscribe(listener Listener) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	return id
}

// Unsubscribe удаляет подписчика по идентификатору
func (s *Store) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, id)
}

// SetMuted устанавливает флаг полного отключения звука
func (s *Store) SetMuted(muted bool) {
	s.set(func(snap *Snapshot) bool {
		if snap.Muted == muted {
			return false
		}
		snap.Muted = muted
		return true
	})
}

// SetMusicEnabled включает или выключает фоновую музыку
func (s *Store) SetMusicEnabled(enabled bool) {
	s.set(func(snap *Snapshot) bool {
		if snap.MusicEnabled == enabled {
			return false
		}
		snap.MusicEnabled = enabled
		return true
	})
}

// SetSoundEnabled включает или выключает звуковые эффекты
func (s *Store) SetSoundEnabled(enabled bool) {
	s.set(func(snap *Snapshot) bool {
		if snap.SoundEnabled == enabled {
			return false
		}
		snap.SoundEnabled = enabled
		return true
	})
}

// ToggleMuted переключает флаг отключения звука и возвращает новое значение
func (s *Store) ToggleMuted() bool {
	snap := s.Snapshot()
	s.SetMuted(!snap.Muted)
	return !snap.Muted
}

// ToggleMusicEnabled переключает флаг музыки и возвращает новое значение
func (s *Store) ToggleMusicEnabled() bool {
	snap := s.Snapshot()
	s.SetMusicEnabled(!snap.MusicEnabled)
	return !snap.MusicEnabled
}

// ToggleSoundEnabled переключает флаг эффектов и возвращает новое значение
func (s *Store) ToggleSoundEnabled() bool {
	snap := s.Snapshot()
	s.SetSoundEnabled(!snap.SoundEnabled)
	return !snap.SoundEnabled
}

// set применяет изменение и уведомляет подписчиков, если значение изменилось.
// Подписчики вызываются без удержания мьютекса, по одному, в порядке
// регистрации не гарантируется.
func (s *Store) set(mutate func(*Snapshot) bool) {
	s.mu.Lock()
	changed := mutate(&s.snapshot)
	snapshot := s.snapshot
	listeners := make([]Listener, 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, listener := range listeners {
		listener(snapshot)
	}
}
