package session

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"

	"github.com/hazadus/go-soundbox/internal/catalog"
	"github.com/hazadus/go-soundbox/internal/lifecycle"
	"github.com/hazadus/go-soundbox/internal/playlist"
	"github.com/hazadus/go-soundbox/internal/settings"
)

const (
	// DefaultPolyphony количество плееров эффектов по умолчанию
	DefaultPolyphony = 2
	// DefaultMusicVolume громкость фоновой музыки по умолчанию
	DefaultMusicVolume = 1.0
)

// Options параметры создания менеджера сессии
type Options struct {
	// Polyphony размер пула плееров эффектов (минимум 1)
	Polyphony int
	// MusicVolume громкость фоновой музыки (0..1)
	MusicVolume float64
}

// Manager управляет воспроизведением фоновой музыки и звуковых эффектов.
// Все переходы состояния выполняются под одним мьютексом: обработчики
// сигналов не пересекаются в середине перехода.
type Manager struct {
	mu sync.Mutex

	engine      Engine
	library     *catalog.Library
	musicVolume float64

	playlist   *playlist.Playlist
	background BackgroundPlayer

	effects []Player
	cursor  int

	store         *settings.Store
	settingsSubID int

	signal         *lifecycle.Signal
	lifecycleSubID int

	rand *rand.Rand
}

// NewManager создает менеджер сессии: выделяет один фоновый плеер и пул
// плееров эффектов, строит плейлист перемешиванием каталога и регистрирует
// обработчик завершения трека.
func NewManager(engine Engine, library *catalog.Library, opts Options) (*Manager, error) {
	return newManager(engine, library, opts, rand.Int63())
}

func newManager(engine Engine, library *catalog.Library, opts Options, seed int64) (*Manager, error) {
	polyphony := opts.Polyphony
	if polyphony < 1 {
		polyphony = DefaultPolyphony
	}
	musicVolume := opts.MusicVolume
	if musicVolume <= 0 || musicVolume > 1 {
		musicVolume = DefaultMusicVolume
	}

	list, err := playlist.NewWithSeed(library.Tracks, seed)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания плейлиста: %w", err)
	}

	manager := &Manager{
		engine:         engine,
		library:        library,
		musicVolume:    musicVolume,
		playlist:       list,
		background:     engine.NewBackgroundPlayer(),
		effects:        make([]Player, polyphony),
		settingsSubID:  -1,
		lifecycleSubID: -1,
		rand:           rand.New(rand.NewSource(seed)),
	}
	for i := range manager.effects {
		manager.effects[i] = engine.NewEffectPlayer()
	}

	manager.background.SetOnFinished(manager.onTrackFinished)

	return manager, nil
}

// Initialize предзагружает все файлы звуковых эффектов.
// Завершается только после готовности всех ассетов; ошибка загрузки
// любого файла прерывает инициализацию.
func (m *Manager) Initialize(ctx context.Context) error {
	if err := m.engine.Preload(ctx, m.library.EffectFilenames()); err != nil {
		return fmt.Errorf("ошибка предзагрузки эффектов: %w", err)
	}
	return nil
}

// AttachSettings подписывает менеджер на хранилище настроек.
// Повторное подключение того же хранилища — no-op; подключение другого
// хранилища сначала снимает прежнюю подписку. Сразу после подписки
// текущие значения применяются: если звук не отключен и музыка включена,
// начинается воспроизведение головы плейлиста.
func (m *Manager) AttachSettings(store *settings.Store) {
	m.mu.Lock()

	if store == m.store {
		m.mu.Unlock()
		return
	}

	if m.store != nil {
		m.store.Unsubscribe(m.settingsSubID)
		m.settingsSubID = -1
	}

	m.store = store
	if store == nil {
		m.mu.Unlock()
		return
	}

	m.settingsSubID = store.Subscribe(m.onSettingsChanged)

	snap := store.Snapshot()
	if !snap.Muted && snap.MusicEnabled {
		m.resumeBackgroundLocked()
	}
	m.mu.Unlock()
}

// AttachLifecycle подписывает менеджер на сигнал жизненного цикла,
// заменяя любую предыдущую подписку.
func (m *Manager) AttachLifecycle(signal *lifecycle.Signal) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.signal != nil {
		m.signal.Unsubscribe(m.lifecycleSubID)
		m.lifecycleSubID = -1
	}

	m.signal = signal
	if signal != nil {
		m.lifecycleSubID = signal.Subscribe(m.onLifecycleChanged)
	}
}

// PlayEffect воспроизводит звуковой эффект указанного типа.
// При отключенном звуке или выключенных эффектах вызов игнорируется
// (это не ошибка). Иначе выбирается случайный вариант файла, команда
// отправляется плееру на текущей позиции пула, и курсор сдвигается
// по кругу. Плеер слота прерывает то, что играл до этого.
func (m *Manager) PlayEffect(kind catalog.EffectKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store != nil {
		snap := m.store.Snapshot()
		if snap.Muted || !snap.SoundEnabled {
			log.Printf("эффект %q пропущен: звук отключен", kind)
			return nil
		}
	}

	effect, ok := m.library.Effect(kind)
	if !ok {
		return fmt.Errorf("неизвестный тип эффекта: %q", kind)
	}

	filename := effect.Filenames[0]
	if len(effect.Filenames) > 1 {
		filename = effect.Filenames[m.rand.Intn(len(effect.Filenames))]
	}

	player := m.effects[m.cursor]
	m.cursor = (m.cursor + 1) % len(m.effects)

	if err := player.Play(filename, effect.Volume); err != nil {
		return fmt.Errorf("ошибка воспроизведения эффекта %q: %w", kind, err)
	}
	return nil
}

// CurrentTrack возвращает текущую голову плейлиста
func (m *Manager) CurrentTrack() catalog.Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playlist.Head()
}

// BackgroundState возвращает состояние фонового плеера
func (m *Manager) BackgroundState() PlayerState {
	return m.background.State()
}

// Dispose снимает подписки, останавливает воспроизведение и освобождает
// все плееры. Вызывается не более одного раза за время жизни экземпляра;
// за повторные вызовы отвечает вызывающая сторона.
func (m *Manager) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store != nil {
		m.store.Unsubscribe(m.settingsSubID)
		m.store = nil
		m.settingsSubID = -1
	}
	if m.signal != nil {
		m.signal.Unsubscribe(m.lifecycleSubID)
		m.signal = nil
		m.lifecycleSubID = -1
	}

	m.background.Stop()
	for _, player := range m.effects {
		player.Stop()
	}

	if err := m.background.Close(); err != nil {
		log.Printf("ошибка освобождения фонового плеера: %v", err)
	}
	for _, player := range m.effects {
		if err := player.Close(); err != nil {
			log.Printf("ошибка освобождения плеера эффектов: %v", err)
		}
	}
}

// onTrackFinished вызывается движком при естественном завершении трека:
// плейлист ротируется, и запускается новая голова.
func (m *Manager) onTrackFinished() {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.playlist.Rotate()
	m.playTrackLocked(next)
}

// onSettingsChanged применяет новый снимок настроек к состоянию плееров
func (m *Manager) onSettingsChanged(snap settings.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if snap.Muted {
		// Полное отключение: музыка на паузу, эффекты остановить
		m.pauseBackgroundLocked()
		m.stopEffectsLocked()
		return
	}

	if snap.MusicEnabled {
		m.resumeBackgroundLocked()
	} else {
		m.pauseBackgroundLocked()
	}

	if !snap.SoundEnabled {
		m.stopEffectsLocked()
	}
}

// onLifecycleChanged реагирует на переходы жизненного цикла приложения
func (m *Manager) onLifecycleChanged(state lifecycle.State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch state {
	case lifecycle.StatePaused, lifecycle.StateDetached:
		m.pauseBackgroundLocked()
		m.stopEffectsLocked()
	case lifecycle.StateResumed:
		if m.store == nil {
			return
		}
		snap := m.store.Snapshot()
		if !snap.Muted && snap.MusicEnabled {
			m.resumeBackgroundLocked()
		}
	case lifecycle.StateInactive:
		// Кратковременная потеря фокуса не влияет на воспроизведение
	}
}

// resumeBackgroundLocked приводит фоновый плеер к воспроизведению согласно
// таблице переходов. Вызывается под мьютексом.
func (m *Manager) resumeBackgroundLocked() {
	switch m.background.State() {
	case StatePlaying:
		// Уже играет
	case StatePaused:
		if err := m.background.Resume(); err != nil {
			// Движок не смог возобновить поток: перезапускаем текущую
			// голову плейлиста с начала
			log.Printf("ошибка возобновления музыки: %v, перезапускаем трек", err)
			m.playTrackLocked(m.playlist.Head())
		}
	case StateCompleted:
		// При закольцованном плейлисте завершенное состояние вне
		// обработчика ротации наблюдаться не должно
		log.Printf("предупреждение: фоновый плеер в состоянии completed, перезапускаем трек")
		m.playTrackLocked(m.playlist.Head())
	default:
		m.playTrackLocked(m.playlist.Head())
	}
}

// pauseBackgroundLocked ставит музыку на паузу, если она играет.
// Вызывается под мьютексом.
func (m *Manager) pauseBackgroundLocked() {
	if m.background.State() == StatePlaying {
		m.background.Pause()
	}
}

// stopEffectsLocked останавливает все плееры эффектов. Эффекты никогда
// не ставятся на паузу — только останавливаются. Вызывается под мьютексом.
func (m *Manager) stopEffectsLocked() {
	for _, player := range m.effects {
		player.Stop()
	}
}

// playTrackLocked запускает воспроизведение трека. Вызывается под мьютексом.
func (m *Manager) playTrackLocked(track catalog.Track) {
	if err := m.background.Play(track.Filename, m.musicVolume); err != nil {
		log.Printf("ошибка запуска трека %q: %v", track.Filename, err)
	}
}
