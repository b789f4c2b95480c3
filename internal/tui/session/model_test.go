package session

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hazadus/go-soundbox/internal/catalog"
	"github.com/hazadus/go-soundbox/internal/lifecycle"
	playback "github.com/hazadus/go-soundbox/internal/session"
	"github.com/hazadus/go-soundbox/internal/settings"
)

// fakePlayer минимальный плеер для тестов модели
type fakePlayer struct {
	plays int
	state playback.PlayerState
}

func (p *fakePlayer) Play(_ string, _ float64) error {
	p.plays++
	p.state = playback.StatePlaying
	return nil
}

func (p *fakePlayer) Pause()        { p.state = playback.StatePaused }
func (p *fakePlayer) Resume() error { p.state = playback.StatePlaying; return nil }
func (p *fakePlayer) Stop()         { p.state = playback.StateStopped }

func (p *fakePlayer) State() playback.PlayerState { return p.state }
func (p *fakePlayer) Close() error                { return nil }

type fakeBackground struct {
	fakePlayer
}

func (p *fakeBackground) SetOnFinished(_ func()) {}

type fakeEngine struct {
	effect *fakePlayer
}

func (e *fakeEngine) NewBackgroundPlayer() playback.BackgroundPlayer { return &fakeBackground{} }
func (e *fakeEngine) NewEffectPlayer() playback.Player               { return e.effect }

func (e *fakeEngine) Preload(_ context.Context, _ []string) error { return nil }

func newTestModel(t *testing.T) (*Model, *fakeEngine, *settings.Store, *lifecycle.Signal) {
	t.Helper()

	library := &catalog.Library{
		Tracks: []catalog.Track{
			{Filename: "a.mp3", DisplayName: "A"},
		},
		Effects: map[catalog.EffectKind]catalog.Effect{
			catalog.EffectClick: {Filenames: []string{"click.mp3"}, Volume: 0.5},
		},
	}

	engine := &fakeEngine{effect: &fakePlayer{}}
	manager, err := playback.NewManager(engine, library, playback.Options{Polyphony: 1})
	if err != nil {
		t.Fatalf("Ошибка создания менеджера: %v", err)
	}

	store := settings.NewStore()
	signal := lifecycle.NewSignal()

	return NewModel(manager, store, signal), engine, store, signal
}

func TestNewModel(t *testing.T) {
	model, _, _, _ := newTestModel(t)

	if model == nil {
		t.Fatal("NewModel вернул nil")
	}
	if model.manager == nil || model.store == nil || model.signal == nil {
		t.Error("Зависимости модели должны быть инициализированы")
	}
}

func TestUpdateWindowSize(t *testing.T) {
	model, _, _, _ := newTestModel(t)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	sessionModel := updated.(*Model)

	if sessionModel.width != 100 || sessionModel.height != 40 {
		t.Errorf("Размеры не обновлены: %dx%d", sessionModel.width, sessionModel.height)
	}
}

func TestToggleKeys(t *testing.T) {
	model, _, store, _ := newTestModel(t)

	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if !store.Snapshot().Muted {
		t.Error("Клавиша 'm' должна включать режим без звука")
	}

	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	if store.Snapshot().MusicEnabled {
		t.Error("Клавиша 'b' должна выключать музыку")
	}

	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if store.Snapshot().SoundEnabled {
		t.Error("Клавиша 's' должна выключать эффекты")
	}
}

func TestEffectKey(t *testing.T) {
	model, engine, _, _ := newTestModel(t)

	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})

	if engine.effect.plays != 1 {
		t.Errorf("Клавиша '1' должна запускать эффект, воспроизведений: %d", engine.effect.plays)
	}
}

func TestQuitKeySetsDetached(t *testing.T) {
	model, _, _, signal := newTestModel(t)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	if signal.State() != lifecycle.StateDetached {
		t.Errorf("Клавиша 'q' должна переводить сессию в detached, состояние: %s", signal.State())
	}
	if cmd == nil {
		t.Error("Клавиша 'q' должна возвращать команду выхода")
	}
}

func TestFocusBlur(t *testing.T) {
	model, _, _, signal := newTestModel(t)

	model.Update(tea.BlurMsg{})
	if signal.State() != lifecycle.StatePaused {
		t.Errorf("Потеря фокуса должна переводить сессию в paused, состояние: %s", signal.State())
	}

	model.Update(tea.FocusMsg{})
	if signal.State() != lifecycle.StateResumed {
		t.Errorf("Возврат фокуса должен переводить сессию в resumed, состояние: %s", signal.State())
	}
}

func TestFormatFlag(t *testing.T) {
	if formatFlag(true) != "вкл" {
		t.Error("Ожидалось 'вкл' для включенного флага")
	}
	if formatFlag(false) != "выкл" {
		t.Error("Ожидалось 'выкл' для выключенного флага")
	}
}
