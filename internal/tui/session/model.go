// Package session содержит модель экрана звуковой сессии для TUI
package session

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hazadus/go-soundbox/internal/catalog"
	"github.com/hazadus/go-soundbox/internal/lifecycle"
	playback "github.com/hazadus/go-soundbox/internal/session"
	"github.com/hazadus/go-soundbox/internal/settings"
	"github.com/hazadus/go-soundbox/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0000ff")).
			MarginBottom(1)

	trackInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1).
			MarginBottom(1)

	effectsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#aaaaaa"))

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff0000")).
			Bold(true)
)

// Клавиши 1..6 запускают эффекты в этом порядке
var effectOrder = []catalog.EffectKind{
	catalog.EffectClick,
	catalog.EffectCoin,
	catalog.EffectJump,
	catalog.EffectExplosion,
	catalog.EffectPowerup,
	catalog.EffectGameOver,
}

// tickMsg периодически обновляет экран по состоянию сессии
type tickMsg time.Time

// Model представляет модель экрана звуковой сессии
type Model struct {
	manager *playback.Manager
	store   *settings.Store
	signal  *lifecycle.Signal
	spinner spinner.Model
	started time.Time
	lastErr error
	width   int
	height  int
}

// NewModel создает новую модель звуковой сессии
func NewModel(manager *playback.Manager, store *settings.Store, signal *lifecycle.Signal) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		manager: manager,
		store:   store,
		signal:  signal,
		spinner: sp,
		started: time.Now(),
	}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick())
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.FocusMsg:
		// Терминал снова в фокусе: возобновляем музыку
		m.signal.Set(lifecycle.StateResumed)
		return m, nil

	case tea.BlurMsg:
		// Терминал потерял фокус: приостанавливаем все звуки
		m.signal.Set(lifecycle.StatePaused)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey обрабатывает нажатия клавиш
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "esc", "ctrl+c":
		m.signal.Set(lifecycle.StateDetached)
		return m, tea.Quit

	case "m":
		m.store.ToggleMuted()
		return m, nil

	case "b":
		m.store.ToggleMusicEnabled()
		return m, nil

	case "s":
		m.store.ToggleSoundEnabled()
		return m, nil

	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '6' {
			kind := effectOrder[key[0]-'1']
			m.lastErr = m.manager.PlayEffect(kind)
		}
		return m, nil
	}
}

// View отображает модель
func (m *Model) View() string {
	title := titleStyle.Render("🎵 Soundbox")

	trackInfo := trackInfoStyle.Render(m.trackLine())

	snapshot := m.store.Snapshot()
	statusText := statusStyle.Render(fmt.Sprintf(
		"%s\n🔇 Без звука: %s   🎶 Музыка: %s   🔊 Эффекты: %s",
		m.playbackLine(),
		formatFlag(snapshot.Muted),
		formatFlag(snapshot.MusicEnabled),
		formatFlag(snapshot.SoundEnabled),
	))

	effects := effectsStyle.Render(m.effectLines())

	controls := controlsStyle.Render(
		"1-6: эффекты • m: без звука • b: музыка • s: эффекты вкл/выкл • q/esc: выход",
	)

	view := fmt.Sprintf(
		"%s\n%s\n%s\n%s\n%s",
		title,
		trackInfo,
		statusText,
		effects,
		controls,
	)

	if m.lastErr != nil {
		view += "\n" + errorStyle.Render("❌ "+m.lastErr.Error())
	}

	return view
}

// trackLine строит строку с информацией о текущем треке
func (m *Model) trackLine() string {
	track := m.manager.CurrentTrack()
	if track.Artist != "" {
		return fmt.Sprintf("🎤 %s — %s", track.Artist, track.DisplayName)
	}
	return fmt.Sprintf("🎤 %s", track.DisplayName)
}

// playbackLine строит строку состояния воспроизведения
func (m *Model) playbackLine() string {
	elapsed := utils.FormatDuration(time.Since(m.started))

	switch m.manager.BackgroundState() {
	case playback.StatePlaying:
		return fmt.Sprintf("%s Воспроизведение • %s", m.spinner.View(), elapsed)
	case playback.StatePaused:
		return fmt.Sprintf("⏸️ Пауза • %s", elapsed)
	default:
		return fmt.Sprintf("⏹️ Остановлено • %s", elapsed)
	}
}

// effectLines строит подсказку по клавишам эффектов
func (m *Model) effectLines() string {
	line := "Эффекты:"
	for i, kind := range effectOrder {
		line += fmt.Sprintf("  %d %s", i+1, kind)
	}
	return line
}

// tick возвращает команду периодического обновления экрана
func tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func formatFlag(on bool) string {
	if on {
		return "вкл"
	}
	return "выкл"
}
