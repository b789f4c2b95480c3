// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hazadus/go-soundbox/internal/lifecycle"
	playback "github.com/hazadus/go-soundbox/internal/session"
	"github.com/hazadus/go-soundbox/internal/settings"
	"github.com/hazadus/go-soundbox/internal/tui/session"
)

// App представляет TUI приложение звуковой сессии
type App struct {
	manager *playback.Manager
	store   *settings.Store
	signal  *lifecycle.Signal
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(manager *playback.Manager, store *settings.Store, signal *lifecycle.Signal) *App {
	return &App{
		manager: manager,
		store:   store,
		signal:  signal,
	}
}

// Run запускает TUI приложение и блокируется до выхода пользователя
func (tuiApp *App) Run() error {
	model := session.NewModel(tuiApp.manager, tuiApp.store, tuiApp.signal)

	// WithReportFocus нужен, чтобы получать события фокуса терминала:
	// по ним сессия приостанавливает и возобновляет звук
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())

	_, err := p.Run()
	return err
}
