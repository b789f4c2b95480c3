package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-soundbox/internal/engine"
	"github.com/hazadus/go-soundbox/internal/lifecycle"
	playback "github.com/hazadus/go-soundbox/internal/session"
	"github.com/hazadus/go-soundbox/internal/settings"
	"github.com/hazadus/go-soundbox/internal/tui"
)

// createPlayCommand создает команду play с привязкой к экземпляру приложения
func (app *Application) createPlayCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Start the sound session",
		Long:  `Start background music playback with the interactive sound session screen.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.runSession(ctx)
		},
	}
}

func (app *Application) runSession(ctx context.Context) error {
	// Загружаем сохраненные настройки звука
	store, err := settings.Load(app.Config.SettingsFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки настроек: %w", err)
	}

	audioEngine := engine.New(engine.Config{
		AssetsDir: app.Config.AssetsDir,
	})

	manager, err := playback.NewManager(audioEngine, app.Library, playback.Options{
		Polyphony:   app.Config.Polyphony,
		MusicVolume: app.Config.MusicVolume,
	})
	if err != nil {
		return fmt.Errorf("ошибка создания сессии: %w", err)
	}
	defer manager.Dispose()

	// Предзагружаем эффекты до старта интерфейса
	if err := manager.Initialize(ctx); err != nil {
		return err
	}

	signal := lifecycle.NewSignal()
	manager.AttachLifecycle(signal)
	// Подключение настроек запускает музыку, если она включена
	manager.AttachSettings(store)

	tuiApp := tui.NewApp(manager, store, signal)
	if err := tuiApp.Run(); err != nil {
		return fmt.Errorf("ошибка интерфейса: %w", err)
	}

	// Сохраняем настройки, измененные за время сессии
	if err := store.Save(app.Config.SettingsFile); err != nil {
		log.Printf("ошибка сохранения настроек: %v", err)
	}

	return nil
}
