package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-soundbox/internal/assets"
)

// createScanCommand создает команду scan с привязкой к экземпляру приложения
func (app *Application) createScanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Rebuild the track list from local audio files",
		Long:  `Scan the music directory of the assets folder and rebuild the track list of the library file.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.scanTracks()
		},
	}
}

func (app *Application) scanTracks() error {
	service := assets.NewService(nil, app.Config.AssetsDir)

	tracks, err := service.ScanTracks()
	if err != nil {
		return fmt.Errorf("ошибка сканирования: %w", err)
	}

	if len(tracks) == 0 {
		fmt.Println("📂 В каталоге музыки не найдено ни одного mp3 файла")
		return nil
	}

	// Заменяем список треков, набор эффектов остается прежним
	app.Library.Tracks = tracks
	if err := app.Library.Save(app.Config.LibraryFile); err != nil {
		return fmt.Errorf("ошибка сохранения библиотеки: %w", err)
	}

	fmt.Printf("✅ Найдено треков: %d\n", len(tracks))
	for _, track := range tracks {
		fmt.Printf("   🎵 %s\n", track.Filename)
	}

	return nil
}
