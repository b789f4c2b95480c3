package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-soundbox/internal/assets"
	"github.com/hazadus/go-soundbox/internal/metadata"
	"github.com/hazadus/go-soundbox/internal/utils"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracks and effects from the library",
		Long:  `Display background tracks and sound effects configured in the library file.`,
		Run: func(_ *cobra.Command, _ []string) {
			app.listLibrary()
		},
	}
}

func (app *Application) listLibrary() {
	service := assets.NewService(nil, app.Config.AssetsDir)
	extractor := metadata.NewExtractor()

	fmt.Printf("🎵 Фоновых треков: %d\n\n", len(app.Library.Tracks))

	fmt.Printf("%-30s %-25s %-12s %-12s\n", "Название", "Исполнитель", "Длительность", "Размер")
	fmt.Println(strings.Repeat("-", 84))

	for _, track := range app.Library.Tracks {
		duration := "N/A"
		size := "N/A"

		path := service.LocalPath(assets.MusicPrefix + "/" + track.Filename)
		if info, err := os.Stat(path); err == nil {
			size = utils.FormatFileSize(info.Size())
			if d, err := extractor.Duration(path); err == nil {
				duration = utils.FormatDuration(d)
			}
		}

		fmt.Printf("%-30s %-25s %-12s %-12s\n",
			utils.TruncateString(track.DisplayName, 28),
			utils.TruncateString(track.Artist, 23),
			duration,
			size,
		)
	}

	fmt.Printf("\n🔊 Звуковых эффектов: %d\n\n", len(app.Library.Effects))
	for kind, effect := range app.Library.Effects {
		fmt.Printf("   %-12s %d вариант(ов), громкость %.2f\n", kind, len(effect.Filenames), effect.Volume)
	}

	fmt.Println()
	fmt.Println("💡 Используйте 'soundbox play' для запуска звуковой сессии")
}
