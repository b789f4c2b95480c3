package main

import (
	"context"

	"github.com/spf13/cobra"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "soundbox",
		Short: "Background music and sound effects for the terminal",
		Long:  `Play a shuffled loop of background tracks with a pool of sound effect players.`,
	}

	// Добавляем команды, передавая в них экземпляр приложения и контекст
	rootCmd.AddCommand(app.createPlayCommand(ctx))
	rootCmd.AddCommand(app.createListCommand())
	rootCmd.AddCommand(app.createScanCommand())
	rootCmd.AddCommand(app.createFetchCommand(ctx))

	return rootCmd
}
