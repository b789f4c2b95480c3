package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazadus/go-soundbox/internal/catalog"
	"github.com/hazadus/go-soundbox/internal/config"
)

const (
	defaultConfigPath = "~/.soundbox"
)

// Application содержит зависимости, общие для всех команд
type Application struct {
	Config  *config.Config
	Library *catalog.Library
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.LoadConfig(defaultConfigPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Загружаем библиотеку треков и эффектов
	library, err := catalog.Load(cfg.LibraryFile)
	if err != nil {
		log.Fatalf("Ошибка загрузки библиотеки: %v", err)
	}

	app := &Application{
		Config:  cfg,
		Library: library,
	}

	// Контекст отменяется по Ctrl+C, чтобы прервать скачивание ассетов
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := app.createRootCommand(ctx)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
