package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-soundbox/internal/assets"
	"github.com/hazadus/go-soundbox/internal/s3"
	"github.com/hazadus/go-soundbox/internal/utils"
)

// createFetchCommand создает команду fetch с привязкой к экземпляру приложения
func (app *Application) createFetchCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download missing audio files from S3 storage",
		Long:  `Download audio files referenced by the library but missing from the local assets folder.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.fetchAssets(ctx)
		},
	}
}

func (app *Application) fetchAssets(ctx context.Context) error {
	if app.Config.AwsBucketName == "" {
		return fmt.Errorf("в конфигурации не задан S3 бакет")
	}

	fmt.Println("Используется бакет:", app.Config.AwsBucketName)

	fetcher, err := s3.NewFetcher(&s3.Config{
		Region:     app.Config.AwsRegion,
		AccessKey:  app.Config.AwsAccessKey,
		SecretKey:  app.Config.AwsSecretKey,
		Endpoint:   app.Config.AwsEndpoint,
		BucketName: app.Config.AwsBucketName,
	})
	if err != nil {
		return err
	}

	service := assets.NewService(fetcher, app.Config.AssetsDir)

	missing := service.MissingFiles(app.Library)
	if len(missing) == 0 {
		fmt.Println("✅ Все файлы библиотеки уже на месте")
		return nil
	}
	fmt.Printf("⬇️  Отсутствует файлов: %d\n", len(missing))

	result, err := service.Sync(ctx, app.Library, func(key string, size int64) {
		fmt.Printf("   ✅ %s (%s)\n", key, utils.FormatFileSize(size))
	})
	if err != nil {
		return fmt.Errorf("ошибка синхронизации: %w", err)
	}

	fmt.Printf("\n✅ Скачано файлов: %d\n", result.Downloaded)
	for _, key := range result.Skipped {
		fmt.Printf("⚠️  Нет в бакете: %s\n", key)
	}

	return nil
}
