// Package s3 предоставляет функционал для скачивания аудио ассетов из S3
package s3

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Config содержит настройки для S3
type Config struct {
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	BucketName string
}

// Fetcher скачивает аудио ассеты из S3 бакета
type Fetcher struct {
	downloader *s3manager.Downloader
	s3Client   *s3.S3
	config     *Config
}

// NewFetcher создает новый S3 fetcher
func NewFetcher(config *Config) (*Fetcher, error) {
	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
	}

	// Если указан endpoint, добавляем его
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	return &Fetcher{
		downloader: s3manager.NewDownloader(sess),
		s3Client:   s3.New(sess),
		config:     config,
	}, nil
}

// ListKeys возвращает ключи объектов бакета с указанным префиксом
func (f *Fetcher) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(f.config.BucketName),
		Prefix: aws.String(prefix),
	}

	err := f.s3Client.ListObjectsV2PagesWithContext(ctx, input,
		func(page *s3.ListObjectsV2Output, _ bool) bool {
			for _, object := range page.Contents {
				key := aws.StringValue(object.Key)
				// Пропускаем "каталоги" и не-mp3 объекты
				if strings.HasSuffix(key, "/") || !strings.HasSuffix(strings.ToLower(key), ".mp3") {
					continue
				}
				keys = append(keys, key)
			}
			return true
		})
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка объектов: %w", err)
	}

	return keys, nil
}

// DownloadFile скачивает объект бакета в локальный файл
func (f *Fetcher) DownloadFile(ctx context.Context, key string, destPath string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return 0, fmt.Errorf("ошибка создания каталога: %w", err)
	}

	file, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания файла: %w", err)
	}
	defer file.Close()

	size, err := f.downloader.DownloadWithContext(ctx, file, &s3.GetObjectInput{
		Bucket: aws.String(f.config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		// Не оставляем частично скачанный файл
		os.Remove(destPath)
		return 0, fmt.Errorf("ошибка скачивания %q: %w", key, err)
	}

	return size, nil
}
