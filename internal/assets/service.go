// Package assets содержит сервис управления локальными аудио ассетами:
// проверку наличия файлов библиотеки, синхронизацию с S3 бакетом и
// построение каталога по содержимому каталога музыки.
package assets

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hazadus/go-soundbox/internal/catalog"
	"github.com/hazadus/go-soundbox/internal/metadata"
)

const (
	// MusicPrefix подкаталог фоновых треков внутри каталога ассетов
	MusicPrefix = "music"
	// SfxPrefix подкаталог звуковых эффектов
	SfxPrefix = "sfx"
)

// Fetcher контракт удаленного хранилища ассетов
type Fetcher interface {
	ListKeys(ctx context.Context, prefix string) ([]string, error)
	DownloadFile(ctx context.Context, key string, destPath string) (int64, error)
}

// Service управляет локальными аудио ассетами
type Service struct {
	fetcher   Fetcher
	extractor *metadata.Extractor
	assetsDir string
}

// NewService создает сервис ассетов. Fetcher может быть nil, если
// синхронизация с удаленным хранилищем не используется.
func NewService(fetcher Fetcher, assetsDir string) *Service {
	return &Service{
		fetcher:   fetcher,
		extractor: metadata.NewExtractor(),
		assetsDir: assetsDir,
	}
}

// LocalPath возвращает абсолютный путь ассета по относительному ключу
func (s *Service) LocalPath(key string) string {
	return filepath.Join(s.assetsDir, filepath.FromSlash(key))
}

// MissingFiles возвращает относительные ключи файлов библиотеки,
// отсутствующих в локальном каталоге ассетов
func (s *Service) MissingFiles(library *catalog.Library) []string {
	missing := make([]string, 0)

	for _, track := range library.Tracks {
		// Треки с URL источником не хранятся локально
		if strings.HasPrefix(track.Filename, "http://") || strings.HasPrefix(track.Filename, "https://") {
			continue
		}
		key := MusicPrefix + "/" + track.Filename
		if !s.exists(key) {
			missing = append(missing, key)
		}
	}

	for _, filename := range library.EffectFilenames() {
		key := SfxPrefix + "/" + filename
		if !s.exists(key) {
			missing = append(missing, key)
		}
	}

	sort.Strings(missing)
	return missing
}

// SyncResult результат синхронизации с удаленным хранилищем
type SyncResult struct {
	Downloaded int
	Skipped    []string
}

// Sync скачивает отсутствующие файлы библиотеки из удаленного хранилища.
// Файлы, которых нет и в бакете, пропускаются с предупреждением.
func (s *Service) Sync(ctx context.Context, library *catalog.Library, progress func(key string, size int64)) (*SyncResult, error) {
	if s.fetcher == nil {
		return nil, fmt.Errorf("удаленное хранилище не настроено")
	}

	missing := s.MissingFiles(library)
	result := &SyncResult{}
	if len(missing) == 0 {
		return result, nil
	}

	keys, err := s.fetcher.ListKeys(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка ассетов: %w", err)
	}
	remote := make(map[string]bool, len(keys))
	for _, key := range keys {
		remote[key] = true
	}

	for _, key := range missing {
		if !remote[key] {
			log.Printf("ассет %q отсутствует в бакете, пропускаем", key)
			result.Skipped = append(result.Skipped, key)
			continue
		}

		size, err := s.fetcher.DownloadFile(ctx, key, s.LocalPath(key))
		if err != nil {
			return result, err
		}
		result.Downloaded++
		if progress != nil {
			progress(key, size)
		}
	}

	return result, nil
}

// ScanTracks строит каталог треков по содержимому каталога музыки.
// Файлы с недопустимыми именами пропускаются с предупреждением.
func (s *Service) ScanTracks() ([]catalog.Track, error) {
	musicDir := filepath.Join(s.assetsDir, MusicPrefix)

	entries, err := os.ReadDir(musicDir)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения каталога музыки: %w", err)
	}

	tracks := make([]catalog.Track, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".mp3") {
			continue
		}
		if err := catalog.ValidateFilename(entry.Name()); err != nil {
			log.Printf("файл %q пропущен: %v", entry.Name(), err)
			continue
		}
		tracks = append(tracks, s.extractor.TrackFromFile(filepath.Join(musicDir, entry.Name())))
	}

	sort.Slice(tracks, func(i, j int) bool {
		return tracks[i].Filename < tracks[j].Filename
	})
	return tracks, nil
}

// exists проверяет наличие локального файла по относительному ключу
func (s *Service) exists(key string) bool {
	_, err := os.Stat(s.LocalPath(key))
	return err == nil
}
