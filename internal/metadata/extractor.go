// Package metadata предоставляет извлечение метаданных из аудио файлов
// для построения каталога треков
package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/mp3"

	"github.com/hazadus/go-soundbox/internal/catalog"
)

// Extractor извлекает метаданные из аудио файлов
type Extractor struct{}

// NewExtractor создает новый экстрактор метаданных
func NewExtractor() *Extractor {
	return &Extractor{}
}

// TrackFromFile строит запись каталога по mp3 файлу: название и
// исполнитель читаются из тегов, при их отсутствии — из имени файла.
func (e *Extractor) TrackFromFile(filePath string) catalog.Track {
	track := e.trackFromFilename(filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return track
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		return track
	}

	if title := strings.TrimSpace(meta.Title()); title != "" {
		track.DisplayName = title
	}
	if artist := strings.TrimSpace(meta.Artist()); artist != "" {
		track.Artist = artist
	}
	return track
}

// Duration возвращает длительность mp3 файла
func (e *Extractor) Duration(filePath string) (time.Duration, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	streamer, format, err := mp3.Decode(file)
	if err != nil {
		return 0, fmt.Errorf("ошибка декодирования MP3: %w", err)
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

// trackFromFilename строит запись каталога по имени файла.
// Имена в формате "Artist - Title.mp3" разбираются на части.
func (e *Extractor) trackFromFilename(filePath string) catalog.Track {
	fileName := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	track := catalog.Track{Filename: fileName}

	parts := strings.Split(nameWithoutExt, " - ")
	if len(parts) >= 2 {
		track.Artist = strings.TrimSpace(parts[0])
		track.DisplayName = strings.TrimSpace(strings.Join(parts[1:], " - "))
		return track
	}

	track.DisplayName = nameWithoutExt
	return track
}
