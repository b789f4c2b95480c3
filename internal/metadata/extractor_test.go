package metadata

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTrackFromFilenameArtistTitle(t *testing.T) {
	extractor := NewExtractor()

	track := extractor.trackFromFilename("/music/Kai Engel - Ambient Loop.mp3")

	if track.Artist != "Kai Engel" {
		t.Errorf("Ожидался исполнитель Kai Engel, получено: %q", track.Artist)
	}
	if track.DisplayName != "Ambient Loop" {
		t.Errorf("Ожидалось название Ambient Loop, получено: %q", track.DisplayName)
	}
	if track.Filename != "Kai Engel - Ambient Loop.mp3" {
		t.Errorf("Имя файла должно сохраняться полностью, получено: %q", track.Filename)
	}
}

func TestTrackFromFilenamePlain(t *testing.T) {
	extractor := NewExtractor()

	track := extractor.trackFromFilename("/music/ambient_loop.mp3")

	if track.Artist != "" {
		t.Errorf("Исполнитель должен быть пустым, получено: %q", track.Artist)
	}
	if track.DisplayName != "ambient_loop" {
		t.Errorf("Ожидалось название ambient_loop, получено: %q", track.DisplayName)
	}
}

func TestTrackFromFilenameMultipleDashes(t *testing.T) {
	extractor := NewExtractor()

	track := extractor.trackFromFilename("/music/Artist - Title - Part 2.mp3")

	if track.Artist != "Artist" {
		t.Errorf("Ожидался исполнитель Artist, получено: %q", track.Artist)
	}
	if track.DisplayName != "Title - Part 2" {
		t.Errorf("Ожидалось название Title - Part 2, получено: %q", track.DisplayName)
	}
}

func TestTrackFromFileWithoutTags(t *testing.T) {
	// Файл без валидных mp3 тегов: метаданные строятся по имени файла
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "Some Artist - Some Track.mp3")
	if err := os.WriteFile(filePath, []byte("not-an-mp3"), 0644); err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}

	extractor := NewExtractor()
	track := extractor.TrackFromFile(filePath)

	if track.Artist != "Some Artist" {
		t.Errorf("Ожидался исполнитель Some Artist, получено: %q", track.Artist)
	}
	if track.DisplayName != "Some Track" {
		t.Errorf("Ожидалось название Some Track, получено: %q", track.DisplayName)
	}
}

func TestDurationInvalidFile(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "broken.mp3")
	if err := os.WriteFile(filePath, []byte("not-an-mp3"), 0644); err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}

	extractor := NewExtractor()
	if _, err := extractor.Duration(filePath); err == nil {
		t.Error("Ожидалась ошибка декодирования для невалидного файла")
	}
}

func TestDurationMissingFile(t *testing.T) {
	extractor := NewExtractor()
	if _, err := extractor.Duration("/no/such/file.mp3"); err == nil {
		t.Error("Ожидалась ошибка для отсутствующего файла")
	}
}
