// Package catalog содержит каталог фоновых треков и таблицу звуковых эффектов
package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Track описывает фоновый трек. Запись неизменяемая, идентичность трека
// определяется именем файла.
type Track struct {
	Filename    string `yaml:"filename"`
	DisplayName string `yaml:"display_name"`
	Artist      string `yaml:"artist,omitempty"`
}

// EffectKind тип звукового эффекта
type EffectKind string

const (
	EffectClick     EffectKind = "click"
	EffectCoin      EffectKind = "coin"
	EffectJump      EffectKind = "jump"
	EffectExplosion EffectKind = "explosion"
	EffectPowerup   EffectKind = "powerup"
	EffectGameOver  EffectKind = "game_over"
)

// Effect описывает набор файлов-вариантов для одного типа эффекта.
// При воспроизведении выбирается один случайный вариант, громкость
// задается множителем в диапазоне 0..1.
type Effect struct {
	Filenames []string `yaml:"filenames"`
	Volume    float64  `yaml:"volume"`
}

// Library объединяет каталог треков и таблицу эффектов
type Library struct {
	Tracks  []Track               `yaml:"tracks"`
	Effects map[EffectKind]Effect `yaml:"effects"`
}

// defaultTracks встроенный каталог фоновых треков
var defaultTracks = []Track{
	{Filename: "ambient_loop.mp3", DisplayName: "Ambient Loop", Artist: "Kai Engel"},
	{Filename: "chiptune_adventure.mp3", DisplayName: "Chiptune Adventure"},
	{Filename: "deep_focus.mp3", DisplayName: "Deep Focus", Artist: "Scott Buckley"},
	{Filename: "night_drive.mp3", DisplayName: "Night Drive", Artist: "Evgeny Bardyuzha"},
	{Filename: "pixel_dreams.mp3", DisplayName: "Pixel Dreams"},
}

// defaultEffects встроенная таблица эффектов: тип -> варианты файлов + громкость
var defaultEffects = map[EffectKind]Effect{
	EffectClick:     {Filenames: []string{"click_1.mp3", "click_2.mp3"}, Volume: 0.4},
	EffectCoin:      {Filenames: []string{"coin.mp3"}, Volume: 0.6},
	EffectJump:      {Filenames: []string{"jump.mp3"}, Volume: 0.5},
	EffectExplosion: {Filenames: []string{"explosion_1.mp3", "explosion_2.mp3", "explosion_3.mp3"}, Volume: 0.8},
	EffectPowerup:   {Filenames: []string{"powerup.mp3"}, Volume: 0.7},
	EffectGameOver:  {Filenames: []string{"game_over.mp3"}, Volume: 1.0},
}

// Default возвращает встроенную библиотеку
func Default() *Library {
	tracks := make([]Track, len(defaultTracks))
	copy(tracks, defaultTracks)

	effects := make(map[EffectKind]Effect, len(defaultEffects))
	for kind, effect := range defaultEffects {
		filenames := make([]string, len(effect.Filenames))
		copy(filenames, effect.Filenames)
		effects[kind] = Effect{Filenames: filenames, Volume: effect.Volume}
	}

	return &Library{Tracks: tracks, Effects: effects}
}

// Load загружает библиотеку из yaml файла. Если файл отсутствует,
// возвращается встроенная библиотека.
func Load(filePath string) (*Library, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("ошибка чтения файла библиотеки: %w", err)
	}

	library := &Library{}
	if err := yaml.Unmarshal(data, library); err != nil {
		return nil, fmt.Errorf("ошибка разбора файла библиотеки: %w", err)
	}
	if len(library.Tracks) == 0 {
		library.Tracks = Default().Tracks
	}
	if len(library.Effects) == 0 {
		library.Effects = Default().Effects
	}

	if err := library.Validate(); err != nil {
		return nil, err
	}
	return library, nil
}

// Save сохраняет библиотеку в yaml файл
func (l *Library) Save(filePath string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	path := strings.Replace(filePath, "~", home, 1)

	data, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("ошибка сериализации библиотеки: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла библиотеки: %w", err)
	}
	return nil
}

// Validate проверяет, что все имена файлов соответствуют ограничению
// аудио-движка: ASCII без пробельных символов.
func (l *Library) Validate() error {
	for _, track := range l.Tracks {
		if err := ValidateFilename(track.Filename); err != nil {
			return fmt.Errorf("трек %q: %w", track.DisplayName, err)
		}
	}
	for kind, effect := range l.Effects {
		if len(effect.Filenames) == 0 {
			return fmt.Errorf("эффект %q: не задано ни одного файла", kind)
		}
		for _, filename := range effect.Filenames {
			if err := ValidateFilename(filename); err != nil {
				return fmt.Errorf("эффект %q: %w", kind, err)
			}
		}
	}
	return nil
}

// Effect возвращает описание эффекта по типу
func (l *Library) Effect(kind EffectKind) (Effect, bool) {
	effect, ok := l.Effects[kind]
	return effect, ok
}

// EffectFilenames возвращает список всех файлов эффектов (для предзагрузки)
func (l *Library) EffectFilenames() []string {
	seen := make(map[string]bool)
	filenames := make([]string, 0)
	for _, effect := range l.Effects {
		for _, filename := range effect.Filenames {
			if seen[filename] {
				continue
			}
			seen[filename] = true
			filenames = append(filenames, filename)
		}
	}
	return filenames
}

// ValidateFilename проверяет имя файла на соответствие ограничению движка
func ValidateFilename(filename string) error {
	if filename == "" {
		return fmt.Errorf("пустое имя файла")
	}
	for _, r := range filename {
		if r > 127 {
			return fmt.Errorf("имя файла %q содержит не-ASCII символы", filename)
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return fmt.Errorf("имя файла %q содержит пробельные символы", filename)
		}
	}
	return nil
}
