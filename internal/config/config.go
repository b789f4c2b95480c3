// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config структура для хранения конфигурации приложения
type Config struct {
	// AssetsDir корневой каталог аудио ассетов (подкаталоги music/ и sfx/)
	AssetsDir string `yaml:"assets_dir"`
	// LibraryFile путь к yaml файлу библиотеки треков и эффектов
	LibraryFile string `yaml:"library_file"`
	// SettingsFile путь к yaml файлу сохраненных настроек звука
	SettingsFile string `yaml:"settings_file"`
	// Polyphony размер пула плееров эффектов
	Polyphony int `yaml:"polyphony"`
	// MusicVolume громкость фоновой музыки (0..1)
	MusicVolume float64 `yaml:"music_volume"`

	// Настройки S3 бакета с ассетами (для команды fetch)
	AwsBucketName string `yaml:"aws_bucket_name"`
	AwsAccessKey  string `yaml:"aws_access_key"`
	AwsSecretKey  string `yaml:"aws_secret_key"`
	AwsRegion     string `yaml:"aws_region"`
	AwsEndpoint   string `yaml:"aws_endpoint"`
}

// LoadConfig загружает конфигурацию приложения из указанного файла.
// Отсутствующий файл не является ошибкой: используются значения по умолчанию.
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	config := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	// Устанавливаем значения по умолчанию, если они не заданы
	if config.AssetsDir == "" {
		config.AssetsDir = "~/.soundbox-assets"
	}
	if config.LibraryFile == "" {
		config.LibraryFile = "~/.soundbox-library.yaml"
	}
	if config.SettingsFile == "" {
		config.SettingsFile = "~/.soundbox-settings.yaml"
	}
	if config.Polyphony <= 0 {
		config.Polyphony = 2
	}
	if config.MusicVolume <= 0 || config.MusicVolume > 1 {
		config.MusicVolume = 1.0
	}

	// Раскрываем тильду в путях
	config.AssetsDir = strings.Replace(config.AssetsDir, "~", home, 1)
	config.LibraryFile = strings.Replace(config.LibraryFile, "~", home, 1)
	config.SettingsFile = strings.Replace(config.SettingsFile, "~", home, 1)

	return config, nil
}
