package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hazadus/go-soundbox/internal/session"
)

// Движок обязан удовлетворять контрактам менеджера сессии
var _ session.Engine = (*Engine)(nil)

// Тесты не инициализируют динамики: проверяются только пути с ошибками,
// которые завершаются до обращения к аудио-устройству.

func TestNewDefaults(t *testing.T) {
	e := New(Config{AssetsDir: "/tmp/assets"})

	if e.cfg.MusicPrefix != defaultMusicPrefix {
		t.Errorf("Ожидался префикс музыки %q, получено: %q", defaultMusicPrefix, e.cfg.MusicPrefix)
	}
	if e.cfg.SfxPrefix != defaultSfxPrefix {
		t.Errorf("Ожидался префикс эффектов %q, получено: %q", defaultSfxPrefix, e.cfg.SfxPrefix)
	}
}

func TestAssetPaths(t *testing.T) {
	e := New(Config{AssetsDir: "/tmp/assets"})

	expected := filepath.Join("/tmp/assets", "music", "track.mp3")
	if got := e.musicPath("track.mp3"); got != expected {
		t.Errorf("Ожидался путь %s, получено: %s", expected, got)
	}

	expected = filepath.Join("/tmp/assets", "sfx", "click.mp3")
	if got := e.sfxPath("click.mp3"); got != expected {
		t.Errorf("Ожидался путь %s, получено: %s", expected, got)
	}
}

func TestPreloadMissingFile(t *testing.T) {
	e := New(Config{AssetsDir: t.TempDir()})

	err := e.Preload(context.Background(), []string{"no_such_effect.mp3"})
	if err == nil {
		t.Error("Ожидалась ошибка предзагрузки отсутствующего файла")
	}
}

func TestPreloadCanceledContext(t *testing.T) {
	e := New(Config{AssetsDir: t.TempDir()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Preload(ctx, []string{"click.mp3"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Ожидалась ошибка отмененного контекста, получено: %v", err)
	}
}

func TestPreloadEmptyList(t *testing.T) {
	e := New(Config{AssetsDir: t.TempDir()})

	if err := e.Preload(context.Background(), nil); err != nil {
		t.Errorf("Пустой список предзагрузки не должен быть ошибкой: %v", err)
	}
}

func TestBackgroundPlayMissingFile(t *testing.T) {
	e := New(Config{AssetsDir: t.TempDir()})
	player := e.NewBackgroundPlayer()

	if err := player.Play("no_such_track.mp3", 1.0); err == nil {
		t.Error("Ожидалась ошибка воспроизведения отсутствующего трека")
	}
	if player.State() != session.StateStopped {
		t.Errorf("После ошибки плеер должен остаться остановленным, состояние: %s", player.State())
	}
}

func TestBackgroundResumeWithoutStream(t *testing.T) {
	e := New(Config{AssetsDir: t.TempDir()})
	player := e.NewBackgroundPlayer()

	if err := player.Resume(); !errors.Is(err, ErrNoStream) {
		t.Errorf("Ожидалась ошибка ErrNoStream, получено: %v", err)
	}
}

func TestEffectPlayMissingFile(t *testing.T) {
	e := New(Config{AssetsDir: t.TempDir()})
	player := e.NewEffectPlayer()

	if err := player.Play("no_such_effect.mp3", 0.5); err == nil {
		t.Error("Ожидалась ошибка воспроизведения отсутствующего эффекта")
	}
}

func TestEffectResumeWithoutStream(t *testing.T) {
	e := New(Config{AssetsDir: t.TempDir()})
	player := e.NewEffectPlayer()

	if err := player.Resume(); !errors.Is(err, ErrNoStream) {
		t.Errorf("Ожидалась ошибка ErrNoStream, получено: %v", err)
	}
}

func TestStopWithoutPlaybackIsSafe(t *testing.T) {
	e := New(Config{AssetsDir: t.TempDir()})

	background := e.NewBackgroundPlayer()
	background.Stop()
	if background.State() != session.StateStopped {
		t.Errorf("Состояние после Stop должно быть stopped, получено: %s", background.State())
	}

	effect := e.NewEffectPlayer()
	effect.Stop()
	if effect.State() != session.StateStopped {
		t.Errorf("Состояние после Stop должно быть stopped, получено: %s", effect.State())
	}
}
