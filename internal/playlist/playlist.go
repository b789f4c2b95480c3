// Package playlist содержит циклический плейлист фоновых треков
package playlist

import (
	"errors"
	"math/rand"

	"github.com/hazadus/go-soundbox/internal/catalog"
)

// ErrEmpty возвращается при создании плейлиста без треков
var ErrEmpty = errors.New("плейлист не может быть пустым")

// Playlist представляет циклическую упорядоченную последовательность треков.
// Порядок задается перемешиванием ровно один раз при создании; дальше
// плейлист только ротируется: завершившийся трек уходит в конец.
type Playlist struct {
	tracks []catalog.Track
}

// New создает плейлист, перемешивая каталог треков
func New(tracks []catalog.Track) (*Playlist, error) {
	return newWithRand(tracks, rand.Int63())
}

// NewWithSeed создает плейлист с заданным зерном перемешивания.
// Используется в тестах для предсказуемого порядка.
func NewWithSeed(tracks []catalog.Track, seed int64) (*Playlist, error) {
	return newWithRand(tracks, seed)
}

func newWithRand(tracks []catalog.Track, seed int64) (*Playlist, error) {
	if len(tracks) == 0 {
		return nil, ErrEmpty
	}

	shuffled := make([]catalog.Track, len(tracks))
	copy(shuffled, tracks)

	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return &Playlist{tracks: shuffled}, nil
}

// Head возвращает текущий трек (голову плейлиста)
func (p *Playlist) Head() catalog.Track {
	return p.tracks[0]
}

// Rotate перемещает текущий трек в конец плейлиста и возвращает новую голову
func (p *Playlist) Rotate() catalog.Track {
	head := p.tracks[0]
	copy(p.tracks, p.tracks[1:])
	p.tracks[len(p.tracks)-1] = head
	return p.tracks[0]
}

// Len возвращает количество треков в плейлисте
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// Tracks возвращает копию текущего порядка треков
func (p *Playlist) Tracks() []catalog.Track {
	tracks := make([]catalog.Track, len(p.tracks))
	copy(tracks, p.tracks)
	return tracks
}
