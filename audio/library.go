package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/gopxl/beep"
)

// Library renders cues to 16-bit little-endian stereo PCM, the format the
// ebiten audio context plays, and caches the result.
type Library struct {
	rate   beep.SampleRate
	volume float64

	mu    sync.Mutex
	cache map[string][]byte
}

func NewLibrary(sampleRate int, volume float64) *Library {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &Library{
		rate:   beep.SampleRate(sampleRate),
		volume: math.Max(0, math.Min(1, volume)),
		cache:  make(map[string][]byte),
	}
}

func (l *Library) SampleRate() int { return int(l.rate) }

// Names lists the known cues in order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(cues))
	for name := range cues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l *Library) Has(name string) bool {
	_, ok := cues[name]
	return ok
}

// Streamer builds a fresh streamer for a cue.
func (l *Library) Streamer(name string) (beep.Streamer, error) {
	tones, ok := cues[name]
	if !ok {
		return nil, fmt.Errorf("audio: unknown cue %q", name)
	}
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		osc := newOscillator(t.freq, t.slideTo, t.dur, t.wave, l.rate)
		shaped := newEnvelope(osc, t.dur, attack, release, l.rate)
		parts = append(parts, newVolume(shaped, t.gain))
	}
	return newVolume(beep.Seq(parts...), l.volume), nil
}

// Render returns the cue as PCM bytes.
func (l *Library) Render(name string) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if pcm, ok := l.cache[name]; ok {
		return pcm, nil
	}

	s, err := l.Streamer(name)
	if err != nil {
		return nil, err
	}
	pcm, err := encodePCM(s)
	if err != nil {
		return nil, fmt.Errorf("audio: render %q: %w", name, err)
	}
	l.cache[name] = pcm
	return pcm, nil
}

func encodePCM(s beep.Streamer) ([]byte, error) {
	var out []byte
	buf := make([][2]float64, 512)
	frame := make([]byte, 4)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint16(frame[0:], uint16(toInt16(buf[i][0])))
			binary.LittleEndian.PutUint16(frame[2:], uint16(toInt16(buf[i][1])))
			out = append(out, frame...)
		}
		if !ok {
			break
		}
	}
	return out, s.Err()
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}
