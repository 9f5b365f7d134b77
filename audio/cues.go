package audio

import "time"

// tone is one note of a cue.
type tone struct {
	freq    float64
	slideTo float64
	dur     time.Duration
	wave    Wave
	gain    float64
}

const (
	attack  = 5 * time.Millisecond
	release = 40 * time.Millisecond
)

// cues maps the names used by prefab audio specs to short synthesised
// sounds. Tones play one after another.
var cues = map[string][]tone{
	"shoot": {
		{freq: 900, slideTo: 300, dur: 90 * time.Millisecond, wave: WaveSquare, gain: 0.4},
	},
	"enemy_death": {
		{freq: 220, slideTo: 60, dur: 180 * time.Millisecond, wave: WaveSaw, gain: 0.6},
		{dur: 80 * time.Millisecond, wave: WaveNoise, gain: 0.3},
	},
	"armor": {
		{freq: 440, dur: 70 * time.Millisecond, wave: WaveSquare, gain: 0.4},
		{freq: 660, dur: 110 * time.Millisecond, wave: WaveSquare, gain: 0.4},
	},
	"potion": {
		{freq: 523, dur: 80 * time.Millisecond, wave: WaveSine, gain: 0.6},
		{freq: 784, dur: 140 * time.Millisecond, wave: WaveSine, gain: 0.6},
	},
	"gun": {
		{freq: 330, dur: 60 * time.Millisecond, wave: WaveSaw, gain: 0.5},
		{freq: 494, dur: 60 * time.Millisecond, wave: WaveSaw, gain: 0.5},
		{freq: 659, dur: 120 * time.Millisecond, wave: WaveSaw, gain: 0.5},
	},
	"key": {
		{freq: 1318, dur: 60 * time.Millisecond, wave: WaveSine, gain: 0.5},
		{freq: 1760, dur: 160 * time.Millisecond, wave: WaveSine, gain: 0.5},
	},
	"door": {
		{freq: 110, slideTo: 180, dur: 250 * time.Millisecond, wave: WaveSaw, gain: 0.5},
	},
	"portal": {
		{freq: 300, slideTo: 1200, dur: 300 * time.Millisecond, wave: WaveSine, gain: 0.5},
	},
	"game_over": {
		{freq: 392, dur: 180 * time.Millisecond, wave: WaveSquare, gain: 0.4},
		{freq: 330, dur: 180 * time.Millisecond, wave: WaveSquare, gain: 0.4},
		{freq: 262, slideTo: 130, dur: 400 * time.Millisecond, wave: WaveSquare, gain: 0.4},
	},
	"game_won": {
		{freq: 523, dur: 120 * time.Millisecond, wave: WaveSine, gain: 0.6},
		{freq: 659, dur: 120 * time.Millisecond, wave: WaveSine, gain: 0.6},
		{freq: 784, dur: 120 * time.Millisecond, wave: WaveSine, gain: 0.6},
		{freq: 1046, dur: 350 * time.Millisecond, wave: WaveSine, gain: 0.6},
	},
}
