package audio

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Output plays rendered cues through an ebiten audio context. Only one
// context may exist per process.
type Output struct {
	ctx     *audio.Context
	lib     *Library
	playing []*audio.Player
}

func NewOutput(lib *Library) *Output {
	return &Output{ctx: audio.NewContext(lib.SampleRate()), lib: lib}
}

func (o *Output) Play(cue string) error {
	pcm, err := o.lib.Render(cue)
	if err != nil {
		return err
	}
	p := o.ctx.NewPlayerFromBytes(pcm)
	p.Play()

	// keep players referenced until they finish
	live := o.playing[:0]
	for _, old := range o.playing {
		if old.IsPlaying() {
			live = append(live, old)
		}
	}
	o.playing = append(live, p)
	return nil
}
