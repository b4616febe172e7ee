package game

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
)

const (
	soundSampleRate = beep.SampleRate(44100)
	clickDuration   = 40 * time.Millisecond
	clickBaseFreq   = 660.0
	clickFreqStep   = 55.0
	clickMaxHits    = 6
	clickGain       = 0.25
	maxSampleLength = 500 * time.Millisecond
)

// clickStream is an endless beep.Streamer that plays a short burst each
// time it is triggered and silence otherwise. The burst is a decaying sine
// unless a recorded sample was loaded. Peg hits come in from the game loop
// while the speaker goroutine pulls samples.
type clickStream struct {
	sampleRate beep.SampleRate
	length     int
	sample     [][2]float64

	mu        sync.Mutex
	remaining int
	freq      float64
	gain      float64
	phase     float64
}

func newSynthStream(sr beep.SampleRate) *clickStream {
	return &clickStream{
		sampleRate: sr,
		length:     sr.N(clickDuration),
	}
}

// newClickStream falls back to the synthesized burst when samplePath is
// empty or cannot be loaded.
func newClickStream(sr beep.SampleRate, samplePath string) *clickStream {
	if samplePath == "" {
		return newSynthStream(sr)
	}
	sample, err := loadSample(samplePath, sr)
	if err != nil {
		log.Printf("[audio] %v, using synthesized click", err)
		return newSynthStream(sr)
	}
	return newSampleStream(sr, sample)
}

func newSampleStream(sr beep.SampleRate, sample [][2]float64) *clickStream {
	return &clickStream{
		sampleRate: sr,
		length:     len(sample),
		sample:     sample,
	}
}

// startSound opens the speaker and attaches a click stream to it. A
// non-empty samplePath replaces the synthesized click with that recording
// when it loads.
func startSound(samplePath string) (*clickStream, error) {
	c := newClickStream(soundSampleRate, samplePath)

	if err := speaker.Init(soundSampleRate, soundSampleRate.N(time.Second/30)); err != nil {
		return nil, errors.Wrap(err, "init speaker")
	}
	speaker.Play(c)
	return c, nil
}

// trigger starts a burst whose pitch and loudness grow with the number of
// pegs hit this frame. A burst still in its first half is not restarted.
func (c *clickStream) trigger(hits int) {
	if hits <= 0 {
		return
	}
	if hits > clickMaxHits {
		hits = clickMaxHits
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining > c.length/2 {
		return
	}
	level := clamp01(0.5 + float64(hits)/clickMaxHits)
	c.remaining = c.length
	c.freq = clickBaseFreq + clickFreqStep*float64(hits-1)
	c.gain = clickGain * level
	if c.sample != nil {
		c.gain = level
	}
	c.phase = 0
}

func (c *clickStream) Stream(samples [][2]float64) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	step := 2 * math.Pi * c.freq / float64(c.sampleRate)
	for i := range samples {
		if c.remaining <= 0 {
			samples[i] = [2]float64{}
			continue
		}
		if c.sample != nil {
			s := c.sample[c.length-c.remaining]
			samples[i] = [2]float64{s[0] * c.gain, s[1] * c.gain}
			c.remaining--
			continue
		}
		env := float64(c.remaining) / float64(c.length)
		v := math.Sin(c.phase) * c.gain * env * env
		samples[i] = [2]float64{v, v}
		c.phase += step
		c.remaining--
	}
	return len(samples), true
}

func (c *clickStream) Err() error { return nil }
