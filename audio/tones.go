package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

const (
	sampleRate = beep.SampleRate(48000)

	speakerBufferDuration = 100 * time.Millisecond

	hitDuration   = 50 * time.Millisecond
	wallDuration  = 30 * time.Millisecond
	chirpDuration = 90 * time.Millisecond

	hitBaseHz   = 440.0
	hitSpreadHz = 220.0
	wallHz      = 220.0
	chirpLowHz  = 523.25
	chirpHighHz = 784.0

	toneAmplitude = 0.25
)

// hitFrequency raises the pitch the further from the paddle center the ball
// was struck.
func hitFrequency(collidePoint float64) float64 {
	return hitBaseHz + hitSpreadHz*math.Min(math.Abs(collidePoint), 1)
}

// tone is a sine blip of length d that fades out linearly.
func tone(freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, fmt.Errorf("sine %.0fHz: %w", freq, err)
	}

	n := sampleRate.N(d)
	return beep.Take(n, &fadeOut{Streamer: sine, total: n}), nil
}

// chirp plays two tones back to back, rising or falling.
func chirp(rising bool) (beep.Streamer, error) {
	first, second := chirpLowHz, chirpHighHz
	if !rising {
		first, second = second, first
	}

	a, err := tone(first, chirpDuration)
	if err != nil {
		return nil, err
	}
	b, err := tone(second, chirpDuration)
	if err != nil {
		return nil, err
	}
	return beep.Seq(a, b), nil
}

// fadeOut scales a streamer by toneAmplitude and ramps it to silence over
// total samples.
type fadeOut struct {
	beep.Streamer
	pos   int
	total int
}

func (f *fadeOut) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := toneAmplitude * (1 - float64(f.pos)/float64(f.total))
		if gain < 0 {
			gain = 0
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		f.pos++
	}
	return n, ok
}
