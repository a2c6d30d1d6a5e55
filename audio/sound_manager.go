// Package audio plays short tones for paddle hits, wall bounces and points.
package audio

import (
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/mo-shahab/go-pong/game"
	"github.com/mo-shahab/go-pong/paddle"
)

// SoundManager turns frame events into sounds. Every method is safe to call
// before Initialize or after Close; playback is then silently skipped.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer. Calling it twice is a
// no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(speakerBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Close stops playback and releases the speaker.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	sm.mixer.Clear()
	sm.initialized = false
}

func (sm *SoundManager) HandleFrame(f game.Frame) {
	ev := f.Events
	if ev.PaddleHit {
		sm.PlayHit(ev.CollidePoint)
	}
	if ev.WallBounce {
		sm.PlayWall()
	}
	if ev.Scored {
		sm.PlayScore(ev.Scorer)
	}
}

// PlayHit plays the paddle blip, pitched by where the ball struck.
func (sm *SoundManager) PlayHit(collidePoint float64) {
	sm.play(func() (beep.Streamer, error) {
		return tone(hitFrequency(collidePoint), hitDuration)
	})
}

func (sm *SoundManager) PlayWall() {
	sm.play(func() (beep.Streamer, error) {
		return tone(wallHz, wallDuration)
	})
}

// PlayScore chirps upward when the left side scores and downward otherwise.
func (sm *SoundManager) PlayScore(scorer paddle.Side) {
	sm.play(func() (beep.Streamer, error) {
		return chirp(scorer == paddle.Left)
	})
}

func (sm *SoundManager) play(build func() (beep.Streamer, error)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	s, err := build()
	if err != nil {
		log.Printf("audio: %v", err)
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
