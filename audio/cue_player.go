// Package audio plays short cues for lane events through the beep speaker
package audio

import (
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/chronodash/event"
	"github.com/lixenwraith/chronodash/parameter"
)

// CuePlayer turns pass, hit and collect events into tones
// Until Init succeeds every event is dropped, so a missing audio device never blocks the game
type CuePlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	initialized bool
	muted       bool
	log         *slog.Logger
}

// NewCuePlayer creates an uninitialized player; logger may be nil
func NewCuePlayer(logger *slog.Logger) *CuePlayer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CuePlayer{
		mixer:  &beep.Mixer{},
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		volume: parameter.AudioCueVolume,
		log:    logger,
	}
}

// Init opens the speaker and starts the mixer
func (p *CuePlayer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.log.Info("audio initialized", "rate", int(p.rate))
	return nil
}

// Close stops playback and releases the speaker
func (p *CuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// SetMuted drops cues without releasing the speaker
func (p *CuePlayer) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Muted reports whether cues are being dropped by SetMuted
func (p *CuePlayer) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// EventTypes implements event.Handler
func (p *CuePlayer) EventTypes() []event.EventType {
	return []event.EventType{event.EventHazardPassed, event.EventHazardHit, event.EventCollected}
}

// HandleEvent implements event.Handler
func (p *CuePlayer) HandleEvent(ev event.GameEvent) {
	p.mu.Lock()
	ready := p.initialized && !p.muted
	p.mu.Unlock()
	if !ready {
		return
	}

	s, err := p.cueFor(ev)
	if err != nil {
		p.log.Warn("cue dropped", "event", ev.Type.String(), "error", err)
		return
	}
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// cueFor builds the tone for ev, nil when ev has no cue
func (p *CuePlayer) cueFor(ev event.GameEvent) (beep.Streamer, error) {
	switch ev.Type {
	case event.EventHazardPassed:
		return newTone(p.rate, parameter.PassCueFrequency, parameter.PassCueDuration, p.volume)
	case event.EventHazardHit:
		return newTone(p.rate, parameter.HitCueFrequency, parameter.HitCueDuration, p.volume)
	case event.EventCollected:
		payload, ok := ev.Payload.(*event.CollectedPayload)
		if !ok {
			return nil, nil
		}
		// Each rarity step raises the pitch
		freq := parameter.CollectCueFrequency * math.Pow(parameter.CollectCueRareStep, float64(payload.Kind))
		return newTone(p.rate, freq, parameter.CollectCueDuration, p.volume)
	}
	return nil, nil
}
