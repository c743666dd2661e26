package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond

	// AudioCueVolume is the peak amplitude of a cue, [0,1]
	AudioCueVolume = 0.25
)

// Pass Cue
const (
	PassCueFrequency = 660.0
	PassCueDuration  = 60 * time.Millisecond
)

// Hit Cue
const (
	HitCueFrequency = 110.0
	HitCueDuration  = 180 * time.Millisecond
)

// Collect Cue, frequency scales with rarity
const (
	CollectCueFrequency = 880.0
	CollectCueDuration  = 90 * time.Millisecond
	CollectCueRareStep  = 1.5
)

// Cue Envelope
const (
	CueAttack  = 5 * time.Millisecond
	CueRelease = 30 * time.Millisecond
)
