package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/re-ovo/fall-escape/prefabs"
)

const defaultSampleRate = 44100

// Music plays the looping background track. It starts muted; Unmute or
// Toggle starts playback.
type Music struct {
	player *audio.Player
	volume float64
	muted  bool
	log    *log.Logger
}

func NewMusic(spec prefabs.MusicSpec, logger *log.Logger) (*Music, error) {
	if spec.SampleRate <= 0 {
		spec.SampleRate = defaultSampleRate
	}
	if logger == nil {
		logger = log.Default()
	}
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(spec.SampleRate)
	}
	// ebiten allows one audio context; synthesize at its rate
	spec.SampleRate = ctx.SampleRate()

	pcm := synthesize(spec)
	if len(pcm) == 0 {
		return nil, fmt.Errorf("music: no notes")
	}
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	player, err := ctx.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("music: new player: %w", err)
	}
	volume := spec.Volume
	if volume <= 0 || volume > 1 {
		volume = 0.25
	}
	player.SetVolume(volume)
	return &Music{player: player, volume: volume, muted: true, log: logger}, nil
}

func (m *Music) Muted() bool {
	return m == nil || m.muted
}

func (m *Music) Unmute() {
	if m == nil || !m.muted {
		return
	}
	m.muted = false
	m.player.Play()
	m.log.Debug("music on")
}

func (m *Music) Mute() {
	if m == nil || m.muted {
		return
	}
	m.muted = true
	m.player.Pause()
	m.log.Debug("music off")
}

func (m *Music) Toggle() {
	if m.Muted() {
		m.Unmute()
		return
	}
	m.Mute()
}

func (m *Music) Close() error {
	if m == nil || m.player == nil {
		return nil
	}
	return m.player.Close()
}

// synthesize renders one pass of the melody and bass lines as 16-bit
// stereo little-endian PCM. Each entry lasts an eighth note; 0 rests.
func synthesize(spec prefabs.MusicSpec) []byte {
	rate := spec.SampleRate
	if rate <= 0 {
		rate = defaultSampleRate
	}
	bpm := spec.BPM
	if bpm <= 0 {
		bpm = 112
	}
	steps := max(len(spec.Notes), len(spec.Bass))
	if steps == 0 {
		return nil
	}

	stepSamples := int(float64(rate) * 60 / bpm / 2)
	buf := make([]byte, 0, steps*stepSamples*4)
	var frame [4]byte
	for step := 0; step < steps; step++ {
		lead := noteAt(spec.Notes, step)
		bass := noteAt(spec.Bass, step)
		for i := 0; i < stepSamples; i++ {
			t := float64(i) / float64(rate)
			env := envelope(i, stepSamples)
			v := 0.0
			if lead > 0 {
				// a touch of the octave makes the sine sound plucked
				v += 0.45 * env * (math.Sin(2*math.Pi*lead*t) + 0.3*math.Sin(4*math.Pi*lead*t))
			}
			if bass > 0 {
				v += 0.35 * math.Sin(2*math.Pi*bass*t)
			}
			s := int16(math.Max(-1, math.Min(1, v*0.6)) * math.MaxInt16)
			binary.LittleEndian.PutUint16(frame[0:], uint16(s))
			binary.LittleEndian.PutUint16(frame[2:], uint16(s))
			buf = append(buf, frame[:]...)
		}
	}
	return buf
}

func noteAt(notes []float64, i int) float64 {
	if len(notes) == 0 {
		return 0
	}
	return notes[i%len(notes)]
}

// envelope is a short linear attack followed by an exponential decay.
func envelope(i, n int) float64 {
	attack := n / 50
	if i < attack {
		return float64(i) / float64(attack)
	}
	return math.Exp(-4 * float64(i-attack) / float64(n))
}
