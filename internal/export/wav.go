package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/san-kum/lcsim/internal/dynamo"
)

var ErrInaudible = errors.New("export: tone outside the audible range")

const (
	DefaultSampleRate = beep.SampleRate(44100)
	minAudible        = 20.0
	maxAudible        = 20000.0
)

// Tone configures the sonification of a signal.
type Tone struct {
	SampleRate beep.SampleRate
	Duration   time.Duration
	// Pitch is the frequency the circuit is played at, in Hz. Zero plays it
	// at its true resonance.
	Pitch     float64
	Amplitude float64
}

// SignalStreamer plays a circuit signal as audio. Simulated time runs
// timeScale times faster than audio time and values are divided by peak.
type SignalStreamer struct {
	sig       dynamo.Signal
	peak      float64
	timeScale float64
	amplitude float64
	rate      beep.SampleRate
	pos       int
	total     int
}

// NewSignalStreamer plays sig, whose natural frequency is freq Hz and whose
// magnitude never exceeds peak.
func NewSignalStreamer(sig dynamo.Signal, freq, peak float64, tone Tone) (*SignalStreamer, error) {
	if tone.SampleRate == 0 {
		tone.SampleRate = DefaultSampleRate
	}
	if tone.Amplitude == 0 {
		tone.Amplitude = 0.8
	}
	if !(freq > 0) || !(peak > 0) || tone.Duration <= 0 {
		return nil, fmt.Errorf("%w: tone needs positive frequency, peak and duration", dynamo.ErrInvalidParameter)
	}

	pitch := tone.Pitch
	if pitch == 0 {
		pitch = freq
	}
	if pitch < minAudible || pitch > maxAudible || pitch > float64(tone.SampleRate)/2 {
		return nil, fmt.Errorf("%w: %.4g Hz", ErrInaudible, pitch)
	}

	return &SignalStreamer{
		sig:       sig,
		peak:      peak,
		timeScale: pitch / freq,
		amplitude: math.Max(0, math.Min(1, tone.Amplitude)),
		rate:      tone.SampleRate,
		total:     tone.SampleRate.N(tone.Duration),
	}, nil
}

func (s *SignalStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		t := s.rate.D(s.pos).Seconds() * s.timeScale
		v := s.amplitude * s.sig.At(t) / s.peak
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *SignalStreamer) Err() error { return nil }

func (s *SignalStreamer) Len() int { return s.total }

// Format is the 16-bit stereo format written by WriteWAV.
func (s *SignalStreamer) Format() beep.Format {
	return beep.Format{SampleRate: s.rate, NumChannels: 2, Precision: 2}
}

// WriteWAV encodes the whole stream.
func WriteWAV(w io.WriteSeeker, s *SignalStreamer) error {
	if err := wav.Encode(w, s, s.Format()); err != nil {
		return fmt.Errorf("export: wav: %w", err)
	}
	return nil
}
