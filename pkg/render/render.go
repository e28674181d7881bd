// Package render writes theory objects as Standard MIDI Files and snaps
// existing files onto a pitch-class set.
package render

import (
	"bytes"
	"errors"
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/harrybellamy/tonal/pkg/note"
	"github.com/harrybellamy/tonal/pkg/pcset"
)

const ticksPerQuarter = 480

// Notes renders a sequence of note names as a single-track SMF, one quarter
// note per name.
func Notes(names []string, bpm float64) ([]byte, error) {
	if len(names) == 0 {
		return nil, errors.New("no notes to render")
	}
	keys := make([]uint8, 0, len(names))
	for _, name := range names {
		n := note.Get(name)
		if n.Empty {
			return nil, fmt.Errorf("invalid note name %q", name)
		}
		if !n.HasMidi {
			return nil, fmt.Errorf("note %q has no MIDI number", name)
		}
		keys = append(keys, uint8(n.Midi))
	}
	return sequence(keys, bpm)
}

// Scale renders one ascending octave of a pitch-class set from a tonic MIDI
// number, tonic to tonic.
func Scale(set pcset.Set, tonic int, bpm float64) ([]byte, error) {
	if set.IsEmpty() {
		return nil, errors.New("empty pitch-class set")
	}
	keys := make([]uint8, 0, set.Len()+1)
	for step := 0; step <= set.Len(); step++ {
		m, _ := set.Step(tonic, step)
		if m < 0 || m > 127 {
			return nil, fmt.Errorf("scale step %d is outside the MIDI range", step)
		}
		keys = append(keys, uint8(m))
	}
	return sequence(keys, bpm)
}

// Quantize rewrites every note event of an SMF so its key lands in the set,
// using the nearest-pitch rule (upward tie-break). Timing is preserved.
func Quantize(data []byte, set pcset.Set) ([]byte, error) {
	if set.IsEmpty() {
		return nil, errors.New("empty pitch-class set")
	}
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	out := smf.New()
	out.TimeFormat = s.TimeFormat
	for _, track := range s.Tracks {
		var quantized smf.Track
		closed := false
		for _, ev := range track {
			msg := ev.Message

			// end of track is re-added by Close
			if len(msg) >= 2 && msg[0] == 0xFF && msg[1] == 0x2F {
				quantized.Close(ev.Delta)
				closed = true
				continue
			}

			// Note On (0x90-0x9F) and Note Off (0x80-0x8F) carry the key in
			// the second byte
			if len(msg) >= 3 && msg[0] >= 0x80 && msg[0] <= 0x9F {
				if snapped, ok := set.Nearest(int(msg[1])); ok && snapped >= 0 && snapped <= 127 {
					remapped := make([]byte, len(msg))
					copy(remapped, msg)
					remapped[1] = byte(snapped)
					quantized.Add(ev.Delta, smf.Message(remapped))
					continue
				}
			}
			quantized.Add(ev.Delta, msg)
		}
		if !closed {
			quantized.Close(0)
		}
		if err := out.Add(quantized); err != nil {
			return nil, fmt.Errorf("failed to add track: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := out.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

func sequence(keys []uint8, bpm float64) ([]byte, error) {
	if bpm <= 0 {
		bpm = 120.0
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var track smf.Track

	// tempo meta event
	microsecondsPerBeat := uint32(60000000.0 / bpm)
	track.Add(0, smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsecondsPerBeat >> 16),
		byte(microsecondsPerBeat >> 8),
		byte(microsecondsPerBeat),
	}))

	channel := uint8(0)
	for _, key := range keys {
		track.Add(0, midi.NoteOn(channel, key, 100))
		track.Add(ticksPerQuarter, midi.NoteOff(channel, key))
	}
	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}
