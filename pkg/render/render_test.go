package render

import (
	"bytes"
	"reflect"
	"testing"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/harrybellamy/tonal/pkg/pcset"
)

// noteOnKeys re-parses rendered SMF bytes and collects the keys of every
// Note On event with a non-zero velocity.
func noteOnKeys(t *testing.T, data []byte) []int {
	t.Helper()
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("rendered data does not parse: %v", err)
	}
	var keys []int
	for _, track := range s.Tracks {
		for _, ev := range track {
			msg := ev.Message
			if len(msg) >= 3 && msg[0]&0xF0 == 0x90 && msg[2] > 0 {
				keys = append(keys, int(msg[1]))
			}
		}
	}
	return keys
}

func TestNotes(t *testing.T) {
	data, err := Notes([]string{"C4", "E4", "G4"}, 120)
	if err != nil {
		t.Fatalf("Notes failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("MThd")) {
		t.Error("output does not start with an SMF header")
	}
	if got, want := noteOnKeys(t, data), []int{60, 64, 67}; !reflect.DeepEqual(got, want) {
		t.Errorf("note keys = %v, want %v", got, want)
	}
}

func TestNotesInvalid(t *testing.T) {
	if _, err := Notes(nil, 120); err == nil {
		t.Error("expected error for empty note list")
	}
	if _, err := Notes([]string{"C4", "blah"}, 120); err == nil {
		t.Error("expected error for invalid note name")
	}
	// pitch classes have no MIDI number to render
	if _, err := Notes([]string{"C"}, 120); err == nil {
		t.Error("expected error for octave-less note")
	}
}

func TestScale(t *testing.T) {
	major := pcset.FromBits("101011010101")

	data, err := Scale(major, 60, 120)
	if err != nil {
		t.Fatalf("Scale failed: %v", err)
	}
	want := []int{60, 62, 64, 65, 67, 69, 71, 72}
	if got := noteOnKeys(t, data); !reflect.DeepEqual(got, want) {
		t.Errorf("scale keys = %v, want %v", got, want)
	}

	if _, err := Scale(pcset.FromBits(""), 60, 120); err == nil {
		t.Error("expected error for empty set")
	}
	if _, err := Scale(major, 125, 120); err == nil {
		t.Error("expected error for a scale running past the MIDI range")
	}
}

func TestQuantize(t *testing.T) {
	src, err := Notes([]string{"C4", "C#4", "F#4"}, 120)
	if err != nil {
		t.Fatalf("Notes failed: %v", err)
	}

	out, err := Quantize(src, pcset.FromBits("100001010000"))
	if err != nil {
		t.Fatalf("Quantize failed: %v", err)
	}
	// 60 stays, 61 snaps down to 60, 66 snaps up to 67
	want := []int{60, 60, 67}
	if got := noteOnKeys(t, out); !reflect.DeepEqual(got, want) {
		t.Errorf("quantized keys = %v, want %v", got, want)
	}
}

func TestQuantizeErrors(t *testing.T) {
	src, err := Notes([]string{"C4"}, 120)
	if err != nil {
		t.Fatalf("Notes failed: %v", err)
	}
	if _, err := Quantize(src, pcset.FromBits("")); err == nil {
		t.Error("expected error for empty set")
	}
	if _, err := Quantize([]byte("not a midi file"), pcset.FromBits("100000000000")); err == nil {
		t.Error("expected error for unparseable input")
	}
}
