// Package note parses note names into structured descriptors and builds the
// note-level operations on top of the coordinate model: transposition,
// distance, enharmonic simplification and height ordering.
package note

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/harrybellamy/tonal/pkg/interval"
	"github.com/harrybellamy/tonal/pkg/midi"
	"github.com/harrybellamy/tonal/pkg/pitch"
)

// Note is a parsed note descriptor. Two names denote the same note iff their
// canonical Name strings match; distinct spellings such as C# and Db stay
// distinct even when Chroma and Midi agree.
type Note struct {
	Empty      bool
	Name       string
	PitchClass string
	Letter     string
	Acc        string
	Step       int
	Alt        int
	Oct        int
	HasOct     bool
	Chroma     int
	Height     int
	Midi       int // valid only when HasMidi
	HasMidi    bool
	Freq       float64 // valid only when HasOct
	Coord      pitch.Coord
}

const letters = "CDEFGAB"

var noteRegex = regexp.MustCompile(`^([a-gA-G]?)(#+|b+|x+|)(-?\d*)\s*(.*)$`)

// Tokenize splits a note name into letter, accidentals, octave digits and
// trailing text. The letter is "" when nothing note-like was found; callers
// reject any non-empty trailing text.
func Tokenize(src string) (letter, acc, oct, rest string) {
	m := noteRegex.FindStringSubmatch(src)
	if m == nil {
		return "", "", "", ""
	}
	return strings.ToUpper(m[1]), strings.ReplaceAll(m[2], "x", "##"), m[3], m[4]
}

// Parse resolves a note name without consulting the cache.
func Parse(src string) Note {
	letter, acc, octStr, rest := Tokenize(src)
	if letter == "" || rest != "" {
		return Note{Empty: true}
	}
	step := int(letter[0]+3) % 7
	alt := len(acc)
	if strings.HasPrefix(acc, "b") {
		alt = -alt
	}
	oct, hasOct := 0, false
	if octStr != "" {
		o, err := strconv.Atoi(octStr)
		if err != nil {
			return Note{Empty: true}
		}
		oct, hasOct = o, true
	}
	semi := pitch.StepSemitones(step)
	chroma := pitch.Mod(semi+alt, 12)
	// octave-less notes get a height far below any real note so that ordering
	// by height keeps pitch classes first
	height := pitch.Mod(semi+alt, 12) - 12*99
	if hasOct {
		height = semi + alt + 12*(oct+1)
	}
	n := Note{
		Name:       letter + acc + octStr,
		PitchClass: letter + acc,
		Letter:     letter,
		Acc:        acc,
		Step:       step,
		Alt:        alt,
		Oct:        oct,
		HasOct:     hasOct,
		Chroma:     chroma,
		Height:     height,
		Coord:      pitch.Encode(pitch.Pitch{Step: step, Alt: alt, Oct: oct, HasOct: hasOct}),
	}
	if height >= 0 && height <= 127 {
		n.Midi, n.HasMidi = height, true
	}
	if hasOct {
		n.Freq = midi.MidiToFreq(float64(height))
	}
	return n
}

// Resolver memoizes parsed notes by their exact input string. The cache is
// append-only and never invalidated; concurrent first-writes of the same key
// are idempotent.
type Resolver struct {
	cache sync.Map
}

// NewResolver returns an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Get returns the cached descriptor for src, parsing it on first use.
func (r *Resolver) Get(src string) Note {
	if v, ok := r.cache.Load(src); ok {
		return v.(Note)
	}
	v, _ := r.cache.LoadOrStore(src, Parse(src))
	return v.(Note)
}

var defaultResolver = NewResolver()

// Get resolves a note name through the process-wide cache.
func Get(src string) Note {
	return defaultResolver.Get(src)
}

// Name returns the canonical name of src, or "" if invalid.
func Name(src string) string {
	return Get(src).Name
}

// FromPitch renders the canonical name of a step/alteration decomposition.
func FromPitch(p pitch.Pitch) Note {
	name := string(letters[p.Step]) + accidentals(p.Alt)
	if p.HasOct {
		name += strconv.Itoa(p.Oct)
	}
	return Get(name)
}

// FromCoord resolves a note or pitch-class coordinate to its descriptor.
func FromCoord(c pitch.Coord) Note {
	return FromPitch(pitch.Decode(c))
}

// FromMidi spells a MIDI number with flats.
func FromMidi(m float64) string {
	return midi.MidiToNoteName(m, midi.NameOptions{})
}

// FromMidiSharps spells a MIDI number with sharps.
func FromMidiSharps(m float64) string {
	return midi.MidiToNoteName(m, midi.NameOptions{Sharps: true})
}

// FromFreq spells the nearest note name for a frequency in Hz, with flats.
func FromFreq(freq float64) string {
	m, ok := midi.FreqToMidi(freq)
	if !ok {
		return ""
	}
	return FromMidi(m)
}

// Simplify respells a note with at most one accidental, keeping sharps when
// the original alteration was sharp-side. Octave-less input stays a pitch
// class. Invalid input yields "".
func Simplify(src string) string {
	n := Get(src)
	if n.Empty {
		return ""
	}
	value := float64(n.Chroma)
	if n.HasMidi {
		value = float64(n.Midi)
	}
	return midi.MidiToNoteName(value, midi.NameOptions{
		Sharps:     n.Alt > 0,
		PitchClass: !n.HasMidi,
	})
}

// Enharmonic respells a note with the opposite accidental, or into an
// explicit destination pitch class, correcting the octave when the respelling
// crosses C (B#3 <-> C4). It yields "" when the destination does not denote
// the same chroma.
func Enharmonic(src string, dest ...string) string {
	n := Get(src)
	if n.Empty {
		return ""
	}
	destName := ""
	if len(dest) > 0 {
		destName = dest[0]
	}
	if destName == "" {
		value := float64(n.Chroma)
		if n.HasMidi {
			value = float64(n.Midi)
		}
		destName = midi.MidiToNoteName(value, midi.NameOptions{Sharps: n.Alt < 0, PitchClass: true})
	}
	d := Get(destName)
	if d.Empty || d.Chroma != n.Chroma {
		return ""
	}
	if !n.HasOct {
		return d.PitchClass
	}
	srcChroma := n.Chroma - n.Alt
	destChroma := d.Chroma - d.Alt
	offset := 0
	if srcChroma > 11 || destChroma < 0 {
		offset = -1
	} else if srcChroma < 0 || destChroma > 11 {
		offset = 1
	}
	return d.PitchClass + strconv.Itoa(n.Oct+offset)
}

// Transpose moves a note by an interval. Pitch classes transpose along the
// line of fifths only, so "C" transposed by "5P" is "G" with no octave.
func Transpose(noteName, intervalName string) string {
	i := interval.Get(intervalName)
	if i.Empty {
		return ""
	}
	return transposeCoord(noteName, i.Coord.Fifths, i.Coord.Octaves)
}

// TransposeFifths moves a note n fifths along the line of fifths.
func TransposeFifths(noteName string, fifths int) string {
	return transposeCoord(noteName, fifths, 0)
}

// TransposeOctaves moves a note by whole octaves, preserving its spelling.
func TransposeOctaves(noteName string, octaves int) string {
	return transposeCoord(noteName, 0, octaves)
}

func transposeCoord(noteName string, fifths, octaves int) string {
	n := Get(noteName)
	if n.Empty {
		return ""
	}
	if n.Coord.Kind == pitch.KindPitchClass {
		return FromCoord(pitch.Coord{Kind: pitch.KindPitchClass, Fifths: n.Coord.Fifths + fifths}).Name
	}
	return FromCoord(pitch.Coord{
		Kind:    pitch.KindNote,
		Fifths:  n.Coord.Fifths + fifths,
		Octaves: n.Coord.Octaves + octaves,
	}).Name
}

// Distance returns the name of the interval from one note to another, or ""
// if either is invalid. When both notes are pitch classes the octave term is
// chosen so the result is the smallest ascending interval.
func Distance(from, to string) string {
	f, t := Get(from), Get(to)
	if f.Empty || t.Empty {
		return ""
	}
	fifths := t.Coord.Fifths - f.Coord.Fifths
	var octaves int
	if f.Coord.Kind == pitch.KindNote && t.Coord.Kind == pitch.KindNote {
		octaves = t.Coord.Octaves - f.Coord.Octaves
	} else {
		octaves = -pitch.FloorDiv(fifths*7, 12)
	}
	// a zero-semitone span between distinct spellings at the same written
	// octave still moves down when the letter does (e.g. Dbb4 -> C4)
	forceDescending := t.Height == f.Height &&
		t.HasMidi &&
		f.Oct == t.Oct && f.HasOct == t.HasOct &&
		f.Step > t.Step
	return interval.FromCoord(pitch.Coord{Kind: pitch.KindNote, Fifths: fifths, Octaves: octaves}, forceDescending).Name
}

// SortedNames returns the canonical names of the valid notes in ascending
// height order. Invalid names are dropped.
func SortedNames(names []string) []string {
	parsed := make([]Note, 0, len(names))
	for _, name := range names {
		if n := Get(name); !n.Empty {
			parsed = append(parsed, n)
		}
	}
	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].Height < parsed[j].Height
	})
	out := make([]string, len(parsed))
	for i, n := range parsed {
		out[i] = n.Name
	}
	return out
}

// SortedUniqNames is SortedNames with duplicate names removed.
func SortedUniqNames(names []string) []string {
	sorted := SortedNames(names)
	out := sorted[:0]
	for i, name := range sorted {
		if i == 0 || name != sorted[i-1] {
			out = append(out, name)
		}
	}
	return out
}

// ToMidi resolves a note name to its MIDI number.
func ToMidi(src string) (int, bool) {
	n := Get(src)
	if !n.HasMidi {
		return 0, false
	}
	return n.Midi, true
}

// ToFreq resolves a note name to its frequency in Hz.
func ToFreq(src string) (float64, bool) {
	n := Get(src)
	if n.Empty || !n.HasOct || math.IsNaN(n.Freq) {
		return 0, false
	}
	return n.Freq, true
}

func accidentals(alt int) string {
	if alt < 0 {
		return strings.Repeat("b", -alt)
	}
	return strings.Repeat("#", alt)
}
