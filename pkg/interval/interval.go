// Package interval parses interval names and implements interval arithmetic
// on line-of-fifths coordinates.
//
// Two name grammars are accepted: tonal form "4P", "-2m" (number then
// quality) and shorthand form "P4", "m-2" (quality then number). Malformed
// names and invalid quality/number combinations such as "P3" resolve to an
// empty descriptor, never an error.
package interval

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/harrybellamy/tonal/pkg/pitch"
)

// Type distinguishes the two families of diatonic interval numbers:
// unisons, fourths, fifths and octaves are perfectable, the rest take
// major/minor qualities.
type Type string

const (
	Perfectable Type = "perfectable"
	Majorable   Type = "majorable"
)

// Interval is a parsed interval descriptor. All fields are derived from the
// number and quality; Empty is set when the input could not be resolved.
type Interval struct {
	Empty     bool
	Name      string
	Num       int
	Quality   string
	Type      Type
	Step      int
	Alt       int
	Dir       pitch.Dir
	Simple    int
	Semitones int
	Chroma    int
	Oct       int
	Coord     pitch.Coord
}

// type of each diatonic step C..B
const stepTypes = "PMMPPMM"

var nameRegex = regexp.MustCompile(`^([-+]?\d+)(d{1,4}|m|M|P|A{1,4})$|^(AA|A|P|M|m|d|dd)([-+]?\d+)$`)

// Tokenize splits an interval name into its number and quality tokens,
// accepting both grammars. ok is false when neither matches.
func Tokenize(src string) (num, quality string, ok bool) {
	m := nameRegex.FindStringSubmatch(src)
	if m == nil {
		return "", "", false
	}
	if m[1] != "" {
		return m[1], m[2], true
	}
	return m[4], m[3], true
}

// Get parses an interval name into its descriptor.
func Get(src string) Interval {
	num, quality, ok := Tokenize(src)
	if !ok {
		return Interval{Empty: true}
	}
	n, err := strconv.Atoi(num)
	if err != nil || n == 0 {
		return Interval{Empty: true}
	}
	step := (abs(n) - 1) % 7
	t := Perfectable
	if stepTypes[step] == 'M' {
		t = Majorable
	}
	alt, ok := qualityAlt(t, quality)
	if !ok {
		return Interval{Empty: true}
	}
	dir := pitch.Ascending
	if n < 0 {
		dir = pitch.Descending
	}
	simple := n
	if abs(n) != 8 {
		simple = int(dir) * (step + 1)
	}
	oct := (abs(n) - 1) / 7
	semitones := int(dir) * (pitch.StepSemitones(step) + alt + 12*oct)
	chroma := pitch.Mod(int(dir)*(pitch.StepSemitones(step)+alt), 12)
	coord := pitch.Encode(pitch.Pitch{Step: step, Alt: alt, Oct: oct, HasOct: true, Dir: dir})
	return Interval{
		Name:      num + quality,
		Num:       n,
		Quality:   quality,
		Type:      t,
		Step:      step,
		Alt:       alt,
		Dir:       dir,
		Simple:    simple,
		Semitones: semitones,
		Chroma:    chroma,
		Oct:       oct,
		Coord:     coord,
	}
}

// Name returns the canonical "numberQuality" name, or "" if src is invalid.
func Name(src string) string {
	return Get(src).Name
}

// Semitones returns the signed size of the interval in semitones.
func Semitones(src string) (int, bool) {
	i := Get(src)
	if i.Empty {
		return 0, false
	}
	return i.Semitones, true
}

// FromPitch builds an interval from a step/alteration decomposition.
func FromPitch(p pitch.Pitch) Interval {
	return Get(pitchName(p))
}

// FromCoord builds an interval from a fifths/octaves displacement. Direction
// is derived from the net semitone size of the coordinate; forceDescending
// overrides it for enharmonic-unison edge cases where the size is zero but
// the spelling still moves down.
func FromCoord(c pitch.Coord, forceDescending bool) Interval {
	f, o := c.Fifths, c.Octaves
	dir := pitch.Ascending
	if forceDescending || f*7+o*12 < 0 {
		dir = pitch.Descending
		f, o = -f, -o
	}
	p := pitch.Decode(pitch.Coord{Kind: pitch.KindNote, Fifths: f, Octaves: o})
	p.Dir = dir
	return FromPitch(p)
}

// Add returns the name of the sum of two intervals, or "" if either operand
// is invalid.
func Add(a, b string) string {
	return combine(a, b, 1)
}

// Subtract returns the name of the difference of two intervals, or "" if
// either operand is invalid.
func Subtract(a, b string) string {
	return combine(a, b, -1)
}

func combine(a, b string, sign int) string {
	ia, ib := Get(a), Get(b)
	if ia.Empty || ib.Empty {
		return ""
	}
	return FromCoord(pitch.Coord{
		Kind:    pitch.KindNote,
		Fifths:  ia.Coord.Fifths + sign*ib.Coord.Fifths,
		Octaves: ia.Coord.Octaves + sign*ib.Coord.Octaves,
	}, false).Name
}

// Invert returns the inversion of an interval ("3m" -> "6M").
func Invert(src string) string {
	i := Get(src)
	if i.Empty {
		return ""
	}
	step := (7 - i.Step) % 7
	alt := -i.Alt
	if i.Type == Majorable {
		alt = -(i.Alt + 1)
	}
	return FromPitch(pitch.Pitch{Step: step, Alt: alt, Oct: i.Oct, HasOct: true, Dir: i.Dir}).Name
}

// Simplify reduces a compound interval to its simple form ("9M" -> "2M").
// Octaves stay octaves.
func Simplify(src string) string {
	i := Get(src)
	if i.Empty {
		return ""
	}
	return strconv.Itoa(i.Simple) + i.Quality
}

// canonical spelling per semitone class: 6 semitones is always "5d"
var (
	semitoneNumbers   = [12]int{1, 2, 2, 3, 3, 4, 5, 5, 6, 6, 7, 7}
	semitoneQualities = [12]string{"P", "m", "M", "m", "M", "P", "d", "P", "m", "M", "m", "M"}
)

// FromSemitones names the interval of a given signed semitone size, using a
// fixed canonical spelling for each pitch class.
func FromSemitones(semitones int) string {
	dir := 1
	if semitones < 0 {
		dir = -1
	}
	c := abs(semitones) % 12
	oct := abs(semitones) / 12
	return strconv.Itoa(dir*(semitoneNumbers[c]+7*oct)) + semitoneQualities[c]
}

// TransposeFifths shifts an interval along the line of fifths, holding the
// octave term fixed. Direction is re-derived, so a shift through zero flips
// the sign of the result.
func TransposeFifths(src string, fifths int) string {
	i := Get(src)
	if i.Empty {
		return ""
	}
	return FromCoord(pitch.Coord{
		Kind:    pitch.KindNote,
		Fifths:  i.Coord.Fifths + fifths,
		Octaves: i.Coord.Octaves,
	}, false).Name
}

// qualityAlt maps a quality token to its alteration for the given type.
// Diminished digs one semitone further on majorable intervals because there
// is no perfect reference to diminish from.
func qualityAlt(t Type, quality string) (int, bool) {
	switch {
	case quality == "M" && t == Majorable:
		return 0, true
	case quality == "P" && t == Perfectable:
		return 0, true
	case quality == "m" && t == Majorable:
		return -1, true
	case isRun(quality, 'A'):
		return len(quality), true
	case isRun(quality, 'd'):
		if t == Perfectable {
			return -len(quality), true
		}
		return -(len(quality) + 1), true
	}
	return 0, false
}

// altQuality is the inverse of qualityAlt.
func altQuality(t Type, alt int) string {
	switch {
	case alt == 0:
		if t == Majorable {
			return "M"
		}
		return "P"
	case alt == -1 && t == Majorable:
		return "m"
	case alt > 0:
		return strings.Repeat("A", alt)
	case t == Perfectable:
		return strings.Repeat("d", -alt)
	}
	return strings.Repeat("d", -(alt + 1))
}

// pitchName renders the canonical name of an interval pitch. A descending
// unison-class pitch can produce number 0, which is remapped to the simple
// degree since no interval is numbered 0.
func pitchName(p pitch.Pitch) string {
	if p.Dir == 0 {
		return ""
	}
	num := p.Step + 1 + 7*p.Oct
	if num == 0 {
		num = p.Step + 1
	}
	t := Perfectable
	if stepTypes[p.Step] == 'M' {
		t = Majorable
	}
	sign := ""
	if p.Dir == pitch.Descending {
		sign = "-"
	}
	return sign + strconv.Itoa(num) + altQuality(t, p.Alt)
}

func isRun(s string, ch byte) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != ch {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
