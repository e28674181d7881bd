// Package main is the entry point for the tonal CLI
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrybellamy/tonal/pkg/api"
	"github.com/harrybellamy/tonal/pkg/interval"
	"github.com/harrybellamy/tonal/pkg/midi"
	"github.com/harrybellamy/tonal/pkg/note"
	"github.com/harrybellamy/tonal/pkg/pcset"
	"github.com/harrybellamy/tonal/pkg/render"
	"github.com/harrybellamy/tonal/pkg/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	outputFile string
	serverPort int
	bpm        float64
	sharps     bool
	pitchClass bool
	setBits    string
	tonicName  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tonal",
	Short: "Music theory from the command line",
	Long: `tonal parses note and interval names, transposes, measures distances
and answers pitch-class-set queries, all on a line-of-fifths encoding.

Examples:
  tonal note C#4
  tonal interval P4
  tonal transpose C4 5P
  tonal distance C4 G4
  tonal midi 61 --sharps
  tonal render C4 E4 G4 -o arpeggio.mid
  tonal quantize melody.mid --set 100101010010 -o snapped.mid
  tonal tui
  tonal serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var noteCmd = &cobra.Command{
	Use:   "note <name>",
	Short: "Parse a note name",
	Args:  cobra.ExactArgs(1),
	RunE:  runNote,
}

var intervalCmd = &cobra.Command{
	Use:   "interval <name>",
	Short: "Parse an interval name",
	Args:  cobra.ExactArgs(1),
	RunE:  runInterval,
}

var transposeCmd = &cobra.Command{
	Use:   "transpose <note> <interval>",
	Short: "Transpose a note by an interval",
	Args:  cobra.ExactArgs(2),
	RunE:  runTranspose,
}

var distanceCmd = &cobra.Command{
	Use:   "distance <from> <to>",
	Short: "Interval between two notes",
	Args:  cobra.ExactArgs(2),
	RunE:  runDistance,
}

var addCmd = &cobra.Command{
	Use:   "add <interval> <interval>",
	Short: "Add two intervals",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdd,
}

var subCmd = &cobra.Command{
	Use:   "sub <interval> <interval>",
	Short: "Subtract two intervals",
	Args:  cobra.ExactArgs(2),
	RunE:  runSub,
}

var invertCmd = &cobra.Command{
	Use:   "invert <interval>",
	Short: "Invert an interval",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvert,
}

var simplifyCmd = &cobra.Command{
	Use:   "simplify <name>",
	Short: "Simplify a note spelling or compound interval",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimplify,
}

var semitonesCmd = &cobra.Command{
	Use:   "semitones <n>",
	Short: "Name the interval of a signed semitone count",
	Args:  cobra.ExactArgs(1),
	RunE:  runSemitones,
}

var midiCmd = &cobra.Command{
	Use:   "midi <number>",
	Short: "Spell a MIDI number as a note name",
	Args:  cobra.ExactArgs(1),
	RunE:  runMidi,
}

var renderCmd = &cobra.Command{
	Use:   "render <note>...",
	Short: "Write note names as a Standard MIDI File",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRender,
}

var scaleCmd = &cobra.Command{
	Use:   "scale <bits>",
	Short: "Write one octave of a pitch-class set as a Standard MIDI File",
	Long:  `The set is a 12-character '1'/'0' membership string, index 0 = C.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runScale,
}

var quantizeCmd = &cobra.Command{
	Use:   "quantize <input.mid>",
	Short: "Snap every note of a MIDI file onto a pitch-class set",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuantize,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal explorer",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	midiCmd.Flags().BoolVar(&sharps, "sharps", false, "Prefer sharp spelling")
	midiCmd.Flags().BoolVar(&pitchClass, "pitch-class", false, "Drop the octave")

	renderCmd.Flags().StringVarP(&outputFile, "output", "o", "out.mid", "Output .mid file path")
	renderCmd.Flags().Float64Var(&bpm, "bpm", 120, "Tempo in beats per minute")

	scaleCmd.Flags().StringVarP(&outputFile, "output", "o", "scale.mid", "Output .mid file path")
	scaleCmd.Flags().Float64Var(&bpm, "bpm", 120, "Tempo in beats per minute")
	scaleCmd.Flags().StringVar(&tonicName, "tonic", "C4", "Tonic note name")

	quantizeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output .mid file path (required)")
	quantizeCmd.Flags().StringVar(&setBits, "set", "", "Pitch-class membership bits (required)")
	_ = quantizeCmd.MarkFlagRequired("output")
	_ = quantizeCmd.MarkFlagRequired("set")

	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(intervalCmd)
	rootCmd.AddCommand(transposeCmd)
	rootCmd.AddCommand(distanceCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(subCmd)
	rootCmd.AddCommand(invertCmd)
	rootCmd.AddCommand(simplifyCmd)
	rootCmd.AddCommand(semitonesCmd)
	rootCmd.AddCommand(midiCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(scaleCmd)
	rootCmd.AddCommand(quantizeCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func runNote(cmd *cobra.Command, args []string) error {
	n := note.Get(args[0])
	if n.Empty {
		return fmt.Errorf("invalid note name %q", args[0])
	}
	fmt.Printf("name:        %s\n", n.Name)
	fmt.Printf("pitch class: %s\n", n.PitchClass)
	fmt.Printf("alteration:  %d\n", n.Alt)
	fmt.Printf("chroma:      %d\n", n.Chroma)
	fmt.Printf("height:      %d\n", n.Height)
	if n.HasMidi {
		fmt.Printf("midi:        %d\n", n.Midi)
	}
	if n.HasOct {
		fmt.Printf("frequency:   %.2f Hz\n", n.Freq)
	}
	return nil
}

func runInterval(cmd *cobra.Command, args []string) error {
	i := interval.Get(args[0])
	if i.Empty {
		return fmt.Errorf("invalid interval name %q", args[0])
	}
	fmt.Printf("name:      %s\n", i.Name)
	fmt.Printf("type:      %s\n", i.Type)
	fmt.Printf("simple:    %d%s\n", i.Simple, i.Quality)
	fmt.Printf("semitones: %d\n", i.Semitones)
	fmt.Printf("chroma:    %d\n", i.Chroma)
	return nil
}

func runTranspose(cmd *cobra.Command, args []string) error {
	result := note.Transpose(args[0], args[1])
	if result == "" {
		return fmt.Errorf("cannot transpose %q by %q", args[0], args[1])
	}
	fmt.Println(result)
	return nil
}

func runDistance(cmd *cobra.Command, args []string) error {
	result := note.Distance(args[0], args[1])
	if result == "" {
		return fmt.Errorf("cannot measure %q to %q", args[0], args[1])
	}
	fmt.Println(result)
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	result := interval.Add(args[0], args[1])
	if result == "" {
		return fmt.Errorf("cannot add %q and %q", args[0], args[1])
	}
	fmt.Println(result)
	return nil
}

func runSub(cmd *cobra.Command, args []string) error {
	result := interval.Subtract(args[0], args[1])
	if result == "" {
		return fmt.Errorf("cannot subtract %q from %q", args[1], args[0])
	}
	fmt.Println(result)
	return nil
}

func runInvert(cmd *cobra.Command, args []string) error {
	result := interval.Invert(args[0])
	if result == "" {
		return fmt.Errorf("invalid interval name %q", args[0])
	}
	fmt.Println(result)
	return nil
}

func runSimplify(cmd *cobra.Command, args []string) error {
	// note spelling first, interval reduction second
	if result := note.Simplify(args[0]); result != "" {
		fmt.Println(result)
		return nil
	}
	if result := interval.Simplify(args[0]); result != "" {
		fmt.Println(result)
		return nil
	}
	return fmt.Errorf("invalid note or interval name %q", args[0])
}

func runSemitones(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid semitone count %q", args[0])
	}
	fmt.Println(interval.FromSemitones(n))
	return nil
}

func runMidi(cmd *cobra.Command, args []string) error {
	num, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid MIDI number %q", args[0])
	}
	name := midi.MidiToNoteName(num, midi.NameOptions{Sharps: sharps, PitchClass: pitchClass})
	if name == "" {
		return fmt.Errorf("invalid MIDI number %q", args[0])
	}
	fmt.Println(name)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	data, err := render.Notes(args, bpm)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s -> %s\n", strings.Join(args, " "), outputFile)
	return nil
}

func runScale(cmd *cobra.Command, args []string) error {
	tonic, ok := note.ToMidi(tonicName)
	if !ok {
		return fmt.Errorf("invalid tonic %q", tonicName)
	}
	data, err := render.Scale(pcset.FromBits(args[0]), tonic, bpm)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return err
	}
	fmt.Printf("Wrote scale %s from %s -> %s\n", args[0], tonicName, outputFile)
	return nil
}

func runQuantize(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	result, err := render.Quantize(data, pcset.FromBits(setBits))
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputFile, result, 0644); err != nil {
		return err
	}
	fmt.Printf("Quantized %s -> %s\n", args[0], outputFile)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
