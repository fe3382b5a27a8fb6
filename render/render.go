// Package render prints ranked routes as short, human-readable motion
// listings. Runs of the same motion are folded into one line with a repeat
// count and the angle reached at the end of the run.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/katalvlaran/anglefinder/angle"
	"github.com/katalvlaran/anglefinder/motion"
	"github.com/katalvlaran/anglefinder/rank"
)

const separator = "-----"

// Colours for the ANSI and true-colour profiles.
const (
	costColor  = "#f472b6"
	angleColor = "#818cf8"
)

// Options configures the output.
type Options struct {
	// Descriptions names starting angles, e.g. "0x4000: east wall".
	Descriptions map[angle.Angle]string
	// Profile selects the colour capability; termenv.Ascii disables colour.
	Profile termenv.Profile
}

// Option is a functional option for Write and WriteAll.
type Option func(*Options)

// WithDescriptions attaches a description to starting angles.
func WithDescriptions(d map[angle.Angle]string) Option {
	return func(o *Options) { o.Descriptions = d }
}

// WithColor enables colour for the given terminal profile.
func WithColor(p termenv.Profile) Option {
	return func(o *Options) { o.Profile = p }
}

// Step is a run of one repeated motion.
type Step struct {
	Motion motion.Label
	Count  int
	To     angle.Angle
}

// Fold replays path from start and merges consecutive identical motions.
func Fold(start angle.Angle, path []motion.Label, catalog *motion.Catalog) ([]Step, error) {
	angles, err := catalog.Replay(start, path)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	var out []Step
	for i, l := range path {
		if n := len(out); n > 0 && out[n-1].Motion == l {
			out[n-1].Count++
			out[n-1].To = angles[i]
			continue
		}
		out = append(out, Step{Motion: l, Count: 1, To: angles[i]})
	}

	return out, nil
}

// Write prints one result block:
//
//	cost: 1.5
//	-----
//	start at 0x0000: description
//	2 left to 0x0014
//	-----
func Write(w io.Writer, r rank.Result, catalog *motion.Catalog, opts ...Option) error {
	o := options(opts)
	bw := bufio.NewWriter(w)
	if err := write(bw, r, catalog, o); err != nil {
		return err
	}

	return bw.Flush()
}

// WriteAll prints every result followed by a blank line, or the not-found
// message when rs is empty.
func WriteAll(w io.Writer, rs []rank.Result, catalog *motion.Catalog, opts ...Option) error {
	if len(rs) == 0 {
		return NoPath(w)
	}
	o := options(opts)
	bw := bufio.NewWriter(w)
	for _, r := range rs {
		if err := write(bw, r, catalog, o); err != nil {
			return err
		}
		bw.WriteString("\n")
	}

	return bw.Flush()
}

// NoPath prints the message shown when no target could be reached.
func NoPath(w io.Writer) error {
	_, err := io.WriteString(w, "No way to get to the desired angle!\nAdd some more motions.\n")
	return err
}

func options(opts []Option) Options {
	o := Options{Profile: termenv.Ascii}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func write(w *bufio.Writer, r rank.Result, catalog *motion.Catalog, o Options) error {
	steps, err := Fold(r.Route.Start, r.Route.Path, catalog)
	if err != nil {
		return err
	}

	p := o.Profile
	paint := func(s, hex string) string {
		return p.String(s).Foreground(p.Color(hex)).String()
	}

	fmt.Fprintf(w, "cost: %s\n%s\n", paint(r.Cost.String(), costColor), separator)
	fmt.Fprintf(w, "start at %s: %s\n", paint(r.Route.Start.String(), angleColor), o.Descriptions[r.Route.Start])

	labels := make([]string, len(steps))
	width := 0
	for i, s := range steps {
		labels[i] = fmt.Sprintf("%d %s", s.Count, s.Motion)
		width = max(width, len(labels[i]))
	}
	for i, s := range steps {
		pad := strings.Repeat(" ", width-len(labels[i]))
		fmt.Fprintf(w, "%s%s to %s\n", labels[i], pad, paint(s.To.String(), angleColor))
	}
	_, err = fmt.Fprintln(w, separator)

	return err
}
