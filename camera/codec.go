package camera

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/anglefinder/angle"
)

// Sentinel errors for table persistence.
var (
	// ErrCacheMiss indicates that a Store holds no table yet.
	ErrCacheMiss = errors.New("camera: snap table not cached")

	// ErrCorrupt indicates a stored table that cannot be decoded.
	ErrCorrupt = errors.New("camera: corrupt snap table")
)

// noSnap is how a missing snap is written; index = angle, one value per line.
const noSnap = "False"

// Encode writes t as text, one line per angle: the decimal snap target, or
// "False" when there is none.
func Encode(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	for i := range t {
		var err error
		if t[i].OK {
			_, err = bw.WriteString(strconv.Itoa(int(t[i].To)))
		} else {
			_, err = bw.WriteString(noSnap)
		}
		if err == nil {
			err = bw.WriteByte('\n')
		}
		if err != nil {
			return fmt.Errorf("camera: encode: %w", err)
		}
	}

	return bw.Flush()
}

// Decode reads a table written by Encode. It requires exactly one value per
// angle; "None" is accepted as a miss as well.
func Decode(r io.Reader) (*Table, error) {
	t := new(Table)
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if n >= angle.Count {
			return nil, fmt.Errorf("%w: more than %d entries", ErrCorrupt, angle.Count)
		}
		switch line {
		case noSnap, "None":
			t[n] = Snap{}
		default:
			v, err := strconv.ParseUint(line, 10, 16)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %q", ErrCorrupt, n+1, line)
			}
			t[n] = Snap{To: angle.Angle(v), OK: true}
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("camera: decode: %w", err)
	}
	if n != angle.Count {
		return nil, fmt.Errorf("%w: %d entries, want %d", ErrCorrupt, n, angle.Count)
	}

	return t, nil
}

// ReadFavored parses the favored camera list: one hex angle per line.
// Blank lines and lines starting with '#' are skipped.
func ReadFavored(r io.Reader) ([]angle.Angle, error) {
	var out []angle.Angle
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		a, err := angle.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("camera: favored line %d: %w", line, err)
		}
		out = append(out, a)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("camera: read favored: %w", err)
	}

	return out, nil
}
