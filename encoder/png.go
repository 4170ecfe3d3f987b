package encoder

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
)

// DefaultPattern names the files of a PNG sequence.
const DefaultPattern = "frame_%05d.png"

// PNGSequence writes every frame to its own PNG file in Dir, named by
// formatting the frame's PTS with Pattern.
type PNGSequence struct {
	Dir     string
	Pattern string

	closed bool
	enc    png.Encoder
}

// NewPNGSequence creates dir if needed.
func NewPNGSequence(dir, pattern string) (*PNGSequence, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	return &PNGSequence{
		Dir:     dir,
		Pattern: pattern,
		enc:     png.Encoder{CompressionLevel: png.BestSpeed},
	}, nil
}

// Path is the file frame pts is written to.
func (s *PNGSequence) Path(pts int64) string {
	return filepath.Join(s.Dir, fmt.Sprintf(s.Pattern, pts))
}

func (s *PNGSequence) Encode(f *Frame) error {
	if s.closed {
		return ErrClosed
	}
	if err := f.validate(f.Width, f.Height); err != nil {
		return err
	}
	path := s.Path(f.PTS)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame %d: %w", f.PTS, err)
	}
	if err := s.enc.Encode(file, f.Image()); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}

func (s *PNGSequence) Close() error {
	s.closed = true
	return nil
}
