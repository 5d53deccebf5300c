package engine

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// pngSequence writes frame_00000.png, frame_00001.png, ... into a directory.
type pngSequence struct {
	dir string
	n   int
	enc png.Encoder
}

func newPNGSequence(dir string) (*pngSequence, error) {
	if dir == "" {
		return nil, fmt.Errorf("no output directory for frames")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create frame directory: %w", err)
	}
	return &pngSequence{dir: dir, enc: png.Encoder{CompressionLevel: png.BestSpeed}}, nil
}

// FramePath is the file name of frame i in dir.
func FramePath(dir string, i int) string {
	return filepath.Join(dir, fmt.Sprintf("frame_%05d.png", i))
}

func (s *pngSequence) WriteFrame(img image.Image) error {
	f, err := os.Create(FramePath(s.dir, s.n))
	if err != nil {
		return err
	}
	if err := s.enc.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode frame %d: %w", s.n, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.n++
	return nil
}

func (s *pngSequence) Close() error { return nil }
