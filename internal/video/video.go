// Package video streams rendered frames into ffmpeg.
package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"strconv"
)

// Params describe the video being produced.
type Params struct {
	Path    string
	Width   int
	Height  int
	FPS     int
	Encoder string
	Quality int
}

// FrameWriter consumes frames in display order.
type FrameWriter interface {
	WriteFrame(img image.Image) error
	Close() error
}

// Encoder starts a video stream.
type Encoder interface {
	Start(ctx context.Context, p Params) (FrameWriter, error)
}

// FFmpegEncoder pipes raw RGBA frames into an ffmpeg process.
type FFmpegEncoder struct {
	// Binary defaults to "ffmpeg".
	Binary string
}

// Stream is a running ffmpeg encode.
type Stream struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	out    bytes.Buffer
	width  int
	height int
	buf    *image.RGBA
	frames int
}

func (e *FFmpegEncoder) Start(ctx context.Context, p Params) (FrameWriter, error) {
	if p.Width <= 0 || p.Height <= 0 || p.FPS <= 0 {
		return nil, fmt.Errorf("invalid video size %dx%d@%d", p.Width, p.Height, p.FPS)
	}
	bin := e.Binary
	if bin == "" {
		bin = "ffmpeg"
	}

	s := &Stream{width: p.Width, height: p.Height}
	s.cmd = exec.CommandContext(ctx, bin, BuildArgs(p)...)
	s.cmd.Stdout = &s.out
	s.cmd.Stderr = &s.out

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	s.stdin = stdin

	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start: %w", err)
	}
	return s, nil
}

// BuildArgs returns the ffmpeg command line for p.
func BuildArgs(p Params) []string {
	encoder := p.Encoder
	if encoder == "" {
		encoder = "libx264"
	}
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"-framerate", strconv.Itoa(p.FPS),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", encoder,
	}
	args = append(args, QualityArgs(encoder, p.Quality)...)
	return append(args, p.Path)
}

// QualityArgs maps one quality number onto the encoder's own knob.
func QualityArgs(encoder string, quality int) []string {
	switch encoder {
	case "h264_videotoolbox":
		// kbit/s, so 75 is 7.5 Mbit/s.
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", strconv.Itoa(quality)}
	default:
		return []string{"-crf", strconv.Itoa(quality), "-preset", "medium"}
	}
}

// WriteFrame sends one frame. Frames must match the stream size.
func (s *Stream) WriteFrame(img image.Image) error {
	b := img.Bounds()
	if b.Dx() != s.width || b.Dy() != s.height {
		return fmt.Errorf("frame %d is %dx%d, stream is %dx%d", s.frames, b.Dx(), b.Dy(), s.width, s.height)
	}
	if err := s.writeRawRGBA(img); err != nil {
		return fmt.Errorf("write frame %d: %w", s.frames, err)
	}
	s.frames++
	return nil
}

func (s *Stream) writeRawRGBA(img image.Image) error {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 || rgba.Rect.Min != (image.Point{}) {
		if s.buf == nil {
			s.buf = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		}
		draw.Draw(s.buf, s.buf.Rect, img, b.Min, draw.Src)
		rgba = s.buf
	}
	_, err := s.stdin.Write(rgba.Pix)
	return err
}

// Frames reports how many frames were written.
func (s *Stream) Frames() int { return s.frames }

// Close ends the input and waits for ffmpeg to finish the file.
func (s *Stream) Close() error {
	cerr := s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg: %w\n%s", err, s.out.String())
	}
	if cerr != nil && !errors.Is(cerr, io.ErrClosedPipe) {
		return cerr
	}
	return nil
}
