// Package system holds host-dependent helpers: frame buffers, worker
// sizing, encoder discovery and input lookup.
package system

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// framesInFlight is how many frames one export worker may hold at once:
// the one it renders and the one waiting for the encoder.
const framesInFlight = 2

// Workers picks the export worker count. A positive requested value wins.
// Otherwise it is the logical CPU count, lowered so the frames in flight
// fit in half of the available memory.
func Workers(requested int, frameBytes int) int {
	if requested > 0 {
		return requested
	}

	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		slog.Debug("CPU count unavailable, using runtime.NumCPU", "err", err)
		n = runtime.NumCPU()
	}

	if frameBytes > 0 {
		vm, err := mem.VirtualMemory()
		if err == nil && vm.Available > 0 {
			budget := vm.Available / 2
			perWorker := uint64(frameBytes) * framesInFlight
			if fit := int(budget / perWorker); fit < n {
				slog.Debug("Limiting workers by memory", "available", vm.Available, "workers", fit)
				n = fit
			}
		}
	}

	if n < 1 {
		n = 1
	}
	return n
}

var hardwareEncoders = []string{"h264_videotoolbox", "h264_nvenc"}

// GetBestH264Encoder returns the first hardware H.264 encoder ffmpeg
// offers, falling back to libx264.
func GetBestH264Encoder(ctx context.Context) string {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return "libx264"
	}
	out, err := exec.CommandContext(ctx, "ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		slog.Debug("ffmpeg -encoders failed", "err", err)
		return "libx264"
	}
	for _, name := range hardwareEncoders {
		if strings.Contains(string(out), name) {
			return name
		}
	}
	return "libx264"
}

var catalogExtensions = []string{".json", ".yaml", ".yml"}

// ErrNotFound is returned when a directory holds no file of the wanted kind.
var ErrNotFound = errors.New("no matching file")

// FindLatestCatalog returns the most recently modified catalogue file in
// dir.
func FindLatestCatalog(dir string) (string, error) {
	path, err := FindLatest(dir, catalogExtensions...)
	if err != nil {
		return "", fmt.Errorf("find example list: %w", err)
	}
	return path, nil
}

// FindLatest returns the most recently modified regular file in dir whose
// extension is one of exts, compared case-insensitively.
func FindLatest(dir string, exts ...string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var (
		latest     string
		latestTime time.Time
	)
	for _, e := range entries {
		if e.IsDir() || !hasExtension(e.Name(), exts) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latest = filepath.Join(dir, e.Name())
		}
	}

	if latest == "" {
		return "", fmt.Errorf("%w (%s) in %s", ErrNotFound, strings.Join(exts, ", "), dir)
	}
	return latest, nil
}

func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
