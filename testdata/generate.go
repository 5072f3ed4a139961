//go:build ignore

// This script generates header packets from real Vorbis streams.
// Run with: go run testdata/generate.go
//
// Requirements: FFmpeg built with libvorbis must be available in PATH.
//
// Generated test data structure:
//   testdata/generated/
//   ├── 44100_stereo_q3/
//   │   ├── ident.bin     # identification header packet
//   │   ├── comment.bin   # comment header packet
//   │   ├── setup.bin     # setup header packet
//   │   └── config.json
//   └── ...

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// TestConfig describes a test configuration
type TestConfig struct {
	SampleRate  int    `json:"sample_rate"`
	NumChannels int    `json:"num_channels"` // 1=mono, 2=stereo
	Quality     int    `json:"quality"`      // libvorbis -q:a
	Source      string `json:"source"`       // lavfi source
}

// Quality changes the codebook presets libvorbis selects; the sample rate
// and channel count change the floor and mapping sections.
var configs = []TestConfig{
	{44100, 2, 3, "sine=frequency=1000"},
	{44100, 2, 8, "sine=frequency=1000"},
	{44100, 1, 0, "anoisesrc=color=pink"},
	{48000, 2, 5, "anoisesrc=color=white"},
	{22050, 1, 2, "sine=frequency=440"},
	{8000, 1, -1, "sine=frequency=300"},
	{96000, 2, 10, "anoisesrc=color=brown"},
}

func main() {
	if err := checkFFmpeg(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Please install FFmpeg: https://ffmpeg.org/download.html\n")
		os.Exit(1)
	}

	baseDir := filepath.Join("testdata", "generated")
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	for _, cfg := range configs {
		name := fmt.Sprintf("%d_%s_q%d", cfg.SampleRate, channelName(cfg.NumChannels), cfg.Quality)
		if err := generateTestCase(filepath.Join(baseDir, name), cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", name, err)
		} else {
			fmt.Printf("Generated %s\n", name)
		}
	}

	fmt.Println("\nDone!")
}

func checkFFmpeg() error {
	output, err := exec.Command("ffmpeg", "-encoders").Output()
	if err != nil {
		return fmt.Errorf("ffmpeg not found: %w", err)
	}
	if !bytes.Contains(output, []byte("libvorbis")) {
		return fmt.Errorf("ffmpeg has no libvorbis encoder")
	}
	return nil
}

func channelName(n int) string {
	if n == 1 {
		return "mono"
	}
	return "stereo"
}

var packetNames = []string{"ident.bin", "comment.bin", "setup.bin"}

func generateTestCase(dir string, cfg TestConfig) error {
	jsonPath := filepath.Join(dir, "config.json")
	if fileExists(jsonPath) {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	oggPath := filepath.Join(dir, "stream.ogg")
	cmd := exec.Command("ffmpeg", "-y",
		"-f", "lavfi", "-i", fmt.Sprintf("%s:sample_rate=%d:duration=1", cfg.Source, cfg.SampleRate),
		"-ac", fmt.Sprint(cfg.NumChannels),
		"-c:a", "libvorbis", "-q:a", fmt.Sprint(cfg.Quality),
		oggPath)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("encoding Vorbis: %w", err)
	}
	defer os.Remove(oggPath)

	data, err := os.ReadFile(oggPath)
	if err != nil {
		return err
	}
	packets, err := oggPackets(data, len(packetNames))
	if err != nil {
		return fmt.Errorf("reading Ogg pages: %w", err)
	}
	for i, p := range packets {
		if err := os.WriteFile(filepath.Join(dir, packetNames[i]), p, 0644); err != nil {
			return err
		}
	}
	return writeConfig(jsonPath, cfg)
}

// oggPackets returns the first n packets of the first logical stream.
func oggPackets(data []byte, n int) ([][]byte, error) {
	var packets [][]byte
	var cur []byte
	for len(data) > 0 && len(packets) < n {
		if len(data) < 27 || string(data[:4]) != "OggS" {
			return nil, fmt.Errorf("bad page header")
		}
		segments := int(data[26])
		if len(data) < 27+segments {
			return nil, fmt.Errorf("truncated lacing table")
		}
		lacing := data[27 : 27+segments]
		body := data[27+segments:]
		size := 0
		for _, l := range lacing {
			size += int(l)
		}
		if len(body) < size {
			return nil, fmt.Errorf("truncated page body")
		}
		off := 0
		for _, l := range lacing {
			cur = append(cur, body[off:off+int(l)]...)
			off += int(l)
			if l < 255 {
				packets = append(packets, cur)
				cur = nil
				if len(packets) == n {
					break
				}
			}
		}
		data = body[size:]
	}
	if len(packets) < n {
		return nil, fmt.Errorf("found %d of %d packets", len(packets), n)
	}
	return packets, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func writeConfig(path string, cfg TestConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
