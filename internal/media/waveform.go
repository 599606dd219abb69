package media

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/wav"
)

// WaveformSamples is the fixed length of every extracted waveform.
const WaveformSamples = 100

// WaveformFromSamples reduces raw first-channel samples to a fixed-length
// amplitude envelope: absolute magnitude averaged over equal-size blocks,
// normalized by the global maximum. Pure silence yields all zeros instead
// of dividing by zero.
func WaveformFromSamples(samples []float64) []float64 {
	out := make([]float64, WaveformSamples)
	if len(samples) == 0 {
		return out
	}

	blockSize := len(samples) / WaveformSamples
	if blockSize < 1 {
		blockSize = 1
	}

	for i := 0; i < WaveformSamples; i++ {
		start := i * blockSize
		if start >= len(samples) {
			break
		}
		end := start + blockSize
		if end > len(samples) {
			end = len(samples)
		}
		sum := 0.0
		for _, s := range samples[start:end] {
			sum += math.Abs(s)
		}
		out[i] = sum / float64(end-start)
	}

	max := 0.0
	for _, v := range out {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return out
	}
	for i := range out {
		out[i] /= max
	}
	return out
}

// WaveformFromWAV decodes a WAV stream and extracts the envelope of its
// first channel.
func WaveformFromWAV(r io.ReadSeeker) ([]float64, error) {
	decoder := wav.NewDecoder(r)
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("decode wav: empty stream")
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	scale := float64(int(1) << (buf.SourceBitDepth - 1))
	if buf.SourceBitDepth == 0 {
		scale = float64(1 << 15)
	}

	samples := make([]float64, 0, len(buf.Data)/channels)
	for i := 0; i < len(buf.Data); i += channels {
		samples = append(samples, float64(buf.Data[i])/scale)
	}
	return WaveformFromSamples(samples), nil
}

// WaveformFromFile extracts the waveform of a WAV file on disk.
func WaveformFromFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()
	return WaveformFromWAV(f)
}
