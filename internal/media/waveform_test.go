package media

import (
	"math"
	"testing"
)

func TestWaveformFromSamplesLength(t *testing.T) {
	samples := make([]float64, 44100)
	for i := range samples {
		samples[i] = math.Sin(float64(i) / 100)
	}
	wf := WaveformFromSamples(samples)
	if len(wf) != WaveformSamples {
		t.Fatalf("waveform length = %d, want %d", len(wf), WaveformSamples)
	}
}

func TestWaveformNormalizedToUnitPeak(t *testing.T) {
	samples := make([]float64, 10000)
	for i := range samples {
		samples[i] = 0.25 * math.Sin(float64(i)/50)
	}
	wf := WaveformFromSamples(samples)

	max := 0.0
	for _, v := range wf {
		if v < 0 || v > 1 {
			t.Fatalf("sample %v out of [0,1]", v)
		}
		if v > max {
			max = v
		}
	}
	if math.Abs(max-1.0) > 1e-9 {
		t.Fatalf("peak = %v, want exactly 1 after normalization", max)
	}
}

func TestWaveformSilenceIsAllZeros(t *testing.T) {
	wf := WaveformFromSamples(make([]float64, 4096))
	for i, v := range wf {
		if v != 0 {
			t.Fatalf("silence produced %v at block %d", v, i)
		}
	}
}

func TestWaveformEmptyInput(t *testing.T) {
	wf := WaveformFromSamples(nil)
	if len(wf) != WaveformSamples {
		t.Fatalf("waveform length = %d, want %d", len(wf), WaveformSamples)
	}
	for _, v := range wf {
		if v != 0 {
			t.Fatal("empty input must produce zeros")
		}
	}
}

func TestWaveformShorterThanBlockCount(t *testing.T) {
	// Fewer input samples than output blocks: each sample maps to one block,
	// the rest stay zero, and no index may go out of range.
	wf := WaveformFromSamples([]float64{0.5, -1.0, 0.25})
	if len(wf) != WaveformSamples {
		t.Fatalf("waveform length = %d, want %d", len(wf), WaveformSamples)
	}
	if wf[1] != 1.0 {
		t.Fatalf("peak block = %v, want 1", wf[1])
	}
	for _, v := range wf[3:] {
		if v != 0 {
			t.Fatal("trailing blocks should be zero")
		}
	}
}

func TestWaveformUsesAbsoluteAmplitude(t *testing.T) {
	// A pure negative signal must register the same as a positive one.
	neg := make([]float64, 1000)
	pos := make([]float64, 1000)
	for i := range neg {
		neg[i] = -0.8
		pos[i] = 0.8
	}
	wfNeg := WaveformFromSamples(neg)
	wfPos := WaveformFromSamples(pos)
	for i := range wfNeg {
		if wfNeg[i] != wfPos[i] {
			t.Fatalf("block %d: neg=%v pos=%v", i, wfNeg[i], wfPos[i])
		}
	}
}
