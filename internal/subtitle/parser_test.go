package subtitle

import (
	"math"
	"strings"
	"testing"

	"github.com/reelcraft/api/internal/model"
)

const simpleSRT = `1
00:00:01,000 --> 00:00:04,500
Hello world

2
00:01:00,250 --> 00:01:02,000
Second line
continues here
`

func TestParseSimple(t *testing.T) {
	cues, errs := Parse(simpleSRT)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(cues) != 2 {
		t.Fatalf("got %d cues, want 2", len(cues))
	}

	if cues[0].StartTime != 1 || cues[0].EndTime != 4.5 {
		t.Errorf("cue 1 timing = %v..%v, want 1..4.5", cues[0].StartTime, cues[0].EndTime)
	}
	if cues[0].Text != "Hello world" {
		t.Errorf("cue 1 text = %q", cues[0].Text)
	}
	if cues[1].StartTime != 60.25 || cues[1].EndTime != 62 {
		t.Errorf("cue 2 timing = %v..%v, want 60.25..62", cues[1].StartTime, cues[1].EndTime)
	}
	if cues[1].Text != "Second line\ncontinues here" {
		t.Errorf("cue 2 text = %q", cues[1].Text)
	}
}

func TestParseCRLF(t *testing.T) {
	cues, errs := Parse(strings.ReplaceAll(simpleSRT, "\n", "\r\n"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(cues) != 2 {
		t.Fatalf("got %d cues, want 2", len(cues))
	}
}

func TestParseDotTimestamps(t *testing.T) {
	cues, errs := Parse("1\n00:00:01.500 --> 00:00:03.000\nDotted\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(cues) != 1 || cues[0].StartTime != 1.5 || cues[0].EndTime != 3 {
		t.Fatalf("cues = %+v", cues)
	}
}

func TestParseBadCueDoesNotAbortSiblings(t *testing.T) {
	content := `1
not a timing line
Garbage

2
00:00:05,000 --> 00:00:06,000
Survivor
`
	cues, errs := Parse(content)
	if len(cues) != 1 || cues[0].Text != "Survivor" {
		t.Fatalf("cues = %+v", cues)
	}
	if len(errs) == 0 {
		t.Fatal("expected an error for the malformed cue")
	}
}

func TestParseBadEndTimeFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"garbage end", "1\n00:00:02,000 --> nonsense\nText\n"},
		{"end before start", "1\n00:00:02,000 --> 00:00:01,000\nText\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cues, _ := Parse(tt.content)
			if len(cues) != 1 {
				t.Fatalf("got %d cues, want 1", len(cues))
			}
			want := 2 + DefaultCueDuration
			if math.Abs(cues[0].EndTime-want) > 1e-9 {
				t.Fatalf("end = %v, want %v", cues[0].EndTime, want)
			}
		})
	}
}

func TestParseBadStartTimeSkipsCue(t *testing.T) {
	cues, errs := Parse("1\nbogus --> 00:00:03,000\nText\n")
	if len(cues) != 0 {
		t.Fatalf("cues = %+v, want none", cues)
	}
	if len(errs) == 0 {
		t.Fatal("expected a timestamp error")
	}
}

func TestParseMissingText(t *testing.T) {
	cues, errs := Parse("1\n00:00:01,000 --> 00:00:02,000\n\n2\n00:00:03,000 --> 00:00:04,000\nKept\n")
	if len(cues) != 1 || cues[0].Text != "Kept" {
		t.Fatalf("cues = %+v", cues)
	}
	if len(errs) != 1 {
		t.Fatalf("errs = %v, want one", errs)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, content := range []string{"", "   \n \n"} {
		cues, errs := Parse(content)
		if len(cues) != 0 || len(errs) == 0 {
			t.Fatalf("Parse(%q) = %v, %v", content, cues, errs)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"00:00:00,000", 0, false},
		{"01:02:03,400", 3723.4, false},
		{"00:10:00.5", 600.5, false},
		{"10:00", 0, true},
		{"aa:00:00,000", 0, true},
		{"00:bb:00,000", 0, true},
		{"00:00:cc,000", 0, true},
	}
	for _, tt := range tests {
		got, err := parseTimestamp(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTimestamp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("parseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCuesToClips(t *testing.T) {
	cues := []model.SubtitleCue{
		{ID: "1", StartTime: 1, EndTime: 4, Text: "one"},
		{ID: "2", StartTime: 10, EndTime: 12.5, Text: "two"},
	}
	style := model.TextStyle{FontSize: 32, Color: "#ffffff"}

	clips := CuesToClips(cues, "asset-x", style)
	if len(clips) != 2 {
		t.Fatalf("got %d clips, want 2", len(clips))
	}
	for i, clip := range clips {
		if clip.Type != model.ClipTypeText || clip.AssetID != "asset-x" {
			t.Errorf("clip %d = %+v", i, clip)
		}
		if clip.Style == nil || *clip.Style != style {
			t.Errorf("clip %d style = %v", i, clip.Style)
		}
	}
	if clips[0].Style == clips[1].Style {
		t.Error("clips share a style pointer")
	}
	if clips[0].Start != 1 || clips[0].Duration != 3 {
		t.Errorf("clip 0 timing = %v/%v", clips[0].Start, clips[0].Duration)
	}
	if clips[1].Start != 10 || clips[1].Duration != 2.5 {
		t.Errorf("clip 1 timing = %v/%v", clips[1].Start, clips[1].Duration)
	}
}
