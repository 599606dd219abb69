// Package subtitle parses SRT caption files into timed cues.
package subtitle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reelcraft/api/internal/model"
)

// DefaultCueDuration is used when a cue's end time is missing or invalid.
const DefaultCueDuration = 3.0

// Parse reads SRT content into cues. Malformed blocks are skipped with
// their errors collected, so one bad cue never aborts its siblings; the
// returned error is non-nil only when the whole file yields nothing.
func Parse(content string) ([]model.SubtitleCue, []error) {
	if strings.TrimSpace(content) == "" {
		return nil, []error{fmt.Errorf("subtitle file is empty")}
	}

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	var (
		cues []model.SubtitleCue
		errs []error
	)

	i := 0
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}
		id := strings.TrimSpace(lines[i])
		if _, err := strconv.Atoi(id); err != nil {
			errs = append(errs, fmt.Errorf("line %d: expected cue index, got %q", i+1, lines[i]))
			i++
			continue
		}
		if i+1 >= len(lines) || !strings.Contains(lines[i+1], "-->") {
			errs = append(errs, fmt.Errorf("cue %s: missing timing line", id))
			i++
			continue
		}

		parts := strings.SplitN(lines[i+1], "-->", 2)
		start, err := parseTimestamp(strings.TrimSpace(parts[0]))
		if err != nil {
			errs = append(errs, fmt.Errorf("cue %s: %w", id, err))
			i += 2
			continue
		}
		end, err := parseTimestamp(strings.TrimSpace(parts[1]))
		if err != nil || end <= start {
			end = start + DefaultCueDuration
		}

		var text []string
		j := i + 2
		for j < len(lines) && strings.TrimSpace(lines[j]) != "" {
			text = append(text, lines[j])
			j++
		}
		if len(text) == 0 {
			errs = append(errs, fmt.Errorf("cue %s: no text", id))
			i = j
			continue
		}

		cues = append(cues, model.SubtitleCue{
			ID:        id,
			StartTime: start,
			EndTime:   end,
			Text:      strings.Join(text, "\n"),
		})
		i = j
	}

	if len(cues) == 0 && len(errs) == 0 {
		errs = append(errs, fmt.Errorf("no cues found"))
	}
	return cues, errs
}

// parseTimestamp reads "HH:MM:SS,mmm" (SRT) or "HH:MM:SS.mmm" (VTT) form.
func parseTimestamp(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed timestamp %q", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q", s)
	}

	sec := strings.ReplaceAll(parts[2], ",", ".")
	seconds, err := strconv.ParseFloat(sec, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q", s)
	}
	return float64(hours)*3600 + float64(minutes)*60 + seconds, nil
}

// CuesToClips converts parsed cues into text clips in the given style,
// ready for dispatch onto a video track.
func CuesToClips(cues []model.SubtitleCue, assetID string, style model.TextStyle) []model.Clip {
	clips := make([]model.Clip, 0, len(cues))
	for _, cue := range cues {
		st := style
		clips = append(clips, model.Clip{
			AssetID:  assetID,
			Type:     model.ClipTypeText,
			Start:    cue.StartTime,
			Duration: cue.EndTime - cue.StartTime,
			Text:     cue.Text,
			Style:    &st,
		})
	}
	return clips
}
