package mediainfo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	gomp4 "github.com/abema/go-mp4"
	"github.com/pkg/errors"
)

// mp4Extensions are the container formats the prober understands. Formats
// outside this set (mp3, webm) report an empty duration rather than an error.
var mp4Extensions = map[string]bool{
	".mp4": true,
	".m4a": true,
	".m4b": true,
	".m4v": true,
	".mov": true,
}

// Duration probes the media file's playback length from its movie header.
// Unsupported formats and unreadable files return a zero duration and no
// error; the caller treats the field as unknown.
func Duration(path string) (time.Duration, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !mp4Extensions[ext] {
		return 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	defer f.Close()

	var timescale uint32
	var units uint64

	_, err = gomp4.ReadBoxStructure(f, func(h *gomp4.ReadHandle) (interface{}, error) {
		switch h.BoxInfo.Type {
		case gomp4.BoxTypeMoov():
			return h.Expand()
		case gomp4.BoxTypeMvhd():
			payload, _, err := h.ReadPayload()
			if err != nil {
				return nil, errors.WithStack(err)
			}
			mvhd, ok := payload.(*gomp4.Mvhd)
			if !ok {
				return nil, nil
			}
			timescale = mvhd.Timescale
			if mvhd.Version == 0 {
				units = uint64(mvhd.DurationV0)
			} else {
				units = mvhd.DurationV1
			}
			return nil, nil
		}
		return nil, nil
	})
	if err != nil {
		return 0, errors.WithStack(err)
	}

	if timescale == 0 || units == 0 {
		return 0, nil
	}
	seconds := float64(units) / float64(timescale)
	return time.Duration(seconds * float64(time.Second)), nil
}

// FormatLength renders a duration as H:MM:SS, or M:SS under an hour. Zero
// durations render as the empty string.
func FormatLength(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	total := int(d.Round(time.Second).Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
