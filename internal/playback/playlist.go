// Package playback turns a filtered event list into the (start, duration)
// clips handed to the video surface.
package playback

import (
	"github.com/pable/go-rugby-metrics/internal/event"
	"github.com/pable/go-rugby-metrics/internal/model"
)

// DefaultClipSec is used for events that carry no duration.
const DefaultClipSec = 10.0

// Playlist walks a time-ordered list of clips. It is a value: every move
// returns a new Playlist and leaves the receiver untouched.
type Playlist struct {
	clips []model.Clip
	pos   int // -1 before Start
}

// New builds a playlist over events. Events without a timestamp cannot be
// seeked to and are skipped. A zero or negative defaultSec falls back to
// DefaultClipSec.
func New(events []model.Event, defaultSec float64) Playlist {
	if defaultSec <= 0 {
		defaultSec = DefaultClipSec
	}
	sorted := event.Sorted(events)
	clips := make([]model.Clip, 0, len(sorted))
	for i := range sorted {
		ev := &sorted[i]
		if !ev.HasTimestamp {
			continue
		}
		dur := ev.DurationSec
		if dur <= 0 {
			dur = defaultSec
		}
		start := ev.TimestampSec
		if start < 0 {
			start = 0
		}
		clips = append(clips, model.Clip{EventID: ev.ID, EventType: ev.Type, StartSec: start, DurationSec: dur})
	}
	return Playlist{clips: clips, pos: -1}
}

// Len returns the number of clips.
func (p Playlist) Len() int { return len(p.clips) }

// Clips returns a copy of every clip in play order.
func (p Playlist) Clips() []model.Clip {
	out := make([]model.Clip, len(p.clips))
	copy(out, p.clips)
	return out
}

// Current returns the clip under the cursor.
func (p Playlist) Current() (model.Clip, bool) {
	if p.pos < 0 || p.pos >= len(p.clips) {
		return model.Clip{}, false
	}
	return p.clips[p.pos], true
}

// Start moves to the first clip.
func (p Playlist) Start() (Playlist, model.Clip, bool) {
	return p.at(0)
}

// Next moves forward one clip. It reports false at the end of the list.
func (p Playlist) Next() (Playlist, model.Clip, bool) {
	return p.at(p.pos + 1)
}

// Prev moves back one clip. It reports false at the start of the list.
func (p Playlist) Prev() (Playlist, model.Clip, bool) {
	if p.pos <= 0 {
		return p, model.Clip{}, false
	}
	return p.at(p.pos - 1)
}

// Seek moves to the clip of the given event.
func (p Playlist) Seek(eventID string) (Playlist, model.Clip, bool) {
	for i := range p.clips {
		if p.clips[i].EventID == eventID {
			return p.at(i)
		}
	}
	return p, model.Clip{}, false
}

func (p Playlist) at(i int) (Playlist, model.Clip, bool) {
	if i < 0 || i >= len(p.clips) {
		return p, model.Clip{}, false
	}
	p.pos = i
	return p, p.clips[i], true
}
