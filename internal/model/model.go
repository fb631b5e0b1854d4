package model

// Record is one raw decoded event as it arrives from the event source. Keys and
// value shapes are not trusted; internal/event turns it into an Event.
type Record map[string]any

// Event is a normalized match event.
type Event struct {
	ID   string
	Type string

	// TimestampSec is the offset from kick-off. HasTimestamp is false when no
	// timestamp field could be parsed, in which case TimestampSec is 0.
	TimestampSec float64
	HasTimestamp bool
	DurationSec  float64

	Team    string
	Players []string

	// The three lookup locations, in precedence order.
	Fields      map[string]any // top level of the raw record
	Extra       map[string]any // extra_data
	Descriptors map[string]any // extra_data.descriptors
}

// HasPlayer reports whether p is one of the event's players.
func (e *Event) HasPlayer(p string) bool {
	for _, q := range e.Players {
		if q == p {
			return true
		}
	}
	return false
}

// MatchInfo is the match metadata delivered next to the event list.
type MatchInfo struct {
	MatchID     string `json:"match_id,omitempty"`
	Team        string `json:"team,omitempty"`
	Opponent    string `json:"opponent,omitempty"`
	Date        string `json:"date,omitempty"`
	Competition string `json:"competition,omitempty"`
	VideoURL    string `json:"video_url,omitempty"`
}

// FilterDescriptor is one active filtering constraint.
type FilterDescriptor struct {
	Descriptor string `json:"descriptor"`
	Value      any    `json:"value"`
}

// Series is one named row of values, aligned with Dataset.Labels.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Dataset is the chart-agnostic shape every aggregator produces.
type Dataset struct {
	Title  string   `json:"title,omitempty"`
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// Total returns the sum of every value in the named series, or 0 if absent.
func (d *Dataset) Total(series string) float64 {
	for _, s := range d.Series {
		if s.Name != series {
			continue
		}
		var sum float64
		for _, v := range s.Values {
			sum += v
		}
		return sum
	}
	return 0
}

// Clip is a (start, duration) pair handed to the video surface.
type Clip struct {
	EventID     string  `json:"event_id"`
	EventType   string  `json:"event_type"`
	StartSec    float64 `json:"start_sec"`
	DurationSec float64 `json:"duration_sec"`
}

// MatchSummary is a lightweight record for list/show commands.
type MatchSummary struct {
	Hash         string
	MatchID      string
	Team         string
	Opponent     string
	MatchDate    string
	Competition  string
	VideoURL     string
	Source       string // "file:<path>" or "backend:<url>"
	EventCount   int
	DroppedCount int
	ImportID     string
	ImportedAt   string
}

// Info returns the MatchInfo view of the summary.
func (s *MatchSummary) Info() MatchInfo {
	return MatchInfo{
		MatchID:     s.MatchID,
		Team:        s.Team,
		Opponent:    s.Opponent,
		Date:        s.MatchDate,
		Competition: s.Competition,
		VideoURL:    s.VideoURL,
	}
}
