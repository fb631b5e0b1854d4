// Package loader reads match event payloads from disk or from raw bytes.
//
// A payload is either a bare JSON array of event records or an object holding
// an "events" array next to optional "match_info". Files may be gzip, bzip2 or
// zstd compressed.
package loader

import (
	"compress/bzip2"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/tidwall/gjson"

	"github.com/pable/go-rugby-metrics/internal/model"
)

// ErrNoEvents is returned when a payload has no events array.
var ErrNoEvents = errors.New("no events array in payload")

// Paths tried, in order, for the events array and the match metadata of an
// object payload.
var (
	eventPaths = []string{"events", "data.events", "match.events", "data"}
	infoPaths  = []string{"match_info", "match", "info", "data.match_info"}
)

// Payload is one decoded match.
type Payload struct {
	Records []model.Record
	Info    model.MatchInfo
	Hash    string // sha256 of the decompressed bytes
	Size    int
}

// ReadFile loads a payload from path, decompressing by file extension.
func ReadFile(path string) (*Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rc, err := Decompress(path, f)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Decompress wraps r in the decoder matching name's extension. Unknown
// extensions are read as-is.
func Decompress(name string, r io.Reader) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".bz2"):
		return io.NopCloser(bzip2.NewReader(r)), nil
	case strings.HasSuffix(name, ".zst"):
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return dec.IOReadCloser(), nil
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return gz, nil
	}
	return io.NopCloser(r), nil
}

// Parse decodes a payload held in memory.
func Parse(data []byte) (*Payload, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse payload: invalid JSON")
	}
	root := gjson.ParseBytes(data)

	events, ok := findEvents(root)
	if !ok {
		return nil, ErrNoEvents
	}
	p := &Payload{
		Records: records(events),
		Hash:    hashOf(data),
		Size:    len(data),
	}
	if root.IsObject() {
		for _, path := range infoPaths {
			if info := root.Get(path); info.IsObject() {
				p.Info = matchInfo(info)
				break
			}
		}
	}
	return p, nil
}

// FromParts builds a payload from a separately fetched events body and match
// info body. info may be nil.
func FromParts(eventsBody, infoBody []byte) (*Payload, error) {
	p, err := Parse(eventsBody)
	if err != nil {
		return nil, err
	}
	if len(infoBody) > 0 && gjson.ValidBytes(infoBody) {
		info := gjson.ParseBytes(infoBody)
		if nested := info.Get("match_info"); nested.IsObject() {
			info = nested
		}
		if info.IsObject() {
			p.Info = matchInfo(info)
		}
	}
	p.Hash = hashOf(eventsBody, infoBody)
	return p, nil
}

func findEvents(root gjson.Result) (gjson.Result, bool) {
	if root.IsArray() {
		return root, true
	}
	if !root.IsObject() {
		return gjson.Result{}, false
	}
	for _, path := range eventPaths {
		if r := root.Get(path); r.IsArray() {
			return r, true
		}
	}
	return gjson.Result{}, false
}

// records keeps array positions: a non-object element becomes a nil record so
// normalization can report it by index.
func records(arr gjson.Result) []model.Record {
	elems := arr.Array()
	out := make([]model.Record, len(elems))
	for i, e := range elems {
		if !e.IsObject() {
			continue
		}
		if m, ok := e.Value().(map[string]any); ok {
			out[i] = model.Record(m)
		}
	}
	return out
}

func matchInfo(r gjson.Result) model.MatchInfo {
	first := func(paths ...string) string {
		for _, p := range paths {
			if v := r.Get(p); v.Exists() && v.Type != gjson.Null {
				if s := strings.TrimSpace(v.String()); s != "" {
					return s
				}
			}
		}
		return ""
	}
	return model.MatchInfo{
		MatchID:     first("match_id", "id", "MATCH_ID", "ID"),
		Team:        first("team", "our_team", "home_team", "home", "TEAM", "EQUIPO"),
		Opponent:    first("opponent", "rival", "away_team", "away", "OPPONENT", "RIVAL"),
		Date:        first("date", "match_date", "DATE", "MATCH_DATE"),
		Competition: first("competition", "tournament", "COMPETITION", "TOURNAMENT"),
		VideoURL:    first("video_url", "video", "youtube_url", "VIDEO_URL", "VIDEO", "YOUTUBE_URL"),
	}
}

func hashOf(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}
