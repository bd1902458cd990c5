// osu! API response types based on https://osu.ppy.sh/docs/index.html
package osu

import (
	"fmt"
	"strings"
)

// Mode identifies an osu! game mode.
type Mode string

const (
	ModeOsu    Mode = "osu"
	ModeTaiko  Mode = "taiko"
	ModeFruits Mode = "fruits"
	ModeMania  Mode = "mania"
)

// ParseMode normalizes a user-supplied mode string. Unknown or blank input
// falls back to [ModeOsu].
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "taiko":
		return ModeTaiko
	case "fruits", "catch", "ctb":
		return ModeFruits
	case "mania":
		return ModeMania
	default:
		return ModeOsu
	}
}

// Beatmapset is the bundled content package (map + assets) a score refers to.
type Beatmapset struct {
	ID     int    `json:"id"`
	Artist string `json:"artist"`
	Title  string `json:"title"`
}

// Beatmap is a single difficulty within a beatmapset. Only the set id is
// relevant here; it serves as a fallback when the score carries no
// beatmapset object.
type Beatmap struct {
	ID           int `json:"id"`
	BeatmapsetID int `json:"beatmapset_id"`
}

// Score represents one recorded play. Beatmap and Beatmapset are pointers
// so their absence in the response is distinguishable from zero values.
type Score struct {
	ID         int64       `json:"id"`
	PP         float64     `json:"pp"`
	Accuracy   float64     `json:"accuracy"`
	Rank       string      `json:"rank"`
	CreatedAt  string      `json:"created_at"`
	Beatmap    *Beatmap    `json:"beatmap"`
	Beatmapset *Beatmapset `json:"beatmapset"`
}

// BeatmapsetRef is a resolved (id, display title) pair extracted from a
// score, the unit of work for the mirror downloader.
type BeatmapsetRef struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func (r BeatmapsetRef) String() string {
	return fmt.Sprintf("%d - %s", r.ID, r.Title)
}
