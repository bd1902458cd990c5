package osu

import (
	"fmt"
	"strings"
)

// ExtractBeatmapsets maps a score list to the ordered, deduplicated list of
// beatmapsets it references. The display title is built from the embedded
// beatmapset object as "<artist> - <title>" trimmed of stray separators;
// the set id comes from that object too, falling back to the beatmap's
// beatmapset_id when it is absent. A score resolving to an id but no title
// gets a synthesized placeholder; scores resolving to no id are skipped.
// First occurrence wins, for both position and title.
func ExtractBeatmapsets(scores []Score) []BeatmapsetRef {
	seen := make(map[int]struct{}, len(scores))
	refs := make([]BeatmapsetRef, 0, len(scores))

	for _, s := range scores {
		var id int
		var title string

		if s.Beatmapset != nil {
			id = s.Beatmapset.ID
			title = strings.Trim(s.Beatmapset.Artist+" - "+s.Beatmapset.Title, " -")
		}
		if id == 0 && s.Beatmap != nil {
			id = s.Beatmap.BeatmapsetID
		}
		if id == 0 {
			continue
		}

		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		if title == "" {
			title = fmt.Sprintf("beatmapset_%d", id)
		}

		refs = append(refs, BeatmapsetRef{ID: id, Title: title})
	}

	return refs
}
