// package testing contains shared testing utilities
package testing

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/oszget/internal/mirror"
	"github.com/desertthunder/oszget/internal/osu"
)

// FakeSource is a test double for tasks.ScoreSource backed by canned scores.
type FakeSource struct {
	Scores  []osu.Score
	AuthErr error
	TopErr  error

	AuthCalls int
	TopCalls  int
}

func (f *FakeSource) Authenticate(ctx context.Context) error {
	f.AuthCalls++
	return f.AuthErr
}

func (f *FakeSource) TopScores(ctx context.Context, userID int, mode osu.Mode, total int) ([]osu.Score, error) {
	f.TopCalls++
	if f.TopErr != nil {
		return nil, f.TopErr
	}
	if total < len(f.Scores) {
		return f.Scores[:total], nil
	}
	return f.Scores, nil
}

// FakeFetcher is a test double for tasks.Fetcher. Outcomes maps beatmapset
// ids to forced outcomes; ids not present succeed as Saved.
type FakeFetcher struct {
	Outcomes map[int]mirror.Outcome
	Fetched  []int
}

func (f *FakeFetcher) Fetch(ctx context.Context, ref osu.BeatmapsetRef, outDir string) mirror.Result {
	f.Fetched = append(f.Fetched, ref.ID)
	res := mirror.Result{Ref: ref, Outcome: mirror.Saved}
	if o, ok := f.Outcomes[ref.ID]; ok {
		res.Outcome = o
		if o == mirror.HTTPFailure {
			res.Status = http.StatusNotFound
		}
	}
	return res
}

// ScoreWithSet builds a score carrying an embedded beatmapset.
func ScoreWithSet(id int, artist, title string) osu.Score {
	return osu.Score{Beatmapset: &osu.Beatmapset{ID: id, Artist: artist, Title: title}}
}

// ScoreWithMap builds a score carrying only a beatmap fallback.
func ScoreWithMap(setID int) osu.Score {
	return osu.Score{Beatmap: &osu.Beatmap{ID: setID * 10, BeatmapsetID: setID}}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertFileAbsent(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("File exists but should not: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
