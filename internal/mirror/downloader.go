package mirror

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/desertthunder/oszget/internal/osu"
)

const (
	beatconnectURL  = "https://beatconnect.io"
	downloadTimeout = 60 * time.Second
	maxFilenameLen  = 180
)

var (
	illegalChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// SanitizeFilename makes a display title safe to use as a path segment.
func SanitizeFilename(name string) string {
	name = illegalChars.ReplaceAllString(name, "")
	name = strings.TrimSpace(whitespaceRuns.ReplaceAllString(name, " "))
	if runes := []rune(name); len(runes) > maxFilenameLen {
		// the cut can land right after a space, which a re-run would trim
		name = strings.TrimSpace(string(runes[:maxFilenameLen]))
	}
	return name
}

// Outcome classifies the result of a single download attempt.
type Outcome int

const (
	Saved Outcome = iota
	Skipped
	HTTPFailure
	TransportError
)

func (o Outcome) String() string {
	switch o {
	case Saved:
		return "saved"
	case Skipped:
		return "skipped"
	case HTTPFailure:
		return "http_failure"
	case TransportError:
		return "transport_error"
	default:
		return ""
	}
}

// Tag returns the console prefix for per-item status lines.
func (o Outcome) Tag() string {
	switch o {
	case Saved:
		return "[OK]"
	case Skipped:
		return "[SKIP]"
	case HTTPFailure:
		return "[FAIL]"
	case TransportError:
		return "[ERR]"
	default:
		return ""
	}
}

// Result reports what happened to one beatmapset.
type Result struct {
	Ref     osu.BeatmapsetRef
	Outcome Outcome
	Path    string // target path, set for every outcome
	Status  int    // HTTP status, set for HTTPFailure
	Err     error  // transport error, set for TransportError
}

// OK reports whether the beatmapset ended up on disk, whether freshly
// saved or already present.
func (r Result) OK() bool {
	return r.Outcome == Saved || r.Outcome == Skipped
}

// Line renders the per-item console line, e.g. "[OK]   123 - Artist - Title".
func (r Result) Line() string {
	switch r.Outcome {
	case Saved:
		return fmt.Sprintf("[OK]   %s", r.Ref)
	case Skipped:
		return fmt.Sprintf("[SKIP] %s", r.Ref)
	case HTTPFailure:
		return fmt.Sprintf("[FAIL] %s (status %d)", r.Ref, r.Status)
	case TransportError:
		return fmt.Sprintf("[ERR]  %s (%v)", r.Ref, r.Err)
	default:
		return r.Ref.String()
	}
}

// Downloader fetches beatmapset archives from the mirror.
type Downloader struct {
	httpClient *http.Client
	baseURL    string
}

// NewDownloader creates a Downloader against the beatconnect mirror.
func NewDownloader() *Downloader {
	return &Downloader{
		httpClient: &http.Client{Timeout: downloadTimeout},
		baseURL:    beatconnectURL,
	}
}

// Fetch downloads one beatmapset archive into outDir. An existing target
// file short-circuits to Skipped without touching the network. Failures
// are folded into the Result rather than returned, so one bad item cannot
// abort a batch.
func (d *Downloader) Fetch(ctx context.Context, ref osu.BeatmapsetRef, outDir string) Result {
	res := Result{Ref: ref}
	res.Path = filepath.Join(outDir, fmt.Sprintf("%d - %s.osz", ref.ID, SanitizeFilename(ref.Title)))

	if _, err := os.Stat(res.Path); err == nil {
		res.Outcome = Skipped
		return res
	}

	url := fmt.Sprintf("%s/b/%d?n=1", d.baseURL, ref.ID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		res.Outcome = TransportError
		res.Err = err
		return res
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		res.Outcome = TransportError
		res.Err = err
		return res
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		res.Outcome = HTTPFailure
		res.Status = resp.StatusCode
		return res
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		res.Outcome = TransportError
		res.Err = err
		return res
	}
	if len(body) == 0 {
		res.Outcome = HTTPFailure
		res.Status = resp.StatusCode
		return res
	}

	if err := os.WriteFile(res.Path, body, 0644); err != nil {
		res.Outcome = TransportError
		res.Err = err
		return res
	}

	res.Outcome = Saved
	return res
}
