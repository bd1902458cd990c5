package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/oszget/internal/mirror"
	"github.com/desertthunder/oszget/internal/osu"
	"github.com/desertthunder/oszget/internal/shared"
	"github.com/desertthunder/oszget/internal/tasks"
	tu "github.com/desertthunder/oszget/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			source := &tu.FakeSource{}
			fetcher := &tu.FakeFetcher{}

			runner := NewRunner(RunnerOpts{
				Config:  config,
				Logger:  logger,
				Output:  output,
				Source:  source,
				Fetcher: fetcher,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.source != source {
				t.Error("expected source to be set")
			}
			if runner.fetcher != fetcher {
				t.Error("expected fetcher to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Fatal("expected default config to be set")
			}
			if runner.config.Limit != shared.DefaultLimit {
				t.Errorf("expected default limit, got %d", runner.config.Limit)
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) != 3 {
			t.Errorf("expected 3 commands, got %d", len(commands))
		}

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
		}

		for _, want := range []string{"sync", "scores", "tui"} {
			if !names[want] {
				t.Errorf("expected %q command to be registered", want)
			}
		}
	})

	t.Run("resolveSource", func(t *testing.T) {
		t.Run("returns injected source", func(t *testing.T) {
			source := &tu.FakeSource{}
			runner := NewRunner(RunnerOpts{Source: source})

			got, err := runner.resolveSource("", "")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != source {
				t.Error("expected injected source to be returned")
			}
		})

		t.Run("builds real client from credentials", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			got, err := runner.resolveSource("id", "secret")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if _, ok := got.(*osu.Client); !ok {
				t.Errorf("expected *osu.Client, got %T", got)
			}
		})

		t.Run("propagates missing credentials", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if _, err := runner.resolveSource("", ""); !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})
	})

	t.Run("resolveFetcher", func(t *testing.T) {
		t.Run("returns injected fetcher", func(t *testing.T) {
			fetcher := &tu.FakeFetcher{}
			runner := NewRunner(RunnerOpts{Fetcher: fetcher})

			if got := runner.resolveFetcher(); got != fetcher {
				t.Error("expected injected fetcher to be returned")
			}
		})

		t.Run("defaults to mirror downloader", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if _, ok := runner.resolveFetcher().(*mirror.Downloader); !ok {
				t.Errorf("expected *mirror.Downloader, got %T", runner.resolveFetcher())
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			if err := runner.writeJSON(data, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			if err := runner.writeJSON(data, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if result := output.String(); result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("hello %s", "world"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result := output.String(); result != "hello world" {
			t.Errorf("expected 'hello world', got %q", result)
		}
	})
}

func TestRunSync(t *testing.T) {
	newSyncRunner := func(source *tu.FakeSource, fetcher *tu.FakeFetcher) (*Runner, *bytes.Buffer) {
		output := &bytes.Buffer{}
		logs := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Logger:  shared.NewLogger(logs),
			Output:  output,
			Source:  source,
			Fetcher: fetcher,
		})
		return runner, output
	}

	t.Run("clean run prints per-item lines and summary", func(t *testing.T) {
		source := &tu.FakeSource{Scores: []osu.Score{
			tu.ScoreWithSet(1, "Artist", "Song"),
			tu.ScoreWithSet(2, "Other", "Tune"),
		}}
		fetcher := &tu.FakeFetcher{}
		runner, output := newSyncRunner(source, fetcher)

		opts := tasks.SyncOpts{UserID: 1234, Mode: osu.ModeOsu, Limit: 10, OutDir: t.TempDir()}
		if err := runner.runSync(context.Background(), source, opts); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := output.String()
		if !strings.Contains(out, "[OK]") {
			t.Errorf("expected per-item status lines, got %q", out)
		}
		if !strings.Contains(out, "Sync Complete") {
			t.Errorf("expected summary header, got %q", out)
		}
		if !strings.Contains(out, "no failures") {
			t.Errorf("expected clean-run message, got %q", out)
		}
		if len(fetcher.Fetched) != 2 {
			t.Errorf("expected 2 downloads, got %v", fetcher.Fetched)
		}
	})

	t.Run("failures are reported with the log path", func(t *testing.T) {
		source := &tu.FakeSource{Scores: []osu.Score{
			tu.ScoreWithSet(1, "A", "One"),
			tu.ScoreWithSet(2, "B", "Two"),
		}}
		fetcher := &tu.FakeFetcher{Outcomes: map[int]mirror.Outcome{2: mirror.HTTPFailure}}
		runner, output := newSyncRunner(source, fetcher)

		dir := t.TempDir()
		opts := tasks.SyncOpts{UserID: 1234, Limit: 10, OutDir: dir}
		if err := runner.runSync(context.Background(), source, opts); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out := output.String()
		if !strings.Contains(out, "Finished with 1 failures") {
			t.Errorf("expected failure summary, got %q", out)
		}
		if !strings.Contains(out, tasks.FailureFile) {
			t.Errorf("expected failure log path in output, got %q", out)
		}
		tu.AssertFileExists(t, filepath.Join(dir, tasks.FailureFile))
	})

	t.Run("engine errors propagate", func(t *testing.T) {
		authErr := errors.New("bad credentials")
		source := &tu.FakeSource{AuthErr: authErr}
		runner, output := newSyncRunner(source, &tu.FakeFetcher{})

		opts := tasks.SyncOpts{UserID: 1234, Limit: 10, OutDir: t.TempDir()}
		err := runner.runSync(context.Background(), source, opts)
		if !errors.Is(err, authErr) {
			t.Fatalf("expected auth error, got %v", err)
		}
		if strings.Contains(output.String(), "Sync Complete") {
			t.Error("expected no summary after a failed run")
		}
	})
}
