package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/zhuifan/internal/models"
	"github.com/desertthunder/zhuifan/internal/services"
	"github.com/desertthunder/zhuifan/internal/shared"
	tu "github.com/desertthunder/zhuifan/internal/testing"
	"github.com/urfave/cli/v3"
)

func seededService() *tu.MockAnimeService {
	return &tu.MockAnimeService{
		Today: models.Friday,
		Animes: []models.Anime{
			{ID: 1, Title: "Frieren", CurrentEpisode: 3, TotalEpisodes: tu.IntPtr(28), Platform: "哔哩哔哩", Status: models.StatusWatching, UpdateDay: models.Friday},
			{ID: 2, Title: "Mushishi", CurrentEpisode: 26, Platform: "Netflix", PlatformURL: "https://example.com/mushishi", Status: models.StatusCompleted, Notes: "rewatch"},
		},
	}
}

// runApp runs the CLI against svc with args and returns what it printed.
func runApp(t *testing.T, svc services.AnimeService, input string, args ...string) (string, error) {
	t.Helper()
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Service: svc,
		Logger:  log.New(io.Discard),
		Output:  output,
		Input:   strings.NewReader(input),
	})
	app := &cli.Command{
		Name:      "zhuifan",
		Writer:    output,
		ErrWriter: io.Discard,
		Commands:  runner.register(),
	}
	err := app.Run(context.Background(), append([]string{"zhuifan"}, args...))
	return output.String(), err
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			input := strings.NewReader("")
			httpClient := &http.Client{}
			svc := seededService()

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Service:    svc,
				HTTPClient: httpClient,
				Logger:     logger,
				Output:     output,
				Input:      input,
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
			if runner.input != input {
				t.Error("expected input to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.service != svc {
				t.Error("expected service to be set")
			}
			if runner.tracker == nil {
				t.Error("expected tracker to be built")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output and input uses stdio", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.input != os.Stdin {
				t.Error("expected input to default to os.Stdin")
			}
		})

		t.Run("with nil service builds a client from config", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Client.BaseURL = "http://store.test:9000/"
			runner := NewRunner(RunnerOpts{Config: config})

			client, ok := runner.service.(*services.AnimeClient)
			if !ok {
				t.Fatalf("expected *services.AnimeClient, got %T", runner.service)
			}
			if client.BaseURL() != "http://store.test:9000" {
				t.Errorf("expected configured base url, got %s", client.BaseURL())
			}
			if runner.httpClient.Timeout != config.Client.Timeout() {
				t.Errorf("expected client timeout %v, got %v", config.Client.Timeout(), runner.httpClient.Timeout)
			}
		})

		t.Run("SetLogger rebuilds tracker", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Service: seededService()})
			before := runner.tracker
			logger := log.New(io.Discard)

			runner.SetLogger(logger)

			if runner.logger != logger {
				t.Error("expected logger to be replaced")
			}
			if runner.tracker == before {
				t.Error("expected a new tracker")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
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
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		names := []string{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names = append(names, cmd.Name)
		}
		if got := strings.Join(names, ","); got != "setup,serve,anime,tui" {
			t.Errorf("unexpected commands: %s", got)
		}
	})
}

func TestAnimeCommands(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		t.Run("prints every record", func(t *testing.T) {
			out, err := runApp(t, seededService(), "", "anime", "list")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			for _, want := range []string{"追番列表 (2)", "#1", "Frieren", "第 3/28 集", "每周五", "rewatch"} {
				if !strings.Contains(out, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, out)
				}
			}
		})

		t.Run("applies filters", func(t *testing.T) {
			out, err := runApp(t, seededService(), "", "anime", "list", "--day", "5")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(out, "Frieren") || strings.Contains(out, "Mushishi") {
				t.Errorf("expected only Frieren, got:\n%s", out)
			}
			if !strings.Contains(out, "day=周五") {
				t.Errorf("expected criteria summary, got:\n%s", out)
			}
		})

		t.Run("json", func(t *testing.T) {
			out, err := runApp(t, seededService(), "", "anime", "list", "--json", "--search", "MUSHI")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			var animes []models.Anime
			if err := json.Unmarshal([]byte(out), &animes); err != nil {
				t.Fatalf("expected JSON output, got %v", err)
			}
			if len(animes) != 1 || animes[0].Title != "Mushishi" {
				t.Errorf("expected Mushishi only, got %+v", animes)
			}
		})

		t.Run("invalid status", func(t *testing.T) {
			_, err := runApp(t, seededService(), "", "anime", "list", "--status", "watching")
			if !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("expected ErrInvalidFlag, got %v", err)
			}
		})

		t.Run("store failure", func(t *testing.T) {
			svc := seededService()
			svc.ListErr = shared.ErrTransport
			_, err := runApp(t, svc, "", "anime", "list")
			if !errors.Is(err, shared.ErrTransport) {
				t.Errorf("expected ErrTransport, got %v", err)
			}
		})
	})

	t.Run("today", func(t *testing.T) {
		out, err := runApp(t, seededService(), "", "anime", "today")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "今日更新 · 周五 (1)") || !strings.Contains(out, "Frieren") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("add", func(t *testing.T) {
		t.Run("creates record", func(t *testing.T) {
			svc := seededService()
			out, err := runApp(t, svc, "", "anime", "add", "--title", "Dandadan", "--platform", "Crunchyroll", "--day", "周四", "--total", "12")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			created := svc.Animes[len(svc.Animes)-1]
			if created.Title != "Dandadan" || created.Platform != "Crunchyroll" || created.UpdateDay != models.Thursday {
				t.Errorf("unexpected record: %+v", created)
			}
			if created.TotalEpisodes == nil || *created.TotalEpisodes != 12 {
				t.Errorf("expected 12 total episodes, got %v", created.TotalEpisodes)
			}
			if created.CurrentEpisode != 1 || created.Status != models.StatusWatching {
				t.Errorf("expected defaults, got episode %d status %s", created.CurrentEpisode, created.Status)
			}
			if !strings.Contains(out, "✓ 已添加 #3 Dandadan") {
				t.Errorf("unexpected output: %s", out)
			}
			if got := strings.Join(svc.CallLog(), ","); got != "Create,List,ListToday" {
				t.Errorf("unexpected calls: %s", got)
			}
		})

		t.Run("requires title", func(t *testing.T) {
			svc := seededService()
			if _, err := runApp(t, svc, "", "anime", "add", "--episode", "2"); err == nil {
				t.Fatal("expected missing title error")
			}
			if len(svc.CallLog()) != 0 {
				t.Errorf("expected no store calls, got %v", svc.CallLog())
			}
		})

		t.Run("invalid day", func(t *testing.T) {
			_, err := runApp(t, seededService(), "", "anime", "add", "--title", "X", "--day", "someday")
			if !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("expected ErrInvalidFlag, got %v", err)
			}
		})
	})

	t.Run("update", func(t *testing.T) {
		t.Run("changes only flagged fields", func(t *testing.T) {
			svc := seededService()
			out, err := runApp(t, svc, "", "anime", "update", "--episode", "10", "2")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			got := svc.Animes[1]
			if got.CurrentEpisode != 10 {
				t.Errorf("expected episode 10, got %d", got.CurrentEpisode)
			}
			if got.Title != "Mushishi" || got.Platform != "Netflix" || got.Notes != "rewatch" {
				t.Errorf("expected untouched fields to survive, got %+v", got)
			}
			if !strings.Contains(out, "✓ 已保存 #2 Mushishi") {
				t.Errorf("unexpected output: %s", out)
			}
			if calls := strings.Join(svc.CallLog(), ","); calls != "Get,Update,List,ListToday" {
				t.Errorf("unexpected calls: %s", calls)
			}
		})

		t.Run("known platform replaces custom", func(t *testing.T) {
			svc := seededService()
			if _, err := runApp(t, svc, "", "anime", "update", "--platform", "优酷", "2"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if svc.Animes[1].Platform != "优酷" {
				t.Errorf("expected 优酷, got %s", svc.Animes[1].Platform)
			}
		})

		t.Run("missing record", func(t *testing.T) {
			_, err := runApp(t, seededService(), "", "anime", "update", "--episode", "2", "99")
			if !errors.Is(err, shared.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})

		t.Run("invalid id", func(t *testing.T) {
			_, err := runApp(t, seededService(), "", "anime", "update", "abc")
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})

		t.Run("missing id", func(t *testing.T) {
			_, err := runApp(t, seededService(), "", "anime", "update")
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})
	})

	t.Run("delete", func(t *testing.T) {
		t.Run("declined at prompt", func(t *testing.T) {
			svc := seededService()
			out, err := runApp(t, svc, "n\n", "anime", "delete", "1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(out, "确定要删除「Frieren」吗？") || !strings.Contains(out, "已取消") {
				t.Errorf("unexpected output: %s", out)
			}
			if len(svc.Animes) != 2 {
				t.Error("expected nothing deleted")
			}
		})

		t.Run("confirmed at prompt", func(t *testing.T) {
			svc := seededService()
			out, err := runApp(t, svc, "y\n", "anime", "delete", "1")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(svc.Animes) != 1 || !strings.Contains(out, "✓ 已删除 #1") {
				t.Errorf("expected record 1 deleted, output: %s", out)
			}
		})

		t.Run("yes flag skips prompt", func(t *testing.T) {
			svc := seededService()
			if _, err := runApp(t, svc, "", "anime", "delete", "--yes", "2"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if calls := strings.Join(svc.CallLog(), ","); calls != "Delete,List,ListToday" {
				t.Errorf("unexpected calls: %s", calls)
			}
		})

		t.Run("empty input declines", func(t *testing.T) {
			svc := seededService()
			if _, err := runApp(t, svc, "", "anime", "delete", "1"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(svc.Animes) != 2 {
				t.Error("expected nothing deleted")
			}
		})
	})

	t.Run("open", func(t *testing.T) {
		_, err := runApp(t, seededService(), "", "anime", "open", "1")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument for record without url, got %v", err)
		}
	})

	t.Run("export", func(t *testing.T) {
		t.Run("stdout defaults to text", func(t *testing.T) {
			out, err := runApp(t, seededService(), "", "anime", "export")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(out, "Animes: 2") {
				t.Errorf("expected text export, got:\n%s", out)
			}
		})

		t.Run("file format from extension", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", "list.csv")
			out, err := runApp(t, seededService(), "", "anime", "export", "--output", path)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			tu.AssertFileExists(t, path)
			if content := tu.MustReadFile(t, path); !strings.HasPrefix(content, "ID,Title") {
				t.Errorf("expected CSV header, got %q", content)
			}
			if !strings.Contains(out, "(csv)") {
				t.Errorf("unexpected output: %s", out)
			}
		})

		t.Run("unknown format", func(t *testing.T) {
			_, err := runApp(t, seededService(), "", "anime", "export", "--format", "xml")
			if !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("expected ErrInvalidFlag, got %v", err)
			}
		})
	})
}

func TestSetupCommands(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	configPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[database]\npath = \""+filepath.ToSlash(dbPath)+"\"\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Run("database", func(t *testing.T) {
		out, err := runApp(t, seededService(), "", "setup", "database", "--config", configPath)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, dbPath)
		if !strings.Contains(out, "Database ready") {
			t.Errorf("unexpected output: %s", out)
		}
	})

	t.Run("rollback", func(t *testing.T) {
		if _, err := runApp(t, seededService(), "", "setup", "rollback", "--config", configPath); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("serve with missing config", func(t *testing.T) {
		_, err := runApp(t, seededService(), "", "serve", "--config", filepath.Join(dir, "missing.toml"))
		if !errors.Is(err, shared.ErrMissingConfig) || !strings.Contains(err.Error(), "failed to read config file") {
			t.Errorf("expected config read error, got %v", err)
		}
	})
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    models.Weekday
		wantErr bool
	}{
		{"", "", false},
		{"1", models.Monday, false},
		{"7", models.Sunday, false},
		{"周三", models.Wednesday, false},
		{" 周六 ", models.Saturday, false},
		{"0", "", true},
		{"8", "", true},
		{"friday", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseWeekday(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseWeekday(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseWeekday(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
