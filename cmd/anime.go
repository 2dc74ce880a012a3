package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/zhuifan/internal/editor"
	"github.com/desertthunder/zhuifan/internal/filter"
	"github.com/desertthunder/zhuifan/internal/formatter"
	"github.com/desertthunder/zhuifan/internal/models"
	"github.com/desertthunder/zhuifan/internal/shared"
	"github.com/desertthunder/zhuifan/internal/tasks"
	"github.com/urfave/cli/v3"
)

// AnimeList prints the tracked anime matching the filter flags.
func (r *Runner) AnimeList(ctx context.Context, cmd *cli.Command) error {
	crit, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}

	animes, err := r.service.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list anime: %w", err)
	}
	animes = filter.Apply(animes, crit)
	r.logger.Debug("listed anime", "count", len(animes), "criteria", crit.Summary())

	if cmd.Bool("json") {
		return r.writeJSON(animes, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("追番列表 (%d) · %s", len(animes), crit.Summary()))
	for _, a := range animes {
		r.writeAnime(a)
	}
	return nil
}

// AnimeToday prints the anime the store reports as releasing today.
func (r *Runner) AnimeToday(ctx context.Context, cmd *cli.Command) error {
	resp, err := r.service.ListToday(ctx)
	if err != nil {
		return fmt.Errorf("failed to list today's anime: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(resp, true)
	}

	r.writePlainHeader(fmt.Sprintf("今日更新 · %s (%d)", resp.Today, len(resp.Animes)))
	if len(resp.Animes) == 0 {
		r.writePlain("今天没有要追的番\n")
	}
	for _, a := range resp.Animes {
		r.writeAnime(a)
	}
	return nil
}

// AnimeAdd creates a record from the draft flags.
func (r *Runner) AnimeAdd(ctx context.Context, cmd *cli.Command) error {
	form := models.NewForm()
	if err := applyDraftFlags(&form, cmd); err != nil {
		return err
	}

	tracker, stop := r.track()
	snap, err := tracker.Create(ctx, form.Draft())
	stop()
	if err != nil {
		return err
	}

	return r.writeWritten(cmd, "✓ 已添加", snap)
}

// AnimeUpdate changes the fields named by flags and leaves the rest as stored.
//
// The current record seeds an edit session, so a stored custom platform survives an update that does not touch it.
func (r *Runner) AnimeUpdate(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}

	current, err := r.service.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load anime %d: %w", id, err)
	}

	session := editor.New()
	session.Open(*current)
	if err := applyDraftFlags(session.Form(), cmd); err != nil {
		session.Cancel()
		return err
	}

	req, err := session.Submit()
	if err != nil {
		return err
	}

	tracker, stop := r.track()
	snap, err := tracker.Update(ctx, req.ID, req.Draft)
	stop()
	if err != nil {
		return err
	}
	session.Succeeded()

	return r.writeWritten(cmd, "✓ 已保存", snap)
}

// AnimeDelete removes a record after confirmation. --yes skips the prompt.
func (r *Runner) AnimeDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}

	confirmed := cmd.Bool("yes")
	if !confirmed {
		a, err := r.service.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load anime %d: %w", id, err)
		}
		if confirmed, err = r.confirm(fmt.Sprintf("确定要删除「%s」吗？[y/N] ", a.Title)); err != nil {
			return err
		}
	}

	tracker, stop := r.track()
	_, err = tracker.Delete(ctx, id, tasks.DeleteOptions{Confirmed: confirmed})
	stop()

	switch {
	case errors.Is(err, shared.ErrConfirmationRequired):
		r.writePlain("已取消\n")
		return nil
	case err != nil:
		return err
	}

	r.writePlain("✓ 已删除 #%d\n", id)
	return nil
}

// AnimeOpen opens a record's platform URL in the default browser.
func (r *Runner) AnimeOpen(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}

	a, err := r.service.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load anime %d: %w", id, err)
	}
	if a.PlatformURL == "" {
		return fmt.Errorf("%w: anime %d has no platform url", shared.ErrInvalidArgument, id)
	}

	r.logger.Info("opening platform url", "id", id, "url", a.PlatformURL)
	if err := shared.OpenBrowser(a.PlatformURL); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	r.writePlain("↗ %s\n", a.PlatformURL)
	return nil
}

// AnimeExport writes the tracked list to --output, or to stdout.
func (r *Runner) AnimeExport(ctx context.Context, cmd *cli.Command) error {
	var format formatter.Format
	if cmd.IsSet("format") {
		f, err := formatter.ParseFormat(cmd.String("format"))
		if err != nil {
			return err
		}
		format = f
	}

	animes, err := r.service.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list anime: %w", err)
	}

	path := cmd.String("output")
	if path == "" {
		if format == "" {
			format = formatter.Text
		}
		data, err := formatter.Export(animes, format)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	}

	written, err := formatter.WriteExport(animes, path, format)
	if err != nil {
		return err
	}
	r.logger.Info("exported anime", "count", len(animes), "format", written, "path", path)
	r.writePlain("✓ Exported %d anime to %s (%s)\n", len(animes), path, written)
	return nil
}

func (r *Runner) writeAnime(a models.Anime) {
	line := fmt.Sprintf("#%-4d %s  [%s]  %s · 第 %s 集", a.ID, a.Title, a.Status, a.Platform, a.Progress())
	if a.UpdateDay != "" {
		line += " · 每" + string(a.UpdateDay)
	}
	if a.UpdatedAt != "" {
		line += " · " + formatter.FormatTimestamp(a.UpdatedAt)
	}
	r.writePlain("%s\n", line)
	if a.Notes != "" {
		r.writePlain("      %s\n", a.Notes)
	}
}

func (r *Runner) writeWritten(cmd *cli.Command, prefix string, snap *tasks.Snapshot) error {
	if snap == nil || snap.Written == nil {
		return nil
	}
	if cmd.Bool("json") {
		return r.writeJSON(snap.Written, true)
	}
	r.writePlain("%s #%d %s\n", prefix, snap.Written.ID, snap.Written.Title)
	return nil
}

// confirm prints prompt and reads a yes/no answer from the runner's input.
func (r *Runner) confirm(prompt string) (bool, error) {
	r.writePlain("%s", prompt)
	line, err := bufio.NewReader(r.input).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func parseID(cmd *cli.Command) (int64, error) {
	raw := cmd.StringArg("id")
	if raw == "" {
		return 0, fmt.Errorf("%w: anime id", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not an anime id", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

// applyDraftFlags copies the draft flags that were set onto f.
func applyDraftFlags(f *models.Form, cmd *cli.Command) error {
	if cmd.IsSet("title") {
		f.Title = cmd.String("title")
	}
	if cmd.IsSet("episode") {
		f.CurrentEpisode = cmd.Int("episode")
	}
	if cmd.IsSet("total") {
		f.SetTotalEpisodes(cmd.Int("total"))
	}
	if cmd.IsSet("platform") {
		p := cmd.String("platform")
		if p == "" || p == models.PlatformOther || models.IsKnownPlatform(p) {
			f.Platform, f.CustomPlatform = p, ""
		} else {
			f.Platform, f.CustomPlatform = models.PlatformOther, p
		}
	}
	if cmd.IsSet("url") {
		f.PlatformURL = cmd.String("url")
	}
	if cmd.IsSet("status") {
		s, err := parseStatus(cmd.String("status"))
		if err != nil {
			return err
		}
		f.Status = s
	}
	if cmd.IsSet("day") {
		d, err := parseWeekday(cmd.String("day"))
		if err != nil {
			return err
		}
		f.UpdateDay = d
	}
	if cmd.IsSet("notes") {
		f.Notes = cmd.String("notes")
	}
	return nil
}

func criteriaFromFlags(cmd *cli.Command) (filter.Criteria, error) {
	crit := filter.Criteria{
		Platform: cmd.String("platform"),
		Query:    cmd.String("search"),
	}
	if v := cmd.String("status"); v != "" {
		s, err := parseStatus(v)
		if err != nil {
			return filter.Criteria{}, err
		}
		crit.Status = s
	}
	if v := cmd.String("day"); v != "" {
		d, err := parseWeekday(v)
		if err != nil {
			return filter.Criteria{}, err
		}
		crit.UpdateDay = d
	}
	return crit, nil
}

func parseStatus(v string) (models.Status, error) {
	s := models.Status(strings.TrimSpace(v))
	if !s.Valid() {
		return "", fmt.Errorf("%w: status must be one of %v, got %q", shared.ErrInvalidFlag, models.Statuses(), v)
	}
	return s, nil
}

// parseWeekday accepts a weekday label or its 1-7 position, Monday first. An empty value clears the day.
func parseWeekday(v string) (models.Weekday, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 7 {
		return models.Weekdays()[n-1], nil
	}
	if d := models.Weekday(v); d.Valid() {
		return d, nil
	}
	return "", fmt.Errorf("%w: day must be 周一..周日 or 1-7, got %q", shared.ErrInvalidFlag, v)
}
