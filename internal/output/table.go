// Package output provides terminal output utilities for brew-update-helper.
//
// This package includes:
//   - Rendering for run summaries, run history and status key/value lists
//   - A progress bar for upgrade batches and a spinner for brew queries
//   - A fatih/color palette and a glamour preview for the settings document
//
// Tables use plain padding so they stay readable when piped.
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/brew-update-helper/internal/history"
	"github.com/blackwell-systems/brew-update-helper/internal/upgrade"
)

// RenderSummary renders the closing line of an upgrade run.
func RenderSummary(s upgrade.Summary, dryRun bool) string {
	if dryRun {
		return "Dry run completed. Use without --dry-run to execute upgrades.\n"
	}

	line := fmt.Sprintf("Upgrade completed! %d successful, %d failed", s.Upgraded, s.Failed)
	if s.Skipped > 0 {
		line += fmt.Sprintf(", %d skipped", s.Skipped)
	}
	switch {
	case s.Failed > 0:
		return Warning.Sprint(line) + "\n"
	default:
		return Success.Sprint(line) + "\n"
	}
}

// RenderHistoryTable renders recorded runs, newest first, followed by the
// failed packages of each run.
func RenderHistoryTable(runs []*history.Run) string {
	if len(runs) == 0 {
		return "No upgrade runs recorded.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-5s %-20s %-16s %-9s %-9s %-8s %-8s\n",
		"ID", "Started", "When", "Planned", "Upgraded", "Failed", "Skipped"))
	sb.WriteString(strings.Repeat("─", 82))
	sb.WriteString("\n")

	for _, run := range runs {
		sb.WriteString(fmt.Sprintf("%-5d %-20s %-16s %-9d %-9d %-8d %-8d\n",
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			formatRelativeTime(run.StartedAt),
			run.Planned,
			run.Upgraded,
			run.Failed,
			run.Skipped))
	}

	var failures strings.Builder
	for _, run := range runs {
		for _, o := range run.FailedOutcomes() {
			failures.WriteString(fmt.Sprintf("  #%d %s (%s) %s → %s: %s\n",
				run.ID, o.Name, o.Kind, o.FromVersion, o.ToVersion, truncate(firstLine(o.Detail), 60)))
		}
	}
	if failures.Len() > 0 {
		sb.WriteString("\nFailures:\n")
		sb.WriteString(failures.String())
	}

	return sb.String()
}

// RenderKeyValues renders aligned "key: value" lines in the given order.
func RenderKeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}

	var sb strings.Builder
	for _, p := range pairs {
		sb.WriteString(fmt.Sprintf("  %-*s  %s\n", width+1, p[0]+":", p[1]))
	}
	return sb.String()
}

// FormatDuration renders a duration rounded for humans.
func FormatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "-"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}

// FormatTimestamp renders t for status output, or "never" when zero.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return fmt.Sprintf("%s (%s)", t.UTC().Format("2006-01-02 15:04:05 UTC"), formatRelativeTime(t))
}

// formatRelativeTime converts a timestamp to relative time (e.g., "2 days ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	case diff < 30*24*time.Hour:
		return plural(int(diff.Hours()/24/7), "week")
	case diff < 365*24*time.Hour:
		return plural(int(diff.Hours()/24/30), "month")
	default:
		return plural(int(diff.Hours()/24/365), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
