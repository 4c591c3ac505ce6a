// package formatter renders tasks, collections and journal sessions for terminal output
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/fwsync/internal/changes"
	"github.com/desertthunder/fwsync/internal/journal"
	"github.com/desertthunder/fwsync/internal/models"
)

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title   lipgloss.Style
	ok      lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	pending lipgloss.Style
	help    lipgloss.Style
}

func NewPalette(t, s, e, w, p, h string) *Palette {
	return &Palette{
		title:   NewBold(t).MarginBottom(1),
		ok:      NewBold(s),
		err:     NewBold(e),
		warn:    NewStyle(w),
		pending: NewStyle(p),
		help:    NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262", "#626262")

// StatusLabel renders a task status with its lifecycle color.
func StatusLabel(s changes.Status) string {
	switch s {
	case changes.Done:
		return styles.ok.Render(s.String())
	case changes.Failed:
		return styles.err.Render(s.String())
	case changes.Submitted:
		return styles.warn.Render(s.String())
	default:
		return styles.pending.Render(s.String())
	}
}

// FormatTask renders one task as a single line.
func FormatTask(task *changes.Task) string {
	return fmt.Sprintf("%s  %-8s  %s", task.ID, task.Change.Kind(), StatusLabel(task.Status()))
}

// FormatTasks renders a staged-task listing with a summary line.
func FormatTasks(tasks []*changes.Task) string {
	var buf bytes.Buffer

	buf.WriteString(styles.title.Render("Tasks") + "\n")
	if len(tasks) == 0 {
		buf.WriteString(styles.help.Render("nothing staged") + "\n")
		return buf.String()
	}

	counts := map[changes.Status]int{}
	for _, task := range tasks {
		counts[task.Status()]++
		buf.WriteString(FormatTask(task) + "\n")
	}

	buf.WriteString(fmt.Sprintf("\n%d total, %d done, %d failed\n",
		len(tasks), counts[changes.Done], counts[changes.Failed]))
	return buf.String()
}

// FormatCollections renders an archive listing with move/upload capability markers.
func FormatCollections(colls []models.Collection) string {
	var buf bytes.Buffer

	buf.WriteString(styles.title.Render("Archives") + "\n")
	for _, coll := range colls {
		caps := ""
		if coll.CanMoveTo {
			caps += " [move]"
		}
		if coll.CanUploadTo {
			caps += " [upload]"
		}
		buf.WriteString(fmt.Sprintf("%s  %s%s\n", coll.Href, coll.Name, styles.help.Render(caps)))
	}
	buf.WriteString(fmt.Sprintf("\n%d archives\n", len(colls)))
	return buf.String()
}

// FormatAssets renders a search-result or archive listing.
func FormatAssets(assets []models.Asset) string {
	var buf bytes.Buffer

	for _, asset := range assets {
		buf.WriteString(fmt.Sprintf("%s  %s\n", asset.Href, asset.Filename))
	}
	buf.WriteString(fmt.Sprintf("\n%d assets\n", len(assets)))
	return buf.String()
}

// FormatSessions renders the journal's session history, newest first.
func FormatSessions(sessions []journal.Session) string {
	var buf bytes.Buffer

	buf.WriteString(styles.title.Render("Sessions") + "\n")
	for _, s := range sessions {
		state := styles.warn.Render("open")
		if s.FinishedAt != nil {
			state = styles.ok.Render("finished")
		}
		buf.WriteString(fmt.Sprintf("%s  %s  %s\n", s.ID, s.StartedAt.Format("2006-01-02 15:04:05"), state))
	}
	return buf.String()
}

// FormatRecords renders one session's task outcomes.
func FormatRecords(records []journal.TaskRecord) string {
	var buf bytes.Buffer

	for _, r := range records {
		line := fmt.Sprintf("%s  %-8s  %s", r.TaskID, r.Kind, r.Status)
		if r.Detail != "" {
			line += "  " + styles.help.Render(r.Detail)
		}
		buf.WriteString(line + "\n")
	}
	buf.WriteString(fmt.Sprintf("\n%d records\n", len(records)))
	return buf.String()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// ExportAssetsCSV converts an asset listing to CSV with columns: Href, Filename, Created, Modified, Size
func ExportAssetsCSV(assets []models.Asset) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Href", "Filename", "Created", "Modified", "Size"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, asset := range assets {
		record := []string{
			asset.Href,
			asset.Filename,
			formatTime(asset.Created),
			formatTime(asset.Modified),
			strconv.FormatInt(asset.Filesize, 10),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}
