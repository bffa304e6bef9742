package exchange

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/clockplan/internal/schedule"
)

var fixedNow = time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)

func sample() []schedule.Schedule {
	return []schedule.Schedule{
		{
			ID: "b", Title: "Gym", StartTime: "18:00", EndTime: "19:00",
			Category: schedule.CategoryExercise, Color: "#EF4444", NotificationEnabled: false,
		},
		{
			ID: "a", Title: "Deep work", StartTime: "09:00", EndTime: "11:30",
			Category: schedule.CategoryWork, Color: "#3B82F6", NotificationEnabled: true,
			NotificationID: "notify-a-0900", CreatedAt: "2025-03-13T10:00:00Z", UpdatedAt: "2025-03-13T10:00:00Z",
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: "YAML", want: FormatYAML},
		{in: "yml", want: FormatYAML},
		{in: " ical ", want: FormatICS},
		{in: "svg", want: FormatSVG},
		{in: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	if f, err := FormatFromPath("/tmp/day.ics"); err != nil || f != FormatICS {
		t.Errorf("FormatFromPath(day.ics) = %q, %v", f, err)
	}
	if _, err := FormatFromPath("/tmp/day"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("missing extension error = %v", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, FormatJSON, sample(), ExportOptions{Now: fixedNow}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"version": 1`, `"exportedAt": "2025-03-14T08:00:00Z"`, `"startTime": "18:00"`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON export missing %s", want)
		}
	}

	res, err := Import(strings.NewReader(out), FormatJSON, ImportOptions{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(res.Inputs) != 2 {
		t.Fatalf("inputs = %d, want 2", len(res.Inputs))
	}
	if res.Inputs[0].Title != "Gym" || res.Inputs[1].StartTime != "09:00" || !res.Inputs[1].NotificationEnabled {
		t.Errorf("inputs = %+v", res.Inputs)
	}
}

func TestImportJSON_BareList(t *testing.T) {
	in := `[{"title":" Read ","startTime":"21:00","endTime":"22:00","category":"study"}]`
	res, err := Import(strings.NewReader(in), FormatJSON, ImportOptions{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(res.Inputs) != 1 || res.Inputs[0].Title != "Read" || res.Inputs[0].Category != schedule.CategoryStudy {
		t.Errorf("inputs = %+v", res.Inputs)
	}
}

func TestImport_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		in      string
		wantErr error
	}{
		{name: "bad time", format: FormatJSON, in: `[{"title":"X","startTime":"9:00","endTime":"10:00","category":"work"}]`, wantErr: schedule.ErrInvalidTimeFormat},
		{name: "inverted", format: FormatJSON, in: `[{"title":"X","startTime":"11:00","endTime":"10:00","category":"work"}]`, wantErr: schedule.ErrEndBeforeStart},
		{name: "category", format: FormatYAML, in: "- title: X\n  startTime: \"09:00\"\n  endTime: \"10:00\"\n  category: nap\n", wantErr: schedule.ErrInvalidCategory},
		{name: "svg", format: FormatSVG, in: "<svg/>", wantErr: ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(strings.NewReader(tt.in), tt.format, ImportOptions{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Import() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := Import(strings.NewReader("{not json"), FormatJSON, ImportOptions{}); err == nil {
		t.Error("expected parse error")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, FormatYAML, sample(), ExportOptions{Now: fixedNow}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "version: 1") || !strings.Contains(out, "startTime: \"09:00\"") {
		t.Errorf("YAML export:\n%s", out)
	}

	res, err := Import(strings.NewReader(out), FormatYAML, ImportOptions{})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(res.Inputs) != 2 || res.Inputs[1].Title != "Deep work" {
		t.Errorf("inputs = %+v", res.Inputs)
	}

	empty, err := Import(strings.NewReader(""), FormatYAML, ImportOptions{})
	if err != nil || len(empty.Inputs) != 0 {
		t.Errorf("empty YAML = %+v, %v", empty, err)
	}
}

func TestExportICS(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, FormatICS, sample(), ExportOptions{Now: fixedNow, Date: fixedNow})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	if strings.Count(out, "BEGIN:VEVENT") != 2 {
		t.Errorf("VEVENT count = %d, want 2", strings.Count(out, "BEGIN:VEVENT"))
	}
	if strings.Count(out, "BEGIN:VALARM") != 1 {
		t.Errorf("VALARM count = %d, want 1", strings.Count(out, "BEGIN:VALARM"))
	}
	for _, want := range []string{
		"PRODID:-//clockplan//clockplan//EN",
		"UID:a-20250314@clockplan",
		"DTSTART:20250314T090000Z",
		"DTEND:20250314T113000Z",
		"SUMMARY:Deep work",
		"CATEGORIES:WORK",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ICS missing %q", want)
		}
	}
	if strings.Index(out, "SUMMARY:Deep work") > strings.Index(out, "SUMMARY:Gym") {
		t.Error("events not in time order")
	}
}

func TestICSRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, FormatICS, sample(), ExportOptions{Now: fixedNow, Date: fixedNow}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	res, err := Import(&buf, FormatICS, ImportOptions{Location: time.UTC})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(res.Inputs) != 2 {
		t.Fatalf("inputs = %+v skipped = %v", res.Inputs, res.Skipped)
	}
	work := res.Inputs[0]
	if work.Title != "Deep work" || work.StartTime != "09:00" || work.EndTime != "11:30" ||
		work.Category != schedule.CategoryWork || !work.NotificationEnabled {
		t.Errorf("work = %+v", work)
	}
	gym := res.Inputs[1]
	if gym.Category != schedule.CategoryExercise || gym.NotificationEnabled {
		t.Errorf("gym = %+v", gym)
	}
}

func TestImportICS_Skips(t *testing.T) {
	ics := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:1",
		"SUMMARY:Overnight",
		"DTSTART:20250314T230000Z",
		"DTEND:20250315T010000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:2",
		"SUMMARY:Holiday",
		"DTSTART;VALUE=DATE:20250314",
		"DTEND;VALUE=DATE:20250315",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:3",
		"SUMMARY:Lunch with a very long title that keeps going past the limit",
		"CATEGORIES:social,personal",
		"DTSTART:20250314T120000Z",
		"DTEND:20250314T130000Z",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	res, err := Import(strings.NewReader(ics), FormatICS, ImportOptions{Location: time.UTC})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(res.Skipped) != 2 {
		t.Errorf("skipped = %v, want 2", res.Skipped)
	}
	if len(res.Inputs) != 1 {
		t.Fatalf("inputs = %+v", res.Inputs)
	}
	lunch := res.Inputs[0]
	if len([]rune(lunch.Title)) != schedule.MaxTitleLength {
		t.Errorf("title not truncated: %q", lunch.Title)
	}
	if lunch.Category != schedule.CategoryPersonal {
		t.Errorf("category = %q, want personal", lunch.Category)
	}
}

func TestExportSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, FormatSVG, sample(), ExportOptions{Now: fixedNow}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "<svg") || strings.Count(buf.String(), "<title>") != 2 {
		t.Errorf("unexpected SVG output")
	}
}
