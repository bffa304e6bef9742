package llm

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/clockplan/internal/schedule"
)

type fakeClient struct {
	reply    string
	messages []Message
}

func (f *fakeClient) Chat(_ context.Context, messages []Message) (string, error) {
	f.messages = messages
	return f.reply, nil
}

func (f *fakeClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := f.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return decodeJSON(content, result)
}

func TestBuildInitialMessages_IncludesContext(t *testing.T) {
	p := NewPlanner(&fakeClient{})
	now := time.Date(2025, 1, 10, 8, 45, 0, 0, time.Local)

	msgs := p.BuildInitialMessages(PlanRequest{
		Input:    "gym after work",
		Now:      now,
		DayStart: "07:00",
		DayEnd:   "22:00",
		Existing: []schedule.Schedule{
			{Title: "Standup", StartTime: "09:00", EndTime: "09:15", Category: schedule.CategoryMeeting},
		},
		FreeSlots: []string{"09:15-22:00"},
	})

	if len(msgs) != 1 || msgs[0].Role != RoleSystem {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
	prompt := msgs[0].Content
	for _, want := range []string{
		"Current time: 08:45 (Friday)",
		"Planning window: 07:00 to 22:00",
		"- 09:00-09:15: Standup [meeting]",
		"Free slots: 09:15-22:00",
		`User request: "gym after work"`,
		"work, personal, exercise, study, meeting",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildInitialMessages_CompactPrompt(t *testing.T) {
	p := NewPlanner(&fakeClient{})
	msgs := p.BuildInitialMessages(PlanRequest{
		Input:            "read a book",
		Now:              time.Date(2025, 1, 10, 20, 0, 0, 0, time.Local),
		UseCompactPrompt: true,
	})

	prompt := msgs[0].Content
	if !strings.Contains(prompt, "Return JSON only") {
		t.Error("compact prompt not used")
	}
	if !strings.Contains(prompt, "Window: 07:00 to 23:00") {
		t.Error("default window missing")
	}
	if !strings.Contains(prompt, "Existing schedules: None") {
		t.Error("empty existing section missing")
	}
	if !strings.Contains(prompt, "Free slots: None") {
		t.Error("empty free slot section missing")
	}
}

func TestPlan(t *testing.T) {
	client := &fakeClient{reply: `{"schedules":[{"title":"Gym","category":"exercise","start_time":"18:00","end_time":"19:00"}]}`}
	p := NewPlanner(client)

	resp, err := p.Plan(context.Background(), PlanRequest{Input: "gym"})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(resp.Schedules) != 1 || resp.Schedules[0].Title != "Gym" {
		t.Errorf("Plan() = %+v", resp)
	}
}

func TestReviewDay(t *testing.T) {
	client := &fakeClient{reply: "THEME: Busy morning"}
	r := NewReviewer(client)

	got, err := r.ReviewDay(context.Background(), []schedule.Schedule{
		{ID: "a", Title: "Write", StartTime: "09:00", EndTime: "10:30", Category: schedule.CategoryWork},
		{ID: "b", Title: "Call", StartTime: "10:00", EndTime: "10:30", Category: schedule.CategoryMeeting},
	}, "08:00", "07:00", "22:00")
	if err != nil {
		t.Fatalf("ReviewDay() error = %v", err)
	}
	if got != "THEME: Busy morning" {
		t.Errorf("ReviewDay() = %q", got)
	}
	if len(client.messages) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(client.messages))
	}
	user := client.messages[1].Content
	if !strings.Contains(user, "!! 09:00-10:30  [work]  Write  1h30m") {
		t.Errorf("overlap marker missing:\n%s", user)
	}
	if !strings.Contains(user, "Planning window: 07:00-22:00") {
		t.Errorf("window missing:\n%s", user)
	}
}

func TestFormatDay_Empty(t *testing.T) {
	if got := FormatDay(nil); got != "  (none)\n" {
		t.Errorf("FormatDay(nil) = %q", got)
	}
}
