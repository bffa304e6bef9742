package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/clockplan/internal/schedule"
)

const systemPromptWithContext = `You are a personal day planner. The user keeps a single 24-hour daily agenda.

Context:
- Current time: %s (%s)
- Planning window: %s to %s
- Categories: %s

%s

%s

User request: "%s"

Rules:
1. Every schedule happens today, between 00:00 and 23:59. Nothing may cross midnight.
2. Use 24-hour HH:MM for start_time and end_time, zero padded (09:05, not 9:05).
3. end_time must be strictly after start_time.
4. Never overlap with the existing schedules listed above, and never overlap each other.
   Back-to-back is fine: one may end at 10:00 and the next start at 10:00.
5. Prefer the free slots listed above and keep inside the planning window unless the user asks otherwise.
6. Do not schedule before the current time.
7. Round to 15-minute increments (minimum 15 minutes).
8. category must be one of: work, personal, exercise, study, meeting.
9. Titles are short (at most 50 characters).
10. Set notify to false only if the user asks for no reminder.
11. Add a warning when something the user asked for does not fit.

Respond ONLY with valid JSON (no markdown, no explanation):
{
  "schedules": [
    {
      "title": "string",
      "category": "work",
      "start_time": "HH:MM",
      "end_time": "HH:MM",
      "notify": true
    }
  ],
  "warnings": ["string"],
  "suggestions": ["string"]
}`

const systemPromptCompact = `You are a scheduling assistant. Return JSON only.

Now: %s
Window: %s to %s
%s
%s
Request: "%s"

Rules:
- Today only, HH:MM 24-hour, end after start, no crossing midnight.
- No overlaps with existing schedules or with each other.
- 15-minute increments. Do not start before now.
- category is one of work, personal, exercise, study, meeting.
- "warnings" and "suggestions" are arrays of strings.

{"schedules":[{"title":"string","category":"work","start_time":"HH:MM","end_time":"HH:MM","notify":true}],"warnings":[],"suggestions":[]}`

// PlanRequest contains the input for the planner.
type PlanRequest struct {
	Input            string
	Now              time.Time
	DayStart         string              // "HH:MM"
	DayEnd           string              // "HH:MM"
	Existing         []schedule.Schedule // already on the dial
	FreeSlots        []string            // "HH:MM-HH:MM"
	UseCompactPrompt bool                // shorter prompt for local models
}

// PlanResponse contains the parsed LLM response.
type PlanResponse struct {
	Schedules   []PlannedSchedule `json:"schedules"`
	Warnings    []string          `json:"warnings"`
	Suggestions []string          `json:"suggestions"`
}

// PlannedSchedule is one schedule proposed by the LLM.
type PlannedSchedule struct {
	Title     string `json:"title"`
	Category  string `json:"category"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Notify    *bool  `json:"notify,omitempty"`
}

// Planner uses an LLM to plan schedules from natural language input.
type Planner struct {
	client Client
}

// NewPlanner creates a new Planner with the given LLM client.
func NewPlanner(client Client) *Planner {
	return &Planner{client: client}
}

// Plan converts natural language input into proposed schedules.
func (p *Planner) Plan(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	return p.PlanWithMessages(ctx, p.BuildInitialMessages(req))
}

// PlanWithMessages plans from a pre-built message history, used when
// retrying with validation feedback appended.
func (p *Planner) PlanWithMessages(ctx context.Context, messages []Message) (*PlanResponse, error) {
	var resp PlanResponse
	if err := p.client.ChatJSON(ctx, messages, &resp); err != nil {
		return nil, fmt.Errorf("getting plan from LLM: %w", err)
	}
	return &resp, nil
}

// BuildInitialMessages creates the initial message list for a planning request.
func (p *Planner) BuildInitialMessages(req PlanRequest) []Message {
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	dayStart := req.DayStart
	if dayStart == "" {
		dayStart = "07:00"
	}
	dayEnd := req.DayEnd
	if dayEnd == "" {
		dayEnd = "23:00"
	}

	existing := formatExisting(req.Existing)
	free := formatFreeSlots(req.FreeSlots)

	var prompt string
	if req.UseCompactPrompt {
		prompt = fmt.Sprintf(systemPromptCompact,
			now.Format("15:04"),
			dayStart,
			dayEnd,
			existing,
			free,
			req.Input,
		)
	} else {
		prompt = fmt.Sprintf(systemPromptWithContext,
			now.Format("15:04"),
			now.Format("Monday"),
			dayStart,
			dayEnd,
			categoryList(),
			existing,
			free,
			req.Input,
		)
	}

	return []Message{
		{Role: RoleSystem, Content: prompt},
	}
}

func categoryList() string {
	names := make([]string, 0, 5)
	for _, c := range schedule.Categories() {
		names = append(names, string(c.ID))
	}
	return strings.Join(names, ", ")
}

func formatExisting(schedules []schedule.Schedule) string {
	if len(schedules) == 0 {
		return "Existing schedules: None"
	}

	var sb strings.Builder
	sb.WriteString("Existing schedules (do not overlap):\n")
	for _, s := range schedule.SortByTime(schedules) {
		fmt.Fprintf(&sb, "- %s-%s: %s [%s]\n", s.StartTime, s.EndTime, s.Title, s.Category)
	}
	return sb.String()
}

func formatFreeSlots(slots []string) string {
	if len(slots) == 0 {
		return "Free slots: None"
	}
	return "Free slots: " + strings.Join(slots, ", ")
}

// Inputs converts the proposals to schedule inputs. Titles are trimmed and
// categories lower-cased; nothing is validated here.
func (pr *PlanResponse) Inputs() []schedule.Input {
	inputs := make([]schedule.Input, 0, len(pr.Schedules))
	for _, ps := range pr.Schedules {
		notify := true
		if ps.Notify != nil {
			notify = *ps.Notify
		}
		inputs = append(inputs, schedule.Input{
			Title:               strings.TrimSpace(ps.Title),
			StartTime:           strings.TrimSpace(ps.StartTime),
			EndTime:             strings.TrimSpace(ps.EndTime),
			Category:            schedule.Category(strings.ToLower(strings.TrimSpace(ps.Category))),
			NotificationEnabled: notify,
		})
	}
	return inputs
}
