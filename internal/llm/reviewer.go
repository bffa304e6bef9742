package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/schedule"
)

const reviewerSystemPrompt = `You are a minimalist day-planning coach. Output ONLY the exact format shown - no markdown, no extra text. Be extremely concise.`

const reviewPromptTemplate = `Review this day plan and output EXACTLY this format (no markdown, no code blocks):

THEME: [ 2-4 word theme ]

⚖️  BALANCE: One sentence about how time splits across categories.
⚠️  CONFLICTS: One sentence naming overlapping schedules, or omit the line.
🌙 REST: One sentence about free time and breaks.

➜  One specific change to make the day work better.

Current time: %s
Planning window: %s-%s

Schedules:
%s

Rules:
- Use the exact emoji prefixes shown
- Keep each line under 70 characters
- Be specific with times and durations from the data
- Output plain text only, no markdown formatting`

// Reviewer asks the LLM for a short critique of a day plan.
type Reviewer struct {
	client Client
}

// NewReviewer creates a new Reviewer with the given LLM client.
func NewReviewer(client Client) *Reviewer {
	return &Reviewer{client: client}
}

// ReviewDay sends the day's schedules to the LLM and returns its critique.
func (r *Reviewer) ReviewDay(ctx context.Context, schedules []schedule.Schedule, at, dayStart, dayEnd string) (string, error) {
	prompt := fmt.Sprintf(reviewPromptTemplate, at, dayStart, dayEnd, FormatDay(schedules))

	return r.client.Chat(ctx, []Message{
		{Role: RoleSystem, Content: reviewerSystemPrompt},
		{Role: RoleUser, Content: prompt},
	})
}

// FormatDay renders schedules one per line in time order, flagging the
// ones that overlap another.
func FormatDay(schedules []schedule.Schedule) string {
	if len(schedules) == 0 {
		return "  (none)\n"
	}

	var sb strings.Builder
	for _, s := range schedule.SortByTime(schedules) {
		marker := "  "
		if schedule.HasOverlap(s, schedules) {
			marker = "!!"
		}
		fmt.Fprintf(&sb, "  %s %s-%s  [%s]  %s  %s\n",
			marker,
			s.StartTime,
			s.EndTime,
			s.Category,
			s.Title,
			clock.FormatDuration(s.Duration()))
	}
	return sb.String()
}
