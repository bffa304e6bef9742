package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/clockplan/internal/clock"
	"github.com/javiermolinar/clockplan/internal/llm"
	"github.com/javiermolinar/clockplan/internal/planner"
	"github.com/javiermolinar/clockplan/internal/schedule"
)

const maxRetries = 3

func (a *App) planCmd() *cobra.Command {
	var (
		modelFlag string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "plan [description]",
		Short: "Plan schedules from natural language input",
		Long: `Use AI to turn a description of your day into schedules.

The proposal is checked against your existing schedules and the
current time; invalid proposals are sent back to the model to fix.

Examples:
  clockplan plan "gym after work, call mom in the evening"
  clockplan plan "two hours of study this afternoon" --dry-run

Interactive mode:
  After the AI proposes schedules, you can:
  - [a]ccept: Save the schedules
  - [m]odify: Provide feedback to adjust the proposal
  - [c]ancel: Exit without saving`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			input := strings.Join(args, " ")

			// Use config default for model if not overridden
			model := modelFlag
			if model == "" {
				model = a.config.LLM.Model
			}

			client, err := llm.NewClient(a.config.LLM.Provider, model, a.config.LLM.BaseURL)
			if err != nil {
				return fmt.Errorf("creating LLM client: %w", err)
			}

			p := planner.New(client, a.store, planner.Options{
				DayStart: a.config.Day.Start,
				DayEnd:   a.config.Day.End,
				Provider: a.config.LLM.Provider,
				Now:      a.now,
				Logger:   a.log,
			})

			return a.runPlanLoop(context.Background(), p, input, dryRun)
		},
	}

	cmd.Flags().StringVar(&modelFlag, "model", "", "LLM model to use (from config if not set)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show planned schedules without saving")

	return cmd
}

// runPlanLoop proposes schedules and lets the user accept, modify or cancel.
func (a *App) runPlanLoop(ctx context.Context, p *planner.Planner, input string, dryRun bool) error {
	fmt.Fprintln(a.out, "Planning...")
	result, err := p.PlanWithRetry(ctx, input, maxRetries)
	if err != nil {
		return fmt.Errorf("planning: %w", err)
	}

	for {
		a.displayPlanResult(result)

		if result.HasValidationErrors() {
			fmt.Fprintln(a.out, "\nValidation errors (LLM retry limit reached):")
			for _, ve := range result.ValidationErrors {
				fmt.Fprintf(a.out, "  - %s\n", ve.String())
			}
		}

		if dryRun {
			fmt.Fprintln(a.out, "\n(Dry run - schedules not saved)")
			return nil
		}

		fmt.Fprint(a.out, "\n[a]ccept / [m]odify / [c]ancel: ")
		choice := strings.ToLower(a.readLine())

		switch choice {
		case "a", "accept":
			if result.HasValidationErrors() {
				fmt.Fprintln(a.out, "Cannot save: there are unresolved validation errors.")
				fmt.Fprintln(a.out, "Please [m]odify the plan or [c]ancel.")
				continue
			}
			saved, err := p.Save(ctx, result)
			if err != nil {
				return fmt.Errorf("saving schedules: %w", err)
			}
			fmt.Fprintf(a.out, "\n%d schedules saved\n", len(saved))
			return nil

		case "m", "modify":
			fmt.Fprint(a.out, "What would you like to change? ")
			modification := a.readLine()
			if modification == "" {
				fmt.Fprintln(a.out, "No modification provided, showing current plan...")
				continue
			}

			fmt.Fprintln(a.out, "\nReplanning...")
			result, err = p.ContinuePlanning(ctx, modification, maxRetries)
			if err != nil {
				return fmt.Errorf("replanning: %w", err)
			}

		case "c", "cancel", "":
			fmt.Fprintln(a.out, "Planning cancelled.")
			return nil

		default:
			fmt.Fprintln(a.out, "Invalid choice. Please enter 'a', 'm', or 'c'.")
		}
	}
}

// displayPlanResult shows the planning result to the user.
func (a *App) displayPlanResult(result *planner.Result) {
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Planning at %s, free today: %s\n", result.At, clock.FormatDuration(result.FreeMinutes))

	if len(result.Warnings) > 0 {
		fmt.Fprintln(a.out, "\nWarnings:")
		for _, w := range result.Warnings {
			fmt.Fprintf(a.out, "  ! %s\n", w)
		}
	}

	if len(result.Suggestions) > 0 {
		fmt.Fprintln(a.out, "\nSuggestions:")
		for _, s := range result.Suggestions {
			fmt.Fprintf(a.out, "  * %s\n", s)
		}
	}

	if len(result.Proposals) == 0 {
		fmt.Fprintln(a.out, "\nNo schedules proposed.")
		return
	}

	fmt.Fprintln(a.out, strings.Repeat("-", 60))
	for _, in := range result.Proposals {
		s := in.Apply(schedule.Schedule{})
		fmt.Fprintf(a.out, "  %s %s-%s  %s  %s\n",
			s.Category.Icon(), s.StartTime, s.EndTime, s.Title,
			formatMuted(clock.FormatDuration(s.Duration())))
	}
	fmt.Fprintln(a.out, strings.Repeat("-", 60))
	fmt.Fprintf(a.out, "Total: %d schedules, %s\n", len(result.Proposals), clock.FormatDuration(result.TotalMinutes()))
}
