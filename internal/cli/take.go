package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"quizdesk/internal/app"
	"quizdesk/internal/domain"
)

func newTakeCmd(opts *options) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "take <quiz-id>",
		Short: "Take a quiz in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			view := app.NewTakingView(s.client, args[0])
			if err := view.Load(cmd.Context()); err != nil {
				return err
			}
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			if !cmd.Flags().Changed("name") {
				name = prompt(in, out, "Your name (optional): ")
			}
			view.SetUserName(name)
			return runTake(cmd.Context(), view, in, out)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "respondent name")
	return cmd
}

func runTake(ctx context.Context, view *app.TakingView, in *bufio.Reader, out io.Writer) error {
	quiz := view.Quiz()
	fmt.Fprintf(out, "\n%s\n", quiz.Title)
	if quiz.Description != "" {
		fmt.Fprintln(out, quiz.Description)
	}
	for i, q := range quiz.Questions {
		askQuestion(view, q, i+1, in, out)
	}

	for {
		result, err := view.Submit(ctx)
		if err == nil {
			fmt.Fprintln(out)
			return app.NewScorecard(result).WriteText(out)
		}
		fmt.Fprintf(out, "submit failed: %s\n", domain.Message(err, "Failed to submit quiz"))
		if !strings.EqualFold(prompt(in, out, "Retry? [y/N]: "), "y") {
			return err
		}
	}
}

func askQuestion(view *app.TakingView, q domain.Question, number int, in *bufio.Reader, out io.Writer) {
	fmt.Fprintf(out, "\nQuestion %d (%s, %d points)\n%s\n", number, q.Type.Label(), q.Points, q.Text)
	if !q.Type.IsChoice() {
		if text := prompt(in, out, "> "); text != "" {
			_ = view.SetAnswer(q.ID, domain.AnswerTextResponse, text)
		}
		return
	}
	for i, opt := range q.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt.Text)
	}
	for {
		raw := strings.TrimSpace(prompt(in, out, "> "))
		if raw == "" {
			return
		}
		n, err := strconv.Atoi(raw)
		if err == nil && n >= 1 && n <= len(q.Options) {
			_ = view.SetAnswer(q.ID, domain.AnswerSelectedOption, q.Options[n-1].ID)
			return
		}
		fmt.Fprintf(out, "pick a number between 1 and %d, or leave empty to skip\n", len(q.Options))
	}
}
