package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"quizdesk/internal/app"
	"quizdesk/internal/domain"
)

func newQuizzesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "quizzes",
		Short: "List quizzes",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			view := app.NewAuthoringView(s.client)
			if err := view.Load(cmd.Context()); err != nil {
				return err
			}
			return writeQuizTable(cmd.OutOrStdout(), view.Quizzes())
		},
	}
}

func newQuizCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Inspect and manage a single quiz",
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a quiz with its questions and share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			view := app.NewAuthoringView(s.client)
			if err := view.Select(cmd.Context(), args[0]); err != nil {
				return err
			}
			quiz, _ := view.Selected()
			writeQuiz(cmd.OutOrStdout(), opts.cfg.Console.PublicURL, quiz)
			return nil
		},
	}

	var title, description string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a quiz",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			view := app.NewAuthoringView(s.client)
			view.OpenNewQuiz()
			if err := view.SaveQuiz(cmd.Context(), domain.QuizDraft{Title: title, Description: description}); err != nil {
				return err
			}
			return writeQuizTable(cmd.OutOrStdout(), view.Quizzes())
		},
	}
	create.Flags().StringVar(&title, "title", "", "quiz title")
	create.Flags().StringVar(&description, "description", "", "quiz description")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a quiz and its questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			view := app.NewAuthoringView(s.client)
			if err := view.DeleteQuiz(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(show, create, del)
	return cmd
}

func writeQuizTable(w io.Writer, quizzes []domain.Quiz) error {
	if len(quizzes) == 0 {
		fmt.Fprintln(w, "No quizzes yet.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDESCRIPTION")
	for _, q := range quizzes {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", q.ID, q.Title, q.Description)
	}
	return tw.Flush()
}

func writeQuiz(w io.Writer, publicURL string, q domain.Quiz) {
	fmt.Fprintf(w, "%s\n", q.Title)
	if q.Description != "" {
		fmt.Fprintf(w, "%s\n", q.Description)
	}
	fmt.Fprintf(w, "Share link: %s%s\n", publicURL, app.QuizPath(q.ID))
	if len(q.Questions) == 0 {
		fmt.Fprintln(w, "No questions yet.")
		return
	}
	for i, question := range q.Questions {
		fmt.Fprintf(w, "\n%d. %s [%s, %d points]\n", i+1, question.Text, question.Type.Label(), question.Points)
		if !question.Type.IsChoice() {
			fmt.Fprintf(w, "   answer: %s\n", question.CorrectAnswerText)
			continue
		}
		for _, opt := range question.Options {
			mark := " "
			if opt.IsCorrect {
				mark = "*"
			}
			fmt.Fprintf(w, "   %s %s\n", mark, opt.Text)
		}
	}
}
