package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"quizdesk/internal/config"
	"quizdesk/internal/domain"
	"quizdesk/internal/logger"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	apiURL     string
	cfg        config.Config
}

// Execute runs the CLI.
func Execute() error {
	cmd := newRootCmd()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", userMessage(err))
	}
	return err
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "quizdesk",
		Short:         "Author quizzes and take them against the quiz backend",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envErr := config.LoadEnv()
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.apiURL != "" {
				cfg.API.BaseURL = opts.apiURL
			}
			if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr()); err != nil {
				return err
			}
			if envErr != nil {
				log.Debug().Err(envErr).Msg("no env file loaded")
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "backend base URL (overrides QUIZ_API_URL)")
	cmd.AddCommand(
		newServeCmd(opts),
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newStatusCmd(opts),
		newQuizzesCmd(opts),
		newQuizCmd(opts),
		newTakeCmd(opts),
	)
	return cmd
}

// userMessage turns a command error into the line shown to the operator.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthExpired):
		return "session expired, run quizdesk login"
	case errors.Is(err, domain.ErrTransport):
		return "backend unreachable: " + err.Error()
	}
	return domain.Message(err, err.Error())
}
