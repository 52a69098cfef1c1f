package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tutorbot-backend/internal/models"
	"tutorbot-backend/internal/services"
)

var (
	askSubject string
	askGrade   int
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one question from the terminal",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askSubject, "subject", "s", models.DefaultSubject, "tutoring subject")
	askCmd.Flags().IntVarP(&askGrade, "grade", "g", models.DefaultGrade, "student grade level")
	rootCmd.AddCommand(askCmd)
}

var errAskFailed = errors.New("question not answered")

func runAsk(cmd *cobra.Command, args []string) error {
	_, tutor, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	return ask(cmd.Context(), cmd, tutor, models.ChatRequest{
		Message: strings.Join(args, " "),
		Subject: askSubject,
		Grade:   askGrade,
	})
}

type asker interface {
	Ask(ctx context.Context, req models.ChatRequest) (string, error)
}

// ask prints the student-facing reply; failures still print their message.
func ask(ctx context.Context, cmd *cobra.Command, tutor asker, req models.ChatRequest) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reply, err := tutor.Ask(ctx, req)
	fmt.Fprintln(cmd.OutOrStdout(), services.UserReply(reply, err))
	if err != nil {
		return errAskFailed
	}
	return nil
}
