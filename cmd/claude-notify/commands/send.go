package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"github.com/nerdmakr/claude-notify/internal/model"
)

var (
	sendMessage  string
	sendProject  string
	sendModel    string
	sendDuration time.Duration
)

// NewSendCommand creates the send command, which posts a completion
// event to a running agent. It is what a hook script calls.
func NewSendCommand() *cobra.Command {
	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Post a task-completion event to the running agent",
		Long: `send posts a completion event to the agent's loopback endpoint.
It is intended to be called from a coding assistant's stop hook:

  claude-notify send --project "$PWD" --message "Task completed"`,
		RunE: runSend,
	}

	sendCmd.Flags().StringVar(&sendProject, "project", "", "absolute project path (defaults to the working directory)")
	sendCmd.Flags().StringVar(&sendMessage, "message", "", "completion message")
	sendCmd.Flags().StringVar(&sendModel, "model", "", "model identifier")
	sendCmd.Flags().DurationVar(&sendDuration, "duration", 0, "task duration; sets the start/end window")

	return sendCmd
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	project := sendProject
	if project == "" {
		project, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
	}

	payload := map[string]string{
		"project": project,
	}
	if sendMessage != "" {
		payload["message"] = sendMessage
	}
	if sendModel != "" {
		payload["model"] = sendModel
	}
	if sendDuration > 0 {
		end := time.Now()
		start := end.Add(-sendDuration)
		payload["startTime"] = start.Format(time.RFC3339Nano)
		payload["endTime"] = end.Format(time.RFC3339Nano)
	}

	client := resty.New().
		SetBaseURL(fmt.Sprintf("http://127.0.0.1:%d", cfg.Listen.Port)).
		SetTimeout(5 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/notify")
	if err != nil {
		return fmt.Errorf("posting to agent (is it running?): %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("agent rejected event: %d %s", resp.StatusCode(), resp.String())
	}

	return nil
}
