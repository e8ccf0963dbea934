package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"cryptoledger/internal/core/domain"
)

// Environment variables passed to notification scripts.
const (
	EnvEventName = "CRYPTOLEDGER_EVENT_NAME"
	EnvEventData = "CRYPTOLEDGER_EVENT_DATA"
)

// ScriptSubscriber runs an external executable for each event. The event
// type and JSON payload arrive in the child's environment, so shell scripts
// can react without parsing arguments.
type ScriptSubscriber struct {
	command string
}

// NewScriptSubscriber creates a subscriber invoking the given executable.
func NewScriptSubscriber(command string) *ScriptSubscriber {
	return &ScriptSubscriber{command: command}
}

func (s *ScriptSubscriber) Name() string {
	return "script:" + filepath.Base(s.command)
}

// Receive runs the script and waits for it. A non-zero exit status is a
// delivery failure.
func (s *ScriptSubscriber) Receive(ctx context.Context, e domain.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	cmd := exec.CommandContext(ctx, s.command)
	cmd.Env = append(os.Environ(),
		EnvEventName+"="+e.Type,
		EnvEventData+"="+string(payload),
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("running %s: %w (output: %s)", s.command, err, out)
	}
	return nil
}
