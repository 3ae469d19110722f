package gitmcp

import (
	"encoding/json"
	"errors"

	gitwireerrors "gitwire.dev/gitwire/internal/errors"
)

// errorPayload is the machine-readable body of a failed tool call. It is
// serialized into the tool error text so calling agents can branch on
// category and severity instead of scraping prose.
type errorPayload struct {
	Tool      string   `json:"tool"`
	Category  string   `json:"category"`
	Severity  string   `json:"severity"`
	Message   string   `json:"message"`
	Retryable bool     `json:"retryable"`
	BackoffMS int64    `json:"backoff_ms,omitempty"`
	Recovery  []string `json:"recovery,omitempty"`
	ExitCode  int      `json:"exit_code,omitempty"`
	Command   string   `json:"command,omitempty"`
	Stderr    string   `json:"stderr,omitempty"`
}

// toolError converts a service failure into the error a tool call reports.
func toolError(tool string, err error) error {
	classified := gitwireerrors.Classify(err)
	payload := errorPayload{
		Tool:      tool,
		Category:  string(classified.Category),
		Severity:  string(classified.Severity),
		Message:   classified.Message,
		Retryable: classified.Retryable(),
		BackoffMS: classified.Backoff().Milliseconds(),
		Recovery:  classified.Recovery,
		ExitCode:  classified.ExitCode,
		Command:   classified.Command,
		Stderr:    classified.Stderr,
	}
	data, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return classified
	}
	return errors.New(string(data))
}
