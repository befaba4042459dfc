package platformsync

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"moneyplatforms/lib/claude"
	"moneyplatforms/services/platformstore/db"
)

// Sourcer produces a batch of candidate records for one aim. An empty
// batch is not an error.
type Sourcer interface {
	Platforms(ctx context.Context, aim string) ([]db.Platform, error)
}

// ClaudeSourcer asks the messages API for records and JSON-parses the
// untrusted reply. Unparseable replies are logged and dropped, they
// never abort a run.
type ClaudeSourcer struct {
	Client *claude.Client
	// overridable for tests; defaults to time.Now
	Now func() time.Time
}

type sourcedBatch struct {
	Results []db.Platform `json:"results"`
}

func (s ClaudeSourcer) Platforms(ctx context.Context, aim string) ([]db.Platform, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	asOfDate := now().Format("2006-01-02")

	text, err := s.Client.Complete(ctx, claude.SystemPrompt, claude.PromptFor(aim, asOfDate))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		slog.Error("received empty response", "aim", aim)
		return nil, nil
	}

	var batch sourcedBatch
	if err := json.Unmarshal([]byte(text), &batch); err != nil {
		slog.Error("response is not valid JSON", "aim", aim, "err", err)
		return nil, nil
	}
	return batch.Results, nil
}
