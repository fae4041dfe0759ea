// internal/logsink/logsink.go
//
// Accepted-submission logging. The engine reports each accepted word as a
// fire-and-forget notification (user id, 1-indexed puzzle index, date); the
// caller discards the result and a failure never affects scoring or local
// state. Two sinks exist: an HTTP poster for remote deployments and a
// SQLite-backed aggregate store that also serves /api/logs.

package logsink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Entry identifies one accepted submission.
type Entry struct {
	UserID      string `json:"userId"`
	PuzzleIndex int    `json:"puzzleIndex"` // 1-indexed
	Date        string `json:"puzzleDate"`  // YYYY-MM-DD
}

// Sink records accepted submissions.
type Sink interface {
	Log(ctx context.Context, e Entry) error
}

// HTTPSink posts entries as JSON to a remote endpoint. One attempt, no
// retries.
type HTTPSink struct {
	url    string
	client *http.Client
}

// NewHTTPSink returns a sink posting to url.
func NewHTTPSink(url string) *HTTPSink {
	return &HTTPSink{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (h *HTTPSink) Log(ctx context.Context, e Entry) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("logsink: server responded %d", res.StatusCode)
	}
	return nil
}
