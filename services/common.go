package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/AliaksandrTarashkevich/ppianieal/structs"
)

// Messenger delivers replies to a chat and fetches files users sent.
type Messenger interface {
	Send(ctx context.Context, msg structs.OutgoingMessage) error
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

func HttpRequest(ctx context.Context, method, url string, header map[string]string, data interface{}) ([]byte, error) {

	var body io.Reader

	// serialize the payload
	if data != nil {
		requestBody, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(requestBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, element := range header {
		req.Header.Set(key, element)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%s %s: status %d", method, url, resp.StatusCode)
	}
	return respBody, nil
}

// Round rounds to the nearest integer, halves go up.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

var markdownReplacer = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// EscapeMarkdown makes user supplied text safe inside a Markdown reply.
func EscapeMarkdown(text string) string {
	return markdownReplacer.Replace(text)
}
