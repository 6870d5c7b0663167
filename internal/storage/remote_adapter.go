package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// RemoteAdapter talks to the thin key-value HTTP API
// (GET/POST /api/data?type=<key>). It carries the same fail-soft contract as
// the local backend: transport errors, non-2xx responses, and bad payloads
// all degrade to a miss on read and a dropped write.
type RemoteAdapter struct {
	baseURL string
	client  *http.Client
}

// NewRemoteAdapter returns an adapter rooted at baseURL
// (e.g. "http://localhost:8080").
func NewRemoteAdapter(baseURL string) *RemoteAdapter {
	return &RemoteAdapter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (a *RemoteAdapter) dataURL(key string) string {
	return fmt.Sprintf("%s/api/data?type=%s", a.baseURL, url.QueryEscape(key))
}

// Read implements Adapter.
func (a *RemoteAdapter) Read(key string, out any) bool {
	resp, err := a.client.Get(a.dataURL(key))
	if err != nil {
		log.Printf("storage: remote read %q failed: %v", key, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("storage: remote read %q returned %d", key, resp.StatusCode)
		return false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("storage: remote read %q failed: %v", key, err)
		return false
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false
	}
	if err := json.Unmarshal(body, out); err != nil {
		// The data API answers misses with []. For non-array records that
		// default does not unmarshal; it is still a miss, not corruption.
		if bytes.Equal(trimmed, []byte("[]")) {
			return false
		}
		log.Printf("storage: remote record %q holds invalid JSON: %v", key, err)
		return false
	}
	return true
}

// Write implements Adapter.
func (a *RemoteAdapter) Write(key string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Printf("storage: remote write %q dropped: %v", key, err)
		return
	}
	resp, err := a.client.Post(a.dataURL(key), "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("storage: remote write %q dropped: %v", key, err)
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("storage: remote write %q returned %d", key, resp.StatusCode)
	}
}

// WriteAll implements Adapter. The remote API has no batch endpoint, so the
// records are posted one by one; a failure partway through leaves the rest
// best-effort, an accepted limitation of the remote backend.
func (a *RemoteAdapter) WriteAll(records map[string]any) {
	for key, v := range records {
		a.Write(key, v)
	}
}

// Delete implements Adapter. The remote API has no delete verb; writing a
// JSON null makes subsequent reads miss, which is equivalent for callers.
func (a *RemoteAdapter) Delete(key string) {
	a.Write(key, nil)
}
