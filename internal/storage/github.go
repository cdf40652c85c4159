package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// GitHubStorage implements Storage on top of the GitHub repository contents
// API: uploads are commits that create a file under uploads/, deletes are
// commits that remove it. Public URLs point at the raw content host and stay
// valid for the lifetime of the file.
type GitHubStorage struct {
	client *http.Client
	owner  string
	repo   string
	branch string
	token  string

	apiBase string
	rawBase string
	now     func() time.Time
}

// ErrNoCredentials is returned by Upload when the owner, repo, or token is
// not configured. Callers degrade to "no new asset".
var ErrNoCredentials = errors.New("github storage credentials missing")

// NewGitHubStorage returns a GitHubStorage. Missing credentials are not an
// error here; uploads will report ErrNoCredentials instead, so a partially
// configured service still boots and serves reads.
func NewGitHubStorage(owner, repo, branch, token string) *GitHubStorage {
	return &GitHubStorage{
		client:  &http.Client{Timeout: 30 * time.Second},
		owner:   owner,
		repo:    repo,
		branch:  branch,
		token:   token,
		apiBase: "https://api.github.com",
		rawBase: "https://raw.githubusercontent.com",
		now:     time.Now,
	}
}

type contentRequest struct {
	Message string `json:"message"`
	Content string `json:"content,omitempty"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

type contentMeta struct {
	SHA string `json:"sha"`
}

// Upload commits data to the repository under a fresh uploads/ key and
// returns the raw-content URL for it.
func (s *GitHubStorage) Upload(ctx context.Context, data []byte, originalName string) (string, error) {
	if s.owner == "" || s.repo == "" || s.token == "" {
		return "", ErrNoCredentials
	}

	key := ObjectKey(s.now(), originalName)

	body, err := json.Marshal(contentRequest{
		Message: "Upload " + key,
		Content: base64.StdEncoding.EncodeToString(data),
		Branch:  s.branch,
	})
	if err != nil {
		return "", fmt.Errorf("encode upload request: %w", err)
	}

	resp, err := s.do(ctx, http.MethodPut, s.contentsURL(key), body)
	if err != nil {
		return "", fmt.Errorf("put %q: %w", key, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("put %q: unexpected status %d", key, resp.StatusCode)
	}

	return fmt.Sprintf("%s/%s/%s/%s/%s", s.rawBase, s.owner, s.repo, s.branch, key), nil
}

// Delete removes the asset behind url. URLs that are empty or do not belong
// to this repository's raw host are ignored. A file that is already gone is
// treated as deleted.
func (s *GitHubStorage) Delete(ctx context.Context, url string) error {
	if url == "" || !strings.Contains(url, "raw.githubusercontent.com") {
		return nil
	}

	prefix := fmt.Sprintf("%s/%s/%s/%s/", s.rawBase, s.owner, s.repo, s.branch)
	key := strings.TrimPrefix(url, prefix)
	if key == url || key == "" {
		log.Printf("storage: cannot parse asset key from url %q", url)
		return nil
	}

	// The contents API requires the current blob SHA to authorize a delete.
	resp, err := s.do(ctx, http.MethodGet, s.contentsURL(key)+"?ref="+s.branch, nil)
	if err != nil {
		return fmt.Errorf("fetch metadata for %q: %w", key, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		drain(resp)
		log.Printf("storage: %q not found, treating as already deleted", key)
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp)
		return fmt.Errorf("fetch metadata for %q: unexpected status %d", key, resp.StatusCode)
	}

	var meta contentMeta
	err = json.NewDecoder(resp.Body).Decode(&meta)
	drain(resp)
	if err != nil {
		return fmt.Errorf("decode metadata for %q: %w", key, err)
	}

	body, err := json.Marshal(contentRequest{
		Message: "Delete old asset",
		SHA:     meta.SHA,
		Branch:  s.branch,
	})
	if err != nil {
		return fmt.Errorf("encode delete request: %w", err)
	}

	resp, err = s.do(ctx, http.MethodDelete, s.contentsURL(key), body)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("delete %q: unexpected status %d", key, resp.StatusCode)
	}

	log.Printf("storage: deleted %q", key)
	return nil
}

func (s *GitHubStorage) contentsURL(key string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", s.apiBase, s.owner, s.repo, key)
}

func (s *GitHubStorage) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "token "+s.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.client.Do(req)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
