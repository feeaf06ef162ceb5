// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package deck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RemoteBackend talks to the remote flashcard service. Every call carries
// the bearer credential; failures are single-shot, never retried.
type RemoteBackend struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewRemoteBackend creates a remote backend for the given service root and
// session credential.
func NewRemoteBackend(baseURL, token string, timeout time.Duration) *RemoteBackend {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteBackend{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

func (r *RemoteBackend) do(ctx context.Context, op, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &BackendError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return nil, &BackendError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &BackendError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &BackendError{Op: op, Status: resp.StatusCode, Err: ErrUnauthorized}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &BackendError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status")}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &BackendError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	return normalizeEnvelope(raw), nil
}

// normalizeEnvelope unwraps the three response shapes the service is known
// to emit: a raw entity/array, a direct {data: ...} object, or a one-element
// array wrapping {data: ...}. Anything else is returned as-is, best effort.
// Consumers past this point never see the ambiguity.
func normalizeEnvelope(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return trimmed
	}

	switch trimmed[0] {
	case '[':
		var arr []json.RawMessage
		if err := json.Unmarshal(trimmed, &arr); err == nil && len(arr) >= 1 {
			if inner, ok := dataField(arr[0]); ok {
				return inner
			}
		}
	case '{':
		if inner, ok := dataField(trimmed); ok {
			return inner
		}
	}
	return trimmed
}

func dataField(obj json.RawMessage) (json.RawMessage, bool) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(obj, &m); err != nil {
		return nil, false
	}
	inner, ok := m["data"]
	return inner, ok
}

// wireID tolerates ids serialized as JSON numbers or strings; in memory the
// id is always its string form.
type wireID string

func (w *wireID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*w = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*w = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*w = wireID(n.String())
	return nil
}

type wireCategory struct {
	ID       wireID `json:"id"`
	Name     string `json:"name"`
	ParentID wireID `json:"parent_id"`
}

func (w wireCategory) toCategory() Category {
	return Category{ID: string(w.ID), Name: w.Name, ParentID: string(w.ParentID)}
}

type wireFlashcard struct {
	ID         wireID `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	CategoryID wireID `json:"category_id"`
}

func (w wireFlashcard) toFlashcard() Flashcard {
	return Flashcard{
		ID:         string(w.ID),
		Question:   w.Question,
		Answer:     w.Answer,
		CategoryID: string(w.CategoryID),
	}
}

// coerceID converts an opaque id to the integer the remote schema expects
// for foreign keys. The UI may hand ids through as strings.
func coerceID(id string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id %q is not numeric: %w", id, err)
	}
	return n, nil
}

func coerceOptionalID(id string) (*int64, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	n, err := coerceID(id)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

type categoryPayload struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
}

type flashcardPayload struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	CategoryID int64  `json:"category_id"`
}

func (r *RemoteBackend) ListCategories(ctx context.Context) ([]Category, error) {
	raw, err := r.do(ctx, "list categories", http.MethodGet, "/categories", nil)
	if err != nil {
		return nil, err
	}
	var wire []wireCategory
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &BackendError{Op: "list categories", Err: fmt.Errorf("decode response: %w", err)}
	}
	cats := make([]Category, 0, len(wire))
	for _, w := range wire {
		cats = append(cats, w.toCategory())
	}
	return cats, nil
}

func (r *RemoteBackend) CreateCategory(ctx context.Context, name, parentID string) (*Category, error) {
	parent, err := coerceOptionalID(parentID)
	if err != nil {
		return nil, &BackendError{Op: "create category", Err: err}
	}
	raw, err := r.do(ctx, "create category", http.MethodPost, "/categories", categoryPayload{Name: name, ParentID: parent})
	if err != nil {
		return nil, err
	}
	var w wireCategory
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, &BackendError{Op: "create category", Err: fmt.Errorf("decode response: %w", err)}
	}
	cat := w.toCategory()
	return &cat, nil
}

func (r *RemoteBackend) UpdateCategory(ctx context.Context, id, name, parentID string) (*Category, error) {
	parent, err := coerceOptionalID(parentID)
	if err != nil {
		return nil, &BackendError{Op: "update category", Err: err}
	}
	raw, err := r.do(ctx, "update category", http.MethodPut, "/categories/"+id, categoryPayload{Name: name, ParentID: parent})
	if err != nil {
		return nil, err
	}
	// Merge the server's acknowledged fields; fall back to the submitted
	// values when the response is not a usable entity.
	var w wireCategory
	if err := json.Unmarshal(raw, &w); err != nil || w.ID == "" {
		return &Category{ID: id, Name: name, ParentID: parentID}, nil
	}
	cat := w.toCategory()
	return &cat, nil
}

func (r *RemoteBackend) DeleteCategory(ctx context.Context, id string) error {
	_, err := r.do(ctx, "delete category", http.MethodDelete, "/categories/"+id, nil)
	return err
}

func (r *RemoteBackend) ListFlashcards(ctx context.Context) ([]Flashcard, error) {
	raw, err := r.do(ctx, "list flashcards", http.MethodGet, "/flashcards", nil)
	if err != nil {
		return nil, err
	}
	var wire []wireFlashcard
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, &BackendError{Op: "list flashcards", Err: fmt.Errorf("decode response: %w", err)}
	}
	cards := make([]Flashcard, 0, len(wire))
	for _, w := range wire {
		cards = append(cards, w.toFlashcard())
	}
	return cards, nil
}

func (r *RemoteBackend) CreateFlashcard(ctx context.Context, question, answer, categoryID string) (*Flashcard, error) {
	catID, err := coerceID(categoryID)
	if err != nil {
		return nil, &BackendError{Op: "create flashcard", Err: err}
	}
	raw, err := r.do(ctx, "create flashcard", http.MethodPost, "/flashcards", flashcardPayload{
		Question: question, Answer: answer, CategoryID: catID,
	})
	if err != nil {
		return nil, err
	}
	var w wireFlashcard
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, &BackendError{Op: "create flashcard", Err: fmt.Errorf("decode response: %w", err)}
	}
	card := w.toFlashcard()
	return &card, nil
}

func (r *RemoteBackend) UpdateFlashcard(ctx context.Context, id, question, answer, categoryID string) (*Flashcard, error) {
	catID, err := coerceID(categoryID)
	if err != nil {
		return nil, &BackendError{Op: "update flashcard", Err: err}
	}
	raw, err := r.do(ctx, "update flashcard", http.MethodPut, "/flashcards/"+id, flashcardPayload{
		Question: question, Answer: answer, CategoryID: catID,
	})
	if err != nil {
		return nil, err
	}
	var w wireFlashcard
	if err := json.Unmarshal(raw, &w); err != nil || w.ID == "" {
		return &Flashcard{ID: id, Question: question, Answer: answer, CategoryID: categoryID}, nil
	}
	card := w.toFlashcard()
	return &card, nil
}

func (r *RemoteBackend) DeleteFlashcard(ctx context.Context, id string) error {
	_, err := r.do(ctx, "delete flashcard", http.MethodDelete, "/flashcards/"+id, nil)
	return err
}

func (r *RemoteBackend) BulkDeleteFlashcards(ctx context.Context, ids []string) error {
	payload := make([]int64, 0, len(ids))
	for _, id := range ids {
		n, err := coerceID(id)
		if err != nil {
			return &BackendError{Op: "bulk delete flashcards", Err: err}
		}
		payload = append(payload, n)
	}
	_, err := r.do(ctx, "bulk delete flashcards", http.MethodPost, "/flashcards/bulk-delete", payload)
	return err
}
