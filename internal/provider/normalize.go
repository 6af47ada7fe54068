package provider

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The question bank stores options and assets as jsonb, but older rows
// carry them double-encoded (a JSON string containing JSON) and IDs show
// up as either numbers or strings depending on the source table. The raw
// row types absorb all of that so the rest of the app only ever sees the
// clean domain structs.

type rawQuestion struct {
	ID           json.RawMessage `json:"id"`
	Block        int             `json:"block"`
	Topic        string          `json:"topic"`
	Difficulty   string          `json:"difficulty"`
	Statement    string          `json:"statement"`
	Options      json.RawMessage `json:"options"`
	CorrectIndex int             `json:"correct_index"`
	Explanation  string          `json:"explanation"`
	Reference    string          `json:"reference"`
}

type rawPractical struct {
	ID          json.RawMessage `json:"id"`
	Block       int             `json:"block"`
	Topic       string          `json:"topic"`
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Prompt      string          `json:"prompt"`
	Deliverable string          `json:"deliverable"`
	Solution    string          `json:"solution"`
	Assets      json.RawMessage `json:"assets"`
}

func (r rawQuestion) normalize() (Question, error) {
	id, err := decodeID(r.ID)
	if err != nil {
		return Question{}, fmt.Errorf("question id: %w", err)
	}
	opts, err := decodeOptions(r.Options)
	if err != nil {
		return Question{}, fmt.Errorf("question %s options: %w", id, err)
	}
	if r.CorrectIndex < 0 || r.CorrectIndex >= len(opts) {
		return Question{}, fmt.Errorf("question %s: correct_index %d out of range for %d options", id, r.CorrectIndex, len(opts))
	}
	return Question{
		ID:           id,
		Block:        r.Block,
		Topic:        r.Topic,
		Difficulty:   r.Difficulty,
		Statement:    r.Statement,
		Options:      opts,
		CorrectIndex: r.CorrectIndex,
		Explanation:  r.Explanation,
		Reference:    r.Reference,
	}, nil
}

func (r rawPractical) normalize() (Practical, error) {
	id, err := decodeID(r.ID)
	if err != nil {
		return Practical{}, fmt.Errorf("practical id: %w", err)
	}
	assets, err := decodeAssets(r.Assets)
	if err != nil {
		return Practical{}, fmt.Errorf("practical %s assets: %w", id, err)
	}
	return Practical{
		ID:          id,
		Block:       r.Block,
		Topic:       r.Topic,
		Type:        r.Type,
		Title:       r.Title,
		Prompt:      r.Prompt,
		Deliverable: r.Deliverable,
		Solution:    r.Solution,
		Assets:      assets,
	}, nil
}

// decodeID accepts a JSON string or number and returns it as a string.
func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("missing id")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", fmt.Errorf("empty id")
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("unsupported id %s", raw)
}

// decodeOptions accepts a JSON array of strings, a JSON string that
// itself contains an encoded array, or a plain newline-separated string.
func decodeOptions(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing options")
	}

	var opts []string
	if err := json.Unmarshal(raw, &opts); err == nil {
		return requireOptions(opts)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("unsupported options encoding")
	}

	// Double-encoded array.
	if err := json.Unmarshal([]byte(s), &opts); err == nil {
		return requireOptions(opts)
	}

	// Plain text fallback: one option per line.
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			opts = append(opts, line)
		}
	}
	return requireOptions(opts)
}

func requireOptions(opts []string) ([]string, error) {
	if len(opts) < 2 {
		return nil, fmt.Errorf("need at least 2 options, got %d", len(opts))
	}
	return opts, nil
}

// decodeAssets accepts a JSON object, a double-encoded object, or null.
func decodeAssets(raw json.RawMessage) (Assets, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return Assets{}, nil
	}

	var a Assets
	if err := json.Unmarshal(raw, &a); err == nil {
		return a, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return Assets{}, fmt.Errorf("unsupported assets encoding")
	}
	if s == "" {
		return Assets{}, nil
	}
	if err := json.Unmarshal([]byte(s), &a); err != nil {
		return Assets{}, fmt.Errorf("decode assets: %w", err)
	}
	return a, nil
}

// idList formats IDs for a PostgREST in.(...) filter, quoting values that
// contain reserved characters.
func idList(ids []string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		if strings.ContainsAny(id, ",() ") {
			quoted[i] = strconv.Quote(id)
		} else {
			quoted[i] = id
		}
	}
	return "(" + strings.Join(quoted, ",") + ")"
}
