package project

import (
	"encoding/json"
	"fmt"

	"github.com/rokujyushi/voicevox/internal/audio"
)

// Document is the persisted form of a session.
type Document struct {
	AppVersion string                             `json:"appVersion"`
	AudioKeys  []audio.AudioKey                   `json:"audioKeys"`
	AudioItems map[audio.AudioKey]audio.AudioItem `json:"audioItems"`
}

// NewDocument assembles a document from session state. Nil slices and maps,
// including the arrays nested in queries, are written as empty JSON
// containers so the file stays schema-valid. items is not modified.
func NewDocument(appVersion string, keys []audio.AudioKey, items map[audio.AudioKey]audio.AudioItem) *Document {
	if keys == nil {
		keys = []audio.AudioKey{}
	}
	out := make(map[audio.AudioKey]audio.AudioItem, len(items))
	for key, item := range items {
		out[key] = withEmptyArrays(item)
	}
	return &Document{
		AppVersion: appVersion,
		AudioKeys:  keys,
		AudioItems: out,
	}
}

// withEmptyArrays returns item with nil accent phrase and mora lists
// replaced by empty ones.
func withEmptyArrays(item audio.AudioItem) audio.AudioItem {
	if item.Query == nil {
		return item
	}
	item = item.Clone()
	q := item.Query
	if q.AccentPhrases == nil {
		q.AccentPhrases = []audio.AccentPhrase{}
	}
	for i := range q.AccentPhrases {
		if q.AccentPhrases[i].Moras == nil {
			q.AccentPhrases[i].Moras = []audio.Mora{}
		}
	}
	return item
}

// Marshal encodes the document as compact JSON without a trailing newline.
func (d *Document) Marshal() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal project file: %w", err)
	}
	return data, nil
}

// Items returns the items referenced by AudioKeys, in order.
// Keys without an item are skipped.
func (d *Document) Items() []audio.AudioItem {
	out := make([]audio.AudioItem, 0, len(d.AudioKeys))
	for _, key := range d.AudioKeys {
		if item, ok := d.AudioItems[key]; ok {
			out = append(out, item)
		}
	}
	return out
}

// fromTree converts a validated generic tree into a Document.
func fromTree(tree map[string]any) (*Document, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("marshal migrated document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal migrated document: %w", err)
	}
	return &doc, nil
}
