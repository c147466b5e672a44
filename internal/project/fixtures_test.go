package project

import (
	"encoding/json"
	"testing"
)

// currentQueryJSON is a complete audio query in the current format.
const currentQueryJSON = `{
  "accentPhrases": [
    {
      "moras": [
        {"text": "コ", "consonant": "k", "vowel": "o", "pitch": 5.6},
        {"text": "ン", "vowel": "N", "pitch": 5.8}
      ],
      "accent": 1,
      "pauseMora": {"text": "、", "vowel": "pau", "pitch": 0}
    }
  ],
  "speedScale": 1,
  "pitchScale": 0,
  "intonationScale": 1,
  "volumeScale": 1,
  "prePhonemeLength": 0.1,
  "postPhonemeLength": 0.1,
  "outputSamplingRate": 24000
}`

// legacyProjectJSON is a file written by a 0.3.x editor: the character index
// is misspelled and the query lacks the 0.4.0 parameters.
const legacyProjectJSON = `{
  "appVersion": "0.3.1",
  "audioKeys": ["a", "b"],
  "audioItems": {
    "a": {
      "text": "こんにちは",
      "charactorIndex": 2,
      "query": {
        "accentPhrases": [],
        "speedScale": 1.2,
        "pitchScale": 0,
        "intonationScale": 1
      }
    },
    "b": {"text": "さようなら", "charactorIndex": 0}
  }
}`

func currentProjectJSON(appVersion string) string {
	return `{
  "appVersion": "` + appVersion + `",
  "audioKeys": ["k1", "k2"],
  "audioItems": {
    "k1": {"text": "hi", "characterIndex": 0},
    "k2": {"text": "there", "characterIndex": 1, "query": ` + currentQueryJSON + `}
  }
}`
}

// parseTree decodes JSON into a generic tree, failing the test on error.
func parseTree(t *testing.T, s string) map[string]any {
	t.Helper()
	var tree map[string]any
	if err := json.Unmarshal([]byte(s), &tree); err != nil {
		t.Fatalf("invalid fixture: %v", err)
	}
	return tree
}
