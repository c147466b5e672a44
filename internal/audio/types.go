// Package audio defines the synthesis items that make up an editing session.
package audio

// AudioKey identifies an audio item within a session.
type AudioKey string

// Default synthesis parameters written by newer editors.
const (
	DefaultSamplingRate      = 24000
	DefaultVolumeScale       = 1
	DefaultPrePhonemeLength  = 0.1
	DefaultPostPhonemeLength = 0.1
)

// Mora is a single phonetic unit.
type Mora struct {
	Text      string  `json:"text"`
	Consonant *string `json:"consonant,omitempty"`
	Vowel     string  `json:"vowel"`
	Pitch     float32 `json:"pitch"`
}

// AccentPhrase groups moras sharing one accent.
type AccentPhrase struct {
	Moras     []Mora `json:"moras"`
	Accent    int32  `json:"accent"`
	PauseMora *Mora  `json:"pauseMora,omitempty"`
}

// AudioQuery holds the synthesis parameters for one item.
type AudioQuery struct {
	AccentPhrases      []AccentPhrase `json:"accentPhrases"`
	SpeedScale         float32        `json:"speedScale"`
	PitchScale         float32        `json:"pitchScale"`
	IntonationScale    float32        `json:"intonationScale"`
	VolumeScale        float32        `json:"volumeScale"`
	PrePhonemeLength   float32        `json:"prePhonemeLength"`
	PostPhonemeLength  float32        `json:"postPhonemeLength"`
	OutputSamplingRate int32          `json:"outputSamplingRate"`
}

// AudioItem is one line of text and, once synthesized, its query.
// A nil Query means the text has not been synthesized yet.
type AudioItem struct {
	Text           string      `json:"text"`
	CharacterIndex *int32      `json:"characterIndex,omitempty"`
	Query          *AudioQuery `json:"query,omitempty"`
}

// Clone returns a deep copy of the item.
func (a AudioItem) Clone() AudioItem {
	out := AudioItem{Text: a.Text}
	if a.CharacterIndex != nil {
		idx := *a.CharacterIndex
		out.CharacterIndex = &idx
	}
	if a.Query != nil {
		q := a.Query.Clone()
		out.Query = &q
	}
	return out
}

// Clone returns a deep copy of the query.
func (q AudioQuery) Clone() AudioQuery {
	out := q
	if q.AccentPhrases != nil {
		out.AccentPhrases = make([]AccentPhrase, len(q.AccentPhrases))
		for i, phrase := range q.AccentPhrases {
			out.AccentPhrases[i] = phrase.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the accent phrase.
func (p AccentPhrase) Clone() AccentPhrase {
	out := AccentPhrase{Accent: p.Accent}
	if p.Moras != nil {
		out.Moras = make([]Mora, len(p.Moras))
		for i, m := range p.Moras {
			out.Moras[i] = m.Clone()
		}
	}
	if p.PauseMora != nil {
		m := p.PauseMora.Clone()
		out.PauseMora = &m
	}
	return out
}

// Clone returns a deep copy of the mora.
func (m Mora) Clone() Mora {
	out := m
	if m.Consonant != nil {
		c := *m.Consonant
		out.Consonant = &c
	}
	return out
}

// Int32 returns a pointer to v. Useful for optional fields.
func Int32(v int32) *int32 {
	return &v
}

// String returns a pointer to v.
func String(v string) *string {
	return &v
}
