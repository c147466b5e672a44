package project

import (
	"github.com/rokujyushi/voicevox/internal/audio"
	"github.com/rokujyushi/voicevox/internal/version"
)

// Migration upgrades the decoded document tree of files written before
// Threshold. Apply must tolerate shapes it does not understand; the schema
// validator rejects them afterwards.
type Migration struct {
	Name      string
	Threshold version.Version
	Apply     func(doc map[string]any)
}

// Migrations lists every migration in the order it is applied. New entries
// are appended.
var Migrations = []Migration{
	{
		Name:      "rename-charactor-index",
		Threshold: version.MustParse("0.4.0"),
		Apply:     renameCharactorIndex,
	},
	{
		Name:      "default-query-parameters",
		Threshold: version.MustParse("0.4.0"),
		Apply:     defaultQueryParameters,
	},
}

// Migrate applies, in order, every migration whose threshold is strictly
// newer than from. It returns the names of the migrations that ran.
func Migrate(doc map[string]any, from version.Version) []string {
	return migrateWith(Migrations, doc, from)
}

func migrateWith(migrations []Migration, doc map[string]any, from version.Version) []string {
	var applied []string
	for _, m := range migrations {
		if !from.Less(m.Threshold) {
			continue
		}
		m.Apply(doc)
		applied = append(applied, m.Name)
	}
	return applied
}

// eachAudioItem calls fn for every audioItems entry that is a JSON object.
func eachAudioItem(doc map[string]any, fn func(item map[string]any)) {
	items, ok := doc["audioItems"].(map[string]any)
	if !ok {
		return
	}
	for _, raw := range items {
		if item, ok := raw.(map[string]any); ok {
			fn(item)
		}
	}
}

// renameCharactorIndex fixes the misspelled field written by 0.3.x editors.
func renameCharactorIndex(doc map[string]any) {
	eachAudioItem(doc, func(item map[string]any) {
		v, ok := item["charactorIndex"]
		if !ok {
			return
		}
		item["characterIndex"] = v
		delete(item, "charactorIndex")
	})
}

// defaultQueryParameters fills in the query parameters introduced in 0.4.0.
// Existing values are overwritten.
func defaultQueryParameters(doc map[string]any) {
	eachAudioItem(doc, func(item map[string]any) {
		query, ok := item["query"].(map[string]any)
		if !ok {
			return
		}
		query["volumeScale"] = float64(audio.DefaultVolumeScale)
		query["prePhonemeLength"] = audio.DefaultPrePhonemeLength
		query["postPhonemeLength"] = audio.DefaultPostPhonemeLength
		query["outputSamplingRate"] = float64(audio.DefaultSamplingRate)
	})
}
