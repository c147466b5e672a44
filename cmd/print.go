package cmd

import (
	"fmt"

	"github.com/rokujyushi/voicevox/internal/audio"
)

// printItem prints one audio item. An empty key is omitted.
func printItem(n int, key audio.AudioKey, item audio.AudioItem, verbose bool) {
	statusIcon := " "
	if item.Query != nil {
		statusIcon = "x"
	}
	character := "-"
	if item.CharacterIndex != nil {
		character = fmt.Sprintf("%d", *item.CharacterIndex)
	}

	line := fmt.Sprintf("%3d [%s] (C%s) %s", n, statusIcon, character, item.Text)
	if key != "" {
		line += fmt.Sprintf("  <%s>", key)
	}
	fmt.Println(line)

	if !verbose || item.Query == nil {
		return
	}
	q := item.Query
	fmt.Printf("      speed %.2f  pitch %.2f  intonation %.2f  volume %.2f  pre %.2fs  post %.2fs  %d Hz\n",
		q.SpeedScale, q.PitchScale, q.IntonationScale, q.VolumeScale,
		q.PrePhonemeLength, q.PostPhonemeLength, q.OutputSamplingRate)
}
