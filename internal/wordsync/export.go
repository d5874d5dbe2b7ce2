package wordsync

import (
	"time"

	"github.com/example/espabot/pkg/models"
)

// BuildExport assembles the backup/merge payload for the external merge
// tooling. Word ids are stripped since they are store-local; the merge script
// keys on the (spanish, english) pair instead.
func BuildExport(version string, words []models.WordRecord, deviceType string, now time.Time) models.ExportFile {
	exported := make([]models.WordRecord, len(words))
	copy(exported, words)

	withProgress := 0
	boxes := make(map[int]int)
	for i := range exported {
		exported[i].ID = 0
		if exported[i].TimesStudied > 0 || exported[i].LeitnerBox > 0 {
			withProgress++
		}
		boxes[exported[i].LeitnerBox]++
	}

	return models.ExportFile{
		Version:    version,
		ExportDate: now,
		ExportMetadata: models.ExportMetadata{
			TotalWords:        len(exported),
			WordsWithProgress: withProgress,
			BoxDistribution:   boxes,
			DeviceType:        deviceType,
		},
		Words: exported,
	}
}
