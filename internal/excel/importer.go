package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/espabot/internal/database"
	"github.com/example/espabot/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath              string // Path to the Excel or CSV file
	SpanishColumn         int    // Column with the Spanish word (0-based)
	EnglishColumn         int    // Column with the English translation
	CategoryColumn        int    // Column with the category
	NotesColumn           int    // Column with free-text notes
	SynonymsSpanishColumn int    // Column with comma-separated Spanish synonyms
	SynonymsEnglishColumn int    // Column with comma-separated English synonyms
	FrequencyRankColumn   int    // Column with the frequency rank
	SheetName             string // Name of the sheet to import
	StartRow              int    // The row to start importing from (1-based index)
	Source                string // Provenance tag stamped on imported words
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SpanishColumn:         0,
		EnglishColumn:         1,
		CategoryColumn:        2,
		NotesColumn:           3,
		SynonymsSpanishColumn: 4,
		SynonymsEnglishColumn: 5,
		FrequencyRankColumn:   6,
		SheetName:             "Sheet1",
		StartRow:              2, // By default, start from the second row (skip header)
		Source:                models.SourceUserAdded,
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Incomplete     int
	Skipped        int
	Errors         []string
}

// ImportWords imports vocabulary from an Excel or CSV file. Rows without an
// English translation become incomplete words awaiting translation instead of
// being dropped.
func ImportWords(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	if ext == ".csv" {
		return importFromCSV(config)
	}

	return importFromExcel(config)
}

// importFromExcel imports words from an Excel file
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	return processRows(rows, config)
}

// importFromCSV imports words from a CSV file
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	f, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %v", err)
		}
		rows = append(rows, row)
	}

	return processRows(rows, config)
}

// processRows walks the sheet and upserts each row
func processRows(rows [][]string, config ImportConfig) (*ImportResult, error) {
	wordRepo := database.NewWordRepository()
	incompleteRepo := database.NewIncompleteWordRepository()

	result := &ImportResult{
		Errors: make([]string, 0),
	}

	// Map existing (spanish, english) pairs to ids for upserting
	existing, err := wordRepo.ToArray()
	if err != nil {
		return nil, fmt.Errorf("failed to get existing words: %v", err)
	}
	existingIDs := make(map[string]int64, len(existing))
	for _, w := range existing {
		existingIDs[pairKey(w.Spanish, w.English)] = w.ID
	}

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}

		result.TotalProcessed++

		if err := processRow(row, config, existingIDs, wordRepo, incompleteRepo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

func processRow(row []string, config ImportConfig, existingIDs map[string]int64,
	wordRepo *database.WordRepository, incompleteRepo *database.IncompleteWordRepository,
	result *ImportResult) error {

	spanish := strings.TrimSpace(cell(row, config.SpanishColumn))
	english := strings.TrimSpace(cell(row, config.EnglishColumn))

	if spanish == "" {
		result.Skipped++
		return nil
	}

	// No translation yet: park the word for later instead of losing it
	if english == "" {
		incomplete := &models.IncompleteWordRecord{
			Spanish:    spanish,
			SourceText: config.FilePath,
			Category:   strings.TrimSpace(cell(row, config.CategoryColumn)),
			Status:     models.StatusNeedsTranslation,
		}
		if err := incompleteRepo.Create(incomplete); err != nil {
			return err
		}
		result.Incomplete++
		return nil
	}

	word := models.WordRecord{
		Spanish:         spanish,
		English:         english,
		Category:        strings.TrimSpace(cell(row, config.CategoryColumn)),
		Notes:           strings.TrimSpace(cell(row, config.NotesColumn)),
		SynonymsSpanish: splitSynonyms(cell(row, config.SynonymsSpanishColumn)),
		SynonymsEnglish: splitSynonyms(cell(row, config.SynonymsEnglishColumn)),
		ExposureLevel:   models.ExposureNew,
		FrequencyRank:   models.UnknownFrequencyRank,
		Source:          config.Source,
	}

	if rankText := strings.TrimSpace(cell(row, config.FrequencyRankColumn)); rankText != "" {
		if rank, err := strconv.Atoi(rankText); err == nil && rank > 0 {
			word.FrequencyRank = rank
		}
	}

	if id, ok := existingIDs[pairKey(spanish, english)]; ok {
		// Keep existing scheduling state, refresh the metadata only
		current, err := wordRepo.Get(id)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("word %d disappeared during import", id)
		}
		current.Category = word.Category
		current.Notes = word.Notes
		current.SynonymsSpanish = word.SynonymsSpanish
		current.SynonymsEnglish = word.SynonymsEnglish
		if word.FrequencyRank != models.UnknownFrequencyRank {
			current.FrequencyRank = word.FrequencyRank
		}
		if _, err := wordRepo.Put(current); err != nil {
			return err
		}
		result.Updated++
		return nil
	}

	id, err := wordRepo.Put(&word)
	if err != nil {
		return err
	}
	existingIDs[pairKey(spanish, english)] = id
	result.Created++
	return nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func splitSynonyms(text string) models.StringList {
	var out models.StringList
	for _, part := range strings.Split(text, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func pairKey(spanish, english string) string {
	return strings.ToLower(strings.TrimSpace(spanish)) + "|" + strings.ToLower(strings.TrimSpace(english))
}
