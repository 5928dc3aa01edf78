package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/flipcards/pkg/models"
	"github.com/xuri/excelize/v2"
)

// WordTarget is the curriculum the imported words are added to
type WordTarget interface {
	LessonByID(id string) *models.Lesson
	AddWords(lessonID string, words []models.Word) (int, error)
}

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath        string // Path to the Excel or CSV file
	LessonColumn    string // Column with the lesson id, e.g. P1-AA-BEG
	WordColumn      string // Column with the word
	PrefixColumn    string // Column with the part before the sound (optional)
	SuffixColumn    string // Column with the part after the sound (optional)
	EnglishColumn   string // Column with the English translation
	SpanishColumn   string // Column with the Spanish translation
	SyllablesColumn string // Column with the syllable count
	SheetName       string // Name of the sheet to import
	StartRow        int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		LessonColumn:    "A",
		WordColumn:      "B",
		PrefixColumn:    "C",
		SuffixColumn:    "D",
		EnglishColumn:   "E",
		SpanishColumn:   "F",
		SyllablesColumn: "G",
		SheetName:       "Sheet1",
		StartRow:        2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportWords imports words from an Excel or CSV file into the curriculum
func ImportWords(config ImportConfig, target WordTarget) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)

	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	pending := make(map[string][]models.Word)
	var order []string

	for i, row := range rows {
		rowNum := i + 1
		if rowNum < config.StartRow || isBlank(row) {
			continue
		}
		result.TotalProcessed++

		lessonID, word, err := parseRow(row, config, target)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		if _, seen := pending[lessonID]; !seen {
			order = append(order, lessonID)
		}
		pending[lessonID] = append(pending[lessonID], word)
	}

	for _, lessonID := range order {
		words := pending[lessonID]
		added, err := target.AddWords(lessonID, words)
		if err != nil {
			return nil, fmt.Errorf("failed to add words to %s: %w", lessonID, err)
		}
		result.Created += added
		result.Skipped += len(words) - added
	}

	return result, nil
}

// readExcel returns all rows of a sheet
func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

// readCSV returns all records of a CSV file
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseRow turns one row into a word for its lesson. When the prefix and
// suffix columns are empty they are derived from the first occurrence of the
// lesson's sound in the word.
func parseRow(row []string, config ImportConfig, target WordTarget) (string, models.Word, error) {
	lessonID := strings.ToUpper(cell(row, config.LessonColumn))
	text := strings.TrimSpace(cell(row, config.WordColumn))

	if lessonID == "" {
		return "", models.Word{}, fmt.Errorf("lesson id cannot be empty")
	}
	if text == "" {
		return "", models.Word{}, fmt.Errorf("word cannot be empty")
	}

	lesson := target.LessonByID(lessonID)
	if lesson == nil {
		return "", models.Word{}, fmt.Errorf("unknown lesson %s", lessonID)
	}
	sound := lesson.Sound.Combination

	prefix := cell(row, config.PrefixColumn)
	suffix := cell(row, config.SuffixColumn)
	if prefix == "" && suffix == "" {
		idx := strings.Index(text, sound)
		if idx < 0 {
			return "", models.Word{}, fmt.Errorf("word %q does not contain sound %q", text, sound)
		}
		prefix, suffix = text[:idx], text[idx+len(sound):]
	} else if prefix+sound+suffix != text {
		return "", models.Word{}, fmt.Errorf("%q + %q + %q does not spell %q", prefix, sound, suffix, text)
	}

	translations := models.Localized{}
	if en := cell(row, config.EnglishColumn); en != "" {
		translations["en"] = en
	}
	if es := cell(row, config.SpanishColumn); es != "" {
		translations["es"] = es
	}

	return lessonID, models.Word{
		ID:           sound + "-" + text,
		Text:         text,
		Prefix:       prefix,
		Suffix:       suffix,
		Translations: translations,
		Syllables:    parseIntOrDefault(cell(row, config.SyllablesColumn), 1, 10, 1),
	}, nil
}

// cell returns the trimmed value of a column, or "" when the row is too short
func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	if colIdx := columnToIndex(column); colIdx >= 0 && colIdx < len(row) {
		return strings.TrimSpace(row[colIdx])
	}
	return ""
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}

// Helper function to parse integer within a range
func parseIntInRange(s string, min, max int) (int, error) {
	var val int
	if _, err := fmt.Sscanf(s, "%d", &val); err != nil {
		return min, err
	}
	if val < min {
		return min, nil
	}
	if val > max {
		return max, nil
	}
	return val, nil
}

// Helper function to parse integer with default value
func parseIntOrDefault(s string, min, max, defaultVal int) int {
	if val, err := parseIntInRange(s, min, max); err == nil {
		return val
	}
	return defaultVal
}
