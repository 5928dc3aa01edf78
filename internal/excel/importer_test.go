package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/flipcards/internal/curriculum"
	"github.com/xuri/excelize/v2"
)

func writeSheet(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		for j, v := range row {
			cellName, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cellName, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "words.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	return path
}

func TestImportWordsExcel(t *testing.T) {
	catalog, err := curriculum.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	before := len(catalog.LessonByID("P1-AA-BEG").Words)

	path := writeSheet(t, [][]interface{}{
		{"lesson", "word", "prefix", "suffix", "en", "es", "syllables"},
		{"P1-AA-BEG", "haas", "", "", "hare", "liebre", 1},
		{"p1-aa-beg", "kaas", "k", "s", "cheese", "queso", 1},
		{"P1-AA-BEG", "baan", "b", "m", "job", "trabajo", 1},
		{"P1-XX-BEG", "gaas", "", "", "gauze", "gasa", 1},
		{"P1-EE-BEG", "kaas", "", "", "", "", ""},
	})

	config := DefaultImportConfig()
	config.FilePath = path

	result, err := ImportWords(config, catalog)
	if err != nil {
		t.Fatalf("ImportWords: %v", err)
	}

	if result.TotalProcessed != 5 {
		t.Errorf("TotalProcessed = %d, want 5", result.TotalProcessed)
	}
	if result.Created != 1 {
		t.Errorf("Created = %d, want 1", result.Created)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if len(result.Errors) != 3 {
		t.Errorf("Errors = %v, want 3 entries", result.Errors)
	}

	lesson := catalog.LessonByID("P1-AA-BEG")
	if got := len(lesson.Words); got != before+1 {
		t.Fatalf("lesson has %d words, want %d", got, before+1)
	}
	added := lesson.Words[len(lesson.Words)-1]
	if added.ID != "aa-haas" || added.Prefix != "h" || added.Suffix != "s" {
		t.Errorf("unexpected word %+v", added)
	}
	if added.Translations.In("es") != "liebre" {
		t.Errorf("es translation = %q, want liebre", added.Translations.In("es"))
	}
}

func TestImportWordsCSV(t *testing.T) {
	catalog, err := curriculum.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	content := "lesson,word,prefix,suffix,en,es,syllables\n" +
		"P2-OE-BEG,boek,,,book,libro,1\n" +
		"\n" +
		"P2-OE-BEG,schoenen,sch,nen,shoes,zapatos,2\n"
	path := filepath.Join(t.TempDir(), "words.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	config := DefaultImportConfig()
	config.FilePath = path

	result, err := ImportWords(config, catalog)
	if err != nil {
		t.Fatalf("ImportWords: %v", err)
	}
	if result.TotalProcessed != 2 || len(result.Errors) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Created+result.Skipped != 2 {
		t.Errorf("Created+Skipped = %d, want 2", result.Created+result.Skipped)
	}
}

func TestImportWordsMissingFile(t *testing.T) {
	catalog, err := curriculum.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	config := DefaultImportConfig()
	config.FilePath = filepath.Join(t.TempDir(), "missing.xlsx")
	if _, err := ImportWords(config, catalog); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestColumnToIndex(t *testing.T) {
	tests := map[string]int{"A": 0, "b": 1, "G": 6, "Z": 25, "AA": 26}
	for col, want := range tests {
		if got := columnToIndex(col); got != want {
			t.Errorf("columnToIndex(%q) = %d, want %d", col, got, want)
		}
	}
}
