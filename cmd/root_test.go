// file: cmd/root_test.go
// version: 1.1.0
// guid: 2a4c6e8b-0d3f-45a7-91c3-5e7f9b1d3a50

package cmd

import (
	"strings"
	"testing"

	"github.com/booktime/booktime/internal/models"
)

func TestReadImportRecords(t *testing.T) {
	csv := strings.Join([]string{
		"title,author,category,status,saga,volume,year",
		"Dune,Frank Herbert,roman,completed,,1,1965",
		"One Piece Tome 3,Eiichiro Oda,manga,reading,One Piece,3,1999",
		"Sapiens,Yuval Noah Harari",
	}, "\n")

	books, err := readImportRecords(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("readImportRecords failed: %v", err)
	}
	if len(books) != 3 {
		t.Fatalf("expected 3 books, got %d", len(books))
	}

	dune := books[0]
	if dune.Title != "Dune" || dune.Author != "Frank Herbert" {
		t.Errorf("dune mismatch: %+v", dune)
	}
	if dune.Category != models.CategoryRoman || dune.Status != models.StatusCompleted {
		t.Errorf("dune category/status mismatch: %+v", dune)
	}
	if dune.VolumeNumber != 1 || dune.PublicationYear != 1965 {
		t.Errorf("dune volume/year mismatch: %+v", dune)
	}
	if !dune.IsOwned {
		t.Error("imported books must be owned")
	}

	op := books[1]
	if op.Saga != "One Piece" || op.Category != models.CategoryManga {
		t.Errorf("one piece mismatch: %+v", op)
	}

	// Short rows fall back to defaults.
	sapiens := books[2]
	if sapiens.Category != models.CategoryRoman || sapiens.Status != models.StatusToRead {
		t.Errorf("sapiens defaults mismatch: %+v", sapiens)
	}
}

func TestReadImportRecords_NoHeader(t *testing.T) {
	books, err := readImportRecords(strings.NewReader("Dune,Frank Herbert\n"))
	if err != nil {
		t.Fatalf("readImportRecords failed: %v", err)
	}
	if len(books) != 1 || books[0].Title != "Dune" {
		t.Fatalf("expected headerless row to import, got %+v", books)
	}
}

func TestReadImportRecords_Errors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"missing title", "title,author\n,Somebody\n"},
		{"bad category", "Dune,Frank Herbert,cookbook\n"},
		{"bad status", "Dune,Frank Herbert,roman,abandoned\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := readImportRecords(strings.NewReader(tt.csv)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
