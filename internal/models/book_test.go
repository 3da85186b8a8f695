// file: internal/models/book_test.go
// version: 1.1.0
// guid: 5a7c9e1d-3f6b-48a0-b2c4-8e0f2a4c6d18

package models

import "testing"

func TestCategoryValid(t *testing.T) {
	valid := []Category{CategoryRoman, CategoryBD, CategoryManga}
	for _, c := range valid {
		if !c.Valid() {
			t.Errorf("expected %q to be valid", c)
		}
	}
	invalid := []Category{"", "novel", "ROMAN", "comics"}
	for _, c := range invalid {
		if c.Valid() {
			t.Errorf("expected %q to be invalid", c)
		}
	}
}

func TestStatusValid(t *testing.T) {
	valid := []Status{StatusToRead, StatusReading, StatusCompleted}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if Status("abandoned").Valid() {
		t.Error("expected abandoned to be invalid")
	}
}

func TestCategories_Order(t *testing.T) {
	got := Categories()
	want := []Category{CategoryRoman, CategoryBD, CategoryManga}
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestEffectiveScore(t *testing.T) {
	card := ComposedResult{IsSeriesCard: true, Card: &SeriesCard{Confidence: 100080}}
	if card.EffectiveScore() != 100080 {
		t.Errorf("card score: got %d", card.EffectiveScore())
	}

	book := ComposedResult{Book: &AnnotatedBook{Relevance: 35000}}
	if book.EffectiveScore() != 35000 {
		t.Errorf("book score: got %d", book.EffectiveScore())
	}

	var empty ComposedResult
	if empty.EffectiveScore() != 0 {
		t.Errorf("empty score: got %d", empty.EffectiveScore())
	}
}
