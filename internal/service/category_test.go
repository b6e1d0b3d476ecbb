package service

import (
	"testing"
)

func TestCategoriesSeededOnFirstAccess(t *testing.T) {
	env := newTestEnv(t)

	categories, err := env.categories.Categories(env.userID)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}

	if len(categories) != len(defaultCategories) {
		t.Fatalf("expected %d seeded categories, got %d", len(defaultCategories), len(categories))
	}
	for i, def := range defaultCategories {
		if categories[i].Name != def.Name {
			t.Errorf("categories[%d].Name = %q, want %q", i, categories[i].Name, def.Name)
		}
		if categories[i].SortOrder != def.SortOrder {
			t.Errorf("categories[%d].SortOrder = %d, want %d", i, categories[i].SortOrder, def.SortOrder)
		}
		if categories[i].UserID != env.userID {
			t.Errorf("categories[%d] not scoped to the user", i)
		}
	}
}

func TestCategoriesSeedOnlyOnce(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.categories.Categories(env.userID)
	if err != nil {
		t.Fatalf("first Categories failed: %v", err)
	}
	second, err := env.categories.Categories(env.userID)
	if err != nil {
		t.Fatalf("second Categories failed: %v", err)
	}

	if len(second) != len(first) {
		t.Fatalf("expected %d categories on repeat access, got %d", len(first), len(second))
	}
	for i := range first {
		if second[i].ID != first[i].ID {
			t.Errorf("categories[%d].ID changed between reads", i)
		}
	}
}

func TestCategoriesNotSeededOverExisting(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.categories.Create(env.userID, CategoryInput{Name: "Side projects", Color: "#64748b"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	categories, err := env.categories.Categories(env.userID)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}

	if len(categories) != 1 || categories[0].ID != created.ID {
		t.Fatalf("expected only the user's own category, got %d", len(categories))
	}
}
