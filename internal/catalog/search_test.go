package catalog

import "testing"

func TestWordPatternPerDialect(t *testing.T) {
	if got := wordPattern("postgres", "c++"); got != `\yc\+\+\y` {
		t.Fatalf("unexpected postgres pattern %q", got)
	}
	if got := wordPattern("sqlite", "pan"); got != `(?i)\bpan\b` {
		t.Fatalf("unexpected sqlite pattern %q", got)
	}
}

func TestSearchClauseJoinsTermsWithOr(t *testing.T) {
	clause, args := searchClause("postgres", []string{"steel", "pan"})
	want := "((name ~* ? OR description ~* ?) OR (name ~* ? OR description ~* ?))"
	if clause != want {
		t.Fatalf("unexpected clause %q", clause)
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %d", len(args))
	}

	if clause, args := searchClause("sqlite", nil); clause != "" || args != nil {
		t.Fatalf("expected empty clause, got %q %v", clause, args)
	}
}

func TestSortOrder(t *testing.T) {
	cases := map[string]string{
		SortPopularity: "ratings DESC, created_at DESC",
		SortNewness:    "created_at DESC",
		SortPriceAsc:   "price ASC",
		SortPriceDesc:  "price DESC",
		SortNameAsc:    "name ASC",
		SortNameDesc:   "name DESC",
		"":             "created_at DESC",
		"bogus":        "created_at DESC",
	}
	for key, want := range cases {
		if got := sortOrder(key); got != want {
			t.Fatalf("sortOrder(%q) = %q want %q", key, got, want)
		}
	}
}

func TestSplitNames(t *testing.T) {
	got := splitNames(" Prestige, ,Hawkins ")
	if len(got) != 2 || got[0] != "Prestige" || got[1] != "Hawkins" {
		t.Fatalf("unexpected names %v", got)
	}
	if len(splitNames("")) != 0 {
		t.Fatalf("expected no names")
	}
}
