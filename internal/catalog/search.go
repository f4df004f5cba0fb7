package catalog

import (
	"regexp"
	"strings"
)

// searchTerms splits a raw search string on whitespace.
func searchTerms(raw string) []string {
	return strings.Fields(raw)
}

// wordPattern builds a case-insensitive whole-word pattern for one term in
// the regex flavour of the active dialect.
func wordPattern(dialect, term string) string {
	quoted := regexp.QuoteMeta(term)
	if dialect == "postgres" {
		return `\y` + quoted + `\y`
	}
	return `(?i)\b` + quoted + `\b`
}

// regexOperator is the case-insensitive match operator of the dialect.
func regexOperator(dialect string) string {
	if dialect == "postgres" {
		return "~*"
	}
	return "REGEXP"
}

// searchClause returns a where fragment matching any term in name or
// description, plus its bind arguments.
func searchClause(dialect string, terms []string) (string, []any) {
	if len(terms) == 0 {
		return "", nil
	}
	op := regexOperator(dialect)
	parts := make([]string, 0, len(terms))
	args := make([]any, 0, len(terms)*2)
	for _, term := range terms {
		pattern := wordPattern(dialect, term)
		parts = append(parts, "(name "+op+" ? OR description "+op+" ?)")
		args = append(args, pattern, pattern)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// splitNames parses a comma separated filter value.
func splitNames(raw string) []string {
	out := []string{}
	for _, name := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// sortOrder maps a shop sort key to an ORDER BY clause.
func sortOrder(key string) string {
	switch key {
	case SortPopularity:
		return "ratings DESC, created_at DESC"
	case SortNewness:
		return "created_at DESC"
	case SortPriceAsc:
		return "price ASC"
	case SortPriceDesc:
		return "price DESC"
	case SortNameAsc:
		return "name ASC"
	case SortNameDesc:
		return "name DESC"
	default:
		return "created_at DESC"
	}
}
