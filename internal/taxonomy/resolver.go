package taxonomy

import "strings"

// Uncategorized is the sentinel category for transactions that could not be
// mapped onto the chart of accounts.
const Uncategorized = "UNCATEGORIZED"

// Separator joins the segments of a canonical category path.
const Separator = " | "

// AccountKey is the interned form of an account name. All joins between the
// ledger, opening balances, and the trial balance go through this key rather
// than ad-hoc string comparison, so casing and whitespace differences cannot
// drift the same account into two rows.
type AccountKey string

// Key interns an account name.
func Key(name string) AccountKey {
	return AccountKey(normalize(name))
}

var dashReplacer = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
	"‐", "-", // hyphen
)

var quoteReplacer = strings.NewReplacer(
	"'", "", "‘", "", "’", "",
	`"`, "", "“", "", "”", "",
)

// normalize prepares a string for comparison: trim, lowercase, unify dash
// variants, strip quotes, spell out ampersands, collapse whitespace runs.
// The same transform is applied to inputs and to chart leaves.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = dashReplacer.Replace(s)
	s = quoteReplacer.Replace(s)
	s = strings.ReplaceAll(s, "&", " and ")
	return strings.Join(strings.Fields(s), " ")
}

// Resolve maps a free-text or externally suggested category onto a canonical
// chart path, or Uncategorized when nothing matches. Pure function of the
// input and the chart.
//
// Matching order: leaf of an already-pathed input, exact leaf equality, then
// substring containment in either direction. Containment is first-match in
// chart iteration order and deliberately permissive; when several leaves
// contain each other the earliest one in the chart wins.
func Resolve(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || strings.EqualFold(trimmed, Uncategorized) {
		return Uncategorized
	}

	leaves := Leaves()

	// An input that already carries a path is validated by its last segment.
	if strings.Contains(trimmed, "|") {
		segments := strings.Split(trimmed, "|")
		leaf := normalize(segments[len(segments)-1])

		for _, l := range leaves {
			if normalize(l.Account) == leaf {
				return l.Path()
			}
		}
	}

	norm := normalize(trimmed)

	for _, l := range leaves {
		if normalize(l.Account) == norm {
			return l.Path()
		}
	}

	for _, l := range leaves {
		ln := normalize(l.Account)
		if strings.Contains(ln, norm) || strings.Contains(norm, ln) {
			return l.Path()
		}
	}

	return Uncategorized
}

// LeafName returns the account-name segment of a category path. For the
// sentinel or a pathless string it returns the input unchanged.
func LeafName(path string) string {
	if idx := strings.LastIndex(path, "|"); idx >= 0 {
		return strings.TrimSpace(path[idx+1:])
	}
	return strings.TrimSpace(path)
}
