package cascade

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/alexanderramin/rpdform/internal/dataset"
	"github.com/alexanderramin/rpdform/internal/domain"
)

// RosterPrefix starts the expected name of a student roster sheet.
const RosterPrefix = "Ogrenci_"

// RosterMarkers are the words, any of which marks a category as a student
// roster. Matched case-insensitively.
var RosterMarkers = []string{"ogrenci", "öğrenci", "student"}

// classSectionSeparator splits a class/section label into its two parts.
const classSectionSeparator = " / "

// MatchLevel records how a roster sheet was found.
type MatchLevel int

const (
	MatchNone MatchLevel = iota
	MatchExact
	MatchClassAndSection
	MatchFolded
	MatchClassOnly
)

func (l MatchLevel) String() string {
	switch l {
	case MatchExact:
		return "exact"
	case MatchClassAndSection:
		return "class+section"
	case MatchFolded:
		return "folded"
	case MatchClassOnly:
		return "class-only"
	default:
		return "none"
	}
}

// RosterOptions tunes roster resolution.
type RosterOptions struct {
	// Fold adds a diacritic- and separator-insensitive class+section pass
	// before the class-only fallback.
	Fold bool
}

// RosterMatch is the outcome of a roster lookup. Candidates lists every
// roster sheet that matched at the winning level, in table order; Sheet is
// the first of them.
type RosterMatch struct {
	Sheet      string
	Level      MatchLevel
	Candidates []string
	Students   []domain.Option
}

// Found reports whether a roster sheet was matched.
func (m RosterMatch) Found() bool {
	return m.Level != MatchNone
}

// Ambiguous reports whether more than one sheet matched at the winning level.
func (m RosterMatch) Ambiguous() bool {
	return len(m.Candidates) > 1
}

// ResolveRoster finds the student roster for a class/section code. The
// search narrows from the exact expected sheet name to sheets containing
// both label parts, then sheets containing the class part only. Ties go to
// the first sheet in table order.
func ResolveRoster(t *dataset.Table, classSectionCode string, opts RosterOptions) RosterMatch {
	if classSectionCode == "" {
		return RosterMatch{}
	}
	cs, ok := t.Lookup(domain.CategoryClassSection, classSectionCode)
	if !ok {
		return RosterMatch{}
	}
	sheets := RosterSheets(t)

	target := RosterPrefix + strings.ReplaceAll(cs.Label, "/", "_")
	for _, s := range sheets {
		if s == target {
			return matched(t, MatchExact, []string{s})
		}
	}

	parts := strings.Split(cs.Label, classSectionSeparator)
	if len(parts) != 2 {
		return RosterMatch{}
	}
	className, sectionName := strings.ToLower(parts[0]), strings.ToLower(parts[1])

	if found := filterSheets(sheets, func(lower string) bool {
		return strings.Contains(lower, className) && strings.Contains(lower, sectionName)
	}, strings.ToLower); len(found) > 0 {
		return matched(t, MatchClassAndSection, found)
	}

	if opts.Fold {
		fc, fs := fold(parts[0]), fold(parts[1])
		if found := filterSheets(sheets, func(folded string) bool {
			return strings.Contains(folded, fc) && strings.Contains(folded, fs)
		}, fold); len(found) > 0 {
			return matched(t, MatchFolded, found)
		}
	}

	if found := filterSheets(sheets, func(lower string) bool {
		return strings.Contains(lower, className)
	}, strings.ToLower); len(found) > 0 {
		return matched(t, MatchClassOnly, found)
	}
	return RosterMatch{}
}

// RosterSheets returns the categories whose name carries a roster marker.
func RosterSheets(t *dataset.Table) []string {
	var out []string
	for _, name := range t.Names() {
		if IsRosterSheet(name) {
			out = append(out, name)
		}
	}
	return out
}

// IsRosterSheet reports whether a category name carries a roster marker.
func IsRosterSheet(name string) bool {
	lower := strings.ToLower(name)
	for _, m := range RosterMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func filterSheets(sheets []string, match func(string) bool, normalize func(string) string) []string {
	var out []string
	for _, s := range sheets {
		if match(normalize(s)) {
			out = append(out, s)
		}
	}
	return out
}

func matched(t *dataset.Table, level MatchLevel, candidates []string) RosterMatch {
	return RosterMatch{
		Sheet:      candidates[0],
		Level:      level,
		Candidates: candidates,
		Students:   t.Options(candidates[0]),
	}
}

// fold lowercases s with Turkish dotless/dotted i collapsed to "i", strips
// combining marks and maps every run of non-alphanumerics to "_".
func fold(s string) string {
	s = strings.NewReplacer("ı", "i", "I", "i", "İ", "i").Replace(s)
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err == nil {
		s = stripped
	}
	s = strings.ToLower(s)

	var b strings.Builder
	sep := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			sep = false
			b.WriteRune(r)
			continue
		}
		sep = true
	}
	return b.String()
}
