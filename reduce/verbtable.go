package reduce

import "strings"

// VerbTable scores particular stem + object-case-signature combinations,
// grounded on original_source/matcher.py's VerbObjects ("$score(n)
// pragmas in Verbs.conf"). Keyed first by verb stem, then by the
// concatenated uppercase case signature of the terminal's object
// variants (e.g. "ÞFÞGF" for a verb taking accusative-then-dative
// objects).
type VerbTable map[string]map[string]int

// DefaultVerbScores is a small representative built-in table; the full
// table is tuned against a licensed corpus and loaded from Verbs.conf in
// the original system, which is out of core scope.
var DefaultVerbScores = VerbTable{
	"gefa": {"ÞGFÞF": 2},  // "gefa e-m e-ð" (give someone something) is the common reading
	"segja": {"ÞGF": 1},
}

// ZeroArgVerbs lists stems known to take zero arguments legitimately
// (impersonal weather verbs and the like), mirroring
// original_source/matcher.py's VerbObjects.VERBS[0] list.
var ZeroArgVerbs = map[string]bool{
	"rigna": true,
	"snjóa": true,
	"hvessa": true,
}

// Score looks up the table entry for stem+caseSignature, returning 0 if
// absent.
func (t VerbTable) Score(stem, caseSignature string) int {
	inner, ok := t[stem]
	if !ok {
		return 0
	}
	return inner[caseSignature]
}

var verbCaseNames = map[string]string{
	"nf": "NF", "þf": "ÞF", "þgf": "ÞGF", "ef": "EF",
}

// caseSignature extracts the object-case signature from a verb
// terminal's name, e.g. "so_2_þf_þgf" -> "ÞFÞGF".
func caseSignature(termName string) string {
	var b strings.Builder
	for _, part := range strings.Split(termName, "_") {
		if code, ok := verbCaseNames[part]; ok {
			b.WriteString(code)
		}
	}
	return b.String()
}
