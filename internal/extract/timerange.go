package extract

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/roach88/segment/internal/lexicon"
)

// reDuration matches explicit "last/past N unit" durations not covered
// by the phrase table.
var reDuration = regexp.MustCompile(`(?i)\b(?:last|past|previous)\s+(\d+)\s*(day|week|month)s?\b`)

// TimeRange normalizes a duration mention to a canonical phrase such
// as "Last 30 days". Explicit "last N days/weeks/months" durations
// win over the phrase table; "past 6 weeks" must not be swallowed by
// the table's bare "week" entry. Weeks are 7 days, months 30, with
// whole years mapped to the 365-day form the table uses. Returns
// ("", false) when the utterance mentions no recognizable duration.
func TimeRange(text string) (string, bool) {
	if m := reDuration.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			switch m[2][0] {
			case 'w', 'W':
				n *= 7
			case 'm', 'M':
				if n%12 == 0 {
					n = n / 12 * 365
				} else {
					n *= 30
				}
			}
			return fmt.Sprintf("Last %d days", n), true
		}
	}

	if canonical, ok := lexicon.NormalizeTimePhrase(text); ok {
		return canonical, true
	}
	return "", false
}
