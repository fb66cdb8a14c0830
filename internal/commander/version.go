// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package commander

import (
	"strconv"
	"strings"
)

// versionLess reports whether a < b for dotted numeric version strings
// ("1.46.1" < "1.46.2"). Non-numeric segments compare as 0, which is
// sufficient for the client version strings the media server reports.
func versionLess(a, b string) bool {
	ap := strings.Split(a, ".")
	bp := strings.Split(b, ".")
	for i := 0; i < len(ap) || i < len(bp); i++ {
		var av, bv int
		if i < len(ap) {
			av, _ = strconv.Atoi(ap[i])
		}
		if i < len(bp) {
			bv, _ = strconv.Atoi(bp[i])
		}
		if av != bv {
			return av < bv
		}
	}
	return false
}
