// README: Region classifier maps raw delivery addresses to canonical region keywords.
package region

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Metropolitan cities are always abbreviated to their first two characters
// (서울특별시 -> 서울). Matching is by containment so that both the short and
// the official long spellings resolve.
var metroNames = []string{"서울", "부산", "대구", "인천", "광주", "대전", "울산"}

// Two-tier provinces need a sub-region: the price table keys on the city or
// county inside them, not on the province itself.
var provinceNames = []string{
	"경상남도", "경상북도", "전라남도", "전라북도", "충청남도", "충청북도",
	"경남", "경북", "전남", "전북", "충남", "충북",
}

// Classify normalizes a free-text address into the region keyword used as the
// price-table join key. Empty input yields an empty region, which callers must
// treat as "no match". The function is pure: same input, same output.
func Classify(address string) string {
	fields := strings.Fields(norm.NFC.String(address))
	if len(fields) == 0 {
		return ""
	}
	first := fields[0]
	second := ""
	if len(fields) > 1 {
		second = fields[1]
	}

	for _, m := range metroNames {
		if strings.Contains(first, m) {
			return firstTwoChars(first)
		}
	}

	for _, p := range provinceNames {
		if strings.Contains(first, p) {
			if second != "" {
				return stripCitySuffix(second)
			}
			return firstTwoChars(first)
		}
	}

	return stripCitySuffix(first)
}

// Summarize renders a per-region count of the given addresses in first-seen
// order, e.g. "부산 2, 김해 1". Unclassifiable entries are skipped; an empty
// result renders as "-".
func Summarize(addresses []string) string {
	var order []string
	counts := make(map[string]int)
	for _, addr := range addresses {
		r := Classify(strings.TrimSpace(addr))
		if r == "" || r == "?" || r == "-" {
			continue
		}
		if _, seen := counts[r]; !seen {
			order = append(order, r)
		}
		counts[r]++
	}
	if len(order) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(order))
	for _, r := range order {
		parts = append(parts, r+" "+strconv.Itoa(counts[r]))
	}
	return strings.Join(parts, ", ")
}

// SplitAddressList splits a pipe-joined ("||") address list into trimmed,
// non-empty entries.
func SplitAddressList(list string) []string {
	var out []string
	for _, p := range strings.Split(list, "||") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// stripCitySuffix removes a single trailing 시 or 군 designator. Only the
// trailing character is touched so multi-word region names survive intact.
func stripCitySuffix(s string) string {
	if trimmed := strings.TrimSuffix(s, "시"); trimmed != s {
		return trimmed
	}
	return strings.TrimSuffix(s, "군")
}

func firstTwoChars(s string) string {
	runes := []rune(s)
	if len(runes) <= 2 {
		return s
	}
	return string(runes[:2])
}
