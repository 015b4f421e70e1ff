package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphenRuns   = regexp.MustCompile(`-+`)
)

// GenerateSlug normalizes a title or name into a URL-safe slug.
// "Ways to Wear: Été 2026" → "ways-to-wear-ete-2026"
func GenerateSlug(input string) string {
	// Fold accented characters to their ASCII base
	ascii := RemoveDiacritics(input)

	lower := strings.ToLower(ascii)

	hyphenated := strings.ReplaceAll(lower, " ", "-")

	// Keep only a-z, 0-9 and hyphens
	cleaned := slugInvalidChars.ReplaceAllString(hyphenated, "")

	// Collapse runs of hyphens
	normalized := slugHyphenRuns.ReplaceAllString(cleaned, "-")

	return strings.Trim(normalized, "-")
}

// RemoveDiacritics maps common Latin accented characters onto their base
// letter. Author and story titles come in from wire feeds in several
// European languages, so the fold covers the usual Latin-1/Latin-2 range.
func RemoveDiacritics(input string) string {
	mappings := map[rune]rune{
		'á': 'a', 'à': 'a', 'â': 'a', 'ä': 'a', 'ã': 'a', 'å': 'a', 'ā': 'a', 'ă': 'a', 'ą': 'a',
		'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e', 'ē': 'e', 'ė': 'e', 'ę': 'e', 'ě': 'e',
		'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i', 'ī': 'i', 'į': 'i',
		'ó': 'o', 'ò': 'o', 'ô': 'o', 'ö': 'o', 'õ': 'o', 'ø': 'o', 'ō': 'o', 'ő': 'o',
		'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u', 'ū': 'u', 'ů': 'u', 'ű': 'u',
		'ý': 'y', 'ÿ': 'y',
		'ñ': 'n', 'ń': 'n', 'ň': 'n',
		'ç': 'c', 'ć': 'c', 'č': 'c',
		'ß': 's', 'ś': 's', 'š': 's',
		'ž': 'z', 'ź': 'z', 'ż': 'z',
		'ł': 'l', 'đ': 'd', 'ð': 'd', 'þ': 't',
		'ř': 'r', 'ť': 't', 'ğ': 'g',

		'Á': 'A', 'À': 'A', 'Â': 'A', 'Ä': 'A', 'Ã': 'A', 'Å': 'A', 'Ā': 'A', 'Ă': 'A', 'Ą': 'A',
		'É': 'E', 'È': 'E', 'Ê': 'E', 'Ë': 'E', 'Ē': 'E', 'Ė': 'E', 'Ę': 'E', 'Ě': 'E',
		'Í': 'I', 'Ì': 'I', 'Î': 'I', 'Ï': 'I', 'Ī': 'I', 'Į': 'I',
		'Ó': 'O', 'Ò': 'O', 'Ô': 'O', 'Ö': 'O', 'Õ': 'O', 'Ø': 'O', 'Ō': 'O', 'Ő': 'O',
		'Ú': 'U', 'Ù': 'U', 'Û': 'U', 'Ü': 'U', 'Ū': 'U', 'Ů': 'U', 'Ű': 'U',
		'Ý': 'Y',
		'Ñ': 'N', 'Ń': 'N', 'Ň': 'N',
		'Ç': 'C', 'Ć': 'C', 'Č': 'C',
		'Ś': 'S', 'Š': 'S',
		'Ž': 'Z', 'Ź': 'Z', 'Ż': 'Z',
		'Ł': 'L', 'Đ': 'D', 'Ð': 'D', 'Þ': 'T',
		'Ř': 'R', 'Ť': 'T', 'Ğ': 'G',
	}

	result := make([]rune, 0, len(input))
	for _, r := range input {
		if replacement, ok := mappings[r]; ok {
			result = append(result, replacement)
		} else {
			result = append(result, r)
		}
	}

	return string(result)
}
