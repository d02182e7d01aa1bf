package fakedata

import (
	"fmt"
	"strings"
)

var romanizationAlphabets = map[string]map[rune]string{
	"ru": cyrillicAlphabet(map[rune]string{
		'Ё': "Yo", 'ё': "yo",
		'Й': "Y", 'й': "y",
		'Ъ': "", 'ъ': "",
		'Ы': "Y", 'ы': "y",
		'Ь': "", 'ь': "",
		'Э': "E", 'э': "e",
	}),
	"uk": cyrillicAlphabet(map[rune]string{
		'Г': "H", 'г': "h",
		'Ґ': "G", 'ґ': "g",
		'Е': "E", 'е': "e",
		'Є': "Ye", 'є': "ie",
		'И': "Y", 'и': "y",
		'І': "I", 'і': "i",
		'Ї': "Yi", 'ї': "yi",
		'Й': "Y", 'й': "i",
		'Ь': "’", 'ь': "’",
		'\'': "", '’': "",
	}),
}

func cyrillicAlphabet(overrides map[rune]string) map[rune]string {
	base := map[rune]string{
		'А': "A", 'а': "a", 'Б': "B", 'б': "b", 'В': "V", 'в': "v",
		'Г': "G", 'г': "g", 'Д': "D", 'д': "d", 'Е': "E", 'е': "e",
		'Ж': "Zh", 'ж': "zh", 'З': "Z", 'з': "z", 'И': "I", 'и': "i",
		'К': "K", 'к': "k", 'Л': "L", 'л': "l", 'М': "M", 'м': "m",
		'Н': "N", 'н': "n", 'О': "O", 'о': "o", 'П': "P", 'п': "p",
		'Р': "R", 'р': "r", 'С': "S", 'с': "s", 'Т': "T", 'т': "t",
		'У': "U", 'у': "u", 'Ф': "F", 'ф': "f", 'Х': "Kh", 'х': "kh",
		'Ц': "Ts", 'ц': "ts", 'Ч': "Ch", 'ч': "ch", 'Ш': "Sh", 'ш': "sh",
		'Щ': "Shch", 'щ': "shch", 'Ю': "Yu", 'ю': "yu", 'Я': "Ya", 'я': "ya",
	}
	for r, latin := range overrides {
		base[r] = latin
	}
	return base
}

// Romanize transliterates Cyrillic text of the ru and uk locales to Latin.
// Characters outside the alphabet are copied unchanged.
func Romanize(locale, text string) (string, error) {
	alphabet, ok := romanizationAlphabets[romanizationKey(locale)]
	if !ok {
		return "", fmt.Errorf("%w: no romanization for %q", ErrUnsupportedLocale, locale)
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if latin, ok := alphabet[r]; ok {
			b.WriteString(latin)
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

func romanizationKey(locale string) string {
	key := normalizeLocaleKey(locale)
	if base, _, ok := strings.Cut(key, "-"); ok {
		key = base
	}
	if key == "ua" {
		return "uk"
	}
	return key
}
