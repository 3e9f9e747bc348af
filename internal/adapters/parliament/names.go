package parliament

import "strings"

// group prefixes the API puts before a party name
var groupPrefixes = []string{"Парламентарна група на ", "Парламентарна група "}

// abbreviations the last word rule gets wrong
var knownAbbreviations = map[string]string{
	"ГЕРБ – СДС": "ГЕРБ-СДС",
	"Продължаваме Промяната – Демократична България":                "ПП-ДБ",
	"ВЪЗРАЖДАНЕ":                                                    "ВЪЗРАЖДАНЕ",
	"Движение за права и свободи – Ново начало – ДПС – Ново начало": "Демокрация, права и свободи – ДПС",
	"БСП – ОБЕДИНЕНА ЛЕВИЦА":                                        "БСП",
	"Има Такъв Народ":                                               "ИТН",
	"Алианс за права и свободи":                                     "АПС",
	"ПП МЕЧ":                                                        "МЕЧ",
	"ВЕЛИЧИЕ":                                                       "ВЕЛИЧИЕ",
	"Нечленуващи в ПГ":                                              "БезПГ",
}

// CleanPartyName drops the group prefix and any quotes
func CleanPartyName(raw string) string {
	s := strings.TrimSpace(raw)
	for _, p := range groupPrefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimPrefix(s, p)
			break
		}
	}
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `"`, "")
	return strings.Trim(s, ` "`)
}

// Abbreviation returns the short form of a cleaned party name
// unknown names use their last word
func Abbreviation(name string) string {
	if a, ok := knownAbbreviations[name]; ok {
		return a
	}
	f := strings.Fields(name)
	if len(f) == 0 {
		return ""
	}
	return f[len(f)-1]
}

