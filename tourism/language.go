package tourism

import (
	"sort"
	"strings"
)

// DefaultLanguage is used when a configured or requested language is not
// one of the supported codes.
const DefaultLanguage = "en"

// LanguageServiceMap maps supported language codes to the upstream service
// variant serving that language. Korean and English run on the newer
// second-generation services; the rest are still first-generation.
var LanguageServiceMap = map[string]string{
	"ko":    "KorService2",
	"en":    "EngService2",
	"jp":    "JpnService1",
	"zh-cn": "ChsService1",
	"zh-tw": "ChtService1",
	"de":    "GerService1",
	"fr":    "FreService1",
	"es":    "SpnService1",
	"ru":    "RusService1",
}

// ContentTypeIDMap maps upstream content type IDs to their English names.
var ContentTypeIDMap = map[string]string{
	"76": "Tourist Attraction",
	"78": "Cultural Facility",
	"85": "Festival Event",
	"75": "Leisure Activity",
	"80": "Accommodation",
	"79": "Shopping",
	"82": "Restaurant",
	"77": "Transportation",
}

// ContentTypeID resolves a human-readable content type name to its numeric
// ID. Matching is case-insensitive.
func ContentTypeID(name string) (string, bool) {
	for id, label := range ContentTypeIDMap {
		if strings.EqualFold(label, name) {
			return id, true
		}
	}
	return "", false
}

// ContentTypeNames returns the supported content type names sorted
// alphabetically, for error messages and tool schemas.
func ContentTypeNames() []string {
	names := make([]string, 0, len(ContentTypeIDMap))
	for _, label := range ContentTypeIDMap {
		names = append(names, label)
	}
	sort.Strings(names)
	return names
}

// resolveLanguage picks the language for one call: the per-call override if
// it is supported, otherwise the configured default, otherwise
// DefaultLanguage. Codes are matched case-insensitively.
func resolveLanguage(configured, override string) string {
	lang := strings.ToLower(strings.TrimSpace(configured))
	if _, ok := LanguageServiceMap[lang]; !ok {
		lang = DefaultLanguage
	}
	if override != "" {
		if o := strings.ToLower(strings.TrimSpace(override)); o != "" {
			if _, ok := LanguageServiceMap[o]; ok {
				lang = o
			}
		}
	}
	return lang
}
