package helper

// Display glyph lookups for the picker components. Pure data, no state.

var countryFlags = map[string]string{
	"Thailand":       "🇹🇭",
	"Japan":          "🇯🇵",
	"South Korea":    "🇰🇷",
	"China":          "🇨🇳",
	"Taiwan":         "🇹🇼",
	"Vietnam":        "🇻🇳",
	"Myanmar":        "🇲🇲",
	"Laos":           "🇱🇦",
	"Cambodia":       "🇰🇭",
	"Malaysia":       "🇲🇾",
	"Singapore":      "🇸🇬",
	"Indonesia":      "🇮🇩",
	"Philippines":    "🇵🇭",
	"India":          "🇮🇳",
	"France":         "🇫🇷",
	"Germany":        "🇩🇪",
	"United Kingdom": "🇬🇧",
	"United States":  "🇺🇸",
	"Canada":         "🇨🇦",
	"Australia":      "🇦🇺",
}

var languageLabels = map[string]string{
	"th": "ไทย",
	"en": "English",
	"ja": "日本語",
	"ko": "한국어",
	"zh": "中文",
	"vi": "Tiếng Việt",
	"fr": "Français",
	"de": "Deutsch",
}

var genreIcons = map[string]string{
	"Drama":        "🎭",
	"Comedy":       "😄",
	"Documentary":  "🎥",
	"Horror":       "👻",
	"Animation":    "✏️",
	"Sci-Fi":       "🚀",
	"Romance":      "💕",
	"Action":       "💥",
	"Experimental": "🌀",
}

var audienceBadges = map[string]string{
	"general":  "G",
	"teen":     "13+",
	"mature":   "18+",
	"children": "C",
}

func GetCountryFlag(country string) string {
	if flag, ok := countryFlags[country]; ok {
		return flag
	}
	return "🏳️"
}

func GetLanguageLabel(code string) string {
	if label, ok := languageLabels[code]; ok {
		return label
	}
	return code
}

func GetGenreIcon(genre string) string {
	if icon, ok := genreIcons[genre]; ok {
		return icon
	}
	return "🎬"
}

func GetAudienceBadge(audience string) string {
	if badge, ok := audienceBadges[audience]; ok {
		return badge
	}
	return "G"
}
