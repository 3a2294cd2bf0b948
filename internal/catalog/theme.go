package catalog

// ColorScheme is a primary/secondary hex color pair.
type ColorScheme struct {
	Primary   string
	Secondary string
}

// DefaultColorScheme is used when no color keyword matches.
var DefaultColorScheme = ColorScheme{Primary: "#7c3aed", Secondary: "#a855f7"}

var colorRules = []keywordRule[ColorScheme]{
	{ColorScheme{"#2563eb", "#3b82f6"}, []string{"blue", "ocean", "marine", "water", "trust", "corporate", "finance", "bank"}},
	{ColorScheme{"#059669", "#10b981"}, []string{"green", "eco-friendly", "sustainab", "nature", "organic", "plant", "garden", "health", "wellness"}},
	{ColorScheme{"#dc2626", "#ef4444"}, []string{"crimson", "scarlet", "ruby", "passion", "spicy", "pizza"}},
	{ColorScheme{"#ea580c", "#f97316"}, []string{"orange", "energy", "sunset", "autumn", "fitness"}},
	{ColorScheme{"#db2777", "#ec4899"}, []string{"pink", "beauty", "cosmetic", "fashion", "wedding", "flower"}},
	{ColorScheme{"#ca8a04", "#eab308"}, []string{"gold", "yellow", "jewelry", "jewellery", "luxury", "premium"}},
	{ColorScheme{"#111827", "#374151"}, []string{"black", "dark", "noir", "monochrome"}},
}

// ColorSchemeFor picks a color pair from keywords in text.
func ColorSchemeFor(text string) ColorScheme {
	return firstMatch(text, colorRules, DefaultColorScheme)
}

// DefaultStyle is used when no style keyword matches.
const DefaultStyle = "modern"

var styleRules = []keywordRule[string]{
	{"minimal", []string{"minimal", "simple", "clean"}},
	{"elegant", []string{"elegant", "luxury", "classy", "sophisticated", "premium"}},
	{"playful", []string{"playful", "colorful", "kids", "children"}},
	{"bold", []string{"bold", "vibrant", "striking"}},
	{"professional", []string{"professional", "corporate", "business", "enterprise"}},
	{"vintage", []string{"vintage", "retro", "classic", "rustic"}},
}

// StyleFor picks a visual style keyword from text.
func StyleFor(text string) string {
	return firstMatch(text, styleRules, DefaultStyle)
}

var darkRules = []keywordRule[bool]{
	{true, []string{"dark", "black", "night", "noir", "gaming", "neon"}},
}

// PrefersDark reports whether text asks for a dark theme.
func PrefersDark(text string) bool {
	return firstMatch(text, darkRules, false)
}
