package fallback

import (
	"encoding/json"
	"net/url"
	"strings"

	"briefforge/internal/artifact"
	"briefforge/internal/catalog"
	"briefforge/internal/util/jsonutil"
)

type theme struct {
	page  string
	muted string
	card  string
}

var (
	lightTheme = theme{page: "bg-white text-gray-900", muted: "text-gray-600", card: "bg-gray-50 border border-gray-200"}
	darkTheme  = theme{page: "bg-gray-950 text-white", muted: "text-gray-400", card: "bg-gray-900 border border-gray-800"}
)

var taglines = map[catalog.TemplateType]string{
	catalog.TemplateBusiness:   "Trusted service, delivered with care.",
	catalog.TemplateEcommerce:  "Discover products you will love.",
	catalog.TemplateRestaurant: "Fresh food, warm welcome.",
	catalog.TemplatePortfolio:  "Selected work and recent projects.",
	catalog.TemplateBlog:       "Stories, notes and ideas.",
	catalog.TemplateSaaS:       "The simpler way to get work done.",
}

const websiteTemplate = `function App() {
  const name = __NAME__;
  const accent = __ACCENT__;
  const accentSoft = __ACCENT_SOFT__;
  const features = [
    { title: "Quality First", body: "Everything we offer is built to last and made with attention to detail." },
    { title: "Personal Service", body: "Talk to real people who care about getting things right for you." },
    { title: "Fast Delivery", body: "Clear timelines and quick turnaround without cutting corners." },
  ];

  return (
    <div className="min-h-screen font-sans __PAGE__">
      <header className="px-6 py-4 flex items-center justify-between max-w-6xl mx-auto">
        <span className="text-xl font-bold" style={{ color: accent }}>{name}</span>
        <button className="px-4 py-2 rounded-lg text-white text-sm font-semibold" style={{ backgroundColor: accent }}>Contact</button>
      </header>

      <section className="px-6 py-24 text-center max-w-4xl mx-auto">
        <h1 className="text-5xl font-extrabold mb-6">{name}</h1>
        <p className="text-lg mb-8 __MUTED__">__TAGLINE__</p>
        <button className="px-6 py-3 rounded-lg text-white font-semibold" style={{ background: "linear-gradient(90deg, " + accent + ", " + accentSoft + ")" }}>Get Started</button>
        <img src="__IMAGE__" alt={name} className="mt-12 mx-auto rounded-xl shadow-lg" />
      </section>

      <section className="px-6 py-16 max-w-6xl mx-auto grid gap-8 md:grid-cols-3">
        {features.map((feature) => (
          <div key={feature.title} className="p-6 rounded-xl __CARD__">
            <div className="w-10 h-10 rounded-full mb-4" style={{ backgroundColor: accent }} />
            <h3 className="text-xl font-semibold mb-2">{feature.title}</h3>
            <p className="__MUTED__">{feature.body}</p>
          </div>
        ))}
      </section>

      <footer className="px-6 py-8 text-center text-sm __MUTED__">
        © {new Date().getFullYear()} {name}. All rights reserved.
      </footer>
    </div>
  );
}

export default App;
`

// Website builds the mock component for a brief: hero, feature grid and
// footer, with the display name, theme and accent taken from the brief.
func Website(rawPrompt string) string {
	name := catalog.DisplayName(rawPrompt)
	colors := catalog.ColorSchemeFor(rawPrompt)
	th := lightTheme
	if catalog.PrefersDark(rawPrompt) {
		th = darkTheme
	}
	r := strings.NewReplacer(
		"__NAME__", jsString(name),
		"__ACCENT_SOFT__", jsString(colors.Secondary),
		"__ACCENT__", jsString(colors.Primary),
		"__PAGE__", th.page,
		"__MUTED__", th.muted,
		"__CARD__", th.card,
		"__TAGLINE__", taglines[catalog.Classify(rawPrompt)],
		"__IMAGE__", artifact.PlaceholderImageBase+strings.ReplaceAll(url.QueryEscape(name), "+", "%20"),
	)
	return r.Replace(websiteTemplate)
}

// Combined pairs the mock analysis with the mock component.
func Combined(rawPrompt string, inputs artifact.Inputs) artifact.CombinedPayload {
	return artifact.CombinedPayload{
		Analysis: json.RawMessage(AnalysisJSON(rawPrompt, inputs)),
		Code:     Website(rawPrompt),
	}
}

// jsString quotes s as a JavaScript string literal. HTML escaping is kept
// on so the literal never contains a raw '<' inside JSX.
func jsString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

func marshal(v any) ([]byte, error) {
	return jsonutil.MarshalNoEscape(v)
}
