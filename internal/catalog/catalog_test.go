package catalog

import "testing"

func TestClassify_FirstMatchWins(t *testing.T) {
	cases := []struct {
		in   string
		want TemplateType
	}{
		{"I need an ecommerce store for selling handmade jewelry", TemplateEcommerce},
		{"Online shop for my bakery", TemplateEcommerce},
		{"A restaurant site with a menu", TemplateRestaurant},
		{"photography portfolio", TemplatePortfolio},
		{"travel blog", TemplateBlog},
		{"SaaS landing page", TemplateSaaS},
		{"law firm", TemplateBusiness},
		{"", TemplateBusiness},
	}
	for _, tc := range cases {
		if got := Classify(tc.in); got != tc.want {
			t.Fatalf("Classify(%q): got=%s want=%s", tc.in, got, tc.want)
		}
	}
}

func TestGetTemplate_UnknownFallsBackToBusiness(t *testing.T) {
	tpl := GetTemplate(TemplateType("spaceship"))
	if tpl.Type != TemplateBusiness {
		t.Fatalf("type: got=%s", tpl.Type)
	}
	if len(tpl.Pages) == 0 || len(tpl.NavPages) == 0 {
		t.Fatalf("expected pages and nav pages, got=%+v", tpl)
	}
}

func TestGetTemplate_NavPagesExist(t *testing.T) {
	for typ := range templates {
		tpl := GetTemplate(typ)
		names := map[string]bool{}
		for _, p := range tpl.Pages {
			names[p.Name] = true
		}
		for _, nav := range tpl.NavPages {
			if !names[nav] {
				t.Fatalf("%s: nav page %q has no page", typ, nav)
			}
		}
	}
}

func TestGetTemplate_ReturnsCopy(t *testing.T) {
	tpl := GetTemplate(TemplateEcommerce)
	tpl.NavPages[0] = "Changed"
	tpl.Pages[0].Name = "Changed"
	tpl.Pages[0].Sections[0] = "changed"

	again := GetTemplate(TemplateEcommerce)
	if again.NavPages[0] == "Changed" {
		t.Fatalf("NavPages shared with the catalog")
	}
	if again.Pages[0].Name == "Changed" || again.Pages[0].Sections[0] == "changed" {
		t.Fatalf("Pages shared with the catalog: %+v", again.Pages[0])
	}
}

func TestColorSchemeFor(t *testing.T) {
	if got := ColorSchemeFor("an eco-friendly garden shop"); got.Primary != "#059669" {
		t.Fatalf("green: got=%+v", got)
	}
	if got := ColorSchemeFor("law firm"); got != DefaultColorScheme {
		t.Fatalf("default: got=%+v", got)
	}
	// blue is listed before green, so it wins when both match.
	if got := ColorSchemeFor("green and blue theme"); got.Primary != "#2563eb" {
		t.Fatalf("order: got=%+v", got)
	}
}

func TestStyleFor(t *testing.T) {
	if got := StyleFor("a minimal but elegant site"); got != "minimal" {
		t.Fatalf("got=%s", got)
	}
	if got := StyleFor("dentist"); got != DefaultStyle {
		t.Fatalf("default: got=%s", got)
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"I need an ecommerce store for selling handmade jewelry", "handmade jewelry"},
		{"Create a portfolio website for my photography", "photography"},
		{"Bakery website", "Bakery"},
		{"We would like to build an online store for Green Leaf Teas.", "Green Leaf Teas"},
		{"I want a website", DefaultDisplayName},
		{"", DefaultDisplayName},
		{"Please build me a landing page for Acme Rocket Boots with a signup form", "Acme Rocket Boots"},
		{"I need a site for one two three four five six", "one two three four"},
	}
	for _, tc := range cases {
		if got := DisplayName(tc.in); got != tc.want {
			t.Fatalf("DisplayName(%q): got=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestDisplayName_BoundedLength(t *testing.T) {
	got := DisplayName("Supercalifragilisticexpialidocious-extraordinary-enterprises")
	if len([]rune(got)) > displayNameMaxChars {
		t.Fatalf("too long: %q", got)
	}
}
