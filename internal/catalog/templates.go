package catalog

import (
	"slices"
	"strings"
)

// TemplateType names a site niche.
type TemplateType string

const (
	TemplateBusiness   TemplateType = "business"
	TemplateEcommerce  TemplateType = "ecommerce"
	TemplateRestaurant TemplateType = "restaurant"
	TemplatePortfolio  TemplateType = "portfolio"
	TemplateBlog       TemplateType = "blog"
	TemplateSaaS       TemplateType = "saas"
)

// Page describes one page of a generated site.
type Page struct {
	Name     string
	Sections []string
}

// Template is the page plan for a niche. NavPages lists the page names shown
// in the navigation bar, in order.
type Template struct {
	Type     TemplateType
	Pages    []Page
	NavPages []string
}

type keywordRule[T any] struct {
	value    T
	keywords []string
}

// Order matters: the first rule with a matching keyword wins.
var templateRules = []keywordRule[TemplateType]{
	{TemplateEcommerce, []string{"ecommerce", "e-commerce", "online store", "shop", "store", "sell", "products", "cart", "marketplace"}},
	{TemplateRestaurant, []string{"restaurant", "cafe", "café", "bakery", "menu", "catering", "food"}},
	{TemplatePortfolio, []string{"portfolio", "photographer", "photography", "artist", "resume", "freelance"}},
	{TemplateBlog, []string{"blog", "magazine", "newsletter", "journal"}},
	{TemplateSaaS, []string{"saas", "software", "dashboard", "subscription", "startup"}},
}

var templates = map[TemplateType]Template{
	TemplateBusiness: {
		Pages: []Page{
			{Name: "Home", Sections: []string{"hero with headline and call to action", "services overview", "testimonials", "contact call to action"}},
			{Name: "About", Sections: []string{"company story", "team members", "values"}},
			{Name: "Services", Sections: []string{"service cards with descriptions", "pricing summary"}},
			{Name: "Contact", Sections: []string{"contact form", "address and hours", "map placeholder"}},
		},
		NavPages: []string{"Home", "About", "Services", "Contact"},
	},
	TemplateEcommerce: {
		Pages: []Page{
			{Name: "Home", Sections: []string{"hero banner with featured collection", "featured products grid", "categories", "newsletter signup"}},
			{Name: "Shop", Sections: []string{"product grid with price and add to cart", "category filter", "sort control"}},
			{Name: "Product", Sections: []string{"product image", "description", "price", "quantity selector", "add to cart button"}},
			{Name: "Cart", Sections: []string{"line items with quantity controls", "order summary", "checkout button"}},
			{Name: "Contact", Sections: []string{"contact form", "shipping and returns FAQ"}},
		},
		NavPages: []string{"Home", "Shop", "Cart", "Contact"},
	},
	TemplateRestaurant: {
		Pages: []Page{
			{Name: "Home", Sections: []string{"hero with signature dish", "about the kitchen", "opening hours"}},
			{Name: "Menu", Sections: []string{"menu categories", "dishes with prices"}},
			{Name: "Reservations", Sections: []string{"reservation form", "party size and time selectors"}},
			{Name: "Contact", Sections: []string{"address", "phone", "map placeholder"}},
		},
		NavPages: []string{"Home", "Menu", "Reservations", "Contact"},
	},
	TemplatePortfolio: {
		Pages: []Page{
			{Name: "Home", Sections: []string{"intro hero", "selected work"}},
			{Name: "Work", Sections: []string{"project gallery", "project detail cards"}},
			{Name: "About", Sections: []string{"bio", "skills", "experience timeline"}},
			{Name: "Contact", Sections: []string{"contact form", "social links"}},
		},
		NavPages: []string{"Home", "Work", "About", "Contact"},
	},
	TemplateBlog: {
		Pages: []Page{
			{Name: "Home", Sections: []string{"featured post", "recent posts list", "categories"}},
			{Name: "Articles", Sections: []string{"article cards", "search box"}},
			{Name: "About", Sections: []string{"author bio", "newsletter signup"}},
			{Name: "Contact", Sections: []string{"contact form"}},
		},
		NavPages: []string{"Home", "Articles", "About", "Contact"},
	},
	TemplateSaaS: {
		Pages: []Page{
			{Name: "Home", Sections: []string{"hero with product screenshot", "feature highlights", "social proof", "call to action"}},
			{Name: "Features", Sections: []string{"feature grid", "integrations"}},
			{Name: "Pricing", Sections: []string{"pricing tiers", "FAQ"}},
			{Name: "Contact", Sections: []string{"demo request form"}},
		},
		NavPages: []string{"Home", "Features", "Pricing", "Contact"},
	},
}

// Classify maps free text to a template type. Matching is case-insensitive
// substring containment; unknown text is TemplateBusiness.
func Classify(text string) TemplateType {
	return firstMatch(text, templateRules, TemplateBusiness)
}

// IsEcommerce reports whether text classifies as an e-commerce niche.
func IsEcommerce(text string) bool {
	return Classify(text) == TemplateEcommerce
}

// GetTemplate returns a copy of the page plan for t, or of the business plan
// when t is unknown.
func GetTemplate(t TemplateType) Template {
	tpl, ok := templates[t]
	if !ok {
		t = TemplateBusiness
		tpl = templates[t]
	}
	tpl.Type = t
	tpl.NavPages = slices.Clone(tpl.NavPages)
	pages := make([]Page, len(tpl.Pages))
	for i, p := range tpl.Pages {
		pages[i] = Page{Name: p.Name, Sections: slices.Clone(p.Sections)}
	}
	tpl.Pages = pages
	return tpl
}

func firstMatch[T any](text string, rules []keywordRule[T], def T) T {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return def
	}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.value
			}
		}
	}
	return def
}
