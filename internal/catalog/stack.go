package catalog

// TechAllowList is the set of technologies analyses may recommend.
type TechAllowList struct {
	Frontend   []string
	Backend    []string
	Database   []string
	Deployment []string
	Other      []string
}

// SupportedStack returns the technologies the delivery team supports.
func SupportedStack() TechAllowList {
	return TechAllowList{
		Frontend:   []string{"React", "Next.js", "Vue.js", "Tailwind CSS"},
		Backend:    []string{"Node.js", "Express", "Python", "FastAPI", "Go"},
		Database:   []string{"PostgreSQL", "MongoDB", "Firebase", "Redis"},
		Deployment: []string{"Vercel", "Netlify", "Google Cloud Run", "AWS"},
		Other:      []string{"Stripe", "SendGrid", "Cloudinary", "Auth0"},
	}
}
