package artifact

// ComponentName is the canonical identifier every generated UI component is
// declared and default-exported under.
const ComponentName = "App"

// ImageHosts are the only hosts generated components may load images from.
var ImageHosts = []string{"placehold.co", "images.unsplash.com"}

// PlaceholderImageBase is the URL prefix used for rewritten image sources.
const PlaceholderImageBase = "https://placehold.co/600x400?text="
