package views

// Site carries the site-wide values the fallback pages show.
type Site struct {
	Name string // SITE_NAME
	URL  string // SITE_URL
}
