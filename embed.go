package inkpost

import "embed"

// BundledContent is the site content compiled into the binary: posts/*.md
// and the background images. It backs the bundled content channel.
//
//go:embed site
var BundledContent embed.FS
