// Package templates embeds the HTML templates so the binary and the tests
// render the same markup regardless of the working directory.
package templates

import "embed"

// FS holds every *.html template
//
//go:embed *.html
var FS embed.FS
