// Package branding holds user-visible product naming.
package branding

// AppName is the product name shown in page titles and CLI output.
const AppName = "Hexagram"

// Repository is the canonical source location linked from the about page.
const Repository = "https://github.com/louisbranch/hexagram"
