package mathtransform

import "regexp"

var (
	texCommand = regexp.MustCompile(`\\[A-Za-z0-9]{2,}`)
	texEmbed   = regexp.MustCompile(`tex".*"`)
)

// isTeX reports whether src looks like TeX rather than AsciiMath: it has a
// command of two or more characters and no embedded tex"..." directive.
func isTeX(src string) bool {
	return texCommand.MatchString(src) && !texEmbed.MatchString(src)
}

// resolve returns the TeX source to render for the extracted text.
func (t *Transformer) resolve(value string) string {
	if t.am == nil || isTeX(value) {
		return value
	}
	return t.am.ToTeX(value)
}
