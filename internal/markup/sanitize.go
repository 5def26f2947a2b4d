package markup

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

var inlinePolicy = bluemonday.UGCPolicy()

// Sanitize returns s with only user-generated-content safe markup kept, for
// hand-written fragments such as experience descriptions that use <br/>.
func Sanitize(s string) template.HTML {
	return template.HTML(inlinePolicy.Sanitize(s))
}
