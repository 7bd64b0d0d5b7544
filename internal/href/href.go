// Package href expands named placeholders in URL templates into concrete
// resource paths.
package href

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/mqueue/pkg/mqueue"
)

// Expand replaces every {name} placeholder in template with the path-escaped
// value from substitutions. It fails if a referenced placeholder has no
// corresponding substitution. Expand is side-effect-free and safe to call
// repeatedly with the same template.
func Expand(template string, substitutions map[string]string) (string, error) {
	var builder strings.Builder

	rest := template

	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			builder.WriteString(rest)

			break
		}

		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			builder.WriteString(rest)

			break
		}

		name := rest[start+1 : start+end]

		value, ok := substitutions[name]
		if !ok {
			return "", fmt.Errorf("%w: {%s} in template %q", mqueue.ErrMissingSubstitution, name, template)
		}

		builder.WriteString(rest[:start])
		builder.WriteString(url.PathEscape(value))

		rest = rest[start+end+1:]
	}

	return builder.String(), nil
}
