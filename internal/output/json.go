package output

import (
	"encoding/json"
	"io"

	"github.com/spiffcs/widgets/internal/anniversary"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format outputs rows as a JSON array
func (f *JSONFormatter) Format(rows []anniversary.Row, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(Records(rows))
}
