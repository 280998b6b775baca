package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/spiffcs/widgets/internal/anniversary"
)

// YAMLFormatter formats output as a YAML sequence
type YAMLFormatter struct{}

// Format outputs rows as YAML
func (f *YAMLFormatter) Format(rows []anniversary.Row, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(Records(rows)); err != nil {
		return err
	}
	return encoder.Close()
}
