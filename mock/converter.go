package mock

import "github.com/fwojciec/postdoc"

var _ postdoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of postdoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
