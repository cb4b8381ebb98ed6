package mock

import "github.com/fwojciec/xmd"

var _ xmd.Converter = (*Converter)(nil)

// Converter is a mock implementation of xmd.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
