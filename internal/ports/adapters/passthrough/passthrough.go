// Package passthrough is the identity translator: every subtitle keeps its
// source text. Useful to burn untranslated captions or to dry-run a pipeline.
package passthrough

import "context"

type Adapter struct{}

func New() Adapter { return Adapter{} }

func (Adapter) Translate(_ context.Context, text, _, _ string) (string, error) {
	return text, nil
}
