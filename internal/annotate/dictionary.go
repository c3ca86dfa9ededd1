// Package annotate implements §6's optional annotation dictionary: a JSON
// document of token replacements and token-definition templates consulted
// by the pipeline's Annotate stage. No pack example reaches for anything
// beyond encoding/json for a document this shape, so this concern is
// deliberately left on the standard library (see DESIGN.md).
package annotate

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/cncmill/gcodeclean/internal/token"
)

// Dictionary is the decoded on-disk annotation document.
type Dictionary struct {
	// Replacements maps a token source (e.g. "G0") to the context
	// variables it sets (e.g. {"motion": "rapid"}).
	Replacements map[string]map[string]string `json:"replacements"`

	// TokenDefs maps either a full token source ("M3") or a single letter
	// ("X") to a template string with {var} placeholders.
	TokenDefs map[string]string `json:"tokenDefs"`
}

// Load decodes a Dictionary from r.
func Load(r io.Reader) (Dictionary, error) {
	var d Dictionary
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Dictionary{}, errors.Wrap(err, "annotate: decoding dictionary")
	}
	return d, nil
}

// LoadFile decodes a Dictionary from the file at path.
func LoadFile(path string) (Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dictionary{}, errors.Wrapf(err, "annotate: opening dictionary %q", path)
	}
	defer f.Close()
	return Load(f)
}

// Context is the running set of context variables the dictionary's
// templates substitute from; it is a value carried by the Annotate
// stage, not a shared global.
type Context map[string]string

// Apply folds tok's replacement (if any) into ctx, returning the updated
// copy.
func (d Dictionary) Apply(ctx Context, tok token.Token) Context {
	upd, ok := d.Replacements[tok.Source]
	if !ok {
		return ctx
	}
	out := make(Context, len(ctx)+len(upd))
	for k, v := range ctx {
		out[k] = v
	}
	for k, v := range upd {
		out[k] = v
	}
	return out
}

// Describe renders tok's annotation, if the dictionary defines one,
// first trying the full token source then the classifying letter, with
// {var} placeholders substituted from ctx.
func (d Dictionary) Describe(ctx Context, tok token.Token) (string, bool) {
	tmpl, ok := d.TokenDefs[tok.Source]
	if !ok {
		tmpl, ok = d.TokenDefs[string(tok.Letter)]
	}
	if !ok {
		return "", false
	}
	return substitute(tmpl, ctx), true
}

func substitute(tmpl string, ctx Context) string {
	out := tmpl
	for k, v := range ctx {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}
