// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textnorm canonicalizes free text before it enters a corpus:
// Unicode folding, case, punctuation, whitespace and known-synonym folding.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// synonym folds one multi-word or alternate spelling into a canonical token
// sequence. from and to are compared and emitted as whole tokens.
type synonym struct {
	from string
	to   string
}

// synonyms is applied in order; later entries see the output of earlier ones.
var synonyms = []synonym{
	{"machine learning", "ml"},
	{"deep learning", "dl"},
	{"artificial intelligence", "ai"},
	{"natural language processing", "nlp"},
	{"computer vision", "cv"},
	{"javascript", "js"},
	{"typescript", "ts"},
	{"nodejs", "node.js"},
	{"node js", "node.js"},
	{"reactjs", "react"},
	{"react.js", "react"},
	{"golang", "go"},
	{"postgres", "postgresql"},
	{"k8s", "kubernetes"},
	{"amazon web services", "aws"},
	{"google cloud platform", "gcp"},
	{"user interface", "ui"},
	{"user experience", "ux"},
	{"ms excel", "excel"},
	{"microsoft excel", "excel"},
	{"work from home", "remote"},
	{"wfh", "remote"},
}

// foldMarks returns a fresh decompose, strip-marks, recompose chain.
// Transformers carry buffers, so a chain must not be shared between calls.
func foldMarks() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFKC)
}

// Normalize lower-cases text, strips characters outside letters, digits,
// '+', '#', '-', '.' and whitespace, collapses whitespace and applies the
// synonym table. Tokens such as "c++", "c#" and "node.js" survive intact.
// It is safe for concurrent use.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	folded, _, err := transform.String(foldMarks(), text)
	if err != nil {
		folded = text
	}
	folded = strings.ToLower(folded)

	kept := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return r
		case r == '+', r == '#', r == '-', r == '.':
			return r
		case unicode.IsSpace(r):
			return ' '
		}
		return -1
	}, folded)

	tokens := strings.Fields(kept)
	for _, syn := range compiled {
		tokens = syn.apply(tokens)
	}
	return strings.Join(tokens, " ")
}

// NormalizeAny normalizes v when it is a string and returns "" otherwise.
func NormalizeAny(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return Normalize(s)
}

// Clean collapses whitespace runs and trims, leaving case and punctuation
// alone. It is used for stored record fields, which must keep their commas.
func Clean(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

type compiledSynonym struct {
	from []string
	to   []string
}

var compiled = compileSynonyms(synonyms)

func compileSynonyms(list []synonym) []compiledSynonym {
	out := make([]compiledSynonym, 0, len(list))
	for _, s := range list {
		from := strings.Fields(s.from)
		if len(from) == 0 {
			continue
		}
		out = append(out, compiledSynonym{from: from, to: strings.Fields(s.to)})
	}
	return out
}

// apply replaces every occurrence of the rule's token sequence in a single
// left-to-right pass. Replaced output is not rescanned by the same rule.
func (c compiledSynonym) apply(tokens []string) []string {
	if len(tokens) < len(c.from) {
		return tokens
	}
	var out []string
	changed := false
	for i := 0; i < len(tokens); {
		if c.matchAt(tokens, i) {
			if !changed {
				out = append(make([]string, 0, len(tokens)), tokens[:i]...)
				changed = true
			}
			out = append(out, c.to...)
			i += len(c.from)
			continue
		}
		if changed {
			out = append(out, tokens[i])
		}
		i++
	}
	if !changed {
		return tokens
	}
	return out
}

func (c compiledSynonym) matchAt(tokens []string, i int) bool {
	if i+len(c.from) > len(tokens) {
		return false
	}
	for j, f := range c.from {
		if tokens[i+j] != f {
			return false
		}
	}
	return true
}
