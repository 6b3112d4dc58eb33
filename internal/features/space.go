// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package features builds the TF-IDF vector spaces the ranking engine scores
// against. A Space owns a frozen vocabulary, its IDF weights and the
// catalog-side document-term matrix whose row i is catalog row i.
package features

import (
	"fmt"
	"math"
	"sort"

	"github.com/pdiddy/internmatch/pkg/types"
)

// Field names of the three spaces.
const (
	FieldMain     = "main"
	FieldIndustry = "industry"
	FieldLocation = "location"
)

// Options are the tokenization and weighting parameters of one Space.
type Options struct {
	NgramMin    int     `json:"ngram_min"`
	NgramMax    int     `json:"ngram_max"`
	StopWords   bool    `json:"stop_words"`
	MaxDF       float64 `json:"max_df"`
	SublinearTF bool    `json:"sublinear_tf"`
}

// OptionsFromConfig converts a configured vectorizer section.
func OptionsFromConfig(c types.VectorizerConfig) Options {
	return Options{
		NgramMin:    c.NgramMin,
		NgramMax:    c.NgramMax,
		StopWords:   c.StopWords,
		MaxDF:       c.MaxDF,
		SublinearTF: c.SublinearTF,
	}
}

// MainOptions captures multi-word skill and role phrases and suppresses
// boilerplate present in nearly every posting.
func MainOptions() Options {
	return Options{NgramMin: 1, NgramMax: 3, StopWords: true, MaxDF: 0.95}
}

// FieldOptions suits the small controlled vocabularies of industry and location.
func FieldOptions() Options {
	return Options{NgramMin: 1, NgramMax: 2}
}

// Space is a fitted vector space. It is immutable after Fit or Restore and
// safe for concurrent use.
type Space struct {
	name   string
	opts   Options
	terms  []string
	idf    []float64
	matrix []Vector
	vocab  map[string]int
	pruned int
}

// Fit builds a Space from one document per catalog row. It fails with a
// data error when the corpus is empty or yields no terms.
func Fit(name string, corpus []string, opts Options) (*Space, error) {
	if len(corpus) == 0 {
		return nil, types.NewError(types.KindData, "%s corpus is empty", name)
	}

	analyzed := make([][]string, len(corpus))
	df := make(map[string]int)
	for i, doc := range corpus {
		terms := analyze(doc, opts)
		analyzed[i] = terms
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}
	if len(df) == 0 {
		return nil, types.NewError(types.KindData, "%s corpus has no terms", name)
	}

	n := len(corpus)
	kept, pruned := applyDFCeiling(df, n, opts.MaxDF)

	terms := make([]string, 0, len(kept))
	for t := range kept {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	s := &Space{
		name:   name,
		opts:   opts,
		terms:  terms,
		idf:    make([]float64, len(terms)),
		vocab:  make(map[string]int, len(terms)),
		pruned: pruned,
	}
	for i, t := range terms {
		s.vocab[t] = i
		s.idf[i] = math.Log(float64(1+n)/float64(1+kept[t])) + 1
	}

	s.matrix = make([]Vector, n)
	for i, doc := range analyzed {
		s.matrix[i] = s.vectorize(doc)
	}
	return s, nil
}

// applyDFCeiling drops terms present in more than maxDF of the documents.
// The ceiling is not applied to a one-document corpus or when it would
// leave nothing behind.
func applyDFCeiling(df map[string]int, n int, maxDF float64) (map[string]int, int) {
	if maxDF <= 0 || maxDF >= 1 || n < 2 {
		return df, 0
	}
	limit := maxDF * float64(n)
	kept := make(map[string]int, len(df))
	for t, c := range df {
		if float64(c) <= limit {
			kept[t] = c
		}
	}
	if len(kept) == 0 {
		return df, 0
	}
	return kept, len(df) - len(kept)
}

// Restore rebuilds a Space from persisted parts. terms must be sorted and
// unique, idf must match terms, and every matrix index must be in range.
func Restore(name string, opts Options, terms []string, idf []float64, matrix []Vector) (*Space, error) {
	if len(terms) != len(idf) {
		return nil, fmt.Errorf("space %s: %d terms but %d idf weights", name, len(terms), len(idf))
	}
	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		if i > 0 && terms[i-1] >= t {
			return nil, fmt.Errorf("space %s: vocabulary not sorted at %q", name, t)
		}
		vocab[t] = i
	}
	for r, v := range matrix {
		if err := v.validate(len(terms)); err != nil {
			return nil, fmt.Errorf("space %s row %d: %w", name, r, err)
		}
	}
	return &Space{
		name:   name,
		opts:   opts,
		terms:  append([]string(nil), terms...),
		idf:    append([]float64(nil), idf...),
		matrix: append([]Vector(nil), matrix...),
		vocab:  vocab,
	}, nil
}

// Name returns the field name.
func (s *Space) Name() string { return s.name }

// Options returns the parameters the space was fit with.
func (s *Space) Options() Options { return s.opts }

// Rows returns the number of catalog rows in the matrix.
func (s *Space) Rows() int { return len(s.matrix) }

// VocabularySize returns the number of terms.
func (s *Space) VocabularySize() int { return len(s.terms) }

// Pruned returns how many terms the document-frequency ceiling removed.
func (s *Space) Pruned() int { return s.pruned }

// Terms returns a copy of the vocabulary in index order.
func (s *Space) Terms() []string { return append([]string(nil), s.terms...) }

// IDF returns a copy of the IDF weights in index order.
func (s *Space) IDF() []float64 { return append([]float64(nil), s.idf...) }

// Row returns the catalog-side vector of row i.
func (s *Space) Row(i int) Vector { return s.matrix[i] }

// Matrix returns the catalog-side rows. Callers must not modify them.
func (s *Space) Matrix() []Vector { return s.matrix }

// Transform projects text into the frozen vocabulary. Terms outside the
// vocabulary contribute nothing.
func (s *Space) Transform(text string) Vector {
	return s.vectorize(analyze(text, s.opts))
}

// Similarities returns the cosine similarity of v with every row.
func (s *Space) Similarities(v Vector) []float64 {
	out := make([]float64, len(s.matrix))
	if v.IsZero() {
		return out
	}
	for i, row := range s.matrix {
		out[i] = Cosine(v, row)
	}
	return out
}

func (s *Space) vectorize(terms []string) Vector {
	counts := make(map[int]float64)
	for _, t := range terms {
		if idx, ok := s.vocab[t]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return Vector{}
	}
	idx := make([]int, 0, len(counts))
	for i := range counts {
		idx = append(idx, i)
	}
	sort.Ints(idx)

	vals := make([]float64, len(idx))
	for k, i := range idx {
		tf := counts[i]
		if s.opts.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		vals[k] = tf * s.idf[i]
	}
	return Vector{Indices: idx, Values: vals}.normalized()
}
