// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package features

import (
	"regexp"
	"strings"
)

// tokenPattern keeps programming-language style tokens ("c++", "c#",
// "node.js", "full-stack") and splits on everything else, including ':'.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}+#]*(?:[.\-][\p{L}\p{N}+#]+)*`)

// analyze turns a document into its list of terms: word tokens with
// optional stop-word removal, expanded into n-grams.
func analyze(text string, opts Options) []string {
	words := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if opts.StopWords {
		kept := words[:0]
		for _, w := range words {
			if _, stop := englishStopWords[w]; !stop {
				kept = append(kept, w)
			}
		}
		words = kept
	}
	return ngrams(words, opts.NgramMin, opts.NgramMax)
}

func ngrams(words []string, lo, hi int) []string {
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	if len(words) == 0 {
		return nil
	}
	terms := make([]string, 0, len(words)*(hi-lo+1))
	for n := lo; n <= hi; n++ {
		for i := 0; i+n <= len(words); i++ {
			if n == 1 {
				terms = append(terms, words[i])
				continue
			}
			terms = append(terms, strings.Join(words[i:i+n], " "))
		}
	}
	return terms
}

var englishStopWords = func() map[string]struct{} {
	words := []string{
		"a", "about", "above", "after", "again", "against", "all", "am", "an", "and",
		"any", "are", "as", "at", "be", "because", "been", "before", "being", "below",
		"between", "both", "but", "by", "can", "could", "did", "do", "does", "doing",
		"down", "during", "each", "few", "for", "from", "further", "had", "has", "have",
		"having", "he", "her", "here", "hers", "him", "his", "how", "i", "if", "in",
		"into", "is", "it", "its", "itself", "just", "me", "more", "most", "my", "no",
		"nor", "not", "now", "of", "off", "on", "once", "only", "or", "other", "our",
		"ours", "out", "over", "own", "same", "she", "should", "so", "some", "such",
		"than", "that", "the", "their", "them", "then", "there", "these", "they",
		"this", "those", "through", "to", "too", "under", "until", "up", "very", "was",
		"we", "were", "what", "when", "where", "which", "while", "who", "whom", "why",
		"will", "with", "would", "you", "your", "yours",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
