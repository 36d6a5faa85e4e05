// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2023 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of GMDICT.
//
//  GMDICT is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  GMDICT is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with GMDICT.  If not, see <https://www.gnu.org/licenses/>.

package filter

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"gmdict/dictionary"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"
)

const (
	minNounLemmaLength = 5
	maxNounLemmaLength = 7
	minAdjLemmaLength  = 5
	maxAdjLemmaLength  = 9

	// consistencyPrefixLen is the number of umlaut-folded runes
	// wordform and lemma must share for the pair to count as one
	// inflectional paradigm
	consistencyPrefixLen = 4
)

var (
	validGermanWord = regexp.MustCompile(`^[A-Za-zÄÖÜäöüß]+(-[A-Za-zÄÖÜäöüß]+)*$`)

	genderProps   = collections.NewSet("masc", "fem", "neut")
	singularProps = collections.NewSet("sing", "sg")
	caseProps     = collections.NewSet("nom", "dat", "acc")
	strongProps   = collections.NewSet("strong", "st")
)

// Rule is a single named acceptability predicate of the sensible
// filter. Rules are pure functions of the record.
type Rule struct {
	Name  string
	Check func(rec dictionary.Record) bool
}

func containsAnyFold(props *collections.Set[string], allowed *collections.Set[string]) bool {
	for _, p := range props.ToSlice() {
		if allowed.Contains(strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func foldUmlauts(v string) string {
	var sb strings.Builder
	for _, c := range strings.ToLower(v) {
		switch c {
		case 'ä':
			sb.WriteRune('a')
		case 'ö':
			sb.WriteRune('o')
		case 'ü':
			sb.WriteRune('u')
		case 'ß':
			sb.WriteString("ss")
		default:
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

func isAllUpper(v string) bool {
	for _, c := range v {
		if !unicode.IsUpper(c) {
			return false
		}
	}
	return true
}

func firstRuneUpper(v string) bool {
	c, _ := utf8.DecodeRuneInString(v)
	return unicode.IsUpper(c)
}

// SensibleRules provides the fixed rule set of the sensible
// filter. Each rule is independently testable; a record is
// retained iff all of them pass.
func SensibleRules() []Rule {
	return []Rule{
		{
			// only German alphabetic words (incl. hyphenated compounds);
			// digits, punctuation and empty values reject
			Name: "valid-characters",
			Check: func(rec dictionary.Record) bool {
				return validGermanWord.MatchString(norm.NFC.String(rec.Wordform)) &&
					validGermanWord.MatchString(norm.NFC.String(rec.Lemma))
			},
		},
		{
			Name: "known-category",
			Check: func(rec dictionary.Record) bool {
				cat := rec.Category()
				return cat == dictionary.CatNoun || cat == dictionary.CatAdjective
			},
		},
		{
			// German nouns are capitalized, adjectives are not;
			// all-caps items are acronym/proper-noun-like outliers
			Name: "category-shape",
			Check: func(rec dictionary.Record) bool {
				if utf8.RuneCountInString(rec.Lemma) > 1 && isAllUpper(rec.Lemma) {
					return false
				}
				if utf8.RuneCountInString(rec.Wordform) > 1 && isAllUpper(rec.Wordform) {
					return false
				}
				switch rec.Category() {
				case dictionary.CatNoun:
					return firstRuneUpper(rec.Lemma)
				case dictionary.CatAdjective:
					return !firstRuneUpper(rec.Lemma)
				}
				return true
			},
		},
		{
			Name: "lemma-length",
			Check: func(rec dictionary.Record) bool {
				length := utf8.RuneCountInString(rec.Lemma)
				switch rec.Category() {
				case dictionary.CatNoun:
					return length >= minNounLemmaLength && length <= maxNounLemmaLength
				case dictionary.CatAdjective:
					return length >= minAdjLemmaLength && length <= maxAdjLemmaLength
				}
				return false
			},
		},
		{
			// nouns must be fully specified singular readings,
			// adjectives strong nominative singular ones
			Name: "plausible-properties",
			Check: func(rec dictionary.Record) bool {
				props := rec.Properties()
				switch rec.Category() {
				case dictionary.CatNoun:
					return containsAnyFold(props, genderProps) &&
						containsAnyFold(props, singularProps) &&
						containsAnyFold(props, caseProps)
				case dictionary.CatAdjective:
					return containsAnyFold(props, collections.NewSet("nom")) &&
						containsAnyFold(props, singularProps) &&
						containsAnyFold(props, strongProps) &&
						containsAnyFold(props, genderProps)
				}
				return false
			},
		},
		{
			// a coarse paradigm check - wordform and lemma must share
			// an umlaut-folded prefix (Haus vs. Häuser is fine,
			// unrelated pairs are not)
			Name: "form-consistency",
			Check: func(rec dictionary.Record) bool {
				word := []rune(foldUmlauts(rec.Wordform))
				lemma := []rune(foldUmlauts(rec.Lemma))
				prefix := consistencyPrefixLen
				if len(word) < prefix {
					prefix = len(word)
				}
				if len(lemma) < prefix {
					prefix = len(lemma)
				}
				if prefix == 0 {
					return false
				}
				return string(word[:prefix]) == string(lemma[:prefix])
			},
		},
	}
}

// Sensible creates the conjunction of all the sensible rules.
// A panicking rule counts as a rejection of the respective
// record, never as an aborted pass.
func Sensible() dictionary.KeepFn {
	rules := SensibleRules()
	return func(rec dictionary.Record) (ans bool) {
		defer func() {
			if r := recover(); r != nil {
				log.Warn().
					Str("wordform", rec.Wordform).
					Any("panic", r).
					Msg("sensible rule panicked, rejecting record")
				ans = false
			}
		}()
		for _, rule := range rules {
			if !rule.Check(rec) {
				return false
			}
		}
		return true
	}
}
