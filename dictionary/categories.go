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

package dictionary

import (
	"fmt"
	"strings"
)

// Category represents a part-of-speech category as used by the
// source dictionary's tagset (a Tiger/STTS-like inventory).
type Category string

func (cat Category) String() string {
	return string(cat)
}

// Validate tests the value against the known category inventory.
func (cat Category) Validate() error {
	if _, ok := categoryLabels[cat]; !ok {
		return fmt.Errorf("unknown PoS category: %s", cat)
	}
	return nil
}

const (
	CatNoun         Category = "NN"
	CatAdjective    Category = "ADJ"
	CatVerb         Category = "VV"
	CatAdverb       Category = "ADV"
	CatPronoun      Category = "PRO"
	CatPreposition  Category = "PREP"
	CatConjunction  Category = "KON"
	CatNumeral      Category = "CARD"
	CatInterjection Category = "ITJ"
	CatArticle      Category = "ART"
	CatParticle     Category = "PTK"
	CatProperNoun   Category = "NE"
)

var (
	categoryLabels = map[Category]string{
		CatNoun:         "noun",
		CatAdjective:    "adjective",
		CatVerb:         "verb",
		CatAdverb:       "adverb",
		CatPronoun:      "pronoun",
		CatPreposition:  "preposition",
		CatConjunction:  "conjunction",
		CatNumeral:      "numeral",
		CatInterjection: "interjection",
		CatArticle:      "article",
		CatParticle:     "particle",
		CatProperNoun:   "proper noun",
	}
)

// TagCategory extracts the PoS category from a raw tag value.
// Both the dot-delimited ("NN.Sg.Nom") and the comma-delimited
// ("NN,sing,nom") tag encodings are supported. The extracted
// value is kept as-is even if it is not part of the known
// inventory - it is up to the caller to run Validate() where
// only recognized categories are acceptable.
func TagCategory(tag string) Category {
	idx := strings.IndexAny(tag, ".,")
	if idx == -1 {
		return Category(tag)
	}
	return Category(tag[:idx])
}

// ParseCategory is a strict variant of TagCategory used when
// reading user-provided category identifiers (e.g. in whitelist
// mapping arguments).
func ParseCategory(value string) (Category, error) {
	cat := Category(strings.TrimSpace(value))
	if err := cat.Validate(); err != nil {
		return "", err
	}
	return cat, nil
}
