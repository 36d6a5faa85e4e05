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
	"errors"
	"fmt"
	"strings"

	"github.com/czcorpus/cnc-gokit/collections"
)

var (
	ErrMalformedLine = errors.New("malformed dictionary line")
)

// Record is a single dictionary entry - one surface form
// along with its base form and a morphological tag. The tag
// starts with a PoS category which may be followed by
// grammatical properties (e.g. "NN.Sg.Nom.Masc" or
// "ADJ,nom,sing,strong").
type Record struct {
	Wordform string
	Lemma    string
	Tag      string
}

// Category extracts the PoS category part of the record's tag.
func (rec Record) Category() Category {
	return TagCategory(rec.Tag)
}

// Properties provides the grammatical properties encoded in the
// record's tag (i.e. everything besides the PoS category itself).
func (rec Record) Properties() *collections.Set[string] {
	items := strings.FieldsFunc(rec.Tag, func(c rune) bool {
		return c == '.' || c == ','
	})
	if len(items) < 2 {
		return collections.NewSet[string]()
	}
	return collections.NewSet(items[1:]...)
}

// String exports the record back to its line form.
func (rec Record) String() string {
	return fmt.Sprintf("%s\t%s\t%s", rec.Wordform, rec.Lemma, rec.Tag)
}

// ParseLine parses a single dictionary line of the form
// wordform[TAB]lemma[TAB]tag. In case the line does not
// contain exactly three non-empty columns, ErrMalformedLine
// is returned and the record value is zero.
func ParseLine(line string) (Record, error) {
	items := strings.Split(line, "\t")
	if len(items) != 3 {
		return Record{}, fmt.Errorf("%w: expected 3 columns, found %d", ErrMalformedLine, len(items))
	}
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			return Record{}, fmt.Errorf("%w: empty column", ErrMalformedLine)
		}
	}
	return Record{
		Wordform: items[0],
		Lemma:    items[1],
		Tag:      items[2],
	}, nil
}
