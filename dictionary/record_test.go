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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	rec, err := ParseLine("Häuser\tHaus\tNN.Pl")
	assert.NoError(t, err)
	assert.Equal(t, "Häuser", rec.Wordform)
	assert.Equal(t, "Haus", rec.Lemma)
	assert.Equal(t, "NN.Pl", rec.Tag)
}

func TestParseLineTwoColumns(t *testing.T) {
	_, err := ParseLine("Häuser\tHaus")
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestParseLineTooManyColumns(t *testing.T) {
	_, err := ParseLine("a\tb\tc\td")
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestParseLineEmptyColumn(t *testing.T) {
	_, err := ParseLine("Häuser\t\tNN.Pl")
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestParseLineEmpty(t *testing.T) {
	_, err := ParseLine("")
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestRecordString(t *testing.T) {
	rec := Record{Wordform: "Häuser", Lemma: "Haus", Tag: "NN.Pl"}
	assert.Equal(t, "Häuser\tHaus\tNN.Pl", rec.String())
}

func TestRecordCategoryDotTag(t *testing.T) {
	rec := Record{Tag: "NN.Sg.Nom"}
	assert.Equal(t, CatNoun, rec.Category())
}

func TestRecordCategoryCommaTag(t *testing.T) {
	rec := Record{Tag: "ADJ,nom,sing,strong,masc"}
	assert.Equal(t, CatAdjective, rec.Category())
}

func TestRecordCategoryBareTag(t *testing.T) {
	rec := Record{Tag: "ADV"}
	assert.Equal(t, CatAdverb, rec.Category())
}

func TestRecordProperties(t *testing.T) {
	rec := Record{Tag: "NN,masc,sing,nom"}
	props := rec.Properties()
	assert.Equal(t, 3, props.Size())
	assert.True(t, props.Contains("masc"))
	assert.True(t, props.Contains("sing"))
	assert.True(t, props.Contains("nom"))
	assert.False(t, props.Contains("NN"))
}

func TestRecordPropertiesNoProps(t *testing.T) {
	rec := Record{Tag: "NN"}
	assert.Equal(t, 0, rec.Properties().Size())
}

func TestTagCategoryUnknownKept(t *testing.T) {
	cat := TagCategory("XY.Foo")
	assert.Equal(t, Category("XY"), cat)
	assert.Error(t, cat.Validate())
}

func TestParseCategory(t *testing.T) {
	cat, err := ParseCategory("NN")
	assert.NoError(t, err)
	assert.Equal(t, CatNoun, cat)
}

func TestParseCategoryInvalid(t *testing.T) {
	_, err := ParseCategory("NOPE")
	assert.Error(t, err)
}
