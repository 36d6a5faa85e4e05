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
	"testing"

	"gmdict/dictionary"

	"github.com/stretchr/testify/assert"
)

func ruleByName(t *testing.T, name string) Rule {
	t.Helper()
	for _, rule := range SensibleRules() {
		if rule.Name == name {
			return rule
		}
	}
	t.Fatalf("no such rule: %s", name)
	return Rule{}
}

func TestRuleValidCharacters(t *testing.T) {
	rule := ruleByName(t, "valid-characters")
	assert.True(t, rule.Check(dictionary.Record{Wordform: "Gärten", Lemma: "Garten"}))
	assert.True(t, rule.Check(dictionary.Record{Wordform: "Weißbier", Lemma: "Weißbier"}))
	assert.True(t, rule.Check(dictionary.Record{Wordform: "Nord-Süd", Lemma: "Nord-Süd"}))
	assert.False(t, rule.Check(dictionary.Record{Wordform: "123", Lemma: "123"}))
	assert.False(t, rule.Check(dictionary.Record{Wordform: "Haus!", Lemma: "Haus"}))
	assert.False(t, rule.Check(dictionary.Record{Wordform: "-Haus", Lemma: "Haus"}))
	assert.False(t, rule.Check(dictionary.Record{Wordform: "", Lemma: "Haus"}))
}

func TestRuleKnownCategory(t *testing.T) {
	rule := ruleByName(t, "known-category")
	assert.True(t, rule.Check(dictionary.Record{Tag: "NN,masc,sing,nom"}))
	assert.True(t, rule.Check(dictionary.Record{Tag: "ADJ,nom,sing,strong,neut"}))
	assert.False(t, rule.Check(dictionary.Record{Tag: "VV.Past"}))
	assert.False(t, rule.Check(dictionary.Record{Tag: "ADV"}))
}

func TestRuleCategoryShape(t *testing.T) {
	rule := ruleByName(t, "category-shape")
	assert.True(t, rule.Check(dictionary.Record{Wordform: "Gärten", Lemma: "Garten", Tag: "NN"}))
	assert.False(t, rule.Check(dictionary.Record{Wordform: "gärten", Lemma: "garten", Tag: "NN"}))
	assert.True(t, rule.Check(dictionary.Record{Wordform: "schnelles", Lemma: "schnell", Tag: "ADJ"}))
	assert.False(t, rule.Check(dictionary.Record{Wordform: "Schnelles", Lemma: "Schnell", Tag: "ADJ"}))
	// acronym-like entries
	assert.False(t, rule.Check(dictionary.Record{Wordform: "NATO", Lemma: "NATO", Tag: "NN"}))
}

func TestRuleLemmaLength(t *testing.T) {
	rule := ruleByName(t, "lemma-length")
	assert.True(t, rule.Check(dictionary.Record{Lemma: "Garten", Tag: "NN"}))
	assert.False(t, rule.Check(dictionary.Record{Lemma: "Haus", Tag: "NN"}))
	assert.False(t, rule.Check(dictionary.Record{Lemma: "Verwaltung", Tag: "NN"}))
	assert.True(t, rule.Check(dictionary.Record{Lemma: "schnell", Tag: "ADJ"}))
	assert.True(t, rule.Check(dictionary.Record{Lemma: "umsichtig", Tag: "ADJ"}))
	assert.False(t, rule.Check(dictionary.Record{Lemma: "rot", Tag: "ADJ"}))
	// rune length, not byte length
	assert.True(t, rule.Check(dictionary.Record{Lemma: "Bäcker", Tag: "NN"}))
}

func TestRulePlausibleProperties(t *testing.T) {
	rule := ruleByName(t, "plausible-properties")
	assert.True(t, rule.Check(dictionary.Record{Tag: "NN,masc,sing,nom"}))
	assert.False(t, rule.Check(dictionary.Record{Tag: "NN,masc,plu,nom"}))
	assert.False(t, rule.Check(dictionary.Record{Tag: "NN,sing,nom"}))
	assert.True(t, rule.Check(dictionary.Record{Tag: "ADJ,nom,sing,strong,neut"}))
	assert.False(t, rule.Check(dictionary.Record{Tag: "ADJ,nom,sing,weak,neut"}))
	assert.False(t, rule.Check(dictionary.Record{Tag: "ADJ,acc,sing,strong,neut"}))
}

func TestRuleFormConsistency(t *testing.T) {
	rule := ruleByName(t, "form-consistency")
	assert.True(t, rule.Check(dictionary.Record{Wordform: "Gärten", Lemma: "Garten"}))
	assert.True(t, rule.Check(dictionary.Record{Wordform: "Häuser", Lemma: "Haus"}))
	assert.True(t, rule.Check(dictionary.Record{Wordform: "schnelles", Lemma: "schnell"}))
	assert.False(t, rule.Check(dictionary.Record{Wordform: "ging", Lemma: "gehen"}))
	assert.False(t, rule.Check(dictionary.Record{Wordform: "", Lemma: ""}))
}

func TestSensibleAccepts(t *testing.T) {
	keep := Sensible()
	assert.True(t, keep(dictionary.Record{
		Wordform: "Gärten", Lemma: "Garten", Tag: "NN,masc,sing,nom"}))
	assert.True(t, keep(dictionary.Record{
		Wordform: "schnelles", Lemma: "schnell", Tag: "ADJ,nom,sing,strong,neut"}))
}

func TestSensibleRejects(t *testing.T) {
	keep := Sensible()
	assert.False(t, keep(dictionary.Record{Wordform: "123", Lemma: "123", Tag: "NN"}))
	assert.False(t, keep(dictionary.Record{Wordform: "Häuser", Lemma: "Haus", Tag: "NN,neut,plu,nom"}))
	assert.False(t, keep(dictionary.Record{Wordform: "noch", Lemma: "noch", Tag: "ADV"}))
	assert.False(t, keep(dictionary.Record{Wordform: "", Lemma: "", Tag: ""}))
}

func TestSensibleOverDictionary(t *testing.T) {
	src := writeTmpFile(
		t, "dict.txt",
		"Gärten\tGarten\tNN,masc,sing,nom\n"+
			"123\t123\tNN\n"+
			"schnelles\tschnell\tADJ,nom,sing,strong,neut\n"+
			"ging\tgehen\tVV.Past\n")
	dst := writeTmpFile(t, "out.txt", "")
	stats, err := Run(FormatLine, src, dst, Sensible())
	assert.NoError(t, err)
	assert.Equal(t, 4, stats.TotalLines)
	assert.Equal(t, 2, stats.Retained)
}
