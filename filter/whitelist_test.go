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
	"os"
	"path/filepath"
	"testing"

	"gmdict/dictionary"

	"github.com/stretchr/testify/assert"
)

func writeTmpFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0644)
	assert.NoError(t, err)
	return path
}

func TestWhitelistAllows(t *testing.T) {
	nouns := writeTmpFile(t, "nouns.txt", "Haus\nGarten\n")
	wl, err := LoadWhitelist(map[dictionary.Category]string{
		dictionary.CatNoun: nouns,
	})
	assert.NoError(t, err)
	assert.True(t, wl.Allows(dictionary.Record{Wordform: "Häuser", Lemma: "Haus", Tag: "NN.Pl"}))
	assert.False(t, wl.Allows(dictionary.Record{Wordform: "Hunde", Lemma: "Hund", Tag: "NN.Pl"}))
}

func TestWhitelistRejectsUnlistedCategory(t *testing.T) {
	nouns := writeTmpFile(t, "nouns.txt", "Haus\n")
	wl, err := LoadWhitelist(map[dictionary.Category]string{
		dictionary.CatNoun: nouns,
	})
	assert.NoError(t, err)
	// even a listed lemma must not leak into another category
	assert.False(t, wl.Allows(dictionary.Record{Wordform: "Haus", Lemma: "Haus", Tag: "ADJ"}))
	assert.False(t, wl.Allows(dictionary.Record{Wordform: "noch", Lemma: "noch", Tag: "ADV"}))
}

func TestWhitelistDeduplicatesLemmas(t *testing.T) {
	nouns := writeTmpFile(t, "nouns.txt", "Haus\nHaus\n\nGarten\nHaus\n")
	wl, err := LoadWhitelist(map[dictionary.Category]string{
		dictionary.CatNoun: nouns,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, wl.NumCategories())
	assert.Equal(t, 2, wl.NumLemmas())
}

func TestWhitelistEmptyFileRejectsAll(t *testing.T) {
	nouns := writeTmpFile(t, "nouns.txt", "")
	wl, err := LoadWhitelist(map[dictionary.Category]string{
		dictionary.CatNoun: nouns,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, wl.NumCategories())
	assert.Equal(t, 0, wl.NumLemmas())
	assert.False(t, wl.Allows(dictionary.Record{Wordform: "Haus", Lemma: "Haus", Tag: "NN.Sg"}))
}

func TestLoadWhitelistNoMapping(t *testing.T) {
	_, err := LoadWhitelist(map[dictionary.Category]string{})
	assert.ErrorIs(t, err, ErrNoWhitelists)
}

func TestLoadWhitelistMissingFile(t *testing.T) {
	_, err := LoadWhitelist(map[dictionary.Category]string{
		dictionary.CatNoun: "/nonexistent/nouns.txt",
	})
	assert.Error(t, err)
}

func TestWhitelistKeepFnOverDictionary(t *testing.T) {
	nouns := writeTmpFile(t, "nouns.txt", "Haus\n")
	adjectives := writeTmpFile(t, "adjectives.txt", "schnell\n")
	wl, err := LoadWhitelist(map[dictionary.Category]string{
		dictionary.CatNoun:      nouns,
		dictionary.CatAdjective: adjectives,
	})
	assert.NoError(t, err)
	src := writeTmpFile(
		t, "dict.txt",
		"Häuser\tHaus\tNN.Pl\nschnelles\tschnell\tADJ.Nom\nging\tgehen\tVV.Past\nHunde\tHund\tNN.Pl\n")
	dst := filepath.Join(t.TempDir(), "out.txt")
	stats, err := Run(FormatLine, src, dst, wl.KeepFn())
	assert.NoError(t, err)
	assert.Equal(t, 4, stats.TotalLines)
	assert.Equal(t, 2, stats.Retained)
	out, err := os.ReadFile(dst)
	assert.NoError(t, err)
	assert.Equal(t, "Häuser\tHaus\tNN.Pl\nschnelles\tschnell\tADJ.Nom\n", string(out))
}

func TestParseMappingArgs(t *testing.T) {
	mapping, err := ParseMappingArgs([]string{"NN=nouns.txt", "ADJ=adjectives.txt"})
	assert.NoError(t, err)
	assert.Equal(t, "nouns.txt", mapping[dictionary.CatNoun])
	assert.Equal(t, "adjectives.txt", mapping[dictionary.CatAdjective])
}

func TestParseMappingArgsMissingSeparator(t *testing.T) {
	_, err := ParseMappingArgs([]string{"nouns.txt"})
	assert.Error(t, err)
}

func TestParseMappingArgsEmptyPath(t *testing.T) {
	_, err := ParseMappingArgs([]string{"NN="})
	assert.Error(t, err)
}

func TestParseMappingArgsUnknownCategory(t *testing.T) {
	_, err := ParseMappingArgs([]string{"NOPE=nouns.txt"})
	assert.Error(t, err)
}

func TestParseMappingArgsDuplicateCategory(t *testing.T) {
	_, err := ParseMappingArgs([]string{"NN=a.txt", "NN=b.txt"})
	assert.Error(t, err)
}

func TestParseMappingArgsEmpty(t *testing.T) {
	_, err := ParseMappingArgs([]string{})
	assert.ErrorIs(t, err, ErrNoWhitelists)
}
