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

func TestFormatValidate(t *testing.T) {
	assert.NoError(t, FormatLine.Validate())
	assert.NoError(t, FormatBlock.Validate())
	assert.Error(t, Format("xml").Validate())
	assert.Error(t, Format("").Validate())
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	_, err := Run(Format("xml"), "in.txt", "out.txt", func(dictionary.Record) bool { return true })
	assert.Error(t, err)
}

func TestRunLineFormat(t *testing.T) {
	src := writeTmpFile(t, "dict.txt", "Häuser\tHaus\tNN.Pl\nging\tgehen\tVV.Past\n")
	dst := filepath.Join(t.TempDir(), "out.txt")
	stats, err := Run(FormatLine, src, dst, func(rec dictionary.Record) bool {
		return rec.Category() == dictionary.CatNoun
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.Retained)
	out, err := os.ReadFile(dst)
	assert.NoError(t, err)
	assert.Equal(t, "Häuser\tHaus\tNN.Pl\n", string(out))
}

func TestRunBlockFormat(t *testing.T) {
	src := writeTmpFile(
		t, "dict.txt",
		"Häuser\nHaus NN,neut,plu,nom\n\nging\ngehen VV,past\n\n")
	dst := filepath.Join(t.TempDir(), "out.txt")
	stats, err := Run(FormatBlock, src, dst, func(rec dictionary.Record) bool {
		return rec.Category() == dictionary.CatNoun
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.Retained)
	out, err := os.ReadFile(dst)
	assert.NoError(t, err)
	assert.Equal(t, "Häuser\nHaus NN,neut,plu,nom\n\n", string(out))
}
