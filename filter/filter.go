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

// Package filter implements the two reduction passes GMDICT
// provides over German morphological dictionaries - the lemma
// whitelist filter and the heuristic "sensible" filter.
package filter

import (
	"fmt"

	"gmdict/dictionary"
)

// Format identifies the layout of a dictionary file.
type Format string

const (
	// FormatLine - one wordform/lemma/tag triple per line
	FormatLine Format = "line"
	// FormatBlock - Morphy-style blocks (word line + analysis lines)
	FormatBlock Format = "block"
)

func (f Format) Validate() error {
	if f != FormatLine && f != FormatBlock {
		return fmt.Errorf("unknown dictionary format: %s", f)
	}
	return nil
}

// Run performs a single order-preserving pass over the dictionary
// stored in srcPath, writing records accepted by keep to dstPath.
func Run(format Format, srcPath, dstPath string, keep dictionary.KeepFn) (dictionary.ProcStats, error) {
	if err := format.Validate(); err != nil {
		return dictionary.ProcStats{}, err
	}
	if format == FormatBlock {
		return dictionary.ProcessBlockFile(srcPath, dstPath, keep)
	}
	return dictionary.ProcessFile(srcPath, dstPath, keep)
}
