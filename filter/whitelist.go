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
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"gmdict/dictionary"

	"github.com/czcorpus/cnc-gokit/collections"
)

var (
	ErrNoWhitelists = errors.New("no whitelist specified")
)

// Whitelist maps PoS categories to allowed lemma sets. A record
// passes iff its category has a configured set and its lemma is
// a member. Categories without a configured whitelist exclude
// all their records.
type Whitelist struct {
	data map[dictionary.Category]*collections.Set[string]
}

// Allows implements the whitelist predicate over a single record.
func (wl *Whitelist) Allows(rec dictionary.Record) bool {
	lemmas, ok := wl.data[rec.Category()]
	return ok && lemmas.Contains(rec.Lemma)
}

// KeepFn exports the whitelist as a dictionary filtering function.
func (wl *Whitelist) KeepFn() dictionary.KeepFn {
	return wl.Allows
}

func (wl *Whitelist) NumCategories() int {
	return len(wl.data)
}

func (wl *Whitelist) NumLemmas() int {
	ans := 0
	for _, lemmas := range wl.data {
		ans += lemmas.Size()
	}
	return ans
}

func (wl *Whitelist) Categories() []dictionary.Category {
	ans := make([]dictionary.Category, 0, len(wl.data))
	for cat := range wl.data {
		ans = append(ans, cat)
	}
	return ans
}

func loadLemmaSet(path string) (*collections.Set[string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open whitelist %s: %w", path, err)
	}
	defer f.Close()
	ans := collections.NewSet[string]()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lemma := strings.TrimSpace(scanner.Text())
		if lemma != "" {
			ans.Add(lemma)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read whitelist %s: %w", path, err)
	}
	return ans, nil
}

// LoadWhitelist loads one lemma file per category as defined by
// the provided explicit mapping. Lemmas are deduplicated; an
// empty file produces an empty (i.e. reject-everything) set for
// its category.
func LoadWhitelist(mapping map[dictionary.Category]string) (*Whitelist, error) {
	if len(mapping) == 0 {
		return nil, ErrNoWhitelists
	}
	ans := &Whitelist{data: make(map[dictionary.Category]*collections.Set[string])}
	for cat, path := range mapping {
		lemmas, err := loadLemmaSet(path)
		if err != nil {
			return nil, err
		}
		ans.data[cat] = lemmas
	}
	return ans, nil
}

// ParseMappingArgs translates command line arguments of the form
// CAT=path (e.g. NN=whitelists/nouns.txt) into a category-to-file
// mapping. Category identifiers must belong to the known inventory.
func ParseMappingArgs(args []string) (map[dictionary.Category]string, error) {
	if len(args) == 0 {
		return nil, ErrNoWhitelists
	}
	ans := make(map[dictionary.Category]string, len(args))
	for _, arg := range args {
		catValue, path, found := strings.Cut(arg, "=")
		if !found || path == "" {
			return nil, fmt.Errorf("invalid whitelist argument %s (expected CAT=path)", arg)
		}
		cat, err := dictionary.ParseCategory(catValue)
		if err != nil {
			return nil, fmt.Errorf("invalid whitelist argument %s: %w", arg, err)
		}
		if _, ok := ans[cat]; ok {
			return nil, fmt.Errorf("duplicate whitelist for category %s", cat)
		}
		ans[cat] = path
	}
	return ans, nil
}
