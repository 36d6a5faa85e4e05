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
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Analysis is one morphological reading of a surface form
// inside a block-formatted dictionary. The raw source line is
// kept so retained analyses can be written back verbatim, incl.
// any tokens following the lemma/tag pair.
type Analysis struct {
	Lemma string
	Tag   string
	raw   string
}

// Block is a block-formatted dictionary entry: a surface form
// followed by one or more analyses. Morphy-style dumps use this
// layout with blank lines separating the blocks:
//
//	Häuser
//	Haus NN,neut,plu,nom
//	Haus NN,neut,plu,acc
//
type Block struct {
	Word     string
	Analyses []Analysis
}

// Records translates the block into flat dictionary records,
// one per analysis.
func (b Block) Records() []Record {
	ans := make([]Record, len(b.Analyses))
	for i, a := range b.Analyses {
		ans[i] = Record{Wordform: b.Word, Lemma: a.Lemma, Tag: a.Tag}
	}
	return ans
}

func parseAnalysisLine(line string) (Analysis, error) {
	items := strings.Fields(line)
	if len(items) < 2 {
		return Analysis{}, fmt.Errorf("%w: expected lemma and tag", ErrMalformedLine)
	}
	return Analysis{Lemma: items[0], Tag: items[1], raw: line}, nil
}

func (a Analysis) line() string {
	if a.raw != "" {
		return a.raw
	}
	return fmt.Sprintf("%s %s", a.Lemma, a.Tag)
}

func writeBlock(writer *bufio.Writer, word string, analyses []Analysis) error {
	if _, err := fmt.Fprintln(writer, word); err != nil {
		return err
	}
	for _, a := range analyses {
		if _, err := fmt.Fprintln(writer, a.line()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// ProcessBlockFile reads a block-formatted dictionary from srcPath
// and writes the filtered version to dstPath. A block is retained
// iff at least one of its analyses is accepted by keep; rejected
// analyses are removed from retained blocks. Block order and
// analysis order are preserved and kept analysis lines are written
// back verbatim. Analysis lines which cannot be parsed are skipped
// and counted as malformed.
func ProcessBlockFile(srcPath, dstPath string, keep KeepFn) (ProcStats, error) {
	var stats ProcStats
	src, err := os.Open(srcPath)
	if err != nil {
		return stats, fmt.Errorf("failed to open dictionary %s: %w", srcPath, err)
	}
	defer src.Close()
	dst, err := os.Create(dstPath)
	if err != nil {
		return stats, fmt.Errorf("failed to create output file %s: %w", dstPath, err)
	}
	defer dst.Close()

	writer := bufio.NewWriter(dst)
	var currWord string
	var currKept []Analysis

	flushBlock := func() error {
		if currWord != "" && len(currKept) > 0 {
			if err := writeBlock(writer, currWord, currKept); err != nil {
				return fmt.Errorf("failed to write output file %s: %w", dstPath, err)
			}
		}
		currWord = ""
		currKept = nil
		return nil
	}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if err := flushBlock(); err != nil {
				return stats, err
			}
			continue
		}
		stats.TotalLines++
		if !strings.Contains(line, " ") {
			// a new surface form starts a new block
			if err := flushBlock(); err != nil {
				return stats, err
			}
			currWord = line
			continue
		}
		ana, err := parseAnalysisLine(line)
		if err != nil {
			stats.Malformed++
			continue
		}
		if currWord == "" {
			// an analysis without a preceding word line
			stats.Malformed++
			continue
		}
		if keep(Record{Wordform: currWord, Lemma: ana.Lemma, Tag: ana.Tag}) {
			currKept = append(currKept, ana)
			stats.Retained++
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read dictionary %s: %w", srcPath, err)
	}
	if err := flushBlock(); err != nil {
		return stats, err
	}
	if err := writer.Flush(); err != nil {
		return stats, fmt.Errorf("failed to write output file %s: %w", dstPath, err)
	}
	return stats, nil
}
