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

	"github.com/rs/zerolog/log"
)

const (
	maxLineSize = 1 << 20
)

// ProcStats summarizes a single pass over a dictionary file.
type ProcStats struct {
	TotalLines int `json:"totalLines"`
	Retained   int `json:"retained"`
	Malformed  int `json:"malformed"`
}

// KeepFn decides whether a record stays in the output.
// It must be stateless with respect to other records.
type KeepFn func(rec Record) bool

// ProcessFile reads a line-oriented dictionary from srcPath and
// writes all the lines whose records are accepted by keep to
// dstPath, preserving their order and exact byte form. Lines
// which cannot be parsed into a Record are skipped and counted.
// Blank lines are ignored.
func ProcessFile(srcPath, dstPath string, keep KeepFn) (ProcStats, error) {
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
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		stats.TotalLines++
		rec, err := ParseLine(line)
		if err != nil {
			stats.Malformed++
			log.Debug().Int("line", stats.TotalLines).Err(err).Msg("skipping dictionary line")
			continue
		}
		if keep(rec) {
			if _, err := fmt.Fprintln(writer, line); err != nil {
				return stats, fmt.Errorf("failed to write output file %s: %w", dstPath, err)
			}
			stats.Retained++
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read dictionary %s: %w", srcPath, err)
	}
	if err := writer.Flush(); err != nil {
		return stats, fmt.Errorf("failed to write output file %s: %w", dstPath, err)
	}
	return stats, nil
}
