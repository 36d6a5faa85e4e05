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

package fsops

import (
	"os"
	"sort"
)

func IsFile(path string) bool {
	finfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return finfo.Mode().IsRegular()
}

func IsDir(path string) bool {
	finfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return finfo.IsDir()
}

// ----

// FileList is a sortable list of files (most recently
// modified first)
type FileList struct {
	files []os.FileInfo
}

func (f *FileList) Len() int {
	return len(f.files)
}

func (f *FileList) Less(i, j int) bool {
	return f.files[i].ModTime().After(f.files[j].ModTime())
}

func (f *FileList) Swap(i, j int) {
	f.files[i], f.files[j] = f.files[j], f.files[i]
}

func (f *FileList) Items() []os.FileInfo {
	return f.files
}

// ListFilesInDir lists regular files in a directory,
// optionally sorted with the newest one first.
func ListFilesInDir(path string, newestFirst bool) (FileList, error) {
	var ans FileList
	entries, err := os.ReadDir(path)
	if err != nil {
		return ans, err
	}
	ans.files = make([]os.FileInfo, 0, len(entries))
	for _, v := range entries {
		finfo, err := v.Info()
		if err != nil {
			return ans, err
		}
		if finfo.Mode().IsRegular() {
			ans.files = append(ans.files, finfo)
		}
	}
	if newestFirst {
		sort.Sort(&ans)
	}
	return ans, nil
}
