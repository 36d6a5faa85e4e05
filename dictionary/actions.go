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
	"net/http"
	"os"
	"path/filepath"

	"gmdict/fsops"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

// Actions provides read-only HTTP information about the
// dictionary files the service is configured to work with.
type Actions struct {
	dictDirPath string
}

type dictFileInfo struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	LastModified string `json:"lastModified"`
}

type dictDetail struct {
	dictFileInfo
	NumLines int `json:"numLines"`
}

// List provides all the dictionary files found in the
// configured dictionary directory, newest first.
func (a *Actions) List(ctx *gin.Context) {
	files, err := fsops.ListFilesInDir(a.dictDirPath, true)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusInternalServerError)
		return
	}
	ans := make([]dictFileInfo, 0, files.Len())
	for _, item := range files.Items() {
		ans = append(ans, dictFileInfo{
			Name:         item.Name(),
			Size:         item.Size(),
			LastModified: item.ModTime().Format("2006-01-02T15:04:05-0700"),
		})
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	ans := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	for scanner.Scan() {
		if scanner.Text() != "" {
			ans++
		}
	}
	return ans, scanner.Err()
}

// Info provides a detailed information about a single
// dictionary file.
func (a *Actions) Info(ctx *gin.Context) {
	dictID := ctx.Param("dictId")
	path := filepath.Join(a.dictDirPath, filepath.Base(dictID))
	isFile, _ := fs.IsFile(path)
	if !isFile {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionError("dictionary %s not found", dictID),
			http.StatusNotFound,
		)
		return
	}
	mTime, err := fs.GetFileMtime(path)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusInternalServerError)
		return
	}
	size, err := fs.FileSize(path)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusInternalServerError)
		return
	}
	numLines, err := countLines(path)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, dictDetail{
		dictFileInfo: dictFileInfo{
			Name:         dictID,
			Size:         size,
			LastModified: mTime.Format("2006-01-02T15:04:05-0700"),
		},
		NumLines: numLines,
	})
}

// NewActions is the default factory for dictionary info actions
func NewActions(dictDirPath string) *Actions {
	return &Actions{dictDirPath: dictDirPath}
}
