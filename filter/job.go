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
	"gmdict/dictionary"
	"gmdict/jobs"
)

const (
	JobTypeWhitelist = "filter-whitelist"
	JobTypeSensible  = "filter-sensible"
)

// JobArgs keeps everything needed to (re)run a filtering job.
type JobArgs struct {
	Format     Format                         `json:"format"`
	OutputName string                         `json:"outputName"`
	Whitelists map[dictionary.Category]string `json:"whitelists,omitempty"`
}

// JobResult is the final product information of a successful
// filtering job.
type JobResult struct {
	Stats      dictionary.ProcStats `json:"stats"`
	OutputFile string               `json:"outputFile"`
}

// JobInfo collects information about a running or finished
// dictionary filtering job.
type JobInfo struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	DictID      string        `json:"dictionary"`
	Start       jobs.JSONTime `json:"start"`
	Update      jobs.JSONTime `json:"update"`
	Finished    bool          `json:"finished"`
	Error       error         `json:"error,omitempty"`
	Args        JobArgs       `json:"args"`
	Result      *JobResult    `json:"result"`
	NumRestarts int           `json:"numRestarts"`
}

func (j JobInfo) GetID() string {
	return j.ID
}

func (j JobInfo) GetType() string {
	return j.Type
}

func (j JobInfo) GetStartDT() jobs.JSONTime {
	return j.Start
}

func (j JobInfo) GetDictionary() string {
	return j.DictID
}

func (j JobInfo) GetNumRestarts() int {
	return j.NumRestarts
}

func (j JobInfo) IsFinished() bool {
	return j.Finished
}

func (j JobInfo) AsFinished() jobs.GeneralJobInfo {
	j.Update = jobs.CurrentDatetime()
	j.Finished = true
	return j
}

func (j JobInfo) WithError(err error) jobs.GeneralJobInfo {
	j.Update = jobs.CurrentDatetime()
	if err != nil {
		// stored as JSONError so the value survives gob serialization
		jsonErr := jobs.NewJSONError(err)
		j.Error = &jsonErr
	}
	return j
}

func (j JobInfo) GetError() error {
	return j.Error
}

func (j JobInfo) CompactVersion() jobs.JobInfoCompact {
	return jobs.JobInfoCompact{
		ID:         j.ID,
		Type:       j.Type,
		Dictionary: j.DictID,
		Start:      j.Start,
		Update:     j.Update,
		Finished:   j.Finished,
		OK:         j.Error == nil && (!j.Finished || j.Result != nil),
	}
}

func (j JobInfo) FullInfo() any {
	return struct {
		ID          string        `json:"id"`
		Type        string        `json:"type"`
		DictID      string        `json:"dictionary"`
		Start       jobs.JSONTime `json:"start"`
		Update      jobs.JSONTime `json:"update"`
		Finished    bool          `json:"finished"`
		Error       string        `json:"error,omitempty"`
		Args        JobArgs       `json:"args"`
		Result      *JobResult    `json:"result"`
		NumRestarts int           `json:"numRestarts"`
	}{
		ID:          j.ID,
		Type:        j.Type,
		DictID:      j.DictID,
		Start:       j.Start,
		Update:      j.Update,
		Finished:    j.Finished,
		Error:       jobs.ErrorToString(j.Error),
		Args:        j.Args,
		Result:      j.Result,
		NumRestarts: j.NumRestarts,
	}
}
