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

package jobs

import (
	"encoding/gob"
	"os"
	"strings"
	"time"

	"gmdict/mail"

	"github.com/rs/zerolog/log"
)

const (
	jobMaxAge = 168 * time.Hour
)

type Conf struct {
	StatusDataPath       string                 `json:"statusDataPath"`
	MaxNumConcurrentJobs int                    `json:"maxNumConcurrentJobs"`
	MaxNumRestarts       int                    `json:"maxNumRestarts"`
	EmailNotification    mail.EmailNotification `json:"emailNotification"`
}

// GeneralJobInfo defines a general job information
type GeneralJobInfo interface {

	// GetID should provide unique identifier of the job
	// (across all the possible implementations)
	GetID() string

	// GetType returns a specific job type (e.g. "filter-whitelist")
	GetType() string

	// GetStartDT provides a datetime information when the job started
	GetStartDT() JSONTime

	// GetDictionary provides a dictionary file name the job is related to
	GetDictionary() string

	// IsFinished returns true if the job has finished (either successfully or not)
	IsFinished() bool

	// AsFinished creates a clone of the status with the finished flag set
	// and update time set to the current time
	AsFinished() GeneralJobInfo

	// WithError creates a clone of the status with error set to the provided
	// value. The 'Update' property is also set to the current time.
	WithError(err error) GeneralJobInfo

	// GetError returns status error (if any) or nil
	GetError() error

	// GetNumRestarts returns how many times was the job restarted. For the normally run
	// job, this should be always 0. The number > 0 is expected e.g. in case the
	// service is shut down while some jobs are running.
	GetNumRestarts() int

	// CompactVersion produces simplified, unified job info for quick job reviews
	CompactVersion() JobInfoCompact

	// FullInfo produces JSON-friendly object containing all the information about the job
	FullInfo() any
}

// JobInfoList is just a list of any jobs
type JobInfoList []GeneralJobInfo

// Serialize gob-encodes the list and stores
// it to a specified path
func (jil JobInfoList) Serialize(path string) error {
	fw, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer fw.Close()
	enc := gob.NewEncoder(fw)
	return enc.Encode(jil)
}

// LoadJobList loads gob-encoded job list
// from a specified path
func LoadJobList(path string) (JobInfoList, error) {
	fw, err := os.OpenFile(path, os.O_RDONLY, 0644)
	if err != nil {
		return nil, err
	}
	defer fw.Close()
	dec := gob.NewDecoder(fw)
	ans := make(JobInfoList, 0, 50)
	err = dec.Decode(&ans)
	return ans, err
}

func (jil JobInfoList) Len() int {
	return len(jil)
}

func (jil JobInfoList) Less(i, j int) bool {
	return jil[i].GetStartDT().Before(jil[j].GetStartDT())
}

func (jil JobInfoList) Swap(i, j int) {
	jil[i], jil[j] = jil[j], jil[i]
}

func clearOldJobs(data map[string]GeneralJobInfo) {
	curr := CurrentDatetime()
	numRemoved := 0
	for k, v := range data {
		if curr.Sub(v.GetStartDT()) > jobMaxAge {
			delete(data, k)
			numRemoved++
		}
	}
	if numRemoved > 0 {
		log.Info().Msgf("removed %d old job(s)", numRemoved)
	}
}

// FindJob searches a job by providing either full id or its prefix.
// In case a prefix is used and there is more than one job matching the
// prefix, nil is returned
func FindJob(table map[string]GeneralJobInfo, jobID string) GeneralJobInfo {
	var ans GeneralJobInfo
	for ident, job := range table {
		if strings.HasPrefix(ident, jobID) {
			if ans != nil {
				return nil
			}
			ans = job
		}
	}
	return ans
}

// JobInfoCompact is a simplified and unified version of
// any specific job information
type JobInfoCompact struct {
	ID         string   `json:"id"`
	Dictionary string   `json:"dictionary"`
	Type       string   `json:"type"`
	Start      JSONTime `json:"start"`
	Update     JSONTime `json:"update"`
	Finished   bool     `json:"finished"`
	OK         bool     `json:"ok"`
}

// JobInfoListCompact represents a list of jobs for quick reviews
// (i.e. any type-specific information is discarded)
type JobInfoListCompact []*JobInfoCompact

func (cjil JobInfoListCompact) Len() int {
	return len(cjil)
}

func (cjil JobInfoListCompact) Less(i, j int) bool {
	return cjil[i].Start.Before(cjil[j].Start)
}

func (cjil JobInfoListCompact) Swap(i, j int) {
	cjil[i], cjil[j] = cjil[j], cjil[i]
}

// ErrorToString is a helper for JSON-serializing job errors
func ErrorToString(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}
