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
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const numConcTestJobs = 200

// TestJobTableConcurrentAccess runs table lookups from a separate
// goroutine while jobs are being enqueued and finished. Run with
// the race detector enabled, it guards the locking around jobList.
func TestJobTableConcurrentAccess(t *testing.T) {
	conf := &Conf{MaxNumConcurrentJobs: 2}
	a := NewActions(conf, message.NewPrinter(language.English))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < numConcTestJobs; i++ {
			a.GetUnfinishedJob("dict.txt", "dummy-job")
			a.GetJob(fmt.Sprintf("job%03d", i))
			a.findJob("job")
		}
	}()
	for i := 0; i < numConcTestJobs; i++ {
		var fn QueuedFunc = func(updates chan<- GeneralJobInfo) {
			close(updates)
		}
		a.EnqueueJob(&fn, DummyJobInfo{
			ID:     fmt.Sprintf("job%03d", i),
			Type:   "dummy-job",
			DictID: "dict.txt",
			Start:  CurrentDatetime(),
		})
	}
	wg.Wait()

	assert.Eventually(
		t,
		func() bool {
			jobList := a.createJobList()
			if len(jobList) != numConcTestJobs {
				return false
			}
			for _, job := range jobList {
				if !job.IsFinished() {
					return false
				}
			}
			return true
		},
		5*time.Second,
		10*time.Millisecond,
	)
}

func TestGetUnfinishedJobMatchesTypeAndDictionary(t *testing.T) {
	a := &Actions{jobList: map[string]GeneralJobInfo{
		"job1": DummyJobInfo{ID: "job1", Type: "dummy-job", DictID: "a.txt", Finished: true},
		"job2": DummyJobInfo{ID: "job2", Type: "dummy-job", DictID: "b.txt"},
	}}
	assert.Nil(t, a.GetUnfinishedJob("a.txt", "dummy-job"))
	job := a.GetUnfinishedJob("b.txt", "dummy-job")
	assert.NotNil(t, job)
	assert.Equal(t, "job2", job.GetID())
	assert.Nil(t, a.GetUnfinishedJob("b.txt", "other-job"))
}
