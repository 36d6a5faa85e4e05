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
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"gmdict/fsops"
	"gmdict/mail"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/message"
)

const (
	tableActionUpdateJob = iota
	tableActionEnqueueJob
	tableActionFinishJob
	tableActionDeleteJob

	clearOldJobsInterval = 1 * time.Hour
)

// FinishedJobNotifier gets a chance to report a finished job
// to an external consumer (e.g. a webhook).
type FinishedJobNotifier interface {
	Notify(job GeneralJobInfo)
}

// tableUpdate is the only way the job table is modified
type tableUpdate struct {
	action int
	data   GeneralJobInfo
	fn     *QueuedFunc
	jobID  string
}

// Actions wraps the job table and its HTTP API. All table
// mutations go through the tableUpdate channel consumed by
// a single goroutine; tableMx guards jobList so HTTP handlers
// can read it while that goroutine writes.
type Actions struct {
	conf        *Conf
	msgPrinter  *message.Printer
	tableMx     sync.RWMutex
	jobList     map[string]GeneralJobInfo
	detached    map[string]GeneralJobInfo
	jobQueue    JobQueue
	numRunning  int
	tableUpdate chan tableUpdate
	notifiers   []FinishedJobNotifier
}

// EnqueueJob adds a new job to the table. The job function is
// run immediately if a slot is free, otherwise it waits in a
// FIFO queue. The function must close its updates channel once
// it is done.
func (a *Actions) EnqueueJob(fn *QueuedFunc, initialStatus GeneralJobInfo) {
	a.tableUpdate <- tableUpdate{
		action: tableActionEnqueueJob,
		data:   initialStatus,
		fn:     fn,
	}
}

// RegisterNotifier adds an external notifier called (in its own
// goroutine) for each finished job.
func (a *Actions) RegisterNotifier(n FinishedJobNotifier) {
	a.notifiers = append(a.notifiers, n)
}

// GetJob provides a job with a matching ID
func (a *Actions) GetJob(jobID string) (GeneralJobInfo, bool) {
	a.tableMx.RLock()
	defer a.tableMx.RUnlock()
	job, ok := a.jobList[jobID]
	return job, ok
}

// GetUnfinishedJob provides a first matching unfinished job
// of a specified type attached to a specified dictionary.
func (a *Actions) GetUnfinishedJob(dictID, jobType string) GeneralJobInfo {
	a.tableMx.RLock()
	defer a.tableMx.RUnlock()
	for _, job := range a.jobList {
		if !job.IsFinished() && job.GetDictionary() == dictID && job.GetType() == jobType {
			return job
		}
	}
	return nil
}

func (a *Actions) findJob(jobID string) GeneralJobInfo {
	a.tableMx.RLock()
	defer a.tableMx.RUnlock()
	return FindJob(a.jobList, jobID)
}

// GetDetachedJobs provides jobs which were loaded from the
// serialized job table and did not run since then. Unfinished
// detached jobs are candidates for a restart.
func (a *Actions) GetDetachedJobs() []GeneralJobInfo {
	ans := make([]GeneralJobInfo, 0, len(a.detached))
	for _, job := range a.detached {
		ans = append(ans, job)
	}
	return ans
}

func (a *Actions) ClearDetachedJob(jobID string) {
	delete(a.detached, jobID)
}

func (a *Actions) runJob(fn *QueuedFunc, status GeneralJobInfo) {
	a.numRunning++
	updates := make(chan GeneralJobInfo, 10)
	go (*fn)(updates)
	go func() {
		for item := range updates {
			a.tableUpdate <- tableUpdate{
				action: tableActionUpdateJob,
				data:   item,
			}
		}
		a.tableUpdate <- tableUpdate{
			action: tableActionFinishJob,
			jobID:  status.GetID(),
		}
	}()
}

func (a *Actions) notifyFinished(job GeneralJobInfo) {
	if a.conf.EmailNotification.SMTPServer != "" {
		subject := a.msgPrinter.Sprintf("GMDICT job %s finished", job.GetID())
		msg := fmt.Sprintf(
			"%s<br />%s",
			extractJobDescription(a.msgPrinter, job),
			localizedStatus(a.msgPrinter, job),
		)
		if err := mail.SendNotification(a.conf.EmailNotification, subject, msg); err != nil {
			log.Error().Err(err).Msg("failed to send job notification e-mail")
		}
	}
	for _, n := range a.notifiers {
		n.Notify(job)
	}
}

func (a *Actions) handleFinishJob(jobID string) {
	a.numRunning--
	a.tableMx.Lock()
	job, ok := a.jobList[jobID]
	if !ok {
		a.tableMx.Unlock()
		log.Error().Str("jobId", jobID).Msg("finished job not found in the job table")
		return
	}
	if !job.IsFinished() {
		job = job.AsFinished()
		a.jobList[jobID] = job
	}
	a.tableMx.Unlock()
	go a.notifyFinished(job)
	if a.numRunning < a.conf.MaxNumConcurrentJobs {
		fn, status, err := a.jobQueue.Dequeue()
		if err == nil {
			a.runJob(fn, status)
		}
	}
}

func (a *Actions) createJobList() JobInfoList {
	a.tableMx.RLock()
	defer a.tableMx.RUnlock()
	ans := make(JobInfoList, 0, len(a.jobList))
	for _, v := range a.jobList {
		ans = append(ans, v)
	}
	return ans
}

// JobList returns the current job table, either in full or
// (with url argument compact=1) in the unified compact form.
func (a *Actions) JobList(ctx *gin.Context) {
	compStr := ctx.Request.URL.Query().Get("compact")
	if compStr == "" {
		compStr = "0"
	}
	compInt, err := strconv.Atoi(compStr)
	if err != nil || compInt != 0 && compInt != 1 {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionError("compact argument must be either 0 or 1"),
			http.StatusBadRequest,
		)
		return
	}
	if compInt == 1 {
		jobList := a.createJobList()
		ans := make(JobInfoListCompact, 0, len(jobList))
		for _, v := range jobList {
			item := v.CompactVersion()
			ans = append(ans, &item)
		}
		sort.Sort(sort.Reverse(ans))
		uniresp.WriteJSONResponse(ctx.Writer, ans)

	} else {
		ans := a.createJobList()
		sort.Sort(sort.Reverse(ans))
		uniresp.WriteJSONResponse(ctx.Writer, ans)
	}
}

// JobInfo gives an information about a specific job
func (a *Actions) JobInfo(ctx *gin.Context) {
	job := a.findJob(ctx.Param("jobId"))
	if job != nil {
		uniresp.WriteJSONResponse(ctx.Writer, job.FullInfo())

	} else {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
	}
}

// Delete removes a finished job from the table. Running jobs
// cannot be removed.
func (a *Actions) Delete(ctx *gin.Context) {
	job := a.findJob(ctx.Param("jobId"))
	if job == nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
		return
	}
	if !job.IsFinished() {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("cannot remove a running job"), http.StatusConflict)
		return
	}
	a.tableUpdate <- tableUpdate{
		action: tableActionDeleteJob,
		jobID:  job.GetID(),
	}
	uniresp.WriteJSONResponse(ctx.Writer, job.FullInfo())
}

// ClearIfFinished removes a job if it is already finished and
// reports (as "removed" true/false) what happened.
func (a *Actions) ClearIfFinished(ctx *gin.Context) {
	job := a.findJob(ctx.Param("jobId"))
	if job == nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("job not found"), http.StatusNotFound)
		return
	}
	removed := job.IsFinished()
	if removed {
		a.tableUpdate <- tableUpdate{
			action: tableActionDeleteJob,
			jobID:  job.GetID(),
		}
	}
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{"removed": removed})
}

// OnExit serializes the job table so the jobs can be restarted
// after the service comes up again.
func (a *Actions) OnExit() {
	if a.conf.StatusDataPath != "" {
		log.Info().Msgf("saving state to %s", a.conf.StatusDataPath)
		jobList := a.createJobList()
		if err := jobList.Serialize(a.conf.StatusDataPath); err != nil {
			log.Error().Err(err).Msg("failed to serialize job table")
		}

	} else {
		log.Warn().Msg("no status data path specified, discarding job table")
	}
}

// NewActions is the default factory
func NewActions(conf *Conf, msgPrinter *message.Printer) *Actions {
	ans := &Actions{
		conf:        conf,
		msgPrinter:  msgPrinter,
		jobList:     make(map[string]GeneralJobInfo),
		detached:    make(map[string]GeneralJobInfo),
		tableUpdate: make(chan tableUpdate),
	}
	if fsops.IsFile(conf.StatusDataPath) {
		log.Info().Msgf("found status data in %s - loading...", conf.StatusDataPath)
		jobs, err := LoadJobList(conf.StatusDataPath)
		if err != nil {
			log.Error().Err(err).Msg("failed to load status data")
		}
		log.Info().Msgf("loaded %d job(s)", len(jobs))
		for _, job := range jobs {
			if job == nil {
				continue
			}
			ans.jobList[job.GetID()] = job
			if !job.IsFinished() {
				ans.detached[job.GetID()] = job
			}
		}
	}
	go func() {
		gcTicker := time.NewTicker(clearOldJobsInterval)
		for {
			select {
			case upd := <-ans.tableUpdate:
				switch upd.action {
				case tableActionUpdateJob:
					ans.tableMx.Lock()
					ans.jobList[upd.data.GetID()] = upd.data
					ans.tableMx.Unlock()
				case tableActionEnqueueJob:
					ans.tableMx.Lock()
					ans.jobList[upd.data.GetID()] = upd.data
					ans.tableMx.Unlock()
					if ans.numRunning < ans.conf.MaxNumConcurrentJobs {
						ans.runJob(upd.fn, upd.data)

					} else {
						ans.jobQueue.Enqueue(upd.fn, upd.data)
					}
				case tableActionFinishJob:
					ans.handleFinishJob(upd.jobID)
				case tableActionDeleteJob:
					ans.tableMx.Lock()
					delete(ans.jobList, upd.jobID)
					ans.tableMx.Unlock()
				}
			case <-gcTicker.C:
				ans.tableMx.Lock()
				clearOldJobs(ans.jobList)
				ans.tableMx.Unlock()
			}
		}
	}()
	return ans
}
