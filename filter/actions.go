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
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"gmdict/cnf"
	"gmdict/dictionary"
	"gmdict/fsops"
	"gmdict/jobs"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Actions provides the HTTP API for starting filtering jobs
// over the configured dictionary directory.
type Actions struct {
	conf       *cnf.Conf
	jobActions *jobs.Actions
}

type filterReqBody struct {
	// OutputName is a file name (not a path) the result is
	// written to within the dictionary directory
	OutputName string `json:"outputName"`
	// Format is the dictionary layout ("line" is the default)
	Format Format `json:"format"`
	// Whitelists maps PoS categories to whitelist file names
	// within the configured whitelist directory (whitelist
	// filtering only)
	Whitelists map[dictionary.Category]string `json:"whitelists,omitempty"`
}

func safeJoin(dirPath, name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid file name: %s", name)
	}
	return filepath.Join(dirPath, name), nil
}

func (a *Actions) parseRequest(ctx *gin.Context, jobType string) (JobArgs, string, bool) {
	var reqBody filterReqBody
	if err := ctx.ShouldBindJSON(&reqBody); err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusBadRequest)
		return JobArgs{}, "", false
	}
	dictID := ctx.Param("dictId")
	srcPath, err := safeJoin(a.conf.DictDirPath, dictID)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusBadRequest)
		return JobArgs{}, "", false
	}
	if !fsops.IsFile(srcPath) {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionError("dictionary %s not found", dictID),
			http.StatusNotFound,
		)
		return JobArgs{}, "", false
	}
	if reqBody.Format == "" {
		reqBody.Format = FormatLine
	}
	if err := reqBody.Format.Validate(); err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusBadRequest)
		return JobArgs{}, "", false
	}
	if reqBody.OutputName == "" {
		reqBody.OutputName = fmt.Sprintf("%s.%s", dictID, jobType)
	}
	if _, err := safeJoin(a.conf.DictDirPath, reqBody.OutputName); err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusBadRequest)
		return JobArgs{}, "", false
	}
	if prevJob := a.jobActions.GetUnfinishedJob(dictID, jobType); prevJob != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionError("the job is already running as %s", prevJob.GetID()),
			http.StatusConflict,
		)
		return JobArgs{}, "", false
	}
	return JobArgs{
		Format:     reqBody.Format,
		OutputName: reqBody.OutputName,
		Whitelists: reqBody.Whitelists,
	}, dictID, true
}

// resolveWhitelistPaths maps whitelist file names from the
// request to paths within the configured whitelist directory.
func (a *Actions) resolveWhitelistPaths(
	mapping map[dictionary.Category]string,
) (map[dictionary.Category]string, error) {
	if len(mapping) == 0 {
		return nil, ErrNoWhitelists
	}
	ans := make(map[dictionary.Category]string, len(mapping))
	for cat, name := range mapping {
		if err := cat.Validate(); err != nil {
			return nil, err
		}
		path, err := safeJoin(a.conf.WhitelistDirPath, name)
		if err != nil {
			return nil, err
		}
		if !fsops.IsFile(path) {
			return nil, fmt.Errorf("whitelist file %s not found", name)
		}
		ans[cat] = path
	}
	return ans, nil
}

func (a *Actions) startJob(initialStatus JobInfo, keepFactory func() (dictionary.KeepFn, error)) {
	fn := func(updateJobChan chan<- jobs.GeneralJobInfo) {
		defer close(updateJobChan)
		keep, err := keepFactory()
		if err != nil {
			updateJobChan <- initialStatus.WithError(err).AsFinished()
			return
		}
		srcPath := filepath.Join(a.conf.DictDirPath, initialStatus.DictID)
		dstPath := filepath.Join(a.conf.DictDirPath, initialStatus.Args.OutputName)
		stats, err := Run(initialStatus.Args.Format, srcPath, dstPath, keep)
		if err != nil {
			updateJobChan <- initialStatus.WithError(err).AsFinished()
			return
		}
		finalStatus := initialStatus
		finalStatus.Result = &JobResult{
			Stats:      stats,
			OutputFile: dstPath,
		}
		updateJobChan <- finalStatus.AsFinished()
	}
	a.jobActions.EnqueueJob(&fn, initialStatus)
}

// FilterWhitelist starts a whitelist filtering job over a
// specified dictionary.
func (a *Actions) FilterWhitelist(ctx *gin.Context) {
	args, dictID, ok := a.parseRequest(ctx, JobTypeWhitelist)
	if !ok {
		return
	}
	paths, err := a.resolveWhitelistPaths(args.Whitelists)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusBadRequest)
		return
	}
	initialStatus := JobInfo{
		ID:     uuid.New().String(),
		Type:   JobTypeWhitelist,
		DictID: dictID,
		Start:  jobs.CurrentDatetime(),
		Args:   args,
	}
	a.startJob(initialStatus, func() (dictionary.KeepFn, error) {
		wl, err := LoadWhitelist(paths)
		if err != nil {
			return nil, err
		}
		return wl.KeepFn(), nil
	})
	uniresp.WriteJSONResponse(ctx.Writer, initialStatus.FullInfo())
}

// FilterSensible starts a heuristic filtering job over a
// specified dictionary.
func (a *Actions) FilterSensible(ctx *gin.Context) {
	args, dictID, ok := a.parseRequest(ctx, JobTypeSensible)
	if !ok {
		return
	}
	initialStatus := JobInfo{
		ID:     uuid.New().String(),
		Type:   JobTypeSensible,
		DictID: dictID,
		Start:  jobs.CurrentDatetime(),
		Args:   args,
	}
	a.startJob(initialStatus, func() (dictionary.KeepFn, error) {
		return Sensible(), nil
	})
	uniresp.WriteJSONResponse(ctx.Writer, initialStatus.FullInfo())
}

// RestartJob re-runs an unfinished job found in the serialized
// job table (e.g. after a service restart).
func (a *Actions) RestartJob(jinfo *JobInfo) error {
	if jinfo.NumRestarts >= a.conf.Jobs.MaxNumRestarts {
		return fmt.Errorf("cannot restart job %s - max. num. of restarts reached", jinfo.ID)
	}
	initialStatus := *jinfo
	initialStatus.Start = jobs.CurrentDatetime()
	initialStatus.NumRestarts++
	switch jinfo.Type {
	case JobTypeWhitelist:
		paths, err := a.resolveWhitelistPaths(initialStatus.Args.Whitelists)
		if err != nil {
			return err
		}
		a.startJob(initialStatus, func() (dictionary.KeepFn, error) {
			wl, err := LoadWhitelist(paths)
			if err != nil {
				return nil, err
			}
			return wl.KeepFn(), nil
		})
	case JobTypeSensible:
		a.startJob(initialStatus, func() (dictionary.KeepFn, error) {
			return Sensible(), nil
		})
	default:
		return fmt.Errorf("unknown job type %s", jinfo.Type)
	}
	return nil
}

// NewActions is the default factory for filtering actions
func NewActions(conf *cnf.Conf, jobActions *jobs.Actions) *Actions {
	return &Actions{
		conf:       conf,
		jobActions: jobActions,
	}
}
