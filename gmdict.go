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

package main

import (
	"context"
	"encoding/gob"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gmdict/cnf"
	"gmdict/dictionary"
	"gmdict/filter"
	"gmdict/jobs"
	"gmdict/notify"
	"gmdict/root"
)

var (
	version   string
	buildDate string
	gitCommit string
)

type ExitHandler interface {
	OnExit()
}

func setupLog(path string) {
	if path != "" {
		logf, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatal().Msgf("Failed to initialize log. File: %s", path)
		}
		log.Logger = log.Output(logf)

	} else {
		log.Logger = log.Output(
			zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: time.RFC3339,
			},
		)
	}
}

func init() {
	gob.Register(filter.JobInfo{})
	gob.Register(&jobs.JSONError{})
}

// runFilterWhitelist handles the one-shot `filter-whitelist`
// command line action.
func runFilterWhitelist(format filter.Format, args []string) {
	if len(args) < 3 {
		log.Fatal().Msg("Usage: filter-whitelist input_dict output_file CAT=whitelist_path...")
	}
	mapping, err := filter.ParseMappingArgs(args[2:])
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to process whitelist arguments")
	}
	wl, err := filter.LoadWhitelist(mapping)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load whitelists")
	}
	log.Info().
		Int("categories", wl.NumCategories()).
		Int("lemmas", wl.NumLemmas()).
		Msg("whitelists loaded")
	stats, err := filter.Run(format, args[0], args[1], wl.KeepFn())
	if err != nil {
		log.Fatal().Err(err).Msg("Filtering failed")
	}
	logFilterStats(stats, args[1])
}

// runFilterSensible handles the one-shot `filter-sensible`
// command line action.
func runFilterSensible(format filter.Format, args []string) {
	if len(args) != 2 {
		log.Fatal().Msg("Usage: filter-sensible input_dict output_file")
	}
	stats, err := filter.Run(format, args[0], args[1], filter.Sensible())
	if err != nil {
		log.Fatal().Err(err).Msg("Filtering failed")
	}
	logFilterStats(stats, args[1])
}

func logFilterStats(stats dictionary.ProcStats, outPath string) {
	log.Info().
		Int("totalLines", stats.TotalLines).
		Int("retained", stats.Retained).
		Int("malformed", stats.Malformed).
		Str("outputFile", outPath).
		Msg("filtering finished")
}

func runService(conf *cnf.Conf, versionInfo cnf.VersionInfo) {
	syscallChan := make(chan os.Signal, 1)
	signal.Notify(syscallChan, os.Interrupt)
	signal.Notify(syscallChan, syscall.SIGTERM)
	exitEvent := make(chan os.Signal)

	msgPrinter := message.NewPrinter(language.Make(conf.Language))
	jobActions := jobs.NewActions(conf.Jobs, msgPrinter)
	if len(conf.Notify.URLs) > 0 {
		jobActions.RegisterNotifier(notify.NewNotifier(conf.Notify))
		log.Info().Msgf("job notification webhooks: %v", conf.Notify.URLs)
	}
	dictActions := dictionary.NewActions(conf.DictDirPath)
	filterActions := filter.NewActions(conf, jobActions)
	rootActions := &root.Actions{Version: versionInfo}

	for _, dj := range jobActions.GetDetachedJobs() {
		tdj, ok := dj.(filter.JobInfo)
		if !ok {
			log.Error().Msg("unknown detached job type")
			jobActions.ClearDetachedJob(dj.GetID())
			continue
		}
		if err := filterActions.RestartJob(&tdj); err != nil {
			log.Error().Err(err).Msgf("Failed to restart job %s. The job will be removed.", tdj.ID)
		}
		jobActions.ClearDetachedJob(tdj.ID)
	}

	if !conf.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(func(ctx *gin.Context) {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("action not found"), http.StatusNotFound)
	})
	engine.NoMethod(func(ctx *gin.Context) {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionError("method not allowed"), http.StatusMethodNotAllowed)
	})

	engine.GET("/", rootActions.RootAction)

	engine.GET("/dictionaries", dictActions.List)
	engine.GET("/dictionaries/:dictId", dictActions.Info)
	engine.POST("/dictionaries/:dictId/filterWhitelist", filterActions.FilterWhitelist)
	engine.POST("/dictionaries/:dictId/filterSensible", filterActions.FilterSensible)

	engine.GET("/jobs", jobActions.JobList)
	engine.GET("/jobs/:jobId", jobActions.JobInfo)
	engine.DELETE("/jobs/:jobId", jobActions.Delete)
	engine.GET("/jobs/:jobId/clearIfFinished", jobActions.ClearIfFinished)

	go func(exitHandlers []ExitHandler) {
		evt := <-syscallChan
		for _, h := range exitHandlers {
			h.OnExit()
		}
		exitEvent <- evt
		close(exitEvent)
	}([]ExitHandler{jobActions, rootActions})

	log.Info().Msgf("starting to listen at %s:%d", conf.ListenAddress, conf.ListenPort)
	srv := &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", conf.ListenAddress, conf.ListenPort),
		WriteTimeout: time.Duration(conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(conf.ServerReadTimeoutSecs) * time.Second,
	}

	go func() {
		err := srv.ListenAndServe()
		if err != nil {
			log.Error().Err(err).Send()
		}
		syscallChan <- syscall.SIGTERM
	}()

	<-exitEvent
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Info().Err(err).Msg("Shutdown request error")
	}
}

func main() {
	versionInfo := cnf.VersionInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}
	formatFlag := flag.String("format", "line", "dictionary file format (line|block)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr,
			"GMDICT - German Morphological Dictionary Tools\n\nUsage:\n"+
				"\t%s [options] start [config.json]\n"+
				"\t%s [options] filter-whitelist input_dict output_file CAT=whitelist_path...\n"+
				"\t%s [options] filter-sensible input_dict output_file\n"+
				"\t%s [options] version\n",
			filepath.Base(os.Args[0]), filepath.Base(os.Args[0]),
			filepath.Base(os.Args[0]), filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	format := filter.Format(*formatFlag)
	action := flag.Arg(0)
	switch action {
	case "version":
		fmt.Printf("gmdict %s\nbuild date: %s\nlast commit: %s\n",
			versionInfo.Version, versionInfo.BuildDate, versionInfo.GitCommit)
		return
	case "filter-whitelist":
		setupLog("")
		runFilterWhitelist(format, flag.Args()[1:])
		return
	case "filter-sensible":
		setupLog("")
		runFilterSensible(format, flag.Args()[1:])
		return
	case "start":
		conf := cnf.LoadConfig(flag.Arg(1))
		setupLog(conf.LogFile)
		log.Info().Msg("Starting GMDICT (German Morphological Dictionary Tools)")
		if err := cnf.ValidateAndDefaults(conf); err != nil {
			log.Fatal().Err(err).Msg("Invalid configuration")
		}
		runService(conf, versionInfo)
	default:
		log.Fatal().Msgf("Unknown action %s", action)
	}
}
