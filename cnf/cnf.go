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

package cnf

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"gmdict/fsops"
	"gmdict/jobs"
	"gmdict/notify"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"
)

const (
	dfltListenAddress          = "127.0.0.1"
	dfltListenPort             = 8098
	dfltServerReadTimeoutSecs  = 10
	dfltServerWriteTimeoutSecs = 30
	dfltLanguage               = "en"
	dfltMaxNumConcurrentJobs   = 4
	dfltNotifyReqTimeoutSecs   = 10
)

// Conf is a global configuration of the app
type Conf struct {
	ListenAddress          string           `json:"listenAddress"`
	ListenPort             int              `json:"listenPort"`
	ServerReadTimeoutSecs  int              `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int              `json:"serverWriteTimeoutSecs"`
	LogFile                string           `json:"logFile"`
	LogLevel               logging.LogLevel `json:"logLevel"`
	Language               string           `json:"language"`
	DictDirPath            string           `json:"dictDirPath"`
	WhitelistDirPath       string           `json:"whitelistDirPath"`
	Jobs                   *jobs.Conf       `json:"jobs"`
	Notify                 *notify.Conf     `json:"notify"`
}

func (conf *Conf) IsDebugMode() bool {
	return conf.LogLevel == "debug"
}

// VersionInfo provides a detailed information about the actual build
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GitCommit string `json:"gitCommit"`
}

// LoadConfig loads and parses the JSON configuration. Any
// failure here means the service cannot run at all so the
// function ends the process directly.
func LoadConfig(path string) *Conf {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	var conf Conf
	err = json.Unmarshal(rawData, &conf)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return &conf
}

// ValidateAndDefaults checks the configuration and fills in
// defaults for the values a deployment does not have to care
// about. Problems which cannot be defaulted produce an error.
func ValidateAndDefaults(conf *Conf) error {
	if conf.DictDirPath == "" || !fsops.IsDir(conf.DictDirPath) {
		return fmt.Errorf("dictDirPath %s is not a directory", conf.DictDirPath)
	}
	if conf.WhitelistDirPath == "" || !fsops.IsDir(conf.WhitelistDirPath) {
		return fmt.Errorf("whitelistDirPath %s is not a directory", conf.WhitelistDirPath)
	}
	if conf.Jobs == nil {
		return fmt.Errorf("missing jobs configuration section")
	}
	if conf.ListenAddress == "" {
		conf.ListenAddress = dfltListenAddress
		log.Warn().Msgf("listenAddress not specified, using default: %s", dfltListenAddress)
	}
	if conf.ListenPort == 0 {
		conf.ListenPort = dfltListenPort
		log.Warn().Msgf("listenPort not specified, using default: %d", dfltListenPort)
	}
	if conf.ServerReadTimeoutSecs == 0 {
		conf.ServerReadTimeoutSecs = dfltServerReadTimeoutSecs
		log.Warn().Msgf(
			"serverReadTimeoutSecs not specified, using default: %d",
			dfltServerReadTimeoutSecs,
		)
	}
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
	if conf.Language == "" {
		conf.Language = dfltLanguage
		log.Warn().Msgf("language not specified, using default: %s", conf.Language)
	}
	if conf.Jobs.MaxNumConcurrentJobs == 0 {
		v := dfltMaxNumConcurrentJobs
		if v > runtime.NumCPU() {
			v = runtime.NumCPU()
		}
		conf.Jobs.MaxNumConcurrentJobs = v
		log.Warn().Msgf("jobs.maxNumConcurrentJobs not specified, using default %d", v)
	}
	if conf.Notify == nil {
		conf.Notify = &notify.Conf{}
	}
	if conf.Notify.ReqTimeoutSecs == 0 {
		conf.Notify.ReqTimeoutSecs = dfltNotifyReqTimeoutSecs
	}
	return nil
}
