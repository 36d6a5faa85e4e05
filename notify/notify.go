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

// Package notify pings configured webhook URLs whenever a
// filtering job finishes so downstream consumers (e.g. a
// release pipeline picking up reduced dictionaries) can react
// without polling the jobs API.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gmdict/jobs"

	"github.com/cenkalti/backoff/v4"
	"github.com/czcorpus/cnc-gokit/httpclient"
	"github.com/rs/zerolog/log"
)

const (
	dfltBackoffInitialInterval = 500 * time.Millisecond
	dfltBackoffMaxElapsedTime  = 2 * time.Minute
)

type Conf struct {
	URLs                []string `json:"urls"`
	ReqTimeoutSecs      int      `json:"reqTimeoutSecs"`
	IdleConnTimeoutSecs int      `json:"idleConnTimeoutSecs"`
}

// Notifier implements jobs.FinishedJobNotifier over plain
// HTTP POST requests. Failed deliveries are retried with
// exponential backoff.
type Notifier struct {
	conf   *Conf
	client *http.Client
}

func (n *Notifier) post(url string, payload []byte) error {
	operation := func() error {
		resp, err := n.client.Post(url, "application/json", bytes.NewReader(payload))
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("webhook %s answered with status %d", url, resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(
				fmt.Errorf("webhook %s answered with status %d", url, resp.StatusCode))
		}
		return nil
	}
	bkoff := backoff.NewExponentialBackOff()
	bkoff.InitialInterval = dfltBackoffInitialInterval
	bkoff.MaxElapsedTime = dfltBackoffMaxElapsedTime
	return backoff.Retry(operation, bkoff)
}

// Notify sends the compact version of a finished job to all
// the configured URLs. It is expected to be run in its own
// goroutine (see jobs.Actions).
func (n *Notifier) Notify(job jobs.GeneralJobInfo) {
	payload, err := json.Marshal(job.CompactVersion())
	if err != nil {
		log.Error().Err(err).Msg("failed to serialize job notification")
		return
	}
	for _, url := range n.conf.URLs {
		if err := n.post(url, payload); err != nil {
			log.Error().Err(err).Str("url", url).Msg("failed to deliver job notification")

		} else {
			log.Debug().Str("url", url).Str("jobId", job.GetID()).Msg("job notification delivered")
		}
	}
}

// NewNotifier is the default factory for Notifier
func NewNotifier(conf *Conf) *Notifier {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = httpclient.TransportMaxIdleConns
	transport.MaxConnsPerHost = httpclient.TransportMaxConnsPerHost
	transport.MaxIdleConnsPerHost = httpclient.TransportMaxIdleConnsPerHost
	transport.IdleConnTimeout = time.Duration(conf.IdleConnTimeoutSecs) * time.Second
	return &Notifier{
		conf: conf,
		client: &http.Client{
			Timeout:   time.Duration(conf.ReqTimeoutSecs) * time.Second,
			Transport: transport,
		},
	}
}
