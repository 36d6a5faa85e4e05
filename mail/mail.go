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

package mail

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"
)

// EmailNotification configures e-mail reporting of finished jobs.
// An empty SMTPServer disables the reporting.
type EmailNotification struct {
	SMTPServer         string   `json:"smtpServer"`
	Sender             string   `json:"sender"`
	NotificationEmails []string `json:"notificationEmails"`
}

// SendNotification sends a general e-mail notification
// to all the configured recipients. The message body is
// expected to be a simple HTML fragment.
func SendNotification(conf EmailNotification, subject, message string) error {
	client, err := smtp.Dial(conf.SMTPServer)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	client.Mail(conf.Sender)
	for _, rcpt := range conf.NotificationEmails {
		client.Rcpt(rcpt)
	}

	wc, err := client.Data()
	if err != nil {
		return err
	}
	defer wc.Close()

	headers := make(map[string]string)
	headers["From"] = conf.Sender
	headers["To"] = strings.Join(conf.NotificationEmails, ",")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	body := ""
	for k, v := range headers {
		body += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	body += "<p>" + message + "</p>\r\n\r\n"

	buf := bytes.NewBufferString(body)
	_, err = buf.WriteTo(wc)
	return err
}
