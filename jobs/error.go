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
	"encoding/json"
)

// JSONError keeps a job error in a form which survives both
// the JSON API output (null for no error) and the gob-encoded
// job table snapshot
type JSONError struct {
	Message string
}

func (e JSONError) MarshalJSON() ([]byte, error) {
	if e.Message != "" {
		return json.Marshal(e.Message)
	}
	return json.Marshal(nil)
}

func (e *JSONError) Error() string {
	return e.Message
}

func (e *JSONError) IsEmpty() bool {
	return e.Message == ""
}

func NewJSONError(err error) JSONError {
	ans := JSONError{}
	if err != nil {
		ans.Message = err.Error()
	}
	return ans
}
