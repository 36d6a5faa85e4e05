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
	"testing"

	"github.com/stretchr/testify/assert"
)

func enqueueDummy(jq *JobQueue, id string) {
	var fn QueuedFunc = func(chan<- GeneralJobInfo) {}
	jq.Enqueue(&fn, DummyJobInfo{ID: id, Type: "dummy-job"})
}

func dequeueID(t *testing.T, jq *JobQueue) string {
	t.Helper()
	_, state, err := jq.Dequeue()
	assert.NoError(t, err)
	return state.GetID()
}

func TestQueueFIFOOrder(t *testing.T) {
	jq := &JobQueue{}
	enqueueDummy(jq, "job1")
	enqueueDummy(jq, "job2")
	enqueueDummy(jq, "job3")
	assert.Equal(t, 3, jq.Size())
	assert.Equal(t, "job1", dequeueID(t, jq))
	assert.Equal(t, "job2", dequeueID(t, jq))
	assert.Equal(t, "job3", dequeueID(t, jq))
	assert.Equal(t, 0, jq.Size())
}

func TestQueueDequeueEmpty(t *testing.T) {
	jq := &JobQueue{}
	_, _, err := jq.Dequeue()
	assert.ErrorIs(t, err, ErrorEmptyQueue)
}

func TestQueueEnqueueAfterDrain(t *testing.T) {
	jq := &JobQueue{}
	enqueueDummy(jq, "job1")
	dequeueID(t, jq)
	enqueueDummy(jq, "job2")
	assert.Equal(t, 1, jq.Size())
	assert.Equal(t, "job2", dequeueID(t, jq))
}

func TestQueuePeekID(t *testing.T) {
	jq := &JobQueue{}
	enqueueDummy(jq, "job1")
	enqueueDummy(jq, "job2")
	id, err := jq.PeekID()
	assert.NoError(t, err)
	assert.Equal(t, "job1", id)
	assert.Equal(t, 2, jq.Size())
}

func TestQueuePeekIDEmpty(t *testing.T) {
	jq := &JobQueue{}
	_, err := jq.PeekID()
	assert.ErrorIs(t, err, ErrorEmptyQueue)
}

func TestQueueDelayNext(t *testing.T) {
	jq := &JobQueue{}
	enqueueDummy(jq, "job1")
	enqueueDummy(jq, "job2")
	enqueueDummy(jq, "job3")
	err := jq.DelayNext()
	assert.NoError(t, err)
	assert.Equal(t, 3, jq.Size())
	assert.Equal(t, "job2", dequeueID(t, jq))
	assert.Equal(t, "job1", dequeueID(t, jq))
	assert.Equal(t, "job3", dequeueID(t, jq))
}

func TestQueueDelayNextKeepsTail(t *testing.T) {
	jq := &JobQueue{}
	enqueueDummy(jq, "job1")
	enqueueDummy(jq, "job2")
	err := jq.DelayNext()
	assert.NoError(t, err)
	enqueueDummy(jq, "job3")
	assert.Equal(t, "job2", dequeueID(t, jq))
	assert.Equal(t, "job1", dequeueID(t, jq))
	assert.Equal(t, "job3", dequeueID(t, jq))
}

func TestQueueDelayNextSingleItem(t *testing.T) {
	jq := &JobQueue{}
	enqueueDummy(jq, "job1")
	err := jq.DelayNext()
	assert.NoError(t, err)
	assert.Equal(t, "job1", dequeueID(t, jq))
}

func TestQueueDelayNextEmpty(t *testing.T) {
	jq := &JobQueue{}
	err := jq.DelayNext()
	assert.ErrorIs(t, err, ErrorEmptyQueue)
}
