/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package coreutils

import (
	"sync"
	"time"
)

type ITime interface {
	Now() time.Time
}

type IMockTime interface {
	ITime
	Add(d time.Duration)
	Set(t time.Time)
}

func NewITime() ITime {
	return &realTime{}
}

// MockTime is shared between tests of different packages.
// Set the instant explicitly if the test depends on absolute values.
var MockTime IMockTime = &mockedTime{now: time.Now()}

type realTime struct{}

func (t *realTime) Now() time.Time {
	return time.Now()
}

type mockedTime struct {
	sync.RWMutex
	now time.Time
}

func (t *mockedTime) Now() time.Time {
	t.RLock()
	defer t.RUnlock()
	return t.now
}

func (t *mockedTime) Add(d time.Duration) {
	t.Lock()
	defer t.Unlock()
	t.now = t.now.Add(d)
}

func (t *mockedTime) Set(newNow time.Time) {
	t.Lock()
	defer t.Unlock()
	t.now = newNow
}
