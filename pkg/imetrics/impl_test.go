/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package imetrics

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasicUsage(t *testing.T) {
	require := require.New(t)
	metrics := Provide()

	metrics.Increase("mtcoll_appends_total", "ks1", 1)
	metrics.Increase("mtcoll_appends_total", "ks1", 2)
	metrics.Increase("mtcoll_appends_total", "ks2", 1)
	metrics.Increase("uptime_seconds", "", 42.5)

	values := make(map[string]float64)
	err := metrics.List(func(metric IMetric, metricValue float64) (err error) {
		values[metric.Name()+"/"+metric.Keyspace()] = metricValue
		return nil
	})
	require.NoError(err)
	require.Equal(map[string]float64{
		"mtcoll_appends_total/ks1": 3,
		"mtcoll_appends_total/ks2": 1,
		"uptime_seconds/":          42.5,
	}, values)
}

func TestList_CallbackError(t *testing.T) {
	require := require.New(t)
	metrics := Provide()
	metrics.Increase("m", "", 1)

	testErr := errors.New("boom")
	err := metrics.List(func(metric IMetric, metricValue float64) (err error) {
		return testErr
	})
	require.ErrorIs(err, testErr)
}

func TestConcurrentIncrease(t *testing.T) {
	require := require.New(t)
	metrics := Provide()

	wg := sync.WaitGroup{}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				metrics.Increase("m", "ks", 1)
			}
		}()
	}
	wg.Wait()

	var value float64
	require.NoError(metrics.List(func(metric IMetric, metricValue float64) (err error) {
		value = metricValue
		return nil
	}))
	require.Equal(float64(1000), value)
}

func TestToPrometheus(t *testing.T) {
	require := require.New(t)
	metrics := Provide()
	metrics.Increase("mtcoll_appends_total", "ks1", 3)
	metrics.Increase("uptime_seconds", "", 42.5)

	lines := make(map[string]bool)
	require.NoError(metrics.List(func(metric IMetric, metricValue float64) (err error) {
		lines[string(ToPrometheus(metric, metricValue))] = true
		return nil
	}))
	require.True(lines["mtcoll_appends_total{keyspace=\"ks1\"} 3\n"])
	require.True(lines["uptime_seconds 42.5\n"])
}
