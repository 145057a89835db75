/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package imetrics

import (
	"bytes"
	"strconv"
	"sync"
)

type metric struct {
	name     string
	keyspace string
}

func (m *metric) Name() string {
	return m.name
}

func (m *metric) Keyspace() string {
	return m.keyspace
}

type mapMetrics struct {
	metrics map[metric]float64
	lock    sync.Mutex
}

func newMetrics() IMetrics {
	return &mapMetrics{
		metrics: make(map[metric]float64),
	}
}

func (m *mapMetrics) Increase(metricName string, keyspace string, valueDelta float64) {
	key := metric{
		name:     metricName,
		keyspace: keyspace,
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.metrics[key] = m.metrics[key] + valueDelta
}

func (m *mapMetrics) List(cb func(metric IMetric, metricValue float64) (err error)) (err error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	for metric, value := range m.metrics {
		metric := metric
		if err = cb(&metric, value); err != nil {
			return err
		}
	}
	return err
}

func ToPrometheus(metric IMetric, metricValue float64) []byte {
	bb := bytes.Buffer{}
	bb.WriteString(metric.Name())
	if metric.Keyspace() != "" {
		bb.WriteString(`{keyspace="`)
		bb.WriteString(metric.Keyspace())
		bb.WriteString(`"}`)
	}
	bb.WriteRune(' ')
	bb.WriteString(strconv.FormatFloat(metricValue, 'f', -1, bitSize))
	bb.WriteRune('\n')
	return bb.Bytes()
}
