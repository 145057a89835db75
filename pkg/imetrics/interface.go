/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package imetrics

type IMetric interface {
	Name() string

	// Keyspace returns "" when the metric is not bound to a keyspace
	Keyspace() string
}

type IMetrics interface {
	// Increase metric value with "delta".
	// The default metric value is always 0.
	// Naming best practices: https://prometheus.io/docs/practices/naming/
	//
	// @ConcurrentAccess
	Increase(metricName string, keyspace string, valueDelta float64)

	// List iterates current values of all metrics
	//
	// @ConcurrentAccess
	List(cb func(metric IMetric, metricValue float64) (err error)) (err error)
}
