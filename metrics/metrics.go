/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package metrics exports mapper activity to Prometheus.
//
// Metrics implements apis.Observer and is passed to mappers with
// mapper.WithObserver; NewRegistryCollector reports the size of a registry
// and catalog at scrape time. Nothing is registered implicitly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mrpin/mrpin-rocketamf/apis"
)

const subsystem = "classmapper"

// Metrics counts property discoveries and object instantiations.
// It is safe for concurrent use by any number of mappers.
type Metrics struct {
	// DiscoveriesTotal counts uncached property discoveries.
	// Labels: class
	DiscoveriesTotal *prometheus.CounterVec

	// ClassProperties holds the property count seen at the last discovery.
	// Labels: class
	ClassProperties *prometheus.GaugeVec

	// CreatesTotal counts CreateObject calls.
	// Labels: outcome (local, typed, error)
	CreatesTotal *prometheus.CounterVec
}

var _ apis.Observer = (*Metrics)(nil)

// New creates unregistered metrics under namespace.
func New(namespace string) *Metrics {
	return &Metrics{
		DiscoveriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "discoveries_total",
				Help:      "Property discoveries by local class.",
			},
			[]string{"class"},
		),
		ClassProperties: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "class_properties",
				Help:      "Number of properties found by the latest discovery of a class.",
			},
			[]string{"class"},
		),
		CreatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "creates_total",
				Help:      "Objects created from remote names by outcome.",
			},
			[]string{"outcome"},
		),
	}
}

// Register registers all metrics with r.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.DiscoveriesTotal, m.ClassProperties, m.CreatesTotal} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveDiscovery implements apis.Observer.
func (m *Metrics) ObserveDiscovery(class string, properties int) {
	if class == "" {
		class = "unnamed"
	}
	m.DiscoveriesTotal.WithLabelValues(class).Inc()
	m.ClassProperties.WithLabelValues(class).Set(float64(properties))
}

// ObserveCreate implements apis.Observer. Remote names are not used as labels
// since they come off the wire.
func (m *Metrics) ObserveCreate(_ string, outcome apis.Outcome) {
	m.CreatesTotal.WithLabelValues(string(outcome)).Inc()
}
