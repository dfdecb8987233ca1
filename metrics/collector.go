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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mrpin/mrpin-rocketamf/apis"
)

// RegistryCollector reports the number of mappings and classes at scrape time.
type RegistryCollector struct {
	mappings prometheus.GaugeFunc
	classes  prometheus.GaugeFunc
}

var _ prometheus.Collector = (*RegistryCollector)(nil)

// NewRegistryCollector returns a collector reading reg and cat on every
// scrape. Either may be nil, in which case its gauge is omitted.
func NewRegistryCollector(namespace string, reg apis.Registry, cat apis.Catalog) *RegistryCollector {
	c := &RegistryCollector{}
	if reg != nil {
		c.mappings = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "mappings",
			Help:      "Remote to local class mappings in the registry.",
		}, func() float64 { return float64(reg.Count()) })
	}
	if cat != nil {
		c.classes = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "classes",
			Help:      "Local classes in the catalog.",
		}, func() float64 { return float64(cat.Count()) })
	}
	return c
}

// Describe implements prometheus.Collector.
func (c *RegistryCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, g := range c.gauges() {
		g.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (c *RegistryCollector) Collect(ch chan<- prometheus.Metric) {
	for _, g := range c.gauges() {
		g.Collect(ch)
	}
}

func (c *RegistryCollector) gauges() []prometheus.GaugeFunc {
	var out []prometheus.GaugeFunc
	if c.mappings != nil {
		out = append(out, c.mappings)
	}
	if c.classes != nil {
		out = append(out, c.classes)
	}
	return out
}
