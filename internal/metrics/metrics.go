// Package metrics holds the Prometheus registration helper shared by the
// fetcher and the web server.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Register registers collector on reg. When an equal collector is already
// registered the existing one is returned so repeated construction is safe.
func Register[C prometheus.Collector](reg prometheus.Registerer, collector C) (C, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return collector, err
	}
	return collector, nil
}
