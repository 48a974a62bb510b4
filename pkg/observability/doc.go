/*
Package observability turns engine lifecycle hooks into Prometheus metrics.

Metrics are created unregistered; call Register with the registry that the
HTTP /metrics endpoint serves, then pass Hooks to the engine.
*/
package observability
