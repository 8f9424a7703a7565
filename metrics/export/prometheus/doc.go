// Package prometheus renders sessionkit counters in Prometheus text
// exposition format, either as a string or as an http.Handler.
//
// # What this package must NOT do
//
//   - Mutate session state.
//   - Cache snapshots between scrapes.
package prometheus
