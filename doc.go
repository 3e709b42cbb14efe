// Package pigro provides the data model and the series arithmetic behind the
// lazy portfolio dashboards.
//
// A lazy portfolio ("portafoglio pigro") is a fixed allocation between a
// handful of assets. This package holds:
//   - Dates and Periods: day-granular dates and the daily to yearly sampling
//     frequencies a dashboard can request.
//   - History: a chronologically sorted, date-unique price series.
//   - Series arithmetic: resampling to a period, rebasing to 100, aligning
//     several series on their common dates and weighting them.
//   - Payloads: the JSON responses served by the backend and consumed by the
//     dashboard loaders, with their shape validation.
//
// The `market` package computes payloads from CSV price files, the
// `dashboard` package fetches and charts them, and `pgr` is the command line
// tool that ties everything together.
package pigro
