// Package preflight provides readiness checks for the external service
// and filesystem paths the pipeline depends on.
//
// These checks run in two contexts:
//   - The sweep scheduler calls RunAll before an unattended run. If any
//     check fails, the sweep is skipped instead of burning provider
//     quota on a doomed run.
//   - The CLI "serenade preflight" and "serenade status" commands use
//     the individual check functions to display readiness.
package preflight
