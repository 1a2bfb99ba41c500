// Package job contains the cleaning job aggregate: the lifecycle state
// machine, actor authorization, geofence enforcement, and the append-only
// billing snapshot.
//
// Every transition validates the acting party, the current state, and any
// GPS or timestamp prerequisites before mutating anything, so a rejected
// attempt always leaves the aggregate exactly as it was.
package job
