// Package preflight verifies the filesystem before a conversion touches it.
//
// These checks run in two contexts:
//   - The convert workflow calls RequireFile for the source and update base
//     and CheckDirectoryAccess for the output directory, so a run fails
//     before anything is written.
//   - The CLI "check" command calls RunAll and renders every Result.
package preflight
