// Package analysis inspects recorded runs after the fact.
//
// It works on the frames a run stores, one flattened state per frame:
//
//   - [Column] and [Radius] pull a scalar series out of the frames
//   - [PowerSpectrum] and [DominantPeriod] find the strongest cycle in a
//     series, e.g. the period of an orbit from its radius
//   - [NewPortrait] and [NewSection] collect phase-space points, and
//     [Portrait.ASCII] draws them for the terminal
//
// Frames that do not hold the requested row, as happens after a launch
// adds bodies mid-run, are skipped.
package analysis
