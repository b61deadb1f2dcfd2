// Package analysis implements the spatial-field engine behind the surface
// map: viewport-aware station decluttering, inverse-distance-weighted
// interpolation of scalar and wind fields onto a pixel-space lattice,
// marching-squares contour extraction, contour level selection and styling,
// and label placement.
//
// Everything here is synchronous CPU work operating on buffers owned by a
// single redraw pass. The [Coalescer] provides the cancellation discipline:
// a newer redraw request supersedes an older in-flight one, and superseded
// results are dropped rather than raced into the display.
//
// The interpolation is a deliberate single-pass quick-look estimate, not a
// Cressman/Barnes objective analysis; there is no quality control or station
// bias correction.
package analysis
