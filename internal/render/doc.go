// Package render turns analysis results into drawing primitives. The Canvas
// interface decouples layer composition from rasterization: GGCanvas produces
// PNG output for the HTTP API and the offline renderer, while Recorder
// captures primitives for tests. Layer composition lives in DrawOverlay.
package render
