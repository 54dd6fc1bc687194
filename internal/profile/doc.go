// Package profile tracks the editable button profile of one game mode on one
// layout: the binding of every physical button, the SOCD pairs of the mode,
// and the selection and hover state driven by the editor.
//
// Dirty, Modified and Socd on a Button are derived from its binding and the
// pair list; the store recomputes them on every binding mutation. At most one
// button is selected at a time.
//
// A Store is kept in sync with a DeviceManager: it reloads on config-loaded,
// clears dirty flags on config-saved, resets on disconnect and answers remap
// requests with the minimal diff against the layout defaults. Registry hands
// out one Store per (mode, layout) pair.
package profile
