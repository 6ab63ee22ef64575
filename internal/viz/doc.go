// Package viz renders model projections and density maps in the terminal.
//
// [Explorer] is a Bubble Tea application for adjusting the parameters of a
// model and watching its projections and integral update:
//
//	Tab, →   - next parameter
//	Shift+Tab, ← - previous parameter
//	↑/+, ↓/- - change the selected parameter
//	[ ]      - halve or double the step
//	R        - reset parameters
//	T        - cycle color themes
//	Q        - quit
package viz
