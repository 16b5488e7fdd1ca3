// Package viz renders calculation results for the terminal.
//
//   - [Report]: dressed frequencies and the chi matrix as lipgloss tables
//   - [ConvergencePlot]: asciigraph plot of a chi entry across a sweep
//   - [Sparkline]: one-line trend of a series
package viz
