// Package utils contains small tolerant conversion helpers for loosely typed
// upstream payload values.
package utils
