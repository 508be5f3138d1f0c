// Package core holds small numeric helpers shared by the fixed-point
// processors and their analysis tools.
package core
