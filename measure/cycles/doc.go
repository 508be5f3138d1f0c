// Package cycles estimates the per-sample cost of the fixed-point tremolo on
// a sequential CPU (a typical Cortex-M4 class MCU) against a pipelined FPGA
// implementation.
//
// The CPU executes every step of the tremolo in sequence, so its cost grows
// linearly with the number of effects chained in series. The FPGA evaluates
// the steps in parallel and keeps a latency of about one clock per sample
// however many effects run side by side.
//
// Figures ignore codec acquisition and output and assume no branch
// mispredictions or stalls, so they are a lower bound for a CPU.
package cycles
