// Package modulation provides fixed-point amplitude modulation.
//
// [Tremolo] multiplies int16 samples by a gain that follows a low-frequency
// square, sawtooth or triangle shape, then shifts the product back into the
// sample range. All arithmetic is integer so the per-sample cost can be
// compared with a hardware implementation (see package measure/cycles).
package modulation
