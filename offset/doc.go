// Package offset stores a sequence of variable-length items as one
// contiguous child data buffer plus an offsets buffer.
//
// For N items the offsets buffer holds N+1 entries. The first entry is 0 and
// item i spans data[offsets[i]:offsets[i+1]]. In the nullable variant an
// absent item repeats the previous offset, contributes no data and has a clear
// bit in the validity bitmap (N bits).
//
// Offsets are int32 or int64. Lengths and running totals are converted with
// overflow checks; a total exactly equal to the maximum of the offset type is
// valid, anything beyond fails with ErrOverflow.
package offset
