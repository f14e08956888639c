// Package eseries generates IEC 60063 preferred component values.
//
// A series lists a fixed number of mantissas per decade (6 for E6, 12 for
// E12, 24 for E24). Standard values are those mantissas scaled by powers of
// ten. [Generate] produces the E12 values inside a closed magnitude window;
// [GenerateSeries] does the same for any supported series, and [Nearest]
// snaps an arbitrary value to the closest standard value.
//
// Values are rounded to 12 significant digits after scaling, so 2.2 × 10
// yields exactly 22 rather than 22.000000000000004.
package eseries
