// Package mode implements the mode catalog and the rate resolver.
//
// A Catalog is a read-only snapshot of the modes one display advertises,
// fetched fresh for every resolution. Resolve picks the best mode for a
// requested refresh rate:
//
//  1. Exact: a mode whose rate is within tolerance of the target. When several
//     qualify, the one at the preferred resolution wins, else the first in
//     catalog order.
//  2. ClosestSameResolution: the closest rate at the preferred resolution, or
//     at the display's current resolution when none was requested.
//  3. ClosestAnyResolution: the closest rate over the whole catalog.
//  4. None: the catalog is empty.
//
// Distance ties always go to the mode seen first in catalog order.
package mode
