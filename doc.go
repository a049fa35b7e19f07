/*
Package packarray stores signed integers in a fixed number of bytes each.

An Array holds N integers in exactly width*N bytes of a backing store.
Compared to a []int it is slow: every access is a seek plus a small read or
write against the store. The upside is the footprint, especially for large
counts of small-range values held as int16 or int32.

# Layout

Element i occupies bytes [i*width, (i+1)*width) of the store, little-endian
two's complement, with no header or padding:

	+---------+---------+-----+-------------+
	| elem 0  | elem 1  | ... | elem N-1    |
	+---------+---------+-----+-------------+
	0         w         2w    (N-1)w        Nw

WriteTo and ReadFrom move this layout in and out unchanged; the snapshot
package wraps it in a checksummed, optionally compressed frame.

# Widths

Width16, Width32 and Width64 are the shipped element widths and NewShort,
NewLong and NewLongLong fix them. Any width from 1 up to NativeWidth works.
Values cross the API as int, so a width wider than the host int fails
construction with ErrCapability.

# Cost

Push, Pop, Get and Set touch one element. Unshift, Shift and Remove move
every element after the affected position one slot at a time, so they are
O(n) and meant for occasional use.

An Array is not safe for concurrent use.
*/
package packarray
