// Package ofputil bridges symbolic OpenFlow reason/action enums and
// the packed bitmaps the wire uses to represent sets of them, as used
// by the asynchronous message filter (AsyncConfig) and group/action
// capability multiparts.
package ofputil

import "github.com/doytsujin/of-protocol/ofp"

// Bitmap64 packs a set of small (<64) enum values into a single
// 64-bit mask, one bit per value, as used by AsyncConfig's per-type
// masks on the wire (represented there as [2]uint32; see Bitmap128 for
// the split form).
func Bitmap64(values ...int) uint64 {
	var mask uint64
	for _, v := range values {
		if v < 0 || v >= 64 {
			continue
		}
		mask |= 1 << uint(v)
	}
	return mask
}

// Bitmap128 packs a set of enum values into a [2]uint32 low/high mask
// pair, matching the wire representation of AsyncConfig's
// PacketInMask/PortStatusMask/FlowRemovedMask fields.
func Bitmap128(values ...int) [2]uint32 {
	var mask [2]uint32
	for _, v := range values {
		if v < 0 || v >= 64 {
			continue
		}
		mask[v/32] |= 1 << uint(v%32)
	}
	return mask
}

// PacketInReasonBitmap returns the Bitmap128 for a set of PacketIn
// reasons, for use in AsyncConfig.PacketInMask.
func PacketInReasonBitmap(reasons ...ofp.PacketInReason) [2]uint32 {
	values := make([]int, len(reasons))
	for i, r := range reasons {
		values[i] = int(r)
	}
	return Bitmap128(values...)
}

// PortReasonBitmap returns the Bitmap128 for a set of port status
// reasons, for use in AsyncConfig.PortStatusMask.
func PortReasonBitmap(reasons ...ofp.PortReason) [2]uint32 {
	values := make([]int, len(reasons))
	for i, r := range reasons {
		values[i] = int(r)
	}
	return Bitmap128(values...)
}

// FlowReasonBitmap returns the Bitmap128 for a set of flow-removed
// reasons, for use in AsyncConfig.FlowRemovedMask.
func FlowReasonBitmap(reasons ...ofp.FlowRemovedReason) [2]uint32 {
	values := make([]int, len(reasons))
	for i, r := range reasons {
		values[i] = int(r)
	}
	return Bitmap128(values...)
}

// GroupBitmap returns the Bitmap64 for a set of group types, for use
// in group-feature multipart bodies.
func GroupBitmap(types ...ofp.GroupType) uint64 {
	values := make([]int, len(types))
	for i, t := range types {
		values[i] = int(t)
	}
	return Bitmap64(values...)
}

// ActionBitmap returns the Bitmap64 for a set of action types, for use
// in group-feature and table-feature multipart bodies.
func ActionBitmap(types ...ofp.ActionType) uint64 {
	values := make([]int, len(types))
	for i, t := range types {
		values[i] = int(t)
	}
	return Bitmap64(values...)
}
