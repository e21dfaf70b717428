package mathx

// ScaleU32 maps x in [0,inTop] onto [0,outTop] with 64-bit intermediates.
// x above inTop saturates to outTop; inTop == 0 yields 0.
func ScaleU32(x, inTop, outTop uint32) uint32 {
	if inTop == 0 {
		return 0
	}
	if x >= inTop {
		return outTop
	}
	return uint32(uint64(x) * uint64(outTop) / uint64(inTop))
}
