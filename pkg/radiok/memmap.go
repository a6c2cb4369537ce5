package radiok

// channelOffset returns the byte address of channel n's 40-byte record.
// Channels are grouped in sixes; each 40-byte record is contiguous
// within a group, followed by 16 bytes of padding between groups:
//
//	offset(n) = 0x4000 + floor(n/6)*(6*40+16) + (n mod 6)*40
//
// Verified against spec.md §8: offset(32) == 0x4550, offset(40) == 0x46A0.
func channelOffset(n int) int {
	groupStride := groupSize*ChannelWidth + groupPaddingLen
	return channelBase + (n/groupSize)*groupStride + (n%groupSize)*ChannelWidth
}

// flagOffset returns the byte address of channel n's 4-byte flag entry.
func flagOffset(n int) int {
	return flagTableBase + n*flagEntryWidth
}

// nameOffset returns the byte address of channel n's 16-byte name entry.
func nameOffset(n int) int {
	return nameTableBase + n*nameEntryWidth
}
