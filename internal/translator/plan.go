package translator

// PlanChunkSize returns the per-chunk token size for splitting a text of
// totalTokens into the fewest chunks that each stay within tokenLimit.
//
// Texts at or under the limit keep their full size. Larger texts are divided
// into ceil(totalTokens/tokenLimit) chunks of near-equal size, so the last
// chunk is never a small remainder tail.
func PlanChunkSize(totalTokens, tokenLimit int) int {
	if totalTokens <= tokenLimit {
		return totalTokens
	}
	numChunks := (totalTokens + tokenLimit - 1) / tokenLimit
	return (totalTokens + numChunks - 1) / numChunks
}
