// Package api provides the Gemini generation adapter: one prompt in, one
// complete answer out.
package api

// GJSON paths for extracting values from generateContent responses.
const (
	PathCandidates   = "candidates"
	PathModelVersion = "modelVersion"
	PathTotalTokens  = "usageMetadata.totalTokenCount"
	PathBlockReason  = "promptFeedback.blockReason"

	// Candidate paths (relative to candidate object)
	PathCandParts  = "content.parts"
	PathCandFinish = "finishReason"

	// Part paths (relative to part object)
	PathPartText    = "text"
	PathPartThought = "thought"

	// Error envelope returned with non-200 statuses
	PathErrorCode    = "error.code"
	PathErrorMessage = "error.message"
	PathErrorStatus  = "error.status"
)

// finish reasons that mean the answer was withheld by the provider
var blockingFinishReasons = map[string]bool{
	"SAFETY":             true,
	"RECITATION":         true,
	"BLOCKLIST":          true,
	"PROHIBITED_CONTENT": true,
	"SPII":               true,
}
