package classifier

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a trust assessment service. You receive a content
hash and the value it is expected to represent, and you judge whether the hash
can be trusted to match that expectation.

Respond in exactly this structure:

CLASSIFICATION: <TRUSTED|UNTRUSTED|UNKNOWN>
DETAILS: <explanation>

Field constraints:
- CLASSIFICATION: TRUSTED when the hash plausibly corresponds to the expected
  value, UNTRUSTED when it conflicts with the expectation or matches known bad
  material, UNKNOWN when there is not enough information to decide.
- DETAILS: Brief explanation of the assessment, naming the evidence that drove
  the decision.

Behavioral constraints:
- Always produce a classification line, even when uncertain (use UNKNOWN)
- Plain text only, no markdown fencing`

func buildPrompt(hash, expected string) string {
	var sb strings.Builder

	sb.WriteString("Assess the following pair:\n\n")
	sb.WriteString(fmt.Sprintf("Hash: %s\n", hash))
	sb.WriteString(fmt.Sprintf("Expected: %s\n", expected))
	sb.WriteString("\nRespond with the CLASSIFICATION and DETAILS lines.")

	return sb.String()
}
