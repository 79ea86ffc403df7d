package gemini

import (
	"context"
	"fmt"
	"strings"
)

// Ask answers a how-to question about the manual agent system.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(`You are the friendly AI Assistant for 'SomalUganda Remit'.
Your job is to teach users how to use the Manual Agent System.

App Details:
- How it works: You send money to our Agent Number manually first. Then you enter the Transaction ID in the app. We verify and pay your recipient.
- Agent Numbers: %s (Somalia) and %s (Uganda).
- Speed: Takes about 15-30 minutes for manual verification.
- Fees: 1.5%% flat fee.
- Admin Contact: WhatsApp available on the dashboard.

User Question: "%s"

Provide a short, helpful, and concise answer (max 2-3 sentences).`, c.agentSomalia, c.agentUganda, question)

	text, err := c.generate(ctx, prompt, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
