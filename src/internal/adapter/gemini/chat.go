package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/api-sage/somaluganda-remit/src/internal/domain"
)

const chatHistoryWindow = 5
const maxChatReplies = 2

// ChatReplies produces up to two replies from fictional community members.
func (c *Client) ChatReplies(ctx context.Context, message string, history []domain.ChatMessage) ([]domain.ChatMessage, error) {
	if len(history) > chatHistoryWindow {
		history = history[len(history)-chatHistoryWindow:]
	}
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, m.Sender+": "+m.Text)
	}

	prompt := fmt.Sprintf(`You are simulating a lively community chat for "SomalUganda Remit".
Users discuss agent reliability, sending cash to the agent numbers (+252... / +256...), and confirming receipt.

Recent Chat History:
%s

New User Message: "%s"

Generate 1 or 2 realistic responses from other fictional community members.
Mention things like "Admin is fast today" or "Make sure you send the screenshot".`, strings.Join(lines, "\n"), message)

	text, err := c.generate(ctx, prompt, jsonOutput(chatSchema, 0.7))
	if err != nil {
		return nil, err
	}

	var replies []domain.ChatMessage
	if err := json.Unmarshal([]byte(text), &replies); err != nil {
		return nil, fmt.Errorf("decode chat replies: %w", err)
	}

	out := make([]domain.ChatMessage, 0, maxChatReplies)
	for _, r := range replies {
		if strings.TrimSpace(r.Sender) == "" || strings.TrimSpace(r.Text) == "" {
			continue
		}
		out = append(out, r)
		if len(out) == maxChatReplies {
			break
		}
	}
	return out, nil
}
