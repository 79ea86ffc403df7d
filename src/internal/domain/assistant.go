package domain

type ChatMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}
