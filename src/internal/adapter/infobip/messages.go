package infobip

import "context"

type emailDestination struct {
	To []emailRecipient `json:"to"`
}

type emailRecipient struct {
	Destination string `json:"destination"`
}

type emailContent struct {
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

type emailMessage struct {
	Destinations []emailDestination `json:"destinations"`
	Sender       string             `json:"sender"`
	Content      emailContent       `json:"content"`
}

type emailRequest struct {
	Messages []emailMessage `json:"messages"`
}

type whatsAppContent struct {
	Text string `json:"text"`
}

type whatsAppRequest struct {
	From    string          `json:"from"`
	To      string          `json:"to"`
	Content whatsAppContent `json:"content"`
}

type smsDestination struct {
	To string `json:"to"`
}

type smsMessage struct {
	Destinations []smsDestination `json:"destinations"`
	From         string           `json:"from"`
	Text         string           `json:"text"`
}

type smsRequest struct {
	Messages []smsMessage `json:"messages"`
}

func (c *Client) SendEmail(ctx context.Context, to, subject, text string) error {
	return c.post(ctx, "/email/4/messages", emailRequest{
		Messages: []emailMessage{{
			Destinations: []emailDestination{{To: []emailRecipient{{Destination: to}}}},
			Sender:       c.emailSender,
			Content:      emailContent{Subject: subject, Text: text},
		}},
	})
}

// SendWhatsApp expects phone in international digits-only form.
func (c *Client) SendWhatsApp(ctx context.Context, phone, text string) error {
	return c.post(ctx, "/whatsapp/1/message/text", whatsAppRequest{
		From:    c.whatsAppSender,
		To:      phone,
		Content: whatsAppContent{Text: text},
	})
}

func (c *Client) SendSMS(ctx context.Context, phone, text string) error {
	return c.post(ctx, "/sms/2/text/advanced", smsRequest{
		Messages: []smsMessage{{
			Destinations: []smsDestination{{To: phone}},
			From:         c.smsSenderID,
			Text:         text,
		}},
	})
}
