package gemini

import "google.golang.org/genai"

var transactionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"transactionId": {
			Type:        genai.TypeString,
			Description: "A unique 12-character alphanumeric transaction ID.",
		},
		"status": {
			Type:        genai.TypeString,
			Enum:        []string{"SUCCESS", "FAILED", "PENDING", "WAITING_VERIFICATION"},
			Description: "The status of the transaction.",
		},
		"message": {
			Type:        genai.TypeString,
			Description: "A friendly confirmation message, clearly stating that the admin is checking the reference number.",
		},
		"estimatedArrival": {
			Type:        genai.TypeString,
			Description: "Estimated time description (e.g., '10-30 Minutes', 'Within 1 Hour').",
		},
		"fees": {
			Type:        genai.TypeNumber,
			Description: "Calculated transaction fee.",
		},
	},
	Required: []string{"transactionId", "status", "message", "estimatedArrival", "fees"},
}

var chatSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"sender": {
				Type:        genai.TypeString,
				Description: "Name of the fictional user replying (e.g., Somali or Ugandan names).",
			},
			"text": {
				Type:        genai.TypeString,
				Description: "The content of the reply message.",
			},
		},
		Required: []string{"sender", "text"},
	},
}
