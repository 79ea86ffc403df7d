package domain

type Bank struct {
	BankName string  `json:"bankName"`
	Country  Country `json:"country"`
}

// PaymentInstructions tell the sender where to send money before confirming.
type PaymentInstructions struct {
	AgentNumber   string `json:"agentNumber"`
	AgentOffice   string `json:"agentOffice"`
	PaymentMethod string `json:"paymentMethod"`
	Instruction   string `json:"instruction"`
}

func NewPaymentInstructions(d Direction, agentSomalia, agentUganda string) PaymentInstructions {
	if d == DirectionSomToUga {
		return PaymentInstructions{
			AgentNumber:   agentSomalia,
			AgentOffice:   "Somalia Office",
			PaymentMethod: "EVC Plus / Zaad",
			Instruction:   "Send Dollars to our Somalia number below. We will instruct our Uganda office to pay the recipient.",
		}
	}
	return PaymentInstructions{
		AgentNumber:   agentUganda,
		AgentOffice:   "Uganda Office",
		PaymentMethod: "MTN / Airtel Money",
		Instruction:   "Send Shillings to our Uganda number below. We will release Dollars in Somalia once confirmed.",
	}
}
