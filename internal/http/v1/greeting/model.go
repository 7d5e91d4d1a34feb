package greeting

// Message is the greeting every payload carries.
const Message = "Hello, World!"

// Payload is the greeting returned by GET /hello.
type Payload struct {
	Message    string            `json:"message" doc:"Greeting message" example:"Hello, World!"`
	Attributes map[string]string `json:"attributes" doc:"Sample user attributes keyed by attribute name"`
}

// NewPayload builds a fresh payload. Callers own the returned map.
func NewPayload() Payload {
	return Payload{
		Message: Message,
		Attributes: map[string]string{
			"firstName": "John",
			"lastName":  "Doe",
			"phone":     "1234567890",
		},
	}
}
