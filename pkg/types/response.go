package types

// Envelope is the JSON body every HTTP response uses.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func Success(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

func Failure(message string, errs any) Envelope {
	return Envelope{Success: false, Message: message, Errors: errs}
}
