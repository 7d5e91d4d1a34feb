package greeting

// GetOutput is the response of the greeting operation.
type GetOutput struct {
	Body Payload
}
