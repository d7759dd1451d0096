package network

// ErrConnectionClosedByServer is returned when the server closes the session
type ErrConnectionClosedByServer struct {
	Reason string
}

func (e *ErrConnectionClosedByServer) Error() string {
	if e.Reason == "" {
		return "session closed by server"
	}
	return "session closed by server: " + e.Reason
}

// ErrConnectionClosedByClient is returned when the client leaves the session
type ErrConnectionClosedByClient struct{}

func (e *ErrConnectionClosedByClient) Error() string {
	return "session closed by client"
}
