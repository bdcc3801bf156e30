package errors

import "fmt"

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrBrokerTimeout      = fmt.Errorf("broker publish timed out")
	ErrPersistenceTimeout = fmt.Errorf("persistence confirmation timed out")
	ErrStuckMessage       = fmt.Errorf("message stuck past watchdog deadline")
	ErrMessageNotFound    = fmt.Errorf("message not found")
	ErrRoomNotFound       = fmt.Errorf("room not found")
	ErrNotAMember         = fmt.Errorf("user is not a member of the room")
	ErrNoConnection       = fmt.Errorf("no live connection for user")
	ErrPipelineStopped    = fmt.Errorf("ingestion pipeline is shut down")
)
