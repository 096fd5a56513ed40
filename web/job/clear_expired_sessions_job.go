package job

import (
	"cms-ui/web/service"
)

// ClearExpiredSessionsJob sweeps expired session records so lazily
// expired tokens do not pile up in the primary store.
type ClearExpiredSessionsJob struct {
	sessionService *service.SessionService
}

func NewClearExpiredSessionsJob(sessionService *service.SessionService) *ClearExpiredSessionsJob {
	return &ClearExpiredSessionsJob{sessionService: sessionService}
}

// Here Run is an interface method of the Job interface
func (j *ClearExpiredSessionsJob) Run() {
	j.sessionService.ClearExpiredSessions()
}
