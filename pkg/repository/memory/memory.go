package memory

import (
	"github.com/luxyvenom/aimonitor/pkg/domain/interfaces"
)

// Memory keeps the risk log and the published graph snapshot in process.
// Nothing survives a restart.
type Memory struct {
	log   *logRepository
	graph *graphRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		log:   newLogRepository(),
		graph: newGraphRepository(),
	}
}

func (m *Memory) Log() interfaces.LogRepository {
	return m.log
}

func (m *Memory) Graph() interfaces.GraphRepository {
	return m.graph
}
