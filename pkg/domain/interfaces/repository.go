package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Log() LogRepository
	Graph() GraphRepository
}
