package domain

// TaskFilter contains filtering/pagination parameters for task listings.
type TaskFilter struct {
	Status *TaskStatus
	Limit  int
	Offset int
}

// TaskStatusCount holds a task status and its count within a batch.
type TaskStatusCount struct {
	Status TaskStatus
	Count  int
}

// JurisdictionCount holds a jurisdiction and how many primary
// selections in a batch fell into it.
type JurisdictionCount struct {
	Jurisdiction string
	Count        int
}
