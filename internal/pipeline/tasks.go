package pipeline

// Task identifies one of the six independent enrichment tasks that together
// produce the final processed-content payload.
type Task string

const (
	TaskSummary    Task = "summary"
	TaskTerms      Task = "terms"
	TaskBackground Task = "background"
	TaskQuiz       Task = "quiz"
	TaskObjectives Task = "objectives"
	TaskKeywords   Task = "keywords"
)

// AllTasks lists every enrichment task. The pipeline runs all of them and
// accepts the payload only when every single one succeeded.
var AllTasks = []Task{
	TaskSummary,
	TaskTerms,
	TaskBackground,
	TaskQuiz,
	TaskObjectives,
	TaskKeywords,
}
