package models

// Patch is implemented by the typed partial updates of every entity.
// Changes maps each field that was set to its column; unset fields are absent.
type Patch interface {
	Changes() map[string]interface{}
}

var (
	_ Patch = BatchPatch{}
	_ Patch = StudentPatch{}
	_ Patch = InstructorPatch{}
	_ Patch = CoursePatch{}
	_ Patch = ExamPatch{}
	_ Patch = FinancePatch{}
)
