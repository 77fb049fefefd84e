package dto

// CourseStructure is a course with its modules and their lessons loaded in
// one read.
type CourseStructure struct {
	Course
	Modules []ModuleStructure `json:"modules"`
}

type ModuleStructure struct {
	Module
	Lessons []Lesson `json:"lessons"`
}

// RetainModules lists the modules to keep. The list must be present; an
// empty list removes every module.
type RetainModules struct {
	ModuleIDs []uint `json:"moduleIds" validate:"required"`
}

type RetainQuestions struct {
	QuestionIDs []uint `json:"questionIds" validate:"required"`
}
