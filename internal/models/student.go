package models

// Student represents a student eligible for organization membership.
type Student struct {
	StudentNumber string `db:"student_number" json:"student_number"`
	FirstName     string `db:"first_name" json:"first_name"`
	MiddleInitial string `db:"middle_initial" json:"middle_initial"`
	LastName      string `db:"last_name" json:"last_name"`
	Gender        string `db:"gender" json:"gender"`
	DegreeProgram string `db:"degree_program" json:"degree_program"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search        string
	DegreeProgram string
}
