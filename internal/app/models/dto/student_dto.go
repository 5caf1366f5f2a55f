package dto

// StudentForm is the add/edit form payload. Edit is a full overwrite, so the
// same struct serves both flows; every mutable field must be supplied.
// Required vs. optional mirrors the students table constraints.
type StudentForm struct {
	StudentID      string `form:"student_id" binding:"required,max=20"`
	FirstName      string `form:"first_name" binding:"required,max=50"`
	LastName       string `form:"last_name" binding:"required,max=50"`
	Email          string `form:"email" binding:"required,email"`
	Phone          string `form:"phone" binding:"omitempty,max=20"`
	Address        string `form:"address"`
	DateOfBirth    string `form:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender         string `form:"gender" binding:"omitempty,oneof=Male Female Other"`
	EnrollmentDate string `form:"enrollment_date" binding:"required,datetime=2006-01-02"`
	Program        string `form:"program" binding:"omitempty,max=100"`
}
