package models

import (
	"time"
)

// Student defines the student model based on the 'students' table
type Student struct {
	ID             int64      `json:"id" db:"id"`                         // Unique identifier for the student record
	StudentID      string     `json:"studentId" db:"student_id"`          // External student identifier, unique
	FirstName      string     `json:"firstName" db:"first_name"`          // Student's first name
	LastName       string     `json:"lastName" db:"last_name"`            // Student's last name
	Email          string     `json:"email" db:"email"`                   // Student's email address, unique
	Phone          string     `json:"phone,omitempty" db:"phone"`         // Contact phone, optional
	Address        string     `json:"address,omitempty" db:"address"`     // Postal address, optional
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"` // Date of birth, optional
	Gender         Gender     `json:"gender,omitempty" db:"gender"`       // Male, Female or Other, optional
	EnrollmentDate time.Time  `json:"enrollmentDate" db:"enrollment_date"` // Date the student enrolled
	Program        string     `json:"program,omitempty" db:"program"`     // Enrolled program, optional
	AddedBy        *int64     `json:"addedBy,omitempty" db:"added_by"`    // ID of the staff user who created the record
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`

	// AddedByUsername is the creator's username joined in for display.
	// A friendly label, not authoritative identity.
	AddedByUsername string `json:"addedByUsername,omitempty"`
}
