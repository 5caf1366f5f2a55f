package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/schoolsys/registrar/internal/app/models/dto"
	"github.com/schoolsys/registrar/internal/app/services"
	"github.com/schoolsys/registrar/internal/middleware"
	"github.com/schoolsys/registrar/internal/pkg/apperrors"
	"github.com/schoolsys/registrar/internal/pkg/flash"
)

// StudentController handles the student roster pages
type StudentController struct {
	studentService services.StudentService
	cookieName     string
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, cookieName string, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		cookieName:     cookieName,
		logger:         logger,
	}
}

// studentID parses the :id route parameter
func studentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		flash.Set(c, "danger", "Record not found")
		c.Redirect(http.StatusFound, "/students")
		return 0, false
	}
	return id, true
}

// List renders the full student roster
func (ctl *StudentController) List(c *gin.Context) {
	students, err := ctl.studentService.List(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err, "/dashboard")
		return
	}

	render(c, "students_list.html", gin.H{"Students": students})
}

// AddForm renders the empty add-student form
func (ctl *StudentController) AddForm(c *gin.Context) {
	render(c, "students_add.html", nil)
}

// Add inserts a new student on behalf of the session user
func (ctl *StudentController) Add(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var form dto.StudentForm
	if err := c.ShouldBind(&form); err != nil {
		flash.Set(c, "danger", "Student ID, first name, last name, email and enrollment date are required")
		c.Redirect(http.StatusFound, "/students/add")
		return
	}

	if _, err := ctl.studentService.Create(c.Request.Context(), identity.UserID, &form); err != nil {
		if errors.Is(err, apperrors.ErrStaleSession) {
			// The account behind this session is gone; the cookie itself
			// must go too, or the user stays locked out until it expires
			c.SetCookie(ctl.cookieName, "", -1, "/", "", false, true)
		}
		middleware.HandleError(c, err, "/students/add")
		return
	}

	flash.Set(c, "success", "Student added successfully!")
	c.Redirect(http.StatusFound, "/students")
}

// EditForm renders the edit form populated with the current record
func (ctl *StudentController) EditForm(c *gin.Context) {
	id, ok := studentID(c)
	if !ok {
		return
	}

	student, err := ctl.studentService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleError(c, err, "/students")
		return
	}

	render(c, "students_edit.html", gin.H{"Student": student})
}

// Edit overwrites an existing student with the submitted form
func (ctl *StudentController) Edit(c *gin.Context) {
	id, ok := studentID(c)
	if !ok {
		return
	}

	var form dto.StudentForm
	if err := c.ShouldBind(&form); err != nil {
		flash.Set(c, "danger", "Student ID, first name, last name, email and enrollment date are required")
		c.Redirect(http.StatusFound, "/students/edit/"+strconv.FormatInt(id, 10))
		return
	}

	if _, err := ctl.studentService.Update(c.Request.Context(), id, &form); err != nil {
		middleware.HandleError(c, err, "/students")
		return
	}

	flash.Set(c, "success", "Student updated successfully!")
	c.Redirect(http.StatusFound, "/students")
}

// DeleteConfirm renders the delete confirmation page. This phase has no side
// effects; the row is only removed by the separate Delete POST.
func (ctl *StudentController) DeleteConfirm(c *gin.Context) {
	id, ok := studentID(c)
	if !ok {
		return
	}

	student, err := ctl.studentService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleError(c, err, "/students")
		return
	}

	render(c, "students_delete.html", gin.H{"Student": student})
}

// Delete executes the confirmed deletion
func (ctl *StudentController) Delete(c *gin.Context) {
	id, ok := studentID(c)
	if !ok {
		return
	}

	if err := ctl.studentService.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleError(c, err, "/students")
		return
	}

	flash.Set(c, "success", "Student deleted successfully!")
	c.Redirect(http.StatusFound, "/students")
}
