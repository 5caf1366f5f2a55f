package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/schoolsys/registrar/internal/app/controllers"
	"github.com/schoolsys/registrar/internal/middleware"
)

// SetupRouter configures all application routes. Guard ordering is fixed:
// LoadSession runs on everything, RequireSession gates the protected group,
// and RequireAdmin stacks after it for admin pages.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	sessionMiddleware *middleware.SessionMiddleware,
) {
	router.Use(sessionMiddleware.LoadSession())

	// Public routes
	router.GET("/", authController.Home)
	router.GET("/login", authController.LoginForm)
	router.POST("/login", authController.Login)
	router.GET("/signup", authController.SignupForm)
	router.POST("/signup", authController.Signup)
	router.GET("/logout", authController.Logout)

	// Session-gated routes
	authenticated := router.Group("")
	authenticated.Use(sessionMiddleware.RequireSession())
	{
		authenticated.GET("/dashboard", authController.Dashboard)
		authenticated.GET("/change_password", authController.ChangePasswordForm)
		authenticated.POST("/change_password", authController.ChangePassword)

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.List)
			students.GET("/add", studentController.AddForm)
			students.POST("/add", studentController.Add)
			students.GET("/edit/:id", studentController.EditForm)
			students.POST("/edit/:id", studentController.Edit)
			students.GET("/delete/:id", studentController.DeleteConfirm)
			students.POST("/delete/:id", studentController.Delete)
		}

		// Admin-only routes
		admin := authenticated.Group("")
		admin.Use(sessionMiddleware.RequireAdmin())
		{
			admin.GET("/users", authController.Users)
		}
	}
}
