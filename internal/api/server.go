package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/lacultural/enrollments-api/docs"
	v1 "github.com/lacultural/enrollments-api/internal/api/handler/v1"
	"github.com/lacultural/enrollments-api/internal/api/middleware"
	"github.com/lacultural/enrollments-api/internal/config"
	"github.com/lacultural/enrollments-api/internal/mail"
	"github.com/lacultural/enrollments-api/internal/repository"
	"github.com/lacultural/enrollments-api/internal/repository/dao"
	"github.com/lacultural/enrollments-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	courseHandler := s.initCourseHandler(db)
	enrollmentHandler := s.initEnrollmentHandler(db)
	s.MountHandlers(authHandler, courseHandler, enrollmentHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	adminDAO := dao.NewAdminDAO(db)
	repo := repository.NewAdminRepository(adminDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(svc, s.Config.API.JWTSigningKey)

	return handler
}

func (s *Server) initCourseHandler(db *gorm.DB) *v1.CourseHandler {
	courseDAO := dao.NewCourseDAO(db)
	repo := repository.NewCourseRepository(courseDAO)
	svc := service.NewCourseService(repo)
	handler := v1.NewCourseHandler(svc)

	return handler
}

func (s *Server) initEnrollmentHandler(db *gorm.DB) *v1.EnrollmentHandler {
	courseDAO := dao.NewCourseDAO(db)
	enrollmentDAO := dao.NewEnrollmentDAO(db, courseDAO)
	repo := repository.NewEnrollmentRepository(enrollmentDAO)
	courseRepo := repository.NewCourseRepository(courseDAO)

	// The mailer stays nil unless SMTP is configured, which keeps local and
	// test setups from dialing out.
	var mailer service.ConfirmationSender
	if s.Config.SMTP != nil && s.Config.SMTP.Host != "" {
		mailer = mail.NewService(s.Config.SMTP)
	}

	svc := service.NewEnrollmentService(repo, courseRepo, mailer)
	handler := v1.NewEnrollmentHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, courseHandler *v1.CourseHandler, enrollmentHandler *v1.EnrollmentHandler) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/enrollments", enrollmentHandler.HandleGetEnrollments)
		authenticated.GET("/enrollments/:enrollmentID", enrollmentHandler.HandleGetEnrollment)
		authenticated.GET("/enrollments/:enrollmentID/with-minors", enrollmentHandler.HandleGetEnrollmentWithMinors)
		authenticated.GET("/enrollments/course/:courseID", enrollmentHandler.HandleGetEnrollmentsByCourse)
		authenticated.POST("/enrollments", enrollmentHandler.HandleCreateEnrollment)
		authenticated.PUT("/enrollments/:enrollmentID", enrollmentHandler.HandleUpdateEnrollment)
		authenticated.DELETE("/enrollments/:enrollmentID", enrollmentHandler.HandleDeleteEnrollment)

		authenticated.GET("/courses", courseHandler.HandleGetCourses)
		authenticated.GET("/courses/:courseID", courseHandler.HandleGetCourse)
		authenticated.POST("/courses", courseHandler.HandleCreateCourse)
		authenticated.PUT("/courses/:courseID", courseHandler.HandleUpdateCourse)
		authenticated.DELETE("/courses/:courseID", courseHandler.HandleDeleteCourse)
	}

	admins := s.Router.Group(basePath,
		middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT(),
		middleware.RequireSuperadmin())
	{
		admins.GET("/admins", authHandler.HandleGetAdmins)
		admins.GET("/admins/:adminID", authHandler.HandleGetAdmin)
		admins.POST("/admins", authHandler.HandleCreateAdmin)
		admins.PUT("/admins/:adminID", authHandler.HandleUpdateAdmin)
		admins.DELETE("/admins/:adminID", authHandler.HandleDeleteAdmin)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Course Enrollments API"
	docs.SwaggerInfo.Description = "Administrative API for course enrollments with ticket inventory."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
