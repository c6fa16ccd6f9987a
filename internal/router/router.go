package router

import (
	"worknet/internal/config"
	"worknet/internal/handler"
	"worknet/internal/middleware"
	"worknet/internal/pkg"
	"worknet/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	emailSvc := service.NewEmailService(pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

	user := handler.NewUserHandler(emailSvc)
	email := handler.NewEmailHandler(emailSvc)
	company := handler.NewCompanyHandler()
	post := handler.NewPostHandler()
	interaction := handler.NewInteractionHandler()
	follow := handler.NewFollowHandler()

	// 邮件相关接口
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/code", email.SendCode)
		emailGroup.POST("/verify", email.VerifyCode)
	}

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/reset", user.ResetPassword)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.POST("/change-password", user.ChangePassword)
	}

	// 公司相关接口
	companyGroup := r.Group("/api/company")
	companyGroup.Use(middleware.AuthMiddleware())
	{
		companyGroup.GET("/list", company.List)
		companyGroup.GET("/list/followed", company.ListFollowed)
		companyGroup.GET("/list/not-followed", company.ListNotFollowed)
		companyGroup.GET("/search", company.SearchByName)
		companyGroup.GET("/employer/:id", company.ListByEmployer)
		companyGroup.GET("/:id", company.Details)
		companyGroup.GET("/:id/meta", company.MetaData)
		companyGroup.POST("/create", company.Create)
		companyGroup.PUT("/:id", company.Update)
		companyGroup.DELETE("/:id", company.Delete)
	}

	// 关注相关接口
	followGroup := r.Group("/api/follow")
	followGroup.Use(middleware.AuthMiddleware())
	{
		followGroup.POST("/company/:id", follow.Follow)
		followGroup.DELETE("/company/:id", follow.Unfollow)
		followGroup.GET("/company/:id", follow.IsFollowing)
		followGroup.GET("/company/:id/count", follow.FollowerCount)
		followGroup.GET("/companies", follow.FollowedCompanies)
	}

	// 帖子相关接口
	postGroup := r.Group("/api/post")
	postGroup.Use(middleware.AuthMiddleware())
	{
		postGroup.POST("/create", post.Create)
		postGroup.GET("/list", post.List)
		postGroup.GET("/:id", post.Get)
		postGroup.PUT("/:id", post.Update)
		postGroup.DELETE("/:id", post.Delete)
		postGroup.POST("/:id/share", post.Share)
		postGroup.GET("/:id/shares", post.Shares)
		postGroup.GET("/:id/counts", post.Counts)

		// 帖子互动
		postGroup.POST("/:id/like", interaction.AddLike)
		postGroup.DELETE("/:id/like/:likeId", interaction.DeleteLike)
		postGroup.GET("/:id/likes", interaction.ListLikes)
		postGroup.POST("/:id/comment", interaction.AddComment)
		postGroup.PUT("/:id/comment/:commentId", interaction.UpdateComment)
		postGroup.DELETE("/:id/comment/:commentId", interaction.DeleteComment)
		postGroup.GET("/:id/comments", interaction.ListComments)
		postGroup.POST("/:id/save", interaction.AddSave)
		postGroup.DELETE("/:id/save/:saveId", interaction.DeleteSave)
		postGroup.GET("/:id/saves", interaction.ListSaves)
	}

	// 时间线
	timelineGroup := r.Group("/api/timeline")
	timelineGroup.Use(middleware.AuthMiddleware())
	{
		timelineGroup.GET("", post.Timeline)
	}

	return r
}
