package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devconnect/pkg/auth"
	"devconnect/pkg/logger"
)

// NewRouter wires all handlers under /api. Public reads stay open;
// everything that mutates runs behind the JWT middleware.
func NewRouter(
	authHandler *AuthHandler,
	profileHandler *ProfileHandler,
	postHandler *PostHandler,
	jwtSvc *auth.JWTService,
	log logger.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ErrorMiddleware(log))

	authMW := AuthMiddleware(jwtSvc)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		users := api.Group("/users")
		{
			users.POST("", authHandler.Register)
			users.POST("/avatar", authMW, authHandler.UploadAvatar)
		}

		authGroup := api.Group("/auth")
		{
			authGroup.POST("", authHandler.Login)
			authGroup.GET("", authMW, authHandler.CurrentUser)
		}

		profile := api.Group("/profile")
		{
			profile.GET("/all", profileHandler.GetAllProfiles)
			profile.GET("/handle/:handle", profileHandler.GetProfileByHandle)
			profile.GET("/user/:user_id", profileHandler.GetProfileByUserID)
			profile.GET("/github/:username", profileHandler.GithubRepos)

			profile.GET("/me", authMW, profileHandler.GetMyProfile)
			profile.POST("", authMW, profileHandler.UpsertProfile)
			profile.DELETE("", authMW, profileHandler.DeleteProfile)
			profile.PUT("/experience", authMW, profileHandler.AddExperience)
			profile.DELETE("/experience/:exp_id", authMW, profileHandler.RemoveExperience)
			profile.PUT("/education", authMW, profileHandler.AddEducation)
			profile.DELETE("/education/:edu_id", authMW, profileHandler.RemoveEducation)
		}

		posts := api.Group("/posts")
		posts.Use(authMW)
		{
			posts.POST("", postHandler.CreatePost)
			posts.GET("", postHandler.ListPosts)
			posts.GET("/:post_id", postHandler.GetPost)
			posts.DELETE("/:post_id", postHandler.DeletePost)
			posts.PUT("/like/:post_id", postHandler.LikePost)
			posts.PUT("/unlike/:post_id", postHandler.UnlikePost)
			posts.POST("/comment/:post_id", postHandler.AddComment)
			posts.DELETE("/comment/:post_id/:comment_id", postHandler.RemoveComment)
		}
	}

	return router
}
