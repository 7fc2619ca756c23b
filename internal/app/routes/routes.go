package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/colloq/colloq/internal/app/controllers"
	"github.com/colloq/colloq/internal/middleware"
)

// SetupRouter configures all application routes. Read paths over approved
// data are public; every mutation requires a bearer token, and moderation
// endpoints additionally require the admin role.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	universityController *controllers.UniversityController,
	hierarchyController *controllers.HierarchyController,
	noteController *controllers.NoteController,
	adminController *controllers.AdminController,
	metaController *controllers.MetaController,
	chatController *controllers.ChatController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- Public routes ---
	router.POST("/register", authController.Register)
	router.POST("/token", authController.Login)
	router.GET("/health", metaController.Health)
	router.GET("/leaderboard", metaController.Leaderboard)

	router.GET("/universities", universityController.List)
	router.GET("/universities/:id", universityController.Get)
	router.GET("/universities/:id/faculties", hierarchyController.ListFaculties)
	router.GET("/universities/:id/reviews", universityController.ListReviews)
	router.GET("/faculties/:id/fields", hierarchyController.ListFields)
	router.GET("/fields/:id/subjects", hierarchyController.ListSubjects)
	router.GET("/notes", noteController.List)
	router.GET("/notes/:id", authMiddleware.OptionalAuth(), noteController.Get)
	router.GET("/notes/:id/comments", noteController.ListComments)

	// --- Authenticated routes ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/users/me", userController.GetMe)
		authenticated.PUT("/users/me", userController.UpdateMe)
		authenticated.GET("/users/me/favorites", userController.ListFavorites)

		authenticated.POST("/universities", universityController.Create)
		authenticated.POST("/universities/:id/reviews", universityController.AddReview)
		authenticated.POST("/universities/:id/image-requests", universityController.RequestImage)
		authenticated.POST("/faculties", hierarchyController.CreateFaculty)
		authenticated.POST("/fields", hierarchyController.CreateField)
		authenticated.POST("/subjects", hierarchyController.CreateSubject)

		authenticated.POST("/notes", noteController.Create)
		authenticated.POST("/notes/:id/vote", noteController.ToggleVote)
		authenticated.POST("/notes/:id/favorite", noteController.ToggleFavorite)
		authenticated.POST("/notes/:id/comments", noteController.AddComment)

		authenticated.POST("/chat", chatController.Chat)

		// --- Admin routes ---
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.AdminRequired())
		{
			admin.GET("/pending_items", adminController.PendingItems)
			admin.POST("/approve/:type/:id", adminController.Approve)
			admin.DELETE("/reject/:type/:id", adminController.Reject)
			admin.POST("/image-requests/:id/approve", adminController.ApproveImageRequest)
			admin.POST("/image-requests/:id/reject", adminController.RejectImageRequest)
		}
	}
}
