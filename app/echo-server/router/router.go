package router

import (
	"github.com/labstack/echo/v4"

	"myMealPlanner/internal/rest"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.POST("/refresh", handler.RefreshToken)

	users.POST("/logout", handler.Logout, authRequired)
	users.PUT("/:id", handler.UpdateUser, authRequired)
	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/:id", handler.GetUserByID, authRequired, adminOnly)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupMealRoutes(api *echo.Group, handler *rest.MealHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	meals := api.Group("/meals")

	meals.GET("", handler.GetAllMeals, authRequired)
	meals.GET("/:id", handler.GetMealByID, authRequired)
	meals.POST("", handler.CreateMeal, authRequired, adminOnly)
	meals.PUT("/:id", handler.UpdateMeal, authRequired, adminOnly)
	meals.DELETE("/:id", handler.DeleteMeal, authRequired, adminOnly)
}

func SetupMealPlanRoutes(api *echo.Group, handler *rest.MealPlanHandler, authRequired echo.MiddlewareFunc) {
	plans := api.Group("/meal-plans", authRequired)

	plans.POST("", handler.AddEntry)
	plans.GET("", handler.GetUserPlan)
	plans.GET("/:id", handler.GetEntry)
	plans.DELETE("/:id", handler.RemoveEntry)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)

	reco.GET("", handler.Recommend)
	reco.POST("/feedback", handler.Feedback)
	reco.GET("/status", handler.Status)

	admin := api.Group("/admin/ml", authRequired, adminOnly)
	admin.POST("/train", handler.Train)
}

func SetupScoringAdminRoutes(api *echo.Group, handler *rest.ScoringAdminHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin/scoring-config", authRequired, adminOnly)

	admin.GET("", handler.GetConfig)
	admin.PUT("", handler.UpsertConfig)
}

func SetupStoreRoutes(api *echo.Group, handler *rest.StoreHandler, authRequired echo.MiddlewareFunc) {
	stores := api.Group("/stores", authRequired)

	stores.GET("", handler.GetAllStores)
	stores.GET("/:id", handler.GetStoreByID)
	stores.POST("", handler.CreateStore)
	stores.PUT("/:id", handler.UpdateStore)
	stores.DELETE("/:id", handler.DeleteStore)
}

func SetupReleaseNoteRoutes(api *echo.Group, handler *rest.ReleaseNoteHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	notes := api.Group("/release-notes")

	notes.GET("", handler.GetAllNotes)
	notes.GET("/latest", handler.GetLatestNote)
	notes.POST("", handler.CreateNote, authRequired, adminOnly)
	notes.DELETE("/:id", handler.DeleteNote, authRequired, adminOnly)
}
