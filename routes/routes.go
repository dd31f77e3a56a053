package routes

import (
	"backend/controllers"
	"backend/middlewares"
	"backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	authCtl := controllers.NewAuthController(services.NewAuthService(db))
	contractCtl := controllers.NewContractController(services.NewContractService(db))
	foodCtl := controllers.NewFoodController(services.NewFoodService(db))
	planCtl := controllers.NewMealPlanController(services.NewMealPlanService(db))
	progressCtl := controllers.NewProgressController(services.NewProgressService(db))

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
		auth.GET("/me", middlewares.AuthMiddleware(), authCtl.Me)
	}

	contracts := api.Group("/contracts")
	contracts.Use(middlewares.AuthMiddleware())
	{
		contracts.POST("", contractCtl.Create)
		contracts.GET("", contractCtl.List)
		contracts.GET("/:id", contractCtl.Get)
		contracts.PATCH("/:id/status", contractCtl.UpdateStatus)
	}

	foods := api.Group("/foods")
	{
		// catalog reads are public
		foods.GET("", foodCtl.List)
		foods.GET("/categories", foodCtl.Categories)
		foods.GET("/popular", foodCtl.Popular)
		foods.GET("/search/nutrition", foodCtl.SearchNutrition)
		foods.GET("/:id", foodCtl.Get)

		write := foods.Group("")
		write.Use(middlewares.AuthMiddleware(), middlewares.RequireNutritionist())
		{
			write.POST("", foodCtl.Create)
			write.PUT("/:id", foodCtl.Update)
			write.DELETE("/:id", foodCtl.Delete)
		}
	}

	plans := api.Group("/meal-plans")
	plans.Use(middlewares.AuthMiddleware())
	{
		plans.GET("", planCtl.List)
		plans.GET("/:id", planCtl.Get)
		plans.GET("/:id/statistics", planCtl.Statistics)

		write := plans.Group("")
		write.Use(middlewares.RequireNutritionist())
		{
			write.POST("", planCtl.Create)
			write.PUT("/:id", planCtl.Update)
			write.DELETE("/:id", planCtl.Delete)
			write.POST("/meals", planCtl.AddMeal)
			write.PUT("/meals/:id", planCtl.UpdateMeal)
			write.DELETE("/meals/:id", planCtl.DeleteMeal)
			write.POST("/copy", planCtl.Copy)
			write.PUT("/:id/recalculate", planCtl.Recalculate)
		}
	}

	progress := api.Group("/progress")
	progress.Use(middlewares.AuthMiddleware())
	{
		progress.POST("", progressCtl.Create)
		progress.GET("", progressCtl.List)
		progress.GET("/stats", progressCtl.Stats)
		progress.GET("/chart", progressCtl.Chart)
		progress.GET("/client/:clientId", middlewares.RequireNutritionist(), progressCtl.ClientRecords)
		progress.GET("/:id", progressCtl.Get)
		progress.PUT("/:id", progressCtl.Update)
		progress.DELETE("/:id", progressCtl.Delete)
		progress.POST("/:id/photos", progressCtl.AddPhoto)
	}

	return r
}
