package main

import (
	"os"

	"backend/config"
	"backend/routes"
	"backend/utils"
)

func main() {
	db := config.ConnectDB()
	utils.InitS3()
	utils.InitMailer()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter(db)
	r.Run(":" + port)
}
