package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"festival_portal/database"
	"festival_portal/docstore"
	"festival_portal/handler"
	"festival_portal/helper"
	"festival_portal/model"
	"festival_portal/router"
	"festival_portal/service"
	"festival_portal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// flagNotifier forwards flag comments to the moderation inbox.
type flagNotifier struct {
	mailer *utils.FlagMailer
}

func (n *flagNotifier) NotifyFlagged(comment model.Comment) error {
	reason, severity := "", "unspecified"
	if comment.Metadata.Flag != nil {
		reason = comment.Metadata.Flag.Reason
		if comment.Metadata.Flag.Severity != "" {
			severity = comment.Metadata.Flag.Severity
		}
	}
	subject := fmt.Sprintf("Flagged submission %s (%s)", comment.SubmissionID, severity)
	body := fmt.Sprintf("Flagged by %s.\nReason: %s\n\n%s", comment.AdminName, reason, comment.Content)
	return n.mailer.Send(subject, body)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("CORS_ORIGIN"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	rdb := redis.NewClient(&redis.Options{Addr: os.Getenv("REDIS_ADDR")})
	store := docstore.New(database.DB, rdb)

	uploader := helper.NewCloudinaryUploader(helper.InitCloudinary())

	comments := service.NewCommentService(store, &flagNotifier{mailer: utils.NewFlagMailer()})
	films := service.NewFilmService(store, uploader)
	partners := service.NewPartnerService(store)
	activities := service.NewActivityService(store)

	service.StartFilmArchiveScheduler(films)

	socket := handler.NewCommentSocket(comments)
	socket.StartSweep()

	router.SetupRoutes(app, router.Handlers{
		Comments:   handler.NewCommentHandler(comments),
		Films:      handler.NewFilmHandler(films),
		Partners:   handler.NewPartnerHandler(partners),
		Activities: handler.NewActivityHandler(activities),
		Socket:     socket,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		if err := app.Shutdown(); err != nil {
			log.Println("shutdown:", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8002"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Println("server error:", err)
	}

	service.StopFilmArchiveScheduler()
	socket.StopSweep()
}
