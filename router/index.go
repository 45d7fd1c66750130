package router

import (
	"festival_portal/handler"
	"festival_portal/middleware"
	"festival_portal/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Handlers bundles the handler instances the routes dispatch to.
type Handlers struct {
	Comments   *handler.CommentHandler
	Films      *handler.FilmHandler
	Partners   *handler.PartnerHandler
	Activities *handler.ActivityHandler
	Socket     *handler.CommentSocket
}

func SetupRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/forgot-password", handler.RequestPasswordReset)
	auth.Post("/reset-password", handler.ResetPassword)

	account := v1.Group("/account", logger.New())
	account.Get("/", middleware.Protected(), handler.GetAccounts)
	account.Get("/me", middleware.Protected(), handler.Me)
	account.Post("/", middleware.Protected(), validate.CreateAccount(), handler.CreateAccount)
	account.Put("/:accountId", middleware.Protected(), validate.GetById("accountId"), validate.UpdateAccount(), handler.UpdateAccount)
	account.Post("/change-password", middleware.Protected(), validate.ChangePassword(), handler.ChangePassword)

	submission := v1.Group("/submission", logger.New())
	submission.Get("/:submissionId/comments", middleware.Protected(), h.Comments.GetComments)
	submission.Post("/:submissionId/comments", middleware.Protected(), validate.CreateComment(), h.Comments.AddGeneralComment)
	submission.Post("/:submissionId/comments/scoring", middleware.Protected(), validate.CreateScoringComment(), h.Comments.AddScoringComment)
	submission.Post("/:submissionId/comments/status-change", middleware.Protected(), validate.CreateStatusChange(), h.Comments.AddStatusChangeComment)
	submission.Post("/:submissionId/comments/flag", middleware.Protected(), validate.CreateFlag(), h.Comments.AddFlagComment)
	submission.Put("/:submissionId/comments/:commentId/score", middleware.Protected(), validate.UpdateScoringComment(), h.Comments.UpdateScoringComment)
	submission.Delete("/:submissionId/comments/:commentId", middleware.Protected(), h.Comments.DeleteComment)
	submission.Get("/:submissionId/latest-score", middleware.Protected(), h.Comments.GetLatestScoreByAdmin)

	film := v1.Group("/film", logger.New())
	film.Get("/", middleware.OptionalJWT(), h.Films.GetFilms)
	film.Get("/slug/:slug", middleware.OptionalJWT(), h.Films.GetFilmBySlug)
	film.Get("/:id", middleware.OptionalJWT(), h.Films.GetFilm)
	film.Get("/:id/guests", middleware.OptionalJWT(), h.Films.GetFilmGuests)
	film.Post("/", middleware.Protected(), validate.CreateFilm(), h.Films.CreateFilm)
	film.Put("/:id", middleware.Protected(), validate.UpdateFilm(), h.Films.UpdateFilm)
	film.Delete("/:id", middleware.Protected(), h.Films.DeleteFilm)
	film.Patch("/:id/publish", middleware.Protected(), h.Films.PublishFilm)
	film.Patch("/:id/archive", middleware.Protected(), h.Films.ArchiveFilm)

	partner := v1.Group("/partner", logger.New())
	partner.Get("/", middleware.OptionalJWT(), h.Partners.GetPartners)
	partner.Get("/:id", middleware.OptionalJWT(), h.Partners.GetPartner)
	partner.Post("/", middleware.Protected(), validate.CreatePartner(), h.Partners.CreatePartner)
	partner.Put("/:id", middleware.Protected(), validate.UpdatePartner(), h.Partners.UpdatePartner)
	partner.Delete("/:id", middleware.Protected(), h.Partners.DeletePartner)

	activity := v1.Group("/activity", logger.New())
	activity.Get("/", middleware.OptionalJWT(), h.Activities.GetActivities)
	activity.Get("/:id", middleware.OptionalJWT(), h.Activities.GetActivity)
	activity.Get("/:id/qr", middleware.OptionalJWT(), h.Activities.ActivityQR)
	activity.Post("/", middleware.Protected(), validate.CreateActivity(), h.Activities.CreateActivity)
	activity.Put("/:id", middleware.Protected(), validate.UpdateActivity(), h.Activities.UpdateActivity)
	activity.Delete("/:id", middleware.Protected(), h.Activities.DeleteActivity)

	app.Get("/ws/comments/:submissionId", websocket.New(h.Socket.Handle))
}
