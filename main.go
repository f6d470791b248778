package main

import (
	"fmt"
	"log"
	"os"

	"github.com/99hyeon/beour-be/routes"
	"github.com/99hyeon/beour-be/storage"
	"github.com/99hyeon/beour-be/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AuthClaims)
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/find-login-id", routes.FindLoginID)
		user.Post("/reset-password", routes.ResetPassword)
		user.Post("/reissue", routes.ReissueTokens)
	}

	spaces := app.Party("/api/spaces")
	{
		spaces.Get("/{id:uint}", routes.GetSpace)
		spaces.Get("/{id:uint}/available-times", routes.GetSpaceAvailableTimes)
		spaces.Post("/{id:uint}/reservations",
			accessTokenVerifierMiddleware, utils.ClaimsMiddleware, routes.CreateReservation)
	}

	reservations := app.Party("/api/reservations", accessTokenVerifierMiddleware, utils.ClaimsMiddleware)
	{
		reservations.Get("/upcoming", routes.GetUpcomingReservations)
		reservations.Get("/past", routes.GetPastReservations)
		reservations.Get("/cancelled", routes.GetCancelledReservations)
		reservations.Get("/{id:uint}", routes.GetReservationDetail)
		reservations.Patch("/{id:uint}/cancel", routes.CancelReservation)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
