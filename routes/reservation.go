package routes

import (
	"github.com/99hyeon/beour-be/models"
	"github.com/99hyeon/beour-be/services"
	"github.com/99hyeon/beour-be/storage"
	"github.com/99hyeon/beour-be/utils"

	"github.com/kataras/iris/v12"
)

type CreateReservationInput struct {
	Date           string `json:"date" validate:"required"`
	StartTime      string `json:"startTime" validate:"required"`
	EndTime        string `json:"endTime" validate:"required"`
	Price          int    `json:"price" validate:"gte=0"`
	GuestCount     int    `json:"guestCount" validate:"required,gte=1"`
	UsagePurpose   string `json:"usagePurpose"`
	RequestMessage string `json:"requestMessage"`
}

func CreateReservation(ctx iris.Context) {
	spaceID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid space ID", ctx)
		return
	}

	var input CreateReservationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	date, err := utils.ParseDate(input.Date)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "date must be YYYY-MM-DD", ctx)
		return
	}

	start, startErr := utils.ClockToMinutes(input.StartTime)
	end, endErr := utils.ClockToMinutes(input.EndTime)
	if startErr != nil || endErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "startTime and endTime must be HH:MM", ctx)
		return
	}
	if start >= end {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "startTime must be before endTime", ctx)
		return
	}

	loginID := ctx.Values().GetString("loginID")
	reservationService := services.NewReservationService(storage.DB)

	reservationID, err := reservationService.Create(loginID, spaceID, services.CreateReservationRequest{
		Date:           date,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		Price:          input.Price,
		GuestCount:     input.GuestCount,
		UsagePurpose:   input.UsagePurpose,
		RequestMessage: input.RequestMessage,
	})
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"id": reservationID})
}

func GetReservationDetail(ctx iris.Context) {
	reservationID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid reservation ID", ctx)
		return
	}

	reservationService := services.NewReservationService(storage.DB)
	reservation, err := reservationService.Detail(reservationID)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(reservation)
}

func CancelReservation(ctx iris.Context) {
	reservationID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid reservation ID", ctx)
		return
	}

	reservationService := services.NewReservationService(storage.DB)
	if err := reservationService.Cancel(reservationID); err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"id": reservationID, "status": models.ReservationCancelled})
}

func GetUpcomingReservations(ctx iris.Context) {
	page, size := pageParams(ctx)
	loginID := ctx.Values().GetString("loginID")

	reservationService := services.NewReservationService(storage.DB)
	result, err := reservationService.ListUpcoming(loginID, page, size)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(result)
}

func GetPastReservations(ctx iris.Context) {
	page, size := pageParams(ctx)
	loginID := ctx.Values().GetString("loginID")

	reservationService := services.NewReservationService(storage.DB)
	result, err := reservationService.ListPast(loginID, page, size)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(result)
}

func GetCancelledReservations(ctx iris.Context) {
	page, size := pageParams(ctx)
	loginID := ctx.Values().GetString("loginID")

	reservationService := services.NewReservationService(storage.DB)
	result, err := reservationService.ListByStatus(loginID, models.ReservationCancelled, page, size)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(result)
}
