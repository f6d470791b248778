package routes

import (
	"github.com/99hyeon/beour-be/models"
	"github.com/99hyeon/beour-be/storage"
	"github.com/99hyeon/beour-be/utils"

	"github.com/kataras/iris/v12"
)

// Read-only space lookups. Managing spaces and their availability windows
// belongs to the host-side subsystem.

func GetSpace(ctx iris.Context) {
	spaceID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid space ID", ctx)
		return
	}

	var space models.Space
	if err := storage.DB.Preload("Host").First(&space, spaceID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(&space)
}

func GetSpaceAvailableTimes(ctx iris.Context) {
	spaceID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid space ID", ctx)
		return
	}

	query := storage.DB.Where("space_id = ?", spaceID).Order("date ASC")

	if dateStr := ctx.URLParam("date"); dateStr != "" {
		date, err := utils.ParseDate(dateStr)
		if err != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid date format", ctx)
			return
		}
		query = query.Where("date = ?", utils.DateOnly(date))
	}

	var windows []models.AvailableTime
	if err := query.Find(&windows).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(windows)
}
