package routes

import (
	"errors"

	"github.com/99hyeon/beour-be/services"
	"github.com/99hyeon/beour-be/utils"

	"github.com/kataras/iris/v12"
)

// handleServiceError maps a service failure onto its HTTP response, keeping
// the stable error code in the title field.
func handleServiceError(err error, ctx iris.Context) {
	var appErr *services.AppError
	if errors.As(err, &appErr) {
		utils.CreateError(appErr.Status, appErr.Code, appErr.Message, ctx)
		return
	}

	utils.CreateInternalServerError(ctx)
}

func pageParams(ctx iris.Context) (page int, size int) {
	page = ctx.URLParamIntDefault("page", 1)
	size = ctx.URLParamIntDefault("size", 10)
	return page, size
}
