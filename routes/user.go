package routes

import (
	"strings"

	"github.com/99hyeon/beour-be/models"
	"github.com/99hyeon/beour-be/services"
	"github.com/99hyeon/beour-be/storage"
	"github.com/99hyeon/beour-be/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
)

func Register(ctx iris.Context) {
	var userInput RegisterUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var newUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&newUser, userInput.LoginID)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if userExists {
		utils.CreateError(iris.StatusConflict, "Registration Error", "Login ID already registered.", ctx)
		return
	}

	hashedPassword, hashErr := utils.HashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	role := userInput.Role
	if role == "" {
		role = "guest"
	}

	newUser = models.User{
		LoginID:  userInput.LoginID,
		Password: hashedPassword,
		Name:     userInput.Name,
		Phone:    userInput.Phone,
		Email:    strings.ToLower(userInput.Email),
		Role:     role,
	}

	if err := storage.DB.Create(&newUser).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	returnUser(newUser, ctx)
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	errorMsg := "Invalid login ID or password."

	var existingUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.LoginID)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	returnUser(existingUser, ctx)
}

func FindLoginID(ctx iris.Context) {
	var input FindLoginIDInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	tokenService := services.NewTokenService(storage.DB, storage.Tokens)
	loginID, err := tokenService.FindLoginID(input.Name, input.Phone, strings.ToLower(input.Email))
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"loginId": loginID})
}

func ResetPassword(ctx iris.Context) {
	var input ResetPasswordInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	tokenService := services.NewTokenService(storage.DB, storage.Tokens)
	tempPassword, err := tokenService.ResetPassword(
		input.LoginID, input.Name, input.Phone, strings.ToLower(input.Email))
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	// The plaintext is shown exactly once; only its hash survives.
	ctx.JSON(iris.Map{"tempPassword": tempPassword})
}

// ReissueTokens rotates the refresh token carried in the "refresh" cookie and
// returns a fresh pair. The old token is dead after this call.
func ReissueTokens(ctx iris.Context) {
	refresh := ctx.GetCookie("refresh")

	tokenService := services.NewTokenService(storage.DB, storage.Tokens)
	pair, err := tokenService.Reissue(refresh)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	setRefreshCookie(ctx, pair.RefreshToken)
	ctx.JSON(pair)
}

func returnUser(user models.User, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user.LoginID, user.Role)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if err := storage.Tokens.Save(user.LoginID, tokenPair.RefreshToken, utils.RefreshTokenTTL); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	setRefreshCookie(ctx, tokenPair.RefreshToken)

	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"loginId":      user.LoginID,
		"name":         user.Name,
		"email":        user.Email,
		"role":         user.Role,
		"accessToken":  tokenPair.AccessToken,
		"refreshToken": tokenPair.RefreshToken,
	})
}

func setRefreshCookie(ctx iris.Context, refreshToken string) {
	ctx.SetCookieKV("refresh", refreshToken,
		iris.CookieHTTPOnly(true),
		iris.CookieExpires(utils.RefreshTokenTTL))
}

func getAndHandleUserExists(user *models.User, loginID string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("login_id = ?", loginID).Limit(1).Find(user)

	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}

	return userExistsQuery.RowsAffected > 0, nil
}

type RegisterUserInput struct {
	LoginID  string `json:"loginId" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=8,max=30"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"omitempty,oneof=guest host"`
}

type LoginUserInput struct {
	LoginID  string `json:"loginId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type FindLoginIDInput struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	LoginID string `json:"loginId" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
}
