package services

import "net/http"

// AppError is a terminal business failure with a stable code the web layer
// maps onto protocol responses. No retries, no partial success.
type AppError struct {
	Code    string
	Message string
	Status  int
}

func (e *AppError) Error() string {
	return e.Code + ": " + e.Message
}

var (
	ErrUserNotFound = &AppError{
		Code: "USER_NOT_FOUND", Message: "user not found", Status: http.StatusNotFound}
	ErrSpaceNotFound = &AppError{
		Code: "SPACE_NOT_FOUND", Message: "space not found", Status: http.StatusNotFound}
	ErrReservationNotFound = &AppError{
		Code: "RESERVATION_NOT_FOUND", Message: "reservation not found", Status: http.StatusNotFound}

	ErrInvalidPrice = &AppError{
		Code: "INVALID_PRICE", Message: "price does not match the space's hourly rate", Status: http.StatusBadRequest}
	ErrInvalidCapacity = &AppError{
		Code: "INVALID_CAPACITY", Message: "guest count exceeds the space's capacity", Status: http.StatusBadRequest}
	ErrCannotCancelReservation = &AppError{
		Code: "CANNOT_CANCEL_RESERVATION", Message: "only pending reservations can be cancelled", Status: http.StatusBadRequest}

	ErrAvailableTimeNotFound = &AppError{
		Code: "AVAILABLE_TIME_NOT_FOUND", Message: "no bookable slot for the requested date", Status: http.StatusNotFound}
	ErrTimeUnavailable = &AppError{
		Code: "TIME_UNAVAILABLE", Message: "the requested time range is not available", Status: http.StatusConflict}

	ErrRefreshTokenNotFound = &AppError{
		Code: "REFRESH_TOKEN_NOT_FOUND", Message: "refresh token is missing or not active", Status: http.StatusUnauthorized}
	ErrRefreshTokenExpired = &AppError{
		Code: "REFRESH_TOKEN_EXPIRED", Message: "refresh token has expired", Status: http.StatusUnauthorized}
)
