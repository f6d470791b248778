package services

import (
	"errors"
	"time"

	"github.com/99hyeon/beour-be/models"
	"github.com/99hyeon/beour-be/utils"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// ReservationService owns booking admission and the reservation lifecycle.
// Callers pass the guest's login id explicitly; there is no ambient identity.
type ReservationService struct {
	DB *gorm.DB

	now func() time.Time
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db, now: time.Now}
}

// CreateReservationRequest carries an already-parsed booking request. Date is
// a calendar day; StartTime/EndTime are "HH:MM" on that day with
// StartTime < EndTime.
type CreateReservationRequest struct {
	Date           time.Time
	StartTime      string
	EndTime        string
	Price          int
	GuestCount     int
	UsagePurpose   string
	RequestMessage string
}

type ReservationSummary struct {
	ID         uint                     `json:"id"`
	SpaceID    uint                     `json:"spaceID"`
	SpaceName  string                   `json:"spaceName"`
	Date       string                   `json:"date"`
	StartTime  string                   `json:"startTime"`
	EndTime    string                   `json:"endTime"`
	Price      int                      `json:"price"`
	GuestCount int                      `json:"guestCount"`
	Status     models.ReservationStatus `json:"status"`
	// ReviewID is set on past reservations that have a matching review;
	// absent means the guest has not reviewed the stay.
	ReviewID *uint `json:"reviewId,omitempty"`
}

type ReservationPage struct {
	Reservations []ReservationSummary `json:"reservations"`
	IsLast       bool                 `json:"isLast"`
	TotalPages   int                  `json:"totalPages"`
}

// Create admits a booking request against the space's rules and persists it
// as PENDING, returning the new reservation id. Admission checks run in a
// fixed order: price, capacity, date availability, time overlap; the first
// violation wins.
//
// The overlap check and the insert are not serialized against concurrent
// creates; two overlapping requests can both pass validation and both insert.
func (s *ReservationService) Create(loginID string, spaceID uint, req CreateReservationRequest) (uint, error) {
	guest, err := s.findGuest(loginID)
	if err != nil {
		return 0, err
	}

	var space models.Space
	if err := s.DB.First(&space, spaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrSpaceNotFound
		}
		return 0, err
	}

	var host models.User
	if err := s.DB.First(&host, space.HostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	if err := s.checkReservationAvailable(req, &space); err != nil {
		return 0, err
	}

	reservation := models.Reservation{
		GuestID:        guest.ID,
		HostID:         host.ID,
		SpaceID:        space.ID,
		Date:           utils.DateOnly(req.Date),
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Price:          req.Price,
		GuestCount:     req.GuestCount,
		UsagePurpose:   req.UsagePurpose,
		RequestMessage: req.RequestMessage,
		Status:         models.ReservationPending,
	}

	if err := s.DB.Create(&reservation).Error; err != nil {
		return 0, err
	}

	return reservation.ID, nil
}

func (s *ReservationService) checkReservationAvailable(req CreateReservationRequest, space *models.Space) error {
	if err := checkPriceCorrect(req, space); err != nil {
		return err
	}
	if err := checkValidCapacity(req, space); err != nil {
		return err
	}
	if err := s.checkAvailableDate(req, space); err != nil {
		return err
	}
	return s.checkAvailableTime(req, space)
}

func checkPriceCorrect(req CreateReservationRequest, space *models.Space) error {
	startHour, err := utils.ClockHour(req.StartTime)
	if err != nil {
		return err
	}
	endHour, err := utils.ClockHour(req.EndTime)
	if err != nil {
		return err
	}

	if req.Price != space.PricePerHour*(endHour-startHour) {
		return ErrInvalidPrice
	}
	return nil
}

func checkValidCapacity(req CreateReservationRequest, space *models.Space) error {
	if req.GuestCount > space.MaxCapacity {
		return ErrInvalidCapacity
	}
	return nil
}

// checkAvailableDate loads the space's declared window for the date. Booking
// today before the current wall-clock time counts as "no bookable slot", and
// the window must fully contain the requested range.
func (s *ReservationService) checkAvailableDate(req CreateReservationRequest, space *models.Space) error {
	var window models.AvailableTime
	err := s.DB.
		Where("space_id = ? AND date = ?", space.ID, utils.DateOnly(req.Date)).
		First(&window).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAvailableTimeNotFound
		}
		return err
	}

	now := s.now()
	if utils.DateOnly(req.Date).Equal(utils.DateOnly(now)) && req.StartTime < utils.Clock(now) {
		return ErrAvailableTimeNotFound
	}

	if window.StartTime > req.StartTime || window.EndTime < req.EndTime {
		return ErrTimeUnavailable
	}

	return nil
}

// checkAvailableTime scans the requested range in one-hour steps against the
// space's existing non-cancelled reservations on that date. The scan is only
// valid because bookings are integral-hour; a probe at t conflicts when an
// existing reservation satisfies start < t+1h && end > t.
func (s *ReservationService) checkAvailableTime(req CreateReservationRequest, space *models.Space) error {
	var existing []models.Reservation
	err := s.DB.
		Where("space_id = ? AND date = ? AND status <> ?",
			space.ID, utils.DateOnly(req.Date), models.ReservationCancelled).
		Find(&existing).Error
	if err != nil {
		return err
	}

	start, err := utils.ClockToMinutes(req.StartTime)
	if err != nil {
		return err
	}
	end, err := utils.ClockToMinutes(req.EndTime)
	if err != nil {
		return err
	}

	for t := start; t < end; t += 60 {
		for _, reservation := range existing {
			existingStart, err := utils.ClockToMinutes(reservation.StartTime)
			if err != nil {
				return err
			}
			existingEnd, err := utils.ClockToMinutes(reservation.EndTime)
			if err != nil {
				return err
			}

			if existingStart < t+60 && existingEnd > t {
				return ErrTimeUnavailable
			}
		}
	}

	return nil
}

// Cancel moves a PENDING reservation to CANCELLED. Any other status,
// including an already cancelled one, refuses with the same error.
func (s *ReservationService) Cancel(reservationID uint) error {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReservationNotFound
		}
		return err
	}

	if reservation.Status != models.ReservationPending {
		return ErrCannotCancelReservation
	}

	return s.DB.Model(&reservation).
		Update("status", models.ReservationCancelled).Error
}

// Detail returns the full reservation view. Read-only.
func (s *ReservationService) Detail(reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.Preload("Space").Preload("Guest").Preload("Host").
		First(&reservation, reservationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}

	return &reservation, nil
}

// ListUpcoming returns the guest's not-yet-started reservations, soonest
// first. Cancelled ones are excluded.
func (s *ReservationService) ListUpcoming(loginID string, page, size int) (*ReservationPage, error) {
	guest, err := s.findGuest(loginID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := utils.DateOnly(now)
	where := s.DB.Model(&models.Reservation{}).
		Where("guest_id = ? AND status <> ?", guest.ID, models.ReservationCancelled).
		Where("date > ? OR (date = ? AND start_time >= ?)", today, today, utils.Clock(now))

	return s.listPage(where, page, size, nil)
}

// ListByStatus returns the guest's reservations with exactly the given
// status, used for the cancelled view.
func (s *ReservationService) ListByStatus(loginID string, status models.ReservationStatus, page, size int) (*ReservationPage, error) {
	allowed := []models.ReservationStatus{
		models.ReservationPending,
		models.ReservationAccepted,
		models.ReservationCancelled,
		models.ReservationCompleted,
	}
	if !slices.Contains(allowed, status) {
		return nil, ErrReservationNotFound
	}

	guest, err := s.findGuest(loginID)
	if err != nil {
		return nil, err
	}

	where := s.DB.Model(&models.Reservation{}).
		Where("guest_id = ? AND status = ?", guest.ID, status)

	return s.listPage(where, page, size, nil)
}

// ListPast returns the guest's finished reservations. This call mutates
// records: ACCEPTED reservations whose time has passed are rewritten to
// COMPLETED as they are read. Each item carries the id of the guest's review
// for that stay when one exists.
func (s *ReservationService) ListPast(loginID string, page, size int) (*ReservationPage, error) {
	guest, err := s.findGuest(loginID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := utils.DateOnly(now)
	where := s.DB.Model(&models.Reservation{}).
		Where("guest_id = ?", guest.ID).
		Where("date < ? OR (date = ? AND end_time < ?)", today, today, utils.Clock(now))

	return s.listPage(where, page, size, func(reservation *models.Reservation) (*uint, error) {
		if reservation.Status == models.ReservationAccepted {
			reservation.Status = models.ReservationCompleted
			if err := s.DB.Model(reservation).
				Update("status", models.ReservationCompleted).Error; err != nil {
				return nil, err
			}
		}

		var review models.Review
		err := s.DB.
			Where("guest_id = ? AND space_id = ? AND reserved_date = ?",
				guest.ID, reservation.SpaceID, reservation.Date).
			First(&review).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}

		reviewID := review.ID
		return &reviewID, nil
	})
}

// listPage runs the shared pagination/DTO assembly. An empty page is reported
// as ErrReservationNotFound, matching the behavior clients already depend on.
func (s *ReservationService) listPage(where *gorm.DB, page, size int, decorate func(*models.Reservation) (*uint, error)) (*ReservationPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	var total int64
	if err := where.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var reservations []models.Reservation
	err := where.Session(&gorm.Session{}).
		Preload("Space").
		Order("date ASC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&reservations).Error
	if err != nil {
		return nil, err
	}

	if len(reservations) == 0 {
		return nil, ErrReservationNotFound
	}

	totalPages := int((total + int64(size) - 1) / int64(size))

	summaries := make([]ReservationSummary, 0, len(reservations))
	for i := range reservations {
		reservation := &reservations[i]

		var reviewID *uint
		if decorate != nil {
			reviewID, err = decorate(reservation)
			if err != nil {
				return nil, err
			}
		}

		spaceName := ""
		if reservation.Space != nil {
			spaceName = reservation.Space.Name
		}

		summaries = append(summaries, ReservationSummary{
			ID:         reservation.ID,
			SpaceID:    reservation.SpaceID,
			SpaceName:  spaceName,
			Date:       reservation.Date.Format("2006-01-02"),
			StartTime:  reservation.StartTime,
			EndTime:    reservation.EndTime,
			Price:      reservation.Price,
			GuestCount: reservation.GuestCount,
			Status:     reservation.Status,
			ReviewID:   reviewID,
		})
	}

	return &ReservationPage{
		Reservations: summaries,
		IsLast:       page >= totalPages,
		TotalPages:   totalPages,
	}, nil
}

func (s *ReservationService) findGuest(loginID string) (*models.User, error) {
	var guest models.User
	if err := s.DB.Where("login_id = ?", loginID).First(&guest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &guest, nil
}
