package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/skylinehq/building-api/internal/models"
	apierrors "github.com/skylinehq/building-api/internal/pkg/errors"
	"github.com/skylinehq/building-api/internal/repository"
)

// BookingService handles the apartment booking transition and lookups that
// depend on it.
type BookingService interface {
	// Book links an apartment to a user under the one-booking-per-user,
	// one-user-per-apartment invariant. Calling it twice for the same pair
	// succeeds once and conflicts thereafter.
	Book(ctx context.Context, userID, apartmentID uuid.UUID, agreementDate time.Time) error

	// UserApartment returns the apartment booked by the given user, or nil
	// if the user holds no booking.
	UserApartment(ctx context.Context, userID uuid.UUID) (*models.Apartment, error)
}

type bookingService struct {
	bookings   repository.BookingRepository
	apartments repository.ApartmentRepository
	users      repository.UserRepository
}

// NewBookingService creates a new booking service.
func NewBookingService(
	bookings repository.BookingRepository,
	apartments repository.ApartmentRepository,
	users repository.UserRepository,
) BookingService {
	return &bookingService{
		bookings:   bookings,
		apartments: apartments,
		users:      users,
	}
}

func (s *bookingService) Book(ctx context.Context, userID, apartmentID uuid.UUID, agreementDate time.Time) error {
	err := s.bookings.Book(ctx, repository.BookingParams{
		UserID:        userID,
		ApartmentID:   apartmentID,
		AgreementDate: agreementDate,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrApartmentNotFound):
		return apierrors.NewNotFoundError("Apartment")
	case errors.Is(err, repository.ErrApartmentBooked):
		return apierrors.NewConflictError("Apartment already booked")
	case errors.Is(err, repository.ErrUserNotFound):
		return apierrors.NewNotFoundError("User")
	case errors.Is(err, repository.ErrUserHasBooking):
		return apierrors.NewConflictError("You already booked an apartment")
	default:
		return err
	}
}

func (s *bookingService) UserApartment(ctx context.Context, userID uuid.UUID) (*models.Apartment, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierrors.NewNotFoundError("User")
	}
	if user.BookingApartment == nil {
		return nil, nil
	}
	return s.apartments.GetByID(ctx, *user.BookingApartment)
}

// Compile-time check to ensure bookingService implements BookingService.
var _ BookingService = (*bookingService)(nil)
