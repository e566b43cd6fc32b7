package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/skylinehq/building-api/internal/models"
	apierrors "github.com/skylinehq/building-api/internal/pkg/errors"
	"github.com/skylinehq/building-api/internal/repository"
)

type mockBookingRepo struct {
	bookErr    error
	lastParams repository.BookingParams
}

func (m *mockBookingRepo) Book(ctx context.Context, params repository.BookingParams) error {
	m.lastParams = params
	return m.bookErr
}

var _ repository.BookingRepository = (*mockBookingRepo)(nil)

type mockApartmentRepo struct {
	apartments map[uuid.UUID]*models.Apartment
}

func (m *mockApartmentRepo) List(ctx context.Context) ([]*models.Apartment, error) {
	var result []*models.Apartment
	for _, a := range m.apartments {
		result = append(result, a)
	}
	return result, nil
}

func (m *mockApartmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Apartment, error) {
	return m.apartments[id], nil
}

var _ repository.ApartmentRepository = (*mockApartmentRepo)(nil)

func TestBookingService_Book(t *testing.T) {
	userID := uuid.New()
	apartmentID := uuid.New()
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		repoErr    error
		wantCode   string
		wantStatus int
	}{
		{
			name: "books successfully",
		},
		{
			name:       "apartment missing",
			repoErr:    repository.ErrApartmentNotFound,
			wantCode:   "not_found",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "apartment already booked",
			repoErr:    repository.ErrApartmentBooked,
			wantCode:   "conflict",
			wantStatus: http.StatusConflict,
		},
		{
			name:       "user missing",
			repoErr:    repository.ErrUserNotFound,
			wantCode:   "not_found",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "user already has a booking",
			repoErr:    repository.ErrUserHasBooking,
			wantCode:   "conflict",
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &mockBookingRepo{bookErr: tt.repoErr}
			svc := NewBookingService(bookings, &mockApartmentRepo{}, newMockUserRepo())

			err := svc.Book(context.Background(), userID, apartmentID, date)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Book() error = %v", err)
				}
				if bookings.lastParams.UserID != userID || bookings.lastParams.ApartmentID != apartmentID {
					t.Errorf("Book() params = %+v", bookings.lastParams)
				}
				if !bookings.lastParams.AgreementDate.Equal(date) {
					t.Errorf("AgreementDate = %v, want %v", bookings.lastParams.AgreementDate, date)
				}
				return
			}

			apiErr := apierrors.AsAPIError(err)
			if apiErr.Code != tt.wantCode {
				t.Errorf("Book() code = %v, want %v", apiErr.Code, tt.wantCode)
			}
			if apiErr.StatusCode != tt.wantStatus {
				t.Errorf("Book() status = %d, want %d", apiErr.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestBookingService_UserApartment(t *testing.T) {
	users := newMockUserRepo()
	apartmentID := uuid.New()
	apartments := &mockApartmentRepo{apartments: map[uuid.UUID]*models.Apartment{
		apartmentID: {ID: apartmentID, Block: "A", Floor: 2, ApartmentNo: "A-21", IsBooked: true},
	}}
	svc := NewBookingService(&mockBookingRepo{}, apartments, users)
	ctx := context.Background()

	withBooking := seedUser(users, models.RoleUser)
	withBooking.BookingApartment = &apartmentID
	withoutBooking := seedUser(users, models.RoleUser)

	apartment, err := svc.UserApartment(ctx, withBooking.ID)
	if err != nil {
		t.Fatalf("UserApartment() error = %v", err)
	}
	if apartment == nil || apartment.ID != apartmentID {
		t.Errorf("UserApartment() = %+v, want apartment %v", apartment, apartmentID)
	}

	apartment, err = svc.UserApartment(ctx, withoutBooking.ID)
	if err != nil {
		t.Fatalf("UserApartment() error = %v", err)
	}
	if apartment != nil {
		t.Errorf("UserApartment() = %+v, want nil for user without booking", apartment)
	}

	_, err = svc.UserApartment(ctx, uuid.New())
	apiErr := apierrors.AsAPIError(err)
	if apiErr.Code != "not_found" {
		t.Errorf("UserApartment() unknown user code = %v, want not_found", apiErr.Code)
	}
}
