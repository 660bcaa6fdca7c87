package reservation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/notify"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/logging"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

// CreateRequest is a validated-once booking request.
type CreateRequest struct {
	RoomID        int64
	Title         string
	Window        Window
	BookedBy      string
	AttendeeCount int
	AllowOverflow bool
}

// RoomLookup resolves room ids against the catalog.
type RoomLookup interface {
	Get(id int64) (*room.Room, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Reservation, error)
	GetByID(ctx context.Context, id int64) (*Reservation, error)
	Cancel(ctx context.Context, id int64) error
	List(ctx context.Context, filter Filter) ([]*Reservation, error)
}

type service struct {
	repo      Repository
	rooms     RoomLookup
	locker    Locker
	publisher notify.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, rooms RoomLookup, locker Locker, publisher notify.Publisher, logger *slog.Logger) Service {
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:      repo,
		rooms:     rooms,
		locker:    locker,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger).With(append([]any{"service", "reservation", "operation", operation}, attrs...)...)
}

// validate checks everything that does not depend on other reservations.
func (s *service) validate(req CreateRequest) (Window, error) {
	rm, err := s.rooms.Get(req.RoomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return Window{}, ErrRoomNotFound
		}
		return Window{}, err
	}

	window := req.Window.Normalize()
	if err := window.Validate(); err != nil {
		return Window{}, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return Window{}, ErrEmptyTitle
	}
	if req.AttendeeCount <= 0 {
		return Window{}, ErrInvalidAttendees
	}
	if req.AttendeeCount > rm.Capacity && !req.AllowOverflow {
		return Window{}, ErrCapacityExceeded
	}
	return window, nil
}

// timeoutErr reports an expired or cancelled request context as a timeout,
// whether it surfaced from the locker or from the store.
func timeoutErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperror.Wrap(err, ErrLockTimeout.Code, ErrLockTimeout.Kind, ErrLockTimeout.Message)
	}
	return err
}

func (s *service) lock(ctx context.Context, roomID int64) (func(), error) {
	unlock, err := s.locker.Lock(ctx, roomID)
	if err != nil {
		return nil, timeoutErr(err)
	}
	return unlock, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Reservation, error) {
	logger := s.log(ctx, "create", "room_id", req.RoomID)

	window, err := s.validate(req)
	if err != nil {
		logger.Info("reservation rejected", "kind", apperror.KindOf(err))
		return nil, err
	}

	res, err := s.createLocked(ctx, req, window)
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			logger.Info("reservation rejected", "kind", apperror.KindConflict, "conflicting_id", conflict.Existing.ID)
		} else {
			logger.Warn("reservation failed", "kind", apperror.KindOf(err), "error", err)
		}
		return nil, err
	}

	logger.Info("reservation created", "reservation_id", res.ID, "window", res.Window.String())
	s.publish(ctx, logger, notify.EventReservationCreated, res)
	return res, nil
}

// createLocked runs the conflict check and the insert as one unit per room.
func (s *service) createLocked(ctx context.Context, req CreateRequest, window Window) (*Reservation, error) {
	unlock, err := s.lock(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	existing, err := s.repo.List(ctx, Filter{RoomID: req.RoomID, Day: window.Day()})
	if err != nil {
		return nil, timeoutErr(err)
	}
	if c := FindConflict(existing, window); c != nil {
		return nil, &ConflictError{Existing: c}
	}

	res := &Reservation{
		RoomID:        req.RoomID,
		Title:         strings.TrimSpace(req.Title),
		Window:        window,
		BookedBy:      req.BookedBy,
		AttendeeCount: req.AttendeeCount,
		AllowOverflow: req.AllowOverflow,
	}
	if err := s.repo.Create(ctx, res); err != nil {
		if errors.Is(err, ErrConflict) {
			// Another process won the race; report who holds the slot.
			return nil, s.conflictFromStore(ctx, req.RoomID, window)
		}
		return nil, timeoutErr(err)
	}
	return res, nil
}

func (s *service) conflictFromStore(ctx context.Context, roomID int64, window Window) error {
	existing, err := s.repo.List(ctx, Filter{RoomID: roomID, Day: window.Day()})
	if err != nil {
		return timeoutErr(err)
	}
	if c := FindConflict(existing, window); c != nil {
		return &ConflictError{Existing: c}
	}
	return ErrConflict
}

func (s *service) GetByID(ctx context.Context, id int64) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, timeoutErr(err)
	}
	return res, nil
}

func (s *service) Cancel(ctx context.Context, id int64) error {
	logger := s.log(ctx, "cancel", "reservation_id", id)

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return timeoutErr(err)
	}
	if !res.IsLive() {
		return ErrNotFound
	}

	unlock, err := s.lock(ctx, res.RoomID)
	if err != nil {
		return err
	}
	err = timeoutErr(s.repo.Cancel(ctx, id, s.now()))
	unlock()
	if err != nil {
		logger.Info("cancel failed", "kind", apperror.KindOf(err))
		return err
	}

	logger.Info("reservation cancelled", "room_id", res.RoomID)
	s.publish(ctx, logger, notify.EventReservationCancelled, res)
	return nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Reservation, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, timeoutErr(err)
	}
	return list, nil
}

func (s *service) publish(ctx context.Context, logger *slog.Logger, typ notify.EventType, res *Reservation) {
	ev := notify.Event{
		Type:          typ,
		ReservationID: res.ID,
		RoomID:        res.RoomID,
		Title:         res.Title,
		BookedBy:      res.BookedBy,
		StartTime:     res.Window.Start,
		EndTime:       res.Window.End,
		OccurredAt:    s.now(),
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		logger.Warn("failed to publish event", "event", typ, "error", err)
	}
}
