package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"lawFirmWebsite/internal/models"
)

// Store groups the repositories of every collection over one connection or transaction.
type Store struct {
	db    *sql.DB
	clock Clock
	ids   IDGenerator

	Carousel     *SQLRepository[models.CarouselSlide]
	Services     *SQLRepository[models.Service]
	Content      *SQLRepository[models.Content]
	About        *SQLRepository[models.AboutSection]
	Projects     *SQLRepository[models.Project]
	Enquiries    *SQLRepository[models.Enquiry]
	Appointments *SQLRepository[models.Appointment]
	Reviews      *SQLRepository[models.Review]
	ContactInfo  *ContactInfoRepository
	Users        *UserRepository
}

// NewStore wires every repository to db. A nil clock or ids falls back to the real implementations.
func NewStore(db *sql.DB, clock Clock, ids IDGenerator) *Store {
	if clock == nil {
		clock = RealClock{}
	}
	if ids == nil {
		ids = UUIDGenerator{}
	}
	s := newStore(db, clock, ids)
	s.db = db
	return s
}

func newStore(conn DBTX, clock Clock, ids IDGenerator) *Store {
	return &Store{
		clock:        clock,
		ids:          ids,
		Carousel:     NewSQLRepository(conn, CarouselTable, clock, ids),
		Services:     NewSQLRepository(conn, ServicesTable, clock, ids),
		Content:      NewSQLRepository(conn, ContentTable, clock, ids),
		About:        NewSQLRepository(conn, AboutTable, clock, ids),
		Projects:     NewSQLRepository(conn, ProjectsTable, clock, ids),
		Enquiries:    NewSQLRepository(conn, EnquiriesTable, clock, ids),
		Appointments: NewSQLRepository(conn, AppointmentsTable, clock, ids),
		Reviews:      NewSQLRepository(conn, ReviewsTable, clock, ids),
		ContactInfo:  &ContactInfoRepository{repo: NewSQLRepository(conn, ContactInfoTable, clock, ids)},
		Users:        &UserRepository{SQLRepository: NewSQLRepository(conn, UsersTable, clock, ids), db: conn},
	}
}

// DB returns the underlying connection pool; nil for a transaction-bound Store.
func (s *Store) DB() *sql.DB {
	return s.db
}

// TransactionFunc operates on a Store whose repositories share one transaction.
type TransactionFunc func(tx *Store) error

// WithTransaction executes fn within a database transaction.
// It commits when fn returns nil and rolls back on error or panic.
func (s *Store) WithTransaction(ctx context.Context, fn TransactionFunc) error {
	if s.db == nil {
		return errors.New("nested transactions are not supported")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(newStore(tx, s.clock, s.ids)); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("failed to rollback transaction: %v (original error: %w)", rollbackErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Counts reports the number of records per collection, keyed by API collection name.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	counters := map[string]interface {
		Count(context.Context) (int, error)
	}{
		"carousel":     s.Carousel,
		"services":     s.Services,
		"content":      s.Content,
		"about":        s.About,
		"projects":     s.Projects,
		"enquiries":    s.Enquiries,
		"appointments": s.Appointments,
		"reviews":      s.Reviews,
	}

	counts := make(map[string]int, len(counters))
	for name, c := range counters {
		n, err := c.Count(ctx)
		if err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, nil
}

// ContactInfoRepository exposes the contact record as a singleton.
type ContactInfoRepository struct {
	repo *SQLRepository[models.ContactInfo]
}

// Current returns the contact record, or nil when none has been saved yet.
func (r *ContactInfoRepository) Current(ctx context.Context) (*models.ContactInfo, error) {
	list, err := r.repo.List(ctx, ListOptions{})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

// Create stores the first contact record. ErrConflict if one already exists; the table's unique
// singleton column enforces this, so concurrent first saves cannot both succeed.
func (r *ContactInfoRepository) Create(ctx context.Context, info *models.ContactInfo) error {
	return r.repo.Create(ctx, info)
}

// Update replaces the current contact record. ErrNotFound if none exists.
func (r *ContactInfoRepository) Update(ctx context.Context, info *models.ContactInfo) error {
	current, err := r.Current(ctx)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}
	return r.repo.Update(ctx, current.ID, info)
}

// UserRepository adds email lookups to the generic users repository.
type UserRepository struct {
	*SQLRepository[models.User]
	db DBTX
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE email = ?", UsersTable.selectColumns())
	user, err := UsersTable.scan(r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("finding user by email: %w", err)
	}
	return user, nil
}
