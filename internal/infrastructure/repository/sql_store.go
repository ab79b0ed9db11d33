package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/wyg1997/VoiceRoute/config"
	"github.com/wyg1997/VoiceRoute/internal/domain"
)

// SQLStore implements the user, bus and feedback repositories on a
// relational database
type SQLStore struct {
	db     *sql.DB
	driver string
}

var (
	_ domain.UserRepository     = (*SQLStore)(nil)
	_ domain.BusRepository      = (*SQLStore)(nil)
	_ domain.FeedbackRepository = (*SQLStore)(nil)
)

// OpenSQLStore connects to the configured database and verifies the
// connection. The sqlite driver also gets its schema created.
func OpenSQLStore(ctx context.Context, cfg config.SQLConfig) (*SQLStore, error) {
	var driverName string
	switch cfg.Driver {
	case config.DriverMySQL:
		driverName = "mysql"
	case config.DriverSQLite:
		driverName = "sqlite" // modernc.org/sqlite registers "sqlite", not "sqlite3"
	default:
		return nil, fmt.Errorf("unsupported sql driver: %s", cfg.Driver)
	}

	db, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// Every connection to ":memory:" is its own database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SQLStore{db: db, driver: cfg.Driver}
	if cfg.Driver == config.DriverSQLite {
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return store, nil
}

// Migrate creates the tables if they do not exist
func (s *SQLStore) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS user (
			user_id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS route (
			route_id INTEGER PRIMARY KEY AUTOINCREMENT,
			start_location TEXT NOT NULL,
			end_location TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bus (
			bus_id INTEGER PRIMARY KEY AUTOINCREMENT,
			bus_number TEXT NOT NULL,
			bus_type TEXT NOT NULL DEFAULT '',
			capacity INTEGER NOT NULL DEFAULT 0,
			timing TEXT NOT NULL DEFAULT '',
			route_id INTEGER NOT NULL,
			FOREIGN KEY (route_id) REFERENCES route(route_id)
		)`,
		`CREATE TABLE IF NOT EXISTS feedback (
			feedback_id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER,
			bus_id INTEGER NOT NULL,
			rating REAL NOT NULL,
			feedback_text TEXT,
			FOREIGN KEY (bus_id) REFERENCES bus(bus_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bus_route_id ON bus(route_id)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_bus_id ON feedback(bus_id)`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Authenticate looks up a user by credentials
func (s *SQLStore) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	query := `SELECT user_id, email FROM user WHERE email = ? AND password = ? LIMIT 1`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, email, password).Scan(&user.ID, &user.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// FindBuses returns buses whose route matches the lowercased endpoints,
// with their average feedback rating (0 when unrated)
func (s *SQLStore) FindBuses(ctx context.Context, source, destination string) ([]*domain.Bus, error) {
	query := `SELECT bus.bus_id, bus.bus_number, bus.bus_type, bus.capacity, bus.timing,
			route.start_location, route.end_location,
			COALESCE(AVG(feedback.rating), 0) AS average_rating
		FROM bus
		JOIN route ON bus.route_id = route.route_id
		LEFT JOIN feedback ON bus.bus_id = feedback.bus_id
		WHERE LOWER(route.start_location) = ? AND LOWER(route.end_location) = ?
		GROUP BY bus.bus_id, bus.bus_number, bus.bus_type, bus.capacity, bus.timing,
			route.start_location, route.end_location
		ORDER BY bus.bus_id`

	rows, err := s.db.QueryContext(ctx, query, source, destination)
	if err != nil {
		return nil, fmt.Errorf("failed to query buses: %w", err)
	}
	defer rows.Close()

	buses := []*domain.Bus{}
	for rows.Next() {
		var bus domain.Bus
		if err := rows.Scan(
			&bus.BusID,
			&bus.BusNumber,
			&bus.BusType,
			&bus.Capacity,
			&bus.Timing,
			&bus.StartLocation,
			&bus.EndLocation,
			&bus.AverageRating,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bus: %w", err)
		}
		buses = append(buses, &bus)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read buses: %w", err)
	}
	return buses, nil
}

// CreateFeedback inserts a feedback row and returns its ID
func (s *SQLStore) CreateFeedback(ctx context.Context, f *domain.Feedback) (int64, error) {
	query := `INSERT INTO feedback (user_id, bus_id, rating, feedback_text) VALUES (?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query, f.UserID, f.BusID, f.Rating, f.Text)
	if err != nil {
		return 0, fmt.Errorf("failed to insert feedback: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read feedback id: %w", err)
	}
	f.ID = id
	return id, nil
}

// DB exposes the underlying handle for seeding and administration
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// Close closes the database
func (s *SQLStore) Close() error {
	return s.db.Close()
}
