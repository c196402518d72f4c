package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"jollof-hub/storefront-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	name       TEXT,
	email      TEXT,
	image      TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS menu_items (
	id          SERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL,
	price       NUMERIC(10, 2) NOT NULL CHECK (price >= 0),
	category    TEXT NOT NULL,
	image_url   TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS orders (
	id            SERIAL PRIMARY KEY,
	user_id       TEXT REFERENCES users (id),
	customer_name TEXT NOT NULL,
	items         JSONB NOT NULL,
	total_price   NUMERIC(10, 2) NOT NULL,
	status        TEXT NOT NULL DEFAULT 'PENDING',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS orders_user_id_idx ON orders (user_id);
CREATE INDEX IF NOT EXISTS orders_created_at_idx ON orders (created_at DESC);

CREATE TABLE IF NOT EXISTS reservations (
	id               SERIAL PRIMARY KEY,
	user_id          TEXT REFERENCES users (id),
	customer_name    TEXT NOT NULL,
	email            TEXT NOT NULL,
	phone            TEXT NOT NULL,
	reservation_date TIMESTAMPTZ NOT NULL,
	party_size       INTEGER NOT NULL CHECK (party_size > 0),
	notes            TEXT,
	status           TEXT NOT NULL DEFAULT 'PENDING',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS reservations_user_id_idx ON reservations (user_id);
`

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, schema)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func submitter(id, name, image sql.NullString) *domain.Submitter {
	if !id.Valid {
		return nil
	}
	return &domain.Submitter{Name: nullString(name), Image: nullString(image)}
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// Orders

const orderColumns = `
	SELECT o.id, o.user_id, o.customer_name, o.items, o.total_price, o.status, o.created_at,
	       u.id, u.name, u.image
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id`

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order                     domain.Order
		userID                    sql.NullString
		items                     []byte
		status                    string
		joinID, joinName, joinImg sql.NullString
	)
	if err := row.Scan(&order.ID, &userID, &order.CustomerName, &items, &order.TotalPrice, &status, &order.CreatedAt,
		&joinID, &joinName, &joinImg); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("decode items of order %d: %w", order.ID, err)
	}
	order.UserID = nullString(userID)
	order.Status = domain.OrderStatus(status)
	order.User = submitter(joinID, joinName, joinImg)
	return &order, nil
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, customer_name, items, total_price, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		order.UserID, order.CustomerName, string(items), order.TotalPrice, string(order.Status),
	).Scan(&order.ID, &order.CreatedAt)
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	return scanOrder(r.DB.QueryRowContext(ctx, orderColumns+` WHERE o.id = $1`, id))
}

// ListOrders returns newest first. An empty userID lists every order.
func (r *PostgresRepository) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if userID == "" {
		rows, err = r.DB.QueryContext(ctx, orderColumns+` ORDER BY o.created_at DESC, o.id DESC`)
	} else {
		rows, err = r.DB.QueryContext(ctx, orderColumns+` WHERE o.user_id = $1 ORDER BY o.created_at DESC, o.id DESC`, userID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Reservations

const reservationColumns = `
	SELECT r.id, r.user_id, r.customer_name, r.email, r.phone, r.reservation_date, r.party_size,
	       r.notes, r.status, r.created_at, u.id, u.name, u.image
	FROM reservations r
	LEFT JOIN users u ON u.id = r.user_id`

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res                       domain.Reservation
		userID, notes             sql.NullString
		status                    string
		joinID, joinName, joinImg sql.NullString
	)
	if err := row.Scan(&res.ID, &userID, &res.CustomerName, &res.Email, &res.Phone, &res.ReservationDate, &res.PartySize,
		&notes, &status, &res.CreatedAt, &joinID, &joinName, &joinImg); err != nil {
		return nil, err
	}
	res.UserID = nullString(userID)
	res.Notes = nullString(notes)
	res.Status = domain.ReservationStatus(status)
	res.User = submitter(joinID, joinName, joinImg)
	return &res, nil
}

func (r *PostgresRepository) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO reservations (user_id, customer_name, email, phone, reservation_date, party_size, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		res.UserID, res.CustomerName, res.Email, res.Phone, res.ReservationDate, res.PartySize, res.Notes, string(res.Status),
	).Scan(&res.ID, &res.CreatedAt)
}

func (r *PostgresRepository) GetReservation(ctx context.Context, id int) (*domain.Reservation, error) {
	return scanReservation(r.DB.QueryRowContext(ctx, reservationColumns+` WHERE r.id = $1`, id))
}

func (r *PostgresRepository) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	return r.listReservations(ctx, reservationColumns+` ORDER BY r.reservation_date ASC, r.id ASC`)
}

func (r *PostgresRepository) ListUserReservations(ctx context.Context, userID string) ([]domain.Reservation, error) {
	return r.listReservations(ctx, reservationColumns+` WHERE r.user_id = $1 ORDER BY r.created_at DESC, r.id DESC`, userID)
}

func (r *PostgresRepository) listReservations(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []domain.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

func (r *PostgresRepository) UpdateReservationStatus(ctx context.Context, id int, status domain.ReservationStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE reservations SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Menu

const menuColumns = `SELECT id, name, description, price, category, image_url, created_at, updated_at FROM menu_items`

func scanMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var (
		item     domain.MenuItem
		imageURL sql.NullString
	)
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Category, &imageURL,
		&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.ImageURL = nullString(imageURL)
	return &item, nil
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO menu_items (name, description, price, category, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		item.Name, item.Description, item.Price, item.Category, item.ImageURL,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, menuColumns+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	return scanMenuItem(r.DB.QueryRowContext(ctx, menuColumns+` WHERE id = $1`, id))
}

func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.DB.QueryRowContext(ctx, `
		UPDATE menu_items
		SET name = $1, description = $2, price = $3, category = $4, image_url = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING created_at, updated_at`,
		item.Name, item.Description, item.Price, item.Category, item.ImageURL, item.ID,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Users

// UpsertUser keeps profile fields that the new claims leave empty.
func (r *PostgresRepository) UpsertUser(ctx context.Context, user domain.User) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, name, email, image)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = COALESCE(EXCLUDED.name, users.name),
		    email = COALESCE(EXCLUDED.email, users.email),
		    image = COALESCE(EXCLUDED.image, users.image)`,
		user.ID, user.Name, user.Email, user.Image)
	return err
}

func (r *PostgresRepository) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT u.id, u.name, u.email, u.image, COUNT(o.id)
		FROM users u
		LEFT JOIN orders o ON o.user_id = u.id
		GROUP BY u.id
		ORDER BY u.name NULLS LAST, u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.UserSummary{}
	for rows.Next() {
		var (
			u                  domain.UserSummary
			name, email, image sql.NullString
		)
		if err := rows.Scan(&u.ID, &name, &email, &image, &u.OrderCount); err != nil {
			return nil, err
		}
		u.Name, u.Email, u.Image = nullString(name), nullString(email), nullString(image)
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var (
		u                  domain.User
		name, email, image sql.NullString
	)
	if err := r.DB.QueryRowContext(ctx, `SELECT id, name, email, image FROM users WHERE id = $1`, id).
		Scan(&u.ID, &name, &email, &image); err != nil {
		return nil, err
	}
	u.Name, u.Email, u.Image = nullString(name), nullString(email), nullString(image)
	return &u, nil
}

// Stats

func (r *PostgresRepository) Stats(ctx context.Context, dayStart time.Time) (*domain.Stats, error) {
	var s domain.Stats
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			COALESCE((SELECT SUM(total_price) FROM orders WHERE status = 'COMPLETED'), 0),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM orders WHERE created_at >= $1)`, dayStart).
		Scan(&s.TotalRevenue, &s.TotalOrders, &s.TotalCustomers, &s.TodaysOrders)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) CompletedRevenueByDay(ctx context.Context, since time.Time) (map[string]decimal.Decimal, error) {
	tz := since.Location().String()
	if tz == "Local" {
		tz = "UTC"
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT to_char(created_at AT TIME ZONE $2, 'YYYY-MM-DD') AS day, SUM(total_price)
		FROM orders
		WHERE status = 'COMPLETED' AND created_at >= $1
		GROUP BY day`, since, tz)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			day     string
			revenue decimal.Decimal
		)
		if err := rows.Scan(&day, &revenue); err != nil {
			return nil, err
		}
		out[day] = revenue
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
