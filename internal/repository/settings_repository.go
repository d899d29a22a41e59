package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-management/internal/model"
)

// SettingsRepo reads and upserts the single settings row.  The row is
// addressed by the fixed id 1; writing creates it when absent and
// overwrites all provided fields otherwise (last writer wins).  Every
// read goes to the database, nothing is cached in process.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo returns a SettingsRepo bound to the given database.
func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Get returns the settings row.  The second return value is false when
// the row has never been written.
func (r *SettingsRepo) Get(ctx context.Context) (model.Settings, bool, error) {
	var s model.Settings
	err := r.db.QueryRowContext(ctx,
		`SELECT hotel_name, address, phone, email,
       TIME_FORMAT(check_in_time, '%H:%i'), TIME_FORMAT(check_out_time, '%H:%i'),
       auto_logout, session_timeout, compact_view, show_statistics
FROM settings WHERE id = 1`).
		Scan(&s.HotelName, &s.Address, &s.Phone, &s.Email, &s.CheckInTime, &s.CheckOutTime,
			&s.AutoLogout, &s.SessionTimeout, &s.CompactView, &s.ShowStatistics)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Settings{}, false, nil
	}
	if err != nil {
		return model.Settings{}, false, err
	}
	return s, true, nil
}

// Upsert writes the settings row, creating it when absent.
func (r *SettingsRepo) Upsert(ctx context.Context, s model.Settings) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (id, hotel_name, address, phone, email, check_in_time, check_out_time,
                      auto_logout, session_timeout, compact_view, show_statistics)
VALUES (1,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  hotel_name=VALUES(hotel_name), address=VALUES(address), phone=VALUES(phone), email=VALUES(email),
  check_in_time=VALUES(check_in_time), check_out_time=VALUES(check_out_time),
  auto_logout=VALUES(auto_logout), session_timeout=VALUES(session_timeout),
  compact_view=VALUES(compact_view), show_statistics=VALUES(show_statistics)`,
		s.HotelName, s.Address, s.Phone, s.Email, s.CheckInTime, s.CheckOutTime,
		s.AutoLogout, s.SessionTimeout, s.CompactView, s.ShowStatistics)
	return err
}

// GetNotifications returns the notification toggles.  The second
// return value is false when the settings row has never been written.
func (r *SettingsRepo) GetNotifications(ctx context.Context) (model.NotificationSettings, bool, error) {
	var n model.NotificationSettings
	err := r.db.QueryRowContext(ctx,
		`SELECT email_notifications, sms_notifications, browser_notifications,
       new_reservations, check_ins, check_outs, payments
FROM settings WHERE id = 1`).
		Scan(&n.EmailNotifications, &n.SMSNotifications, &n.BrowserNotifications,
			&n.NewReservations, &n.CheckIns, &n.CheckOuts, &n.Payments)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NotificationSettings{}, false, nil
	}
	if err != nil {
		return model.NotificationSettings{}, false, err
	}
	return n, true, nil
}

// UpsertNotifications writes the notification toggles with the same
// create-if-absent contract as Upsert.
func (r *SettingsRepo) UpsertNotifications(ctx context.Context, n model.NotificationSettings) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (id, email_notifications, sms_notifications, browser_notifications,
                      new_reservations, check_ins, check_outs, payments)
VALUES (1,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  email_notifications=VALUES(email_notifications), sms_notifications=VALUES(sms_notifications),
  browser_notifications=VALUES(browser_notifications), new_reservations=VALUES(new_reservations),
  check_ins=VALUES(check_ins), check_outs=VALUES(check_outs), payments=VALUES(payments)`,
		n.EmailNotifications, n.SMSNotifications, n.BrowserNotifications,
		n.NewReservations, n.CheckIns, n.CheckOuts, n.Payments)
	return err
}
