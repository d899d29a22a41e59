package model

// Settings is the hotel-wide configuration singleton.  It always lives
// in a single row (id = 1); writes upsert that row and the last writer
// wins.  Notification toggles are exposed as a separate sub-resource
// but share the same row.
type Settings struct {
	HotelName      string `json:"hotel_name"`      // settings.hotel_name
	Address        string `json:"address"`         // settings.address
	Phone          string `json:"phone"`           // settings.phone
	Email          string `json:"email"`           // settings.email
	CheckInTime    string `json:"check_in_time"`   // settings.check_in_time (HH:MM)
	CheckOutTime   string `json:"check_out_time"`  // settings.check_out_time (HH:MM)
	AutoLogout     bool   `json:"auto_logout"`     // settings.auto_logout
	SessionTimeout uint32 `json:"session_timeout"` // settings.session_timeout (minutes)
	CompactView    bool   `json:"compact_view"`    // settings.compact_view
	ShowStatistics bool   `json:"show_statistics"` // settings.show_statistics
}

// NotificationSettings groups the notification toggles stored on the
// settings row.
type NotificationSettings struct {
	EmailNotifications   bool `json:"email_notifications"`   // settings.email_notifications
	SMSNotifications     bool `json:"sms_notifications"`     // settings.sms_notifications
	BrowserNotifications bool `json:"browser_notifications"` // settings.browser_notifications
	NewReservations      bool `json:"new_reservations"`      // settings.new_reservations
	CheckIns             bool `json:"check_ins"`             // settings.check_ins
	CheckOuts            bool `json:"check_outs"`            // settings.check_outs
	Payments             bool `json:"payments"`              // settings.payments
}
