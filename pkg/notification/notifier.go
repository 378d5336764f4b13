package notification

// NotificationSystem represents a delivery channel (e.g., email).
type NotificationSystem string

// NoticeType represents a kind of notification (e.g., "twofa_code").
type NoticeType string

const (
	EmailSystem NotificationSystem = "email"

	// TwofaCodeNotice carries a one-time verification code to the user.
	TwofaCodeNotice NoticeType = "twofa_code"
)

// NoticeTemplate holds the subject and body templates for a notice.
// Text and Html are Go text/html templates executed against
// NotificationData.Data.
type NoticeTemplate struct {
	Subject string
	Text    string
	Html    string
}

type NotificationData struct {
	To      string            // Recipient identifier (e.g., email address)
	Subject string            // Optional subject override
	Data    map[string]string // Template data (e.g., the code value)
}

type Notifier interface {
	Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error
}
