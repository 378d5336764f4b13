package notification

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterNotification(t *testing.T) {
	manager := NewNotificationManager()

	err := manager.RegisterNotification(TwofaCodeNotice, EmailSystem, NoticeTemplate{
		Subject: "Code",
		Text:    "Your code: {{.Code}}",
	})
	assert.NoError(t, err)

	err = manager.RegisterNotification("", EmailSystem, NoticeTemplate{Text: "x"})
	assert.Error(t, err)

	err = manager.RegisterNotification(TwofaCodeNotice, "", NoticeTemplate{Text: "x"})
	assert.Error(t, err)

	err = manager.RegisterNotification(TwofaCodeNotice, EmailSystem, NoticeTemplate{Subject: "no body"})
	assert.Error(t, err)
}

func TestSend(t *testing.T) {
	manager := NewNotificationManager()
	mock := &MockNotifier{}
	manager.RegisterNotifier(EmailSystem, mock)
	require.NoError(t, manager.RegisterNotification(TwofaCodeNotice, EmailSystem, NoticeTemplate{
		Subject: "Code",
		Text:    "Your code: {{.Code}}",
	}))

	err := manager.Send(TwofaCodeNotice, NotificationData{
		To:   "user@example.com",
		Data: map[string]string{"Code": "123456"},
	})
	require.NoError(t, err)

	require.Len(t, mock.SentNotifications, 1)
	assert.Equal(t, "user@example.com", mock.SentNotifications[0].To)
	assert.Equal(t, "123456", mock.SentNotifications[0].Data["Code"])
}

func TestSend_UnregisteredNoticeType(t *testing.T) {
	manager := NewNotificationManager()
	manager.RegisterNotifier(EmailSystem, &MockNotifier{})

	err := manager.Send(TwofaCodeNotice, NotificationData{To: "user@example.com"})
	assert.Error(t, err)
}

func TestSend_NoNotifierForSystem(t *testing.T) {
	manager := NewNotificationManager()
	require.NoError(t, manager.RegisterNotification(TwofaCodeNotice, EmailSystem, NoticeTemplate{Text: "x"}))

	err := manager.Send(TwofaCodeNotice, NotificationData{To: "user@example.com"})
	assert.Error(t, err)
}

func TestSend_DeliveryFailurePropagates(t *testing.T) {
	manager := NewNotificationManager()
	sendErr := errors.New("connection refused")
	manager.RegisterNotifier(EmailSystem, &MockNotifier{Err: sendErr})
	require.NoError(t, manager.RegisterNotification(TwofaCodeNotice, EmailSystem, NoticeTemplate{Text: "x"}))

	err := manager.Send(TwofaCodeNotice, NotificationData{To: "user@example.com"})
	assert.ErrorIs(t, err, sendErr)
}
