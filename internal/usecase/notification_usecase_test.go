package usecase_test

import (
	"precinct-backend/internal/model"
	"precinct-backend/internal/repository"
	"precinct-backend/internal/testutil"
	"precinct-backend/internal/usecase"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestNotificationInbox(t *testing.T) {
	db := testutil.NewDB(t)
	mailer := &fakeMailer{}
	uc := usecase.NewNotificationUsecase(repository.NewNotificationRepository(db), repository.NewUserRepository(db), mailer)

	a := testutil.CreateUser(t, db, "1001", "Alvarez", model.RoleEmployee)
	b := testutil.CreateUser(t, db, "1002", "Brooks", model.RoleEmployee)

	require.NoError(t, uc.Notify(a.ID, usecase.Message{Type: model.NotifySchedule, Title: "one"}))
	require.NoError(t, uc.Notify(a.ID, usecase.Message{Type: model.NotifySchedule, Title: "two"}))
	require.NoError(t, uc.NotifyUsers([]uint{a.ID, b.ID}, usecase.Message{Type: model.NotifyEvent, Title: "three"}))

	assert.Eventually(t, func() bool { return mailer.count() == 4 }, time.Second, 10*time.Millisecond)

	unread, err := uc.UnreadCount(a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, unread)

	list, err := uc.List(a.ID, false, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "three", list[0].Title)

	// Another officer cannot read or delete a's notifications
	assert.ErrorIs(t, uc.MarkRead(list[0].ID, b.ID), usecase.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(list[0].ID, b.ID), usecase.ErrNotFound)

	require.NoError(t, uc.MarkRead(list[0].ID, a.ID))
	unreadList, err := uc.List(a.ID, true, 0)
	require.NoError(t, err)
	assert.Len(t, unreadList, 2)

	n, err := uc.MarkAllRead(a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	require.NoError(t, uc.Delete(list[1].ID, a.ID))
	list, err = uc.List(a.ID, false, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	unread, err = uc.UnreadCount(b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)
}
