package usecase

import (
	"log"
	"precinct-backend/internal/model"
	"precinct-backend/internal/notify"
	"precinct-backend/internal/repository"
)

// Message is one notification addressed to any number of users.
type Message struct {
	Type    string
	Title   string
	Message string
	Link    string
}

type NotificationUsecase struct {
	repo   repository.NotificationRepository
	users  repository.UserRepository
	mailer notify.Mailer
}

func NewNotificationUsecase(repo repository.NotificationRepository, users repository.UserRepository, mailer notify.Mailer) *NotificationUsecase {
	if mailer == nil {
		mailer = notify.NopMailer{}
	}
	return &NotificationUsecase{repo: repo, users: users, mailer: mailer}
}

func (u *NotificationUsecase) Notify(userID uint, msg Message) error {
	return u.NotifyUsers([]uint{userID}, msg)
}

func (u *NotificationUsecase) NotifyUsers(userIDs []uint, msg Message) error {
	users, err := u.users.GetByIDs(userIDs)
	if err != nil {
		return err
	}
	return u.fanOut(users, msg)
}

func (u *NotificationUsecase) NotifyAdmins(msg Message) error {
	admins, err := u.users.GetActiveAdmins()
	if err != nil {
		return err
	}
	return u.fanOut(admins, msg)
}

// Broadcast notifies every active user.
func (u *NotificationUsecase) Broadcast(msg Message) error {
	users, err := u.users.GetActive()
	if err != nil {
		return err
	}
	return u.fanOut(users, msg)
}

// fanOut inserts one row per recipient, then mails copies in the background.
func (u *NotificationUsecase) fanOut(users []model.User, msg Message) error {
	if len(users) == 0 {
		return nil
	}

	list := make([]model.Notification, 0, len(users))
	for _, user := range users {
		list = append(list, model.Notification{
			UserID:  user.ID,
			Type:    msg.Type,
			Title:   msg.Title,
			Message: msg.Message,
			Link:    msg.Link,
		})
	}
	if err := u.repo.CreateMany(list); err != nil {
		return err
	}

	go u.email(users, msg)
	return nil
}

func (u *NotificationUsecase) email(users []model.User, msg Message) {
	for _, user := range users {
		if user.Email == "" {
			continue
		}
		if err := u.mailer.Send(user.Email, msg.Title, msg.Message); err != nil {
			log.Printf("notify: %v", err)
		}
	}
}

func (u *NotificationUsecase) List(userID uint, unreadOnly bool, limit int) ([]model.Notification, error) {
	return u.repo.GetByUser(userID, unreadOnly, limit)
}

func (u *NotificationUsecase) UnreadCount(userID uint) (int64, error) {
	return u.repo.CountUnread(userID)
}

func (u *NotificationUsecase) MarkRead(id, userID uint) error {
	ok, err := u.repo.MarkRead(id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (u *NotificationUsecase) MarkAllRead(userID uint) (int64, error) {
	return u.repo.MarkAllRead(userID)
}

func (u *NotificationUsecase) Delete(id, userID uint) error {
	ok, err := u.repo.Delete(id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
