package usecase

import (
	"fmt"
	"log"
	"precinct-backend/internal/model"
	"precinct-backend/internal/notify"
	"precinct-backend/internal/repository"
	"strings"
	"time"
)

// RequestUsecase runs the pending -> accepted|declined -> completed workflow
// for one request kind.
type RequestUsecase[T model.Request] struct {
	repo      repository.RequestRepository[T]
	users     repository.UserRepository
	schedules *ScheduleUsecase
	notifier  *NotificationUsecase
	alerter   notify.Alerter

	Now func() time.Time
}

func NewRequestUsecase[T model.Request](repo repository.RequestRepository[T], users repository.UserRepository, schedules *ScheduleUsecase, notifier *NotificationUsecase, alerter notify.Alerter) *RequestUsecase[T] {
	if alerter == nil {
		alerter = notify.NopAlerter{}
	}
	return &RequestUsecase[T]{
		repo:      repo,
		users:     users,
		schedules: schedules,
		notifier:  notifier,
		alerter:   alerter,
		Now:       time.Now,
	}
}

// Submit stores a new request as pending and tells the admins about it.
func (u *RequestUsecase[T]) Submit(item T) error {
	start, end := item.Span()
	if _, _, err := parseRange(start, end); err != nil {
		return err
	}

	user, err := u.users.FindByID(item.OwnerID())
	if err != nil {
		return notFound(err)
	}

	// Whatever the client sent, a new request starts pending and unanswered
	*item.GetApproval() = model.Approval{Status: model.RequestPending}

	if err := u.repo.Create(item); err != nil {
		return err
	}

	kind := item.Kind()
	text := fmt.Sprintf("%s (%s) submitted %s", user.Name, user.BadgeNumber, item.Summary())
	if err := u.notifier.NotifyAdmins(Message{
		Type:    model.NotifyRequestCreated,
		Title:   "New " + kind + " request",
		Message: text,
		Link:    fmt.Sprintf("/admin/requests/%s/%d", kind, item.GetID()),
	}); err != nil {
		log.Printf("request: notify admins: %v", err)
	}
	if err := u.alerter.Alert(text); err != nil {
		log.Printf("request: %v", err)
	}
	return nil
}

func (u *RequestUsecase[T]) Get(id uint) (T, error) {
	item, err := u.repo.GetByID(id)
	if err != nil {
		var zero T
		return zero, notFound(err)
	}
	return item, nil
}

// GetFor returns the request when viewer owns it or is an admin.
func (u *RequestUsecase[T]) GetFor(id, viewerID uint, isAdmin bool) (T, error) {
	item, err := u.Get(id)
	if err != nil {
		return item, err
	}
	if !isAdmin && item.OwnerID() != viewerID {
		var zero T
		return zero, ErrForbidden
	}
	return item, nil
}

func (u *RequestUsecase[T]) ListMine(userID uint) ([]T, error) {
	return u.repo.ListByUser(userID)
}

func (u *RequestUsecase[T]) List(status string) ([]T, error) {
	switch status {
	case "", model.RequestPending, model.RequestAccepted, model.RequestDeclined, model.RequestCompleted:
	default:
		return nil, invalid("unknown status %q", status)
	}
	return u.repo.List(status)
}

// Respond accepts or declines a pending request. A request can be answered
// only once; later attempts get ErrAlreadyResponded.
func (u *RequestUsecase[T]) Respond(id, approverID uint, decision, note string) (T, error) {
	var zero T
	decision = strings.ToLower(strings.TrimSpace(decision))
	if decision != model.RequestAccepted && decision != model.RequestDeclined {
		return zero, invalid("decision must be accepted or declined")
	}

	item, err := u.Get(id)
	if err != nil {
		return zero, err
	}
	if item.GetApproval().Status != model.RequestPending {
		return zero, ErrAlreadyResponded
	}

	ok, err := u.repo.Respond(id, decision, approverID, note, u.Now())
	if err != nil {
		return zero, err
	}
	if !ok {
		// Someone else answered between the read and the update
		return zero, ErrAlreadyResponded
	}

	if item, err = u.Get(id); err != nil {
		return zero, err
	}

	if decision == model.RequestAccepted && item.RosterStatus() != "" {
		start, end := item.Span()
		note := fmt.Sprintf("%s request #%d", item.Kind(), item.GetID())
		if _, err := u.schedules.ApplyRequestStatus(item.OwnerID(), start, end, item.RosterStatus(), note); err != nil {
			return item, fmt.Errorf("request accepted but roster not updated: %w", err)
		}
	}

	text := fmt.Sprintf("Your %s was %s.", item.Summary(), decision)
	if note != "" {
		text += " Note: " + note
	}
	if err := u.notifier.Notify(item.OwnerID(), Message{
		Type:    model.NotifyRequestResponded,
		Title:   strings.ToUpper(item.Kind()[:1]) + item.Kind()[1:] + " request " + decision,
		Message: text,
		Link:    fmt.Sprintf("/requests/%s/%d", item.Kind(), item.GetID()),
	}); err != nil {
		log.Printf("request: notify owner: %v", err)
	}
	return item, nil
}

// Complete closes an accepted request.
func (u *RequestUsecase[T]) Complete(id uint) (T, error) {
	var zero T
	item, err := u.Get(id)
	if err != nil {
		return zero, err
	}
	if item.GetApproval().Status != model.RequestAccepted {
		return zero, ErrNotAccepted
	}

	ok, err := u.repo.Complete(id, u.Now())
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, ErrNotAccepted
	}

	if err := u.notifier.Notify(item.OwnerID(), Message{
		Type:    model.NotifyRequestCompleted,
		Title:   "Request completed",
		Message: fmt.Sprintf("Your %s is now marked completed.", item.Summary()),
		Link:    fmt.Sprintf("/requests/%s/%d", item.Kind(), item.GetID()),
	}); err != nil {
		log.Printf("request: notify owner: %v", err)
	}
	return u.Get(id)
}

// Cancel lets the owner withdraw a request that nobody answered yet.
func (u *RequestUsecase[T]) Cancel(id, userID uint) error {
	item, err := u.Get(id)
	if err != nil {
		return err
	}
	if item.OwnerID() != userID {
		return ErrForbidden
	}
	if item.GetApproval().Status != model.RequestPending {
		return ErrNotPending
	}
	ok, err := u.repo.DeletePending(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotPending
	}
	return nil
}

// CompleteExpired completes accepted requests whose last day is before today.
func (u *RequestUsecase[T]) CompleteExpired(today string) (int, error) {
	list, err := u.repo.ListAcceptedEndingBefore(today)
	if err != nil {
		return 0, err
	}

	done := 0
	for _, item := range list {
		ok, err := u.repo.Complete(item.GetID(), u.Now())
		if err != nil {
			return done, err
		}
		if ok {
			done++
		}
	}
	return done, nil
}

// StartingOn lists accepted requests whose first day is date.
func (u *RequestUsecase[T]) StartingOn(date string) ([]T, error) {
	return u.repo.ListAcceptedOn(date)
}

func (u *RequestUsecase[T]) PendingCount(userID uint) (int64, error) {
	return u.repo.CountByUserAndStatus(userID, model.RequestPending)
}
