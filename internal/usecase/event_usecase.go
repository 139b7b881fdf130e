package usecase

import (
	"fmt"
	"log"
	"precinct-backend/internal/model"
	"precinct-backend/internal/repository"
	"strings"
)

type EventUsecase struct {
	repo     repository.EventRepository
	notifier *NotificationUsecase
}

func NewEventUsecase(repo repository.EventRepository, notifier *NotificationUsecase) *EventUsecase {
	return &EventUsecase{repo: repo, notifier: notifier}
}

type EventInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date"`
}

func (in EventInput) check() (EventInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, invalid("title is required")
	}
	if in.EndDate == "" {
		in.EndDate = in.StartDate
	}
	if !model.ValidDate(in.StartDate) || !model.ValidDate(in.EndDate) {
		return in, invalid("event dates must be YYYY-MM-DD")
	}
	if in.EndDate < in.StartDate {
		return in, invalid("end_date must not be before start_date")
	}
	return in, nil
}

// Create stores the event and tells every active officer about it.
func (u *EventUsecase) Create(in EventInput, createdBy uint) (*model.Event, error) {
	in, err := in.check()
	if err != nil {
		return nil, err
	}

	event := model.Event{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		CreatedBy:   createdBy,
	}
	if err := u.repo.Create(&event); err != nil {
		return nil, err
	}

	when := event.StartDate
	if event.EndDate != event.StartDate {
		when += " to " + event.EndDate
	}
	if err := u.notifier.Broadcast(Message{
		Type:    model.NotifyEvent,
		Title:   event.Title,
		Message: fmt.Sprintf("New event on %s. %s", when, event.Description),
		Link:    fmt.Sprintf("/events/%d", event.ID),
	}); err != nil {
		log.Printf("event: broadcast: %v", err)
	}
	return &event, nil
}

func (u *EventUsecase) Update(id uint, in EventInput) (*model.Event, error) {
	event, err := u.Get(id)
	if err != nil {
		return nil, err
	}
	if in, err = in.check(); err != nil {
		return nil, err
	}

	event.Title = in.Title
	event.Description = in.Description
	event.Location = in.Location
	event.StartDate = in.StartDate
	event.EndDate = in.EndDate
	event.Creator = nil
	if err := u.repo.Update(event); err != nil {
		return nil, err
	}
	return u.Get(id)
}

func (u *EventUsecase) Delete(id uint) error {
	if _, err := u.Get(id); err != nil {
		return err
	}
	return u.repo.Delete(id)
}

func (u *EventUsecase) Get(id uint) (*model.Event, error) {
	event, err := u.repo.GetByID(id)
	if err != nil {
		return nil, notFound(err)
	}
	return event, nil
}

// List returns every event, or only those still running on or after from.
func (u *EventUsecase) List(from string, limit int) ([]model.Event, error) {
	if from == "" {
		return u.repo.GetAll()
	}
	if !model.ValidDate(from) {
		return nil, invalid("from %q must be YYYY-MM-DD", from)
	}
	return u.repo.GetUpcoming(from, limit)
}
