package gcal

import (
	"context"
	"fmt"
	"time"

	"github.com/Q07K/event-calplot/pkg/grid"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var ErrNotAuthenticated = fmt.Errorf("not authenticated with Google, authentication is required")

type CalendarItem struct {
	ID      string
	Summary string
}

type Service interface {
	ListCalendars(ctx context.Context) ([]CalendarItem, error)
	ImportEventDates(ctx context.Context, calendarId string, year int) ([]time.Time, error)
}

type ServiceImpl struct {
	auth *GoogleAuth
}

func NewService(auth *GoogleAuth) *ServiceImpl {
	return &ServiceImpl{
		auth: auth,
	}
}

func (s *ServiceImpl) ListCalendars(ctx context.Context) ([]CalendarItem, error) {
	googleService, err := s.prepareGoogleService(ctx)
	if err != nil {
		return nil, err
	}
	calendars, err := googleService.CalendarList.List().Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve calendars from Google Calendar: %v", err)
		log.Error(err)
		return nil, err
	}
	var items []CalendarItem
	for _, cal := range calendars.Items {
		items = append(items, CalendarItem{
			ID:      cal.Id,
			Summary: cal.Summary,
		})
	}
	return items, nil
}

// ImportEventDates fetches the calendar's events for one year and returns
// their start dates, deduplicated and normalized to date-only.
func (s *ServiceImpl) ImportEventDates(ctx context.Context, calendarId string, year int) ([]time.Time, error) {
	googleService, err := s.prepareGoogleService(ctx)
	if err != nil {
		return nil, err
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	googleEvents, err := googleService.Events.List(calendarId).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve events from Google Calendar: %v", err)
		log.Error(err)
		return nil, err
	}

	seen := make(map[time.Time]struct{})
	var dates []time.Time
	for _, item := range googleEvents.Items {
		date, ok := eventStartDate(item)
		if !ok {
			log.Warnf("skipping calendar event without a usable start: %s", item.Summary)
			continue
		}
		date = grid.Normalize(date)
		if _, dup := seen[date]; dup {
			continue
		}
		seen[date] = struct{}{}
		dates = append(dates, date)
	}
	log.Infof("imported %d event dates from calendar %s for year %d", len(dates), calendarId, year)
	return dates, nil
}

// eventStartDate handles both timed events (DateTime) and all-day events (Date).
func eventStartDate(event *calendar.Event) (time.Time, bool) {
	if event.Start == nil {
		return time.Time{}, false
	}
	if event.Start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
			return t, true
		}
		return time.Time{}, false
	}
	if event.Start.Date != "" {
		if t, err := time.Parse("2006-01-02", event.Start.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (s *ServiceImpl) prepareGoogleService(ctx context.Context) (*calendar.Service, error) {
	client, err := s.auth.getClient(ctx)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Google auth client: %v", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("no stored Google token, authentication is required")
		return nil, ErrNotAuthenticated
	}
	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to retrieve Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}

	return service, nil
}
