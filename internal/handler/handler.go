// Package handler is the thin REST surface over the scheduling service:
// request binding, field validation, and error-to-status mapping.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pradeepshrestha14/event-scheduler-service/internal/middleware"
	"github.com/pradeepshrestha14/event-scheduler-service/internal/model"
	"github.com/pradeepshrestha14/event-scheduler-service/internal/scheduling"
	"github.com/pradeepshrestha14/event-scheduler-service/internal/service"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts all endpoints. Mutating routes sit behind the rate limiter.
func Routes(r *gin.Engine, h *Handler, rl *middleware.RateLimiter) {
	limited := middleware.RateLimit(rl)

	events := r.Group("/events")
	{
		events.POST("", limited, h.CreateEvent)
		events.GET("", h.ListEvents)
		events.GET("/:event_id", h.GetEvent)
		events.PUT("/:event_id", limited, h.UpdateEvent)
		events.DELETE("/:event_id", limited, h.DeleteEvent)
		events.POST("/user", h.GetEventsByUser)
		events.POST("/:event_id/rsvp", limited, h.RSVP)
	}
}

// bindError renders a binding failure; validator errors become per-field
// messages instead of the struct-tag dump gin produces by default.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": strings.Join(msgs, "; ")})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min", "max":
		return fmt.Sprintf("%s length is out of range", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// serviceError maps a domain error onto an HTTP status and body.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": err.Error()})
	case isDomainError(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
	}
}

func isDomainError(err error) bool {
	var tzErr *scheduling.InvalidTimezoneError
	var utcErr *scheduling.NotUTCError
	var dupErr *service.DuplicateParticipantError
	var rsvpErr *service.InvalidRSVPStatusError
	return errors.Is(err, scheduling.ErrEndNotAfterStart) ||
		errors.Is(err, service.ErrIncompleteRecurrence) ||
		errors.As(err, &tzErr) ||
		errors.As(err, &utcErr) ||
		errors.As(err, &dupErr) ||
		errors.As(err, &rsvpErr)
}

// --- response shapes ---

type eventJSON struct {
	ID                string            `json:"id"`
	CreatorEmail      string            `json:"creator_email"`
	Country           string            `json:"country"`
	Title             string            `json:"title"`
	Description       string            `json:"description,omitempty"`
	StartTime         string            `json:"start_time"`
	EndTime           string            `json:"end_time"`
	StartTimeLocal    string            `json:"start_time_local"`
	EndTimeLocal      string            `json:"end_time_local"`
	TimeZone          string            `json:"time_zone"`
	Location          string            `json:"location,omitempty"`
	RecurrenceType    string            `json:"recurrence_type,omitempty"`
	RecurrenceEndDate string            `json:"recurrence_end_date,omitempty"`
	IsDeleted         bool              `json:"is_deleted"`
	Participants      []participantJSON `json:"participants,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type participantJSON struct {
	ID         string `json:"id"`
	EventID    string `json:"event_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	RSVPStatus string `json:"rsvp_status"`
}

type occurrenceJSON struct {
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	StartTimeLocal string `json:"start_time_local"`
	EndTimeLocal   string `json:"end_time_local"`
	TimeZone       string `json:"time_zone"`
}

func toEventJSON(e *model.Event) eventJSON {
	out := eventJSON{
		ID:             e.ID,
		CreatorEmail:   e.CreatorEmail,
		Country:        e.Country,
		Title:          e.Title,
		Description:    e.Description,
		StartTime:      scheduling.FormatUTC(e.StartTime),
		EndTime:        scheduling.FormatUTC(e.EndTime),
		StartTimeLocal: e.StartTimeLocal,
		EndTimeLocal:   e.EndTimeLocal,
		TimeZone:       e.TimeZone,
		Location:       e.Location,
		RecurrenceType: e.RecurrenceType,
		IsDeleted:      e.IsDeleted,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
	if e.RecurrenceEndDate != nil {
		out.RecurrenceEndDate = scheduling.FormatUTC(*e.RecurrenceEndDate)
	}
	for i := range e.Participants {
		out.Participants = append(out.Participants, toParticipantJSON(&e.Participants[i]))
	}
	return out
}

func toParticipantJSON(p *model.Participant) participantJSON {
	return participantJSON{
		ID:         p.ID,
		EventID:    p.EventID,
		Name:       p.Name,
		Email:      p.Email,
		RSVPStatus: p.RSVPStatus,
	}
}

func toOccurrenceJSON(o model.Occurrence) occurrenceJSON {
	return occurrenceJSON{
		StartTime:      scheduling.FormatUTC(o.StartUTC),
		EndTime:        scheduling.FormatUTC(o.EndUTC),
		StartTimeLocal: o.StartLocal,
		EndTimeLocal:   o.EndLocal,
		TimeZone:       o.TimeZone,
	}
}

func toEventListJSON(events []model.Event) []eventJSON {
	out := make([]eventJSON, len(events))
	for i := range events {
		out[i] = toEventJSON(&events[i])
	}
	return out
}
