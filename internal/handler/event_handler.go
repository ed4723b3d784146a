package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pradeepshrestha14/event-scheduler-service/internal/model"
	"github.com/pradeepshrestha14/event-scheduler-service/internal/service"
)

type participantRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type createEventRequest struct {
	CreatorEmail      string               `json:"creator_email" binding:"required,email"`
	Country           string               `json:"country" binding:"required"`
	Title             string               `json:"title" binding:"required,min=5,max=150"`
	Description       string               `json:"description" binding:"max=500"`
	StartTime         string               `json:"start_time" binding:"required"`
	EndTime           string               `json:"end_time" binding:"required"`
	TimeZone          string               `json:"time_zone" binding:"required"`
	Location          string               `json:"location"`
	RecurrenceType    string               `json:"recurrence_type" binding:"omitempty,oneof=daily weekly monthly"`
	RecurrenceEndDate string               `json:"recurrence_end_date"`
	Participants      []participantRequest `json:"participants" binding:"dive"`
}

func (h *Handler) CreateEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	in := model.CreateEventInput{
		CreatorEmail:      req.CreatorEmail,
		Country:           req.Country,
		Title:             req.Title,
		Description:       req.Description,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		TimeZone:          req.TimeZone,
		Location:          req.Location,
		RecurrenceType:    req.RecurrenceType,
		RecurrenceEndDate: req.RecurrenceEndDate,
	}
	for _, p := range req.Participants {
		in.Participants = append(in.Participants, model.ParticipantInput{Name: p.Name, Email: p.Email})
	}

	outcomes, recurring, err := h.svc.CreateEvent(c.Request.Context(), in)
	if err != nil {
		serviceError(c, err)
		return
	}

	if recurring {
		c.JSON(http.StatusCreated, gin.H{
			"message": "Recurring Events Responses",
			"events":  toOutcomeListJSON(outcomes),
		})
		return
	}

	outcome := outcomes[0]
	if !outcome.Created() {
		c.JSON(http.StatusBadRequest, outcomeBody(outcome))
		return
	}
	c.JSON(http.StatusCreated, outcomeBody(outcome))
}

// outcomeBody renders one per-occurrence outcome the way the caller sees it:
// either the created event+participants or the failure reason plus the
// attempted occurrence.
func outcomeBody(o model.Outcome) gin.H {
	if o.Created() {
		body := gin.H{
			"success": true,
			"message": "Event created successfully!",
			"event":   toEventJSON(o.Event),
		}
		participants := make([]participantJSON, 0, len(o.Participants))
		for i := range o.Participants {
			participants = append(participants, toParticipantJSON(&o.Participants[i]))
		}
		body["participants"] = participants
		return body
	}

	body := gin.H{
		"success":    false,
		"error":      o.Err.Error(),
		"event_data": toOccurrenceJSON(o.Occurrence),
	}
	var conflict *service.ConflictError
	if errors.As(o.Err, &conflict) {
		body["conflicts"] = toEventJSON(conflict.Conflict)
	}
	return body
}

func toOutcomeListJSON(outcomes []model.Outcome) []gin.H {
	out := make([]gin.H, len(outcomes))
	for i, o := range outcomes {
		out[i] = outcomeBody(o)
	}
	return out
}

func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.svc.ListEvents(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "events": toEventListJSON(events)})
}

func (h *Handler) GetEvent(c *gin.Context) {
	event, err := h.svc.GetEvent(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "event": toEventJSON(event)})
}

type eventsByUserRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) GetEventsByUser(c *gin.Context) {
	var req eventsByUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	events, err := h.svc.ListEventsByUser(c.Request.Context(), req.Email)
	if err != nil {
		serviceError(c, err)
		return
	}
	if len(events) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "no events found for the specified user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "events": toEventListJSON(events)})
}

type updateEventRequest struct {
	CreatorEmail         string               `json:"creator_email" binding:"required,email"`
	Country              string               `json:"country" binding:"required"`
	Title                *string              `json:"title" binding:"omitempty,min=5,max=150"`
	Description          *string              `json:"description" binding:"omitempty,max=500"`
	StartTime            *string              `json:"start_time"`
	EndTime              *string              `json:"end_time"`
	TimeZone             *string              `json:"time_zone"`
	Location             *string              `json:"location"`
	ParticipantsToAdd    []participantRequest `json:"participants_to_add" binding:"dive"`
	ParticipantsToRemove []string             `json:"participants_to_remove"`
}

func (h *Handler) UpdateEvent(c *gin.Context) {
	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	in := model.EditEventInput{
		CreatorEmail:         req.CreatorEmail,
		Country:              req.Country,
		Title:                req.Title,
		Description:          req.Description,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		TimeZone:             req.TimeZone,
		Location:             req.Location,
		ParticipantsToRemove: req.ParticipantsToRemove,
	}
	for _, p := range req.ParticipantsToAdd {
		in.ParticipantsToAdd = append(in.ParticipantsToAdd, model.ParticipantInput{Name: p.Name, Email: p.Email})
	}

	event, err := h.svc.EditEvent(c.Request.Context(), c.Param("event_id"), in)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully!", "event": toEventJSON(event)})
}

type deleteEventRequest struct {
	CreatorEmail string `json:"creator_email" binding:"required,email"`
}

func (h *Handler) DeleteEvent(c *gin.Context) {
	var req deleteEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	event, err := h.svc.DeleteEvent(c.Request.Context(), c.Param("event_id"), req.CreatorEmail)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Event deleted successfully (soft delete)",
		"event":   toEventJSON(event),
	})
}

type rsvpRequest struct {
	Email      string `json:"email" binding:"required,email"`
	RSVPStatus string `json:"rsvp_status" binding:"required,oneof=accepted declined pending"`
}

func (h *Handler) RSVP(c *gin.Context) {
	var req rsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	event, participant, err := h.svc.RSVP(c.Request.Context(), c.Param("event_id"), req.Email, req.RSVPStatus)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "RSVP updated successfully",
		"event":       toEventJSON(event),
		"participant": toParticipantJSON(participant),
	})
}
