package http

import (
	"time"

	"github.com/example/worklog/internal/core/note"
	"github.com/example/worklog/internal/core/page"
	"github.com/example/worklog/internal/ports/primary"
)

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
}

// LoginRequest accepts a JSON body or an OAuth2 password form.
// Username may hold either a username or an email.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  *string   `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateTaskRequest is the body of POST /api/tasks. DueDate accepts
// RFC 3339 timestamps or plain dates.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	Order       int     `json:"order"`
}

type TaskResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	Order       int        `json:"order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PageResponse is the paged list envelope.
type PageResponse[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Skip    int  `json:"skip"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"has_more"`
}

type StatsResponse struct {
	Total          int     `json:"total"`
	Todo           int     `json:"todo"`
	Doing          int     `json:"doing"`
	Done           int     `json:"done"`
	TodayCount     int     `json:"today_count"`
	CompletionRate float64 `json:"completion_rate"`
}

type CreateNoteRequest struct {
	Date    string  `json:"date"`
	Content *string `json:"content"`
	Mood    *string `json:"mood"`
}

type NoteResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	Content   *string   `json:"content"`
	Mood      *string   `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
}

type ProjectResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Color       string    `json:"color"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MessageResponse acknowledges operations without a resource body.
type MessageResponse struct {
	Message string `json:"message"`
}

func toUserResponse(u *primary.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toTaskResponse(t *primary.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		UserID:      t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		Order:       t.Order,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskResponses(tasks []*primary.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}

func toPageResponse(p *page.Page[*primary.Task]) PageResponse[TaskResponse] {
	mapped := page.Map(*p, toTaskResponse)
	return PageResponse[TaskResponse]{
		Items:   mapped.Items,
		Total:   mapped.Total,
		Skip:    mapped.Skip,
		Limit:   mapped.Limit,
		HasMore: mapped.HasMore,
	}
}

func toStatsResponse(s *primary.TaskStats) StatsResponse {
	return StatsResponse{
		Total:          s.Total,
		Todo:           s.Todo,
		Doing:          s.Doing,
		Done:           s.Done,
		TodayCount:     s.TodayCount,
		CompletionRate: s.CompletionRate,
	}
}

func toNoteResponse(n *primary.Note) NoteResponse {
	var mood *string
	if n.Mood != nil {
		m := string(*n.Mood)
		mood = &m
	}
	return NoteResponse{
		ID:        n.ID,
		UserID:    n.OwnerID,
		Date:      n.Date,
		Content:   n.Content,
		Mood:      mood,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toNoteResponses(notes []*primary.Note) []NoteResponse {
	out := make([]NoteResponse, len(notes))
	for i, n := range notes {
		out[i] = toNoteResponse(n)
	}
	return out
}

func toProjectResponse(p *primary.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		UserID:      p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		Archived:    p.Archived,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProjectResponses(projects []*primary.Project) []ProjectResponse {
	out := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		out[i] = toProjectResponse(p)
	}
	return out
}

func parseMoodPtr(s *string) (*note.Mood, error) {
	if s == nil {
		return nil, nil
	}
	m, err := note.ParseMood(*s)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
