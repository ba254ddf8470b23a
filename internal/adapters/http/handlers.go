package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/worklog/internal/apperr"
	"github.com/example/worklog/internal/core/task"
	"github.com/example/worklog/internal/ports/primary"
)

// Default page size for GET /api/tasks.
const defaultListLimit = 20

type handlers struct {
	tasks    primary.TaskService
	notes    primary.NoteService
	projects primary.ProjectService
	auth     primary.AuthService
}

// Auth

func (h *handlers) signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := decodeJSON(c.Body(), &req); err != nil {
		return err
	}

	user, err := h.auth.Signup(c.UserContext(), primary.SignupRequest{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

func (h *handlers) login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid login body")
	}

	login := req.Username
	if login == "" {
		login = req.Email
	}
	if strings.TrimSpace(login) == "" || req.Password == "" {
		return apperr.Validation("username and password are required")
	}

	token, err := h.auth.Login(c.UserContext(), primary.LoginRequest{
		Email:    login,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(TokenResponse{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
	})
}

func (h *handlers) me(c *fiber.Ctx) error {
	user, err := h.auth.Me(c.UserContext(), ownerID(c))
	if err != nil {
		return err
	}
	return c.JSON(toUserResponse(user))
}

// Tasks

func (h *handlers) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := decodeJSON(c.Body(), &req); err != nil {
		return err
	}

	create := primary.CreateTaskRequest{
		OwnerID:     ownerID(c),
		Title:       req.Title,
		Description: req.Description,
		Status:      task.Status(req.Status),
		Priority:    task.Priority(req.Priority),
		Order:       req.Order,
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			return err
		}
		create.DueDate = &due
	}

	created, err := h.tasks.CreateTask(c.UserContext(), create)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toTaskResponse(created))
}

func (h *handlers) listTasks(c *fiber.Ctx) error {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", defaultListLimit)
	if err != nil {
		return err
	}

	p, err := h.tasks.ListTasks(c.UserContext(), primary.ListTasksRequest{
		OwnerID:  ownerID(c),
		Skip:     skip,
		Limit:    limit,
		Status:   task.Status(c.Query("status")),
		Priority: task.Priority(c.Query("priority")),
		Search:   c.Query("search"),
	})
	if err != nil {
		return err
	}
	return c.JSON(toPageResponse(p))
}

func (h *handlers) todayTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.TodayTasks(c.UserContext(), ownerID(c))
	if err != nil {
		return err
	}
	return c.JSON(toTaskResponses(tasks))
}

func (h *handlers) taskStats(c *fiber.Ctx) error {
	stats, err := h.tasks.TaskStats(c.UserContext(), ownerID(c))
	if err != nil {
		return err
	}
	return c.JSON(toStatsResponse(stats))
}

func (h *handlers) getTask(c *fiber.Ctx) error {
	t, err := h.tasks.GetTask(c.UserContext(), ownerID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toTaskResponse(t))
}

func (h *handlers) updateTask(c *fiber.Ctx) error {
	patch, err := decodeTaskPatch(c.Body())
	if err != nil {
		return err
	}

	t, err := h.tasks.UpdateTask(c.UserContext(), primary.UpdateTaskRequest{
		OwnerID: ownerID(c),
		TaskID:  c.Params("id"),
		Patch:   patch,
	})
	if err != nil {
		return err
	}
	return c.JSON(toTaskResponse(t))
}

func (h *handlers) setTaskStatus(c *fiber.Ctx) error {
	status := c.Query("status")
	if status == "" {
		return apperr.Validation("status query parameter is required")
	}

	t, err := h.tasks.SetTaskStatus(c.UserContext(), ownerID(c), c.Params("id"), task.Status(status))
	if err != nil {
		return err
	}
	return c.JSON(toTaskResponse(t))
}

func (h *handlers) completeTask(c *fiber.Ctx) error {
	t, err := h.tasks.CompleteTask(c.UserContext(), ownerID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toTaskResponse(t))
}

func (h *handlers) deleteTask(c *fiber.Ctx) error {
	if err := h.tasks.DeleteTask(c.UserContext(), ownerID(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(MessageResponse{Message: "Task deleted successfully"})
}

// Notes

func (h *handlers) createNote(c *fiber.Ctx) error {
	var req CreateNoteRequest
	if err := decodeJSON(c.Body(), &req); err != nil {
		return err
	}
	mood, err := parseMoodPtr(req.Mood)
	if err != nil {
		return apperr.Validation("%s", err)
	}

	n, err := h.notes.CreateNote(c.UserContext(), primary.CreateNoteRequest{
		OwnerID: ownerID(c),
		Date:    req.Date,
		Content: req.Content,
		Mood:    mood,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toNoteResponse(n))
}

func (h *handlers) listNotes(c *fiber.Ctx) error {
	notes, err := h.notes.ListNotes(c.UserContext(), ownerID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		return err
	}
	return c.JSON(toNoteResponses(notes))
}

func (h *handlers) getNote(c *fiber.Ctx) error {
	n, err := h.notes.GetNote(c.UserContext(), ownerID(c), c.Params("date"))
	if err != nil {
		return err
	}
	return c.JSON(toNoteResponse(n))
}

func (h *handlers) updateNote(c *fiber.Ctx) error {
	patch, err := decodeNotePatch(c.Body())
	if err != nil {
		return err
	}

	n, err := h.notes.UpdateNote(c.UserContext(), primary.UpdateNoteRequest{
		OwnerID: ownerID(c),
		Date:    c.Params("date"),
		Patch:   patch,
	})
	if err != nil {
		return err
	}
	return c.JSON(toNoteResponse(n))
}

func (h *handlers) deleteNote(c *fiber.Ctx) error {
	if err := h.notes.DeleteNote(c.UserContext(), ownerID(c), c.Params("date")); err != nil {
		return err
	}
	return c.JSON(MessageResponse{Message: "Note deleted successfully"})
}

// Projects

func (h *handlers) createProject(c *fiber.Ctx) error {
	var req CreateProjectRequest
	if err := decodeJSON(c.Body(), &req); err != nil {
		return err
	}

	p, err := h.projects.CreateProject(c.UserContext(), primary.CreateProjectRequest{
		OwnerID:     ownerID(c),
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toProjectResponse(p))
}

func (h *handlers) listProjects(c *fiber.Ctx) error {
	includeArchived := c.QueryBool("archived", false)
	projects, err := h.projects.ListProjects(c.UserContext(), ownerID(c), includeArchived)
	if err != nil {
		return err
	}
	return c.JSON(toProjectResponses(projects))
}

func (h *handlers) getProject(c *fiber.Ctx) error {
	p, err := h.projects.GetProject(c.UserContext(), ownerID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toProjectResponse(p))
}

func (h *handlers) updateProject(c *fiber.Ctx) error {
	patch, err := decodeProjectPatch(c.Body())
	if err != nil {
		return err
	}

	p, err := h.projects.UpdateProject(c.UserContext(), primary.UpdateProjectRequest{
		OwnerID:   ownerID(c),
		ProjectID: c.Params("id"),
		Patch:     patch,
	})
	if err != nil {
		return err
	}
	return c.JSON(toProjectResponse(p))
}

func (h *handlers) deleteProject(c *fiber.Ctx) error {
	if err := h.projects.DeleteProject(c.UserContext(), ownerID(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(MessageResponse{Message: "Project deleted successfully"})
}
