package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/usecase"
	"github.com/gin-gonic/gin"
)

type adminUsecaser interface {
	ListUsers(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.User], error)
	ListUsersByRole(ctx context.Context, role domain.Role, page domain.PageRequest) (domain.Page[*domain.User], error)
	ListTemplates(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.Template], error)
	AddUser(ctx context.Context, in usecase.NewUserInput, role domain.Role) (*usecase.AddUserResult, error)
	ListManagers(ctx context.Context) ([]*domain.User, error)
	DeleteUser(ctx context.Context, id uint) error
	ChangeRole(ctx context.Context, id uint, role domain.Role) (*domain.User, error)
	BatchInsert(ctx context.Context, employees []usecase.Employee) (int64, error)
}

type AdminHandler struct {
	admin  adminUsecaser
	logger *slog.Logger
}

func NewAdminHandler(admin adminUsecaser, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger.With("component", "admin_handler")}
}

type addUserRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName"  binding:"max=100"`
	Email     string `json:"email"     binding:"required,email"`
	Password  string `json:"password"  binding:"required"`
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type employeeRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"     binding:"required,email"`
}

// GET /api/admin/users?pageNumber=&pageSize=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	users, err := h.admin.ListUsers(c.Request.Context(), page)
	if err != nil {
		respondError(c, h.logger, "list users", err)
		return
	}
	c.JSON(http.StatusOK, newPageResponse(users, newUserResponse))
}

// GET /api/admin/users/by-role?role=&pageNumber=&pageSize=
func (h *AdminHandler) ListUsersByRole(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role := domain.RoleUser
	if raw := c.Query("role"); raw != "" {
		parsed, ok := domain.ParseRole(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
			return
		}
		role = parsed
	}
	users, err := h.admin.ListUsersByRole(c.Request.Context(), role, page)
	if err != nil {
		respondError(c, h.logger, "list users by role", err)
		return
	}
	c.JSON(http.StatusOK, newPageResponse(users, newUserResponse))
}

// GET /api/admin/templates?pageNumber=&pageSize=
func (h *AdminHandler) ListTemplates(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	templates, err := h.admin.ListTemplates(c.Request.Context(), page)
	if err != nil {
		respondError(c, h.logger, "list templates", err)
		return
	}
	c.JSON(http.StatusOK, newPageResponse(templates, newTemplateResponse))
}

// POST /api/admin/users
func (h *AdminHandler) AddUser(c *gin.Context) {
	h.add(c, domain.RoleUser)
}

// POST /api/admin/managers
func (h *AdminHandler) AddManager(c *gin.Context) {
	h.add(c, domain.RoleManager)
}

func (h *AdminHandler) add(c *gin.Context, role domain.Role) {
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.admin.AddUser(c.Request.Context(), usecase.NewUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}, role)
	if err != nil {
		respondError(c, h.logger, "add user", err)
		return
	}

	body := gin.H{"user": newUserResponse(res.User)}
	if !res.EmailSent {
		body["message"] = "Account created but email notification failed"
	}
	c.JSON(http.StatusCreated, body)
}

// GET /api/admin/managers
func (h *AdminHandler) ListManagers(c *gin.Context) {
	managers, err := h.admin.ListManagers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list managers", err)
		return
	}
	c.JSON(http.StatusOK, newUserResponses(managers))
}

// DELETE /api/admin/users/:id and /api/admin/managers/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}
	if err := h.admin.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "delete user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
}

// PATCH /api/admin/users/:id/role
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return
	}
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}
	user, err := h.admin.ChangeRole(c.Request.Context(), id, role)
	if err != nil {
		respondError(c, h.logger, "change role", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User role updated successfully", "user": newUserResponse(user)})
}

// POST /api/admin/batch-insert
func (h *AdminHandler) BatchInsert(c *gin.Context) {
	var req []employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employees := make([]usecase.Employee, len(req))
	for i, e := range req {
		employees[i] = usecase.Employee{FirstName: e.FirstName, LastName: e.LastName, Email: e.Email}
	}
	n, err := h.admin.BatchInsert(c.Request.Context(), employees)
	if err != nil {
		respondError(c, h.logger, "batch insert", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employees added successfully!", "inserted": n})
}
