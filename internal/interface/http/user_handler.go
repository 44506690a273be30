package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-ddd-user-service/internal/application"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
	"github.com/oksasatya/go-ddd-user-service/pkg/response"
)

type UserHandler struct {
	Svc    userapp.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc userapp.UserService, logger *logrus.Logger) *UserHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type userUpdateItem struct {
	Type  string `json:"type" binding:"required,updatetype"`
	Value string `json:"value"`
}

type updateUserRequest struct {
	Updates []userUpdateItem `json:"updates" binding:"required,dive"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	name, err := entity.NewUserName(req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	email, err := entity.NewSecretEmailAddress(req.Email)
	if err != nil {
		h.fail(c, err)
		return
	}

	u, err := h.Svc.Create(c.Request.Context(), entity.NewUser(name, email))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserResponse(u), "user created", nil)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := entity.ParseUserID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	u, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "user", nil)
}

// Update applies the listed field updates in order. An empty list is rejected
// by the repository.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := entity.ParseUserID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	updates := make([]entity.UserUpdate, 0, len(req.Updates))
	for _, item := range req.Updates {
		upd, err := entity.ParseUserUpdate(item.Type, item.Value)
		if err != nil {
			h.fail(c, err)
			return
		}
		updates = append(updates, upd)
	}

	u, err := h.Svc.Update(c.Request.Context(), id, updates)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "user updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := entity.ParseUserID(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id.String()}, "user deleted", nil)
}
