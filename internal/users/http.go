package users

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/library/internal/platform/apperr"
	requestutil "github.com/taibuivan/library/internal/platform/request"
	"github.com/taibuivan/library/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the user endpoints. Routes that need other modules,
// such as a user's loans, are mounted on the same router by those modules.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.createUser)
	router.Get("/", handler.listUsers)
	router.Get("/search", handler.searchUsers)
	router.Get("/{id}", handler.getUser)
	router.Get("/{id}/exists", handler.userExists)
}

func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input CreateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.CreateUser(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "/api/users/"+strconv.Itoa(user.UserID), user)
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetUserByID(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if user == nil {
		respond.Error(writer, request, apperr.NotFound("User"))
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) userExists(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	exists, err := handler.service.UserExists(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, exists)
}

func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	all, err := handler.service.GetAllUsers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, all)
}

func (handler *Handler) searchUsers(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.GetUsersByName(request.Context(), request.URL.Query().Get("name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}
