package circulation

import (
	"net/http"

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

// RegisterRoutes mounts the copy lending endpoints under /api/copies.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/{id}/checkout", handler.checkout)
	router.Post("/{id}/return", handler.returnCopy)
}

// RegisterUserRoutes mounts the per-user loan listing under /api/users.
func (handler *Handler) RegisterUserRoutes(router chi.Router) {
	router.Get("/{id}/loans", handler.activeLoans)
}

func (handler *Handler) checkout(writer http.ResponseWriter, request *http.Request) {
	var input CheckoutRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	loan, err := handler.service.Checkout(request.Context(), requestutil.Param(request, "id"), input.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "", loan)
}

func (handler *Handler) returnCopy(writer http.ResponseWriter, request *http.Request) {
	bookCopy, err := handler.service.Return(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, bookCopy)
}

func (handler *Handler) activeLoans(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	loans, err := handler.service.ActiveLoans(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if loans == nil {
		respond.Error(writer, request, apperr.NotFound("User"))
		return
	}
	respond.OK(writer, loans)
}
