package catalog

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

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/", handler.addBook)
	router.Get("/", handler.listBooks)
	router.Get("/search", handler.searchBooks)
	router.Get("/{id}", handler.getBook)
	router.Get("/{id}/copies", handler.listCopies)
}

func (handler *Handler) addBook(writer http.ResponseWriter, request *http.Request) {
	var input AddBookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.AddBook(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "/api/books/"+strconv.Itoa(result.Book.ID), result)
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.ListBooks(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

func (handler *Handler) searchBooks(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.SearchBooks(request.Context(), requestutil.Query(request, "title"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, books)
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.GetBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if book == nil {
		respond.Error(writer, request, apperr.NotFound("Book"))
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) listCopies(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	copies, err := handler.service.ListCopies(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if copies == nil {
		respond.Error(writer, request, apperr.NotFound("Book"))
		return
	}
	respond.OK(writer, copies)
}
