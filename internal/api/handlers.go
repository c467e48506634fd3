package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"filmorate/internal/domain"
	"filmorate/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// HTTPHandler обрабатывает HTTP-запросы ко всем ресурсам приложения.
type HTTPHandler struct {
	films     *service.FilmService
	users     *service.UserService
	reference *service.ReferenceService
	logger    *slog.Logger
	validator *validator.Validate
}

func NewHTTPHandler(films *service.FilmService, users *service.UserService, reference *service.ReferenceService, l *slog.Logger, v *validator.Validate) *HTTPHandler {
	return &HTTPHandler{
		films:     films,
		users:     users,
		reference: reference,
		logger:    l,
		validator: v,
	}
}

func (h *HTTPHandler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *HTTPHandler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"error": message})
}

// respondDomainError переводит вид ошибки в HTTP-статус:
// валидация - 400, дубликат - 409, не найдено - 404, остальное - 500.
func (h *HTTPHandler) respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsValidation(err):
		h.respondError(w, r, http.StatusBadRequest, err.Error())
	case domain.IsDuplicate(err):
		h.respondError(w, r, http.StatusConflict, err.Error())
	case domain.IsNotFound(err):
		h.respondError(w, r, http.StatusNotFound, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Unexpected error handling request", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *HTTPHandler) pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

// --- Фильмы ---

func (h *HTTPHandler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "HTTP CreateFilm request received", slog.String("path", r.URL.Path))

	var req domain.CreateFilmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode create film request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Create film request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	film := &domain.Film{
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate,
		Duration:    req.Duration,
		Mpa:         domain.MpaRating{ID: req.Mpa.ID},
		Genres:      refsToGenres(req.Genres),
	}

	created, err := h.films.Create(ctx, film)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, created)
}

func (h *HTTPHandler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "HTTP UpdateFilm request received", slog.String("path", r.URL.Path))

	var req domain.UpdateFilmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode update film request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Update film request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	current, err := h.films.GetByID(ctx, req.ID)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	// Обновляются только переданные поля, остальные берутся из текущей записи.
	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.ReleaseDate != nil {
		current.ReleaseDate = *req.ReleaseDate
	}
	if req.Duration != nil {
		current.Duration = *req.Duration
	}
	if req.Mpa != nil {
		current.Mpa = domain.MpaRating{ID: req.Mpa.ID}
	}
	if req.Genres != nil {
		current.Genres = refsToGenres(req.Genres)
	}

	updated, err := h.films.Update(ctx, current)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, updated)
}

func (h *HTTPHandler) ListFilms(w http.ResponseWriter, r *http.Request) {
	films, err := h.films.List(r.Context())
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, films)
}

func (h *HTTPHandler) GetFilm(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid film id")
		return
	}
	film, err := h.films.GetByID(r.Context(), id)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, film)
}

func (h *HTTPHandler) PopularFilms(w http.ResponseWriter, r *http.Request) {
	count := 10
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, "Invalid count parameter")
			return
		}
		count = parsed
	}
	films, err := h.films.Popular(r.Context(), count)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, films)
}

func (h *HTTPHandler) AddLike(w http.ResponseWriter, r *http.Request) {
	filmID, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid film id")
		return
	}
	userID, err := h.pathID(r, "userId")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	if err := h.films.AddLike(r.Context(), filmID, userID); err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, nil)
}

func (h *HTTPHandler) RemoveLike(w http.ResponseWriter, r *http.Request) {
	filmID, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid film id")
		return
	}
	userID, err := h.pathID(r, "userId")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	if err := h.films.RemoveLike(r.Context(), filmID, userID); err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, nil)
}

func refsToGenres(refs []domain.RefID) []domain.Genre {
	genres := make([]domain.Genre, 0, len(refs))
	for _, ref := range refs {
		genres = append(genres, domain.Genre{ID: ref.ID})
	}
	return genres
}

// --- Пользователи ---

func (h *HTTPHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "HTTP CreateUser request received", slog.String("path", r.URL.Path))

	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode create user request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Create user request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	user := &domain.User{
		Email:    req.Email,
		Name:     req.Name,
		Login:    req.Login,
		Birthday: req.Birthday,
	}

	created, err := h.users.Create(ctx, user)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusCreated, created)
}

func (h *HTTPHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.logger.InfoContext(ctx, "HTTP UpdateUser request received", slog.String("path", r.URL.Path))

	var req domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode update user request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Update user request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	current, err := h.users.GetByID(ctx, req.ID)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	if req.Email != nil {
		current.Email = *req.Email
	}
	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Login != nil {
		current.Login = *req.Login
	}
	if req.Birthday != nil {
		current.Birthday = *req.Birthday
	}

	updated, err := h.users.Update(ctx, current)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, updated)
}

func (h *HTTPHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, users)
}

func (h *HTTPHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, user)
}

func (h *HTTPHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	userID, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	friendID, err := h.pathID(r, "friendId")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid friend id")
		return
	}
	if err := h.users.AddFriend(r.Context(), userID, friendID); err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, nil)
}

func (h *HTTPHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	friendID, err := h.pathID(r, "friendId")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid friend id")
		return
	}
	if err := h.users.RemoveFriend(r.Context(), userID, friendID); err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, nil)
}

func (h *HTTPHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	friends, err := h.users.Friends(r.Context(), userID)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, friends)
}

func (h *HTTPHandler) CommonFriends(w http.ResponseWriter, r *http.Request) {
	userID, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	otherID, err := h.pathID(r, "otherId")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid user id")
		return
	}
	friends, err := h.users.CommonFriends(r.Context(), userID, otherID)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, friends)
}

// --- Справочники ---

func (h *HTTPHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.reference.Genres(r.Context())
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, genres)
}

func (h *HTTPHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid genre id")
		return
	}
	genre, err := h.reference.GenreByID(r.Context(), id)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, genre)
}

func (h *HTTPHandler) ListMpaRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.reference.MpaRatings(r.Context())
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, ratings)
}

func (h *HTTPHandler) GetMpaRating(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r, "id")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Invalid mpa rating id")
		return
	}
	rating, err := h.reference.MpaRatingByID(r.Context(), id)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, rating)
}
