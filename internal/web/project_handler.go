package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/codemarket/internal/auth"
	"github.com/nikolayk812/codemarket/internal/domain"
	"github.com/samber/lo"
)

// multipartOverhead covers form fields and part headers on top of the two uploads.
const multipartOverhead = 1 << 20

func (h *handler) handleSearchProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := intParam(q.Get("limit"))
	if err != nil {
		h.writeError(w, r, "handler.handleSearchProjects", fmt.Errorf("%w: limit must be an integer", domain.ErrInvalidInput))
		return
	}

	offset, err := intParam(q.Get("offset"))
	if err != nil {
		h.writeError(w, r, "handler.handleSearchProjects", fmt.Errorf("%w: offset must be an integer", domain.ErrInvalidInput))
		return
	}

	projects, err := h.catalog.SearchProjects(r.Context(), domain.ProjectFilter{
		Query:    q.Get("query"),
		SellerID: q.Get("seller"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		h.writeError(w, r, "handler.handleSearchProjects", err)
		return
	}

	writeJSON(w, http.StatusOK, lo.Map(projects, func(p domain.Project, _ int) projectResponse {
		return toProjectResponse(p)
	}))
}

func (h *handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := projectIDParam(r)
	if err != nil {
		h.writeError(w, r, "handler.handleGetProject", err)
		return
	}

	details, err := h.catalog.GetProject(r.Context(), projectID)
	if err != nil {
		h.writeError(w, r, "handler.handleGetProject", err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectDetailsResponse(details))
}

func (h *handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if !user.IsAuthenticated() {
		h.writeError(w, r, "handler.handleCreateProject", domain.ErrAuthenticationRequired)
		return
	}

	in, cleanup, err := h.parseProjectForm(w, r)
	if err != nil {
		h.writeError(w, r, "handler.handleCreateProject", err)
		return
	}
	defer cleanup()

	project, err := h.catalog.CreateProject(r.Context(), user, in)
	if err != nil {
		h.writeError(w, r, "handler.handleCreateProject", err)
		return
	}

	writeJSON(w, http.StatusCreated, toProjectResponse(project))
}

func (h *handler) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if !user.IsAuthenticated() {
		h.writeError(w, r, "handler.handleUpdateProject", domain.ErrAuthenticationRequired)
		return
	}

	projectID, err := projectIDParam(r)
	if err != nil {
		h.writeError(w, r, "handler.handleUpdateProject", err)
		return
	}

	in, cleanup, err := h.parseProjectForm(w, r)
	if err != nil {
		h.writeError(w, r, "handler.handleUpdateProject", err)
		return
	}
	defer cleanup()

	project, err := h.catalog.UpdateProject(r.Context(), user, projectID, in)
	if err != nil {
		h.writeError(w, r, "handler.handleUpdateProject", err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(project))
}

func (h *handler) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	projectID, err := projectIDParam(r)
	if err != nil {
		h.writeError(w, r, "handler.handleDeleteProject", err)
		return
	}

	if err := h.catalog.DeleteProject(r.Context(), user, projectID); err != nil {
		h.writeError(w, r, "handler.handleDeleteProject", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseProjectForm reads the multipart form. The returned cleanup closes the
// uploads and removes temporary files.
func (h *handler) parseProjectForm(w http.ResponseWriter, r *http.Request) (domain.ProjectInput, func(), error) {
	var in domain.ProjectInput
	noop := func() {}

	r.Body = http.MaxBytesReader(w, r.Body, 2*h.maxUploadSize+multipartOverhead)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return in, noop, fmt.Errorf("%w: request exceeds %d bytes", domain.ErrInvalidInput, tooLarge.Limit)
		}
		h.log.Debug("multipart form rejected",
			"method", "handler.parseProjectForm",
			"error", err)
		return in, noop, fmt.Errorf("%w: malformed multipart form", domain.ErrInvalidInput)
	}

	var closers []func() error
	cleanup := func() {
		for _, c := range closers {
			_ = c()
		}
		_ = r.MultipartForm.RemoveAll()
	}

	in = domain.ProjectInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
	}

	for field, dst := range map[string]**domain.Upload{"image": &in.Image, "file": &in.File} {
		file, header, err := r.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			cleanup()
			h.log.Debug("form file rejected",
				"method", "handler.parseProjectForm",
				"field", field,
				"error", err)
			return in, noop, fmt.Errorf("%w: %s is not a valid file", domain.ErrInvalidInput, field)
		}
		closers = append(closers, file.Close)

		*dst = &domain.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		}
	}

	return in, cleanup, nil
}

func projectIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: project id[%s] is not valid", domain.ErrInvalidInput, raw)
	}
	return id, nil
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
